// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package warp implements the perspective + shear coordinate transform
// and the rotated/warped bounding box for the crop editor. Coordinates
// are normalized source UV in 0..1 with the optical axis at (0.5, 0.5).
//
// The transform is a restricted 3x3 homography: a horizontal shear
// followed by a single projective divide whose coefficients are derived
// from the tilt angles and focal length. Unlike a per-axis polynomial
// approximation, this form has an exact closed-form inverse, which the
// containment tests rely on.
package warp

import "cogentcore.org/core/math32"

// Forward maps a normalized source coordinate through the shear and
// perspective transform. Identity when TiltV, TiltH, and Shear are all
// zero. Rotation is not applied here; see [Params.Bounds] and
// [Params.SourceUV] for the rotated frame.
func (p *Params) Forward(pt math32.Vector2) math32.Vector2 {
	if !p.HasPerspective() {
		return pt
	}
	cv, ch := p.coeffs()
	x := pt.X - 0.5
	y := pt.Y - 0.5
	x += p.Shear * y
	w := 1 + 2*ch*x + 2*cv*y
	if w < 1e-4 {
		w = 1e-4
	}
	return math32.Vec2(x/w+0.5, y/w+0.5)
}

// Inverse maps a warped coordinate back to source UV. It is the exact
// inverse of [Params.Forward] for any point inside the warped image;
// points far outside may land on the clamped divisor and merely stay
// outside, which is all the containment tests need.
func (p *Params) Inverse(pt math32.Vector2) math32.Vector2 {
	if !p.HasPerspective() {
		return pt
	}
	cv, ch := p.coeffs()
	x := pt.X - 0.5
	y := pt.Y - 0.5
	w := 1 - 2*ch*x - 2*cv*y
	if w < 1e-4 {
		w = 1e-4
	}
	x /= w
	y /= w
	x -= p.Shear * y
	return math32.Vec2(x+0.5, y+0.5)
}

// SourceUV maps a bounding-box-normalized point (0..1 over the BB of
// the rotated+warped image) back to source UV, by inverting the
// rotation and then the warp. Source UV outside 0..1 means the point
// is outside the image.
func (p *Params) SourceUV(bb math32.Vector2, srcW, srcH float32) math32.Vector2 {
	box := p.bbox(srcW, srcH)
	sz := box.Size()
	px := math32.Vec2(box.Min.X+bb.X*sz.X, box.Min.Y+bb.Y*sz.Y)
	ip := math32.Rotate2D(-p.TotalRotation()).MulVector2AsPoint(px)
	return p.Inverse(math32.Vec2(ip.X/srcW+0.5, ip.Y/srcH+0.5))
}
