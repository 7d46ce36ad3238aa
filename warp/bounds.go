// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package warp

import "cogentcore.org/core/math32"

// boundarySamples are the source-edge sample points used to
// approximate the warped image silhouette: 4 corners and 4 edge
// midpoints, ordered around the perimeter.
var boundarySamples = [8]math32.Vector2{
	{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0.5},
	{X: 1, Y: 1}, {X: 0.5, Y: 1}, {X: 0, Y: 1}, {X: 0, Y: 0.5},
}

// Bounds returns the size in pixels of the axis-aligned bounding box,
// in the screen-horizontal frame, of the rotated and warped source
// image. It is recomputed whenever Params change and is never stored.
//
// Without perspective this is the exact rotation formula
// |cos|*w + |sin|*h; a 90° step is an exact width/height swap. With
// perspective the warped boundary samples supersede the formula, since
// tilt can both shrink and skew the silhouette.
func (p *Params) Bounds(srcW, srcH float32) math32.Vector2 {
	if !p.HasPerspective() {
		c := math32.Abs(math32.Cos(p.Angle))
		s := math32.Abs(math32.Sin(p.Angle))
		bb := math32.Vec2(srcW*c+srcH*s, srcW*s+srcH*c)
		if p.Rotate90%2 != 0 {
			bb.X, bb.Y = bb.Y, bb.X
		}
		return bb
	}
	return p.bbox(srcW, srcH).Size()
}

// bbox returns the bounding box in pixels, centered on the rotation
// origin (the image center). Without perspective the box is symmetric;
// with perspective the warped silhouette need not be, so the Min
// offset matters and is shared by every BB-normalized mapping.
func (p *Params) bbox(srcW, srcH float32) math32.Box2 {
	if !p.HasPerspective() {
		half := p.Bounds(srcW, srcH).MulScalar(0.5)
		return math32.Box2{Min: half.Negate(), Max: half}
	}
	rot := math32.Rotate2D(p.TotalRotation())
	b := math32.B2Empty()
	for _, uv := range boundarySamples {
		q := p.Forward(uv)
		px := math32.Vec2((q.X-0.5)*srcW, (q.Y-0.5)*srcH)
		b.ExpandByPoint(rot.MulVector2AsPoint(px))
	}
	return b
}

// BoundaryPoints returns the warped and rotated boundary samples in
// BB-normalized coordinates (0..1 over the bounding box), ordered
// around the perimeter. They form the 8-vertex polygon used by the
// crop constraint solver.
func (p *Params) BoundaryPoints(srcW, srcH float32) [8]math32.Vector2 {
	box := p.bbox(srcW, srcH)
	sz := box.Size()
	rot := math32.Rotate2D(p.TotalRotation())
	var pts [8]math32.Vector2
	for i, uv := range boundarySamples {
		q := p.Forward(uv)
		px := math32.Vec2((q.X-0.5)*srcW, (q.Y-0.5)*srcH)
		r := rot.MulVector2AsPoint(px)
		pts[i] = math32.Vec2((r.X-box.Min.X)/sz.X, (r.Y-box.Min.Y)/sz.Y)
	}
	return pts
}
