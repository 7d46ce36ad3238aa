// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crop implements the crop rectangle, the warped-boundary
// constraint solver used during interactive dragging, and the post-hoc
// bounds corrector applied after discrete parameter changes.
//
// All rectangle coordinates are bounding-box-normalized: 0..1 over the
// BB of the rotated/warped image, origin at the BB top-left.
package crop

import (
	"cogentcore.org/core/math32"

	"github.com/tettou771/TrussPhoto-sub002/warp"
)

// MinSize is the minimum crop width/height in BB-normalized units,
// enforced everywhere a dimension is derived.
const MinSize = 0.02

// Rect is a crop rectangle in BB-normalized coordinates.
type Rect struct {
	X, Y, W, H float32
}

// FullFrame returns the rect covering the whole bounding box.
func FullFrame() Rect {
	return Rect{0, 0, 1, 1}
}

func (r Rect) Center() math32.Vector2 {
	return math32.Vec2(r.X+r.W/2, r.Y+r.H/2)
}

// Corners returns the four corners in TL, TR, BR, BL order.
func (r Rect) Corners() [4]math32.Vector2 {
	return [4]math32.Vector2{
		{X: r.X, Y: r.Y},
		{X: r.X + r.W, Y: r.Y},
		{X: r.X + r.W, Y: r.Y + r.H},
		{X: r.X, Y: r.Y + r.H},
	}
}

func (r Rect) Box2() math32.Box2 {
	return math32.B2(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// AspectRatio returns W/H, or 0 for a degenerate rect.
func (r Rect) AspectRatio() float32 {
	if r.H <= 0 {
		return 0
	}
	return r.W / r.H
}

// Lerp interpolates all four components from a to b by t.
func Lerp(a, b Rect, t float32) Rect {
	return Rect{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		W: a.W + (b.W-a.W)*t,
		H: a.H + (b.H-a.H)*t,
	}
}

// MinSized returns the rect with W and H floored at [MinSize],
// growing about the rect center.
func (r Rect) MinSized() Rect {
	if r.W < MinSize {
		r.X -= (MinSize - r.W) / 2
		r.W = MinSize
	}
	if r.H < MinSize {
		r.Y -= (MinSize - r.H) / 2
		r.H = MinSize
	}
	return r
}

// ClampUnit clamps the rect into the unit square, shrinking it first
// if it is larger than the square.
func (r Rect) ClampUnit() Rect {
	r.W = math32.Clamp(r.W, MinSize, 1)
	r.H = math32.Clamp(r.H, MinSize, 1)
	r.X = math32.Clamp(r.X, 0, 1-r.W)
	r.Y = math32.Clamp(r.Y, 0, 1-r.H)
	return r
}

// ScaleAbout returns the rect scaled uniformly by s about its center,
// floored at [MinSize].
func (r Rect) ScaleAbout(s float32) Rect {
	c := r.Center()
	w := r.W * s
	h := r.H * s
	return Rect{c.X - w/2, c.Y - h/2, w, h}.MinSized()
}

// Quad returns the source-UV positions of the rect's four corners
// (TL, TR, BR, BL) under the given transform, for export and preview
// texture sampling.
func (r Rect) Quad(p *warp.Params, srcW, srcH float32) [4]math32.Vector2 {
	var q [4]math32.Vector2
	for i, c := range r.Corners() {
		q[i] = p.SourceUV(c, srcW, srcH)
	}
	return q
}
