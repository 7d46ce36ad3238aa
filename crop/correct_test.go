// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crop

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"

	"github.com/tettou771/TrussPhoto-sub002/warp"
)

func TestCorrectNoTransform(t *testing.T) {
	p := &warp.Params{}
	c := &Corrector{Params: p, SrcW: testW, SrcH: testH}

	r := c.Correct(Rect{0.25, 0.25, 0.5, 0.5})
	assert.Equal(t, Rect{0.25, 0.25, 0.5, 0.5}, r)

	r = c.Correct(Rect{0.8, -0.3, 0.5, 0.5})
	assert.Equal(t, Rect{0.5, 0, 0.5, 0.5}, r)
}

// Fine rotation with a full-frame crop: the corrector must shrink the
// rect until all four rotated corners lie inside the source image.
func TestCorrectRotationShrinks(t *testing.T) {
	p := &warp.Params{Angle: math32.Pi / 8}
	c := &Corrector{Params: p, SrcW: testW, SrcH: testH}

	r := c.Correct(FullFrame())
	assert.Less(t, r.W, float32(1))
	assert.Less(t, r.H, float32(1))

	// all corners inside the source image
	bb := p.Bounds(testW, testH)
	rot := math32.Rotate2D(-p.TotalRotation())
	for _, pt := range r.Corners() {
		px := rot.MulVector2AsPoint(math32.Vec2((pt.X-0.5)*bb.X, (pt.Y-0.5)*bb.Y))
		assert.LessOrEqual(t, math32.Abs(px.X), float32(testW)/2+0.1)
		assert.LessOrEqual(t, math32.Abs(px.Y), float32(testH)/2+0.1)
	}
}

func TestCorrectRotationRepositionOnly(t *testing.T) {
	p := &warp.Params{Angle: 0.1}
	c := &Corrector{Params: p, SrcW: testW, SrcH: testH}

	small := Rect{0.9, 0.45, 0.1, 0.1} // fits, but pokes out the right side
	r := c.Correct(small)
	assert.Equal(t, small.W, r.W)
	assert.Equal(t, small.H, r.H)
	assert.Less(t, r.X, small.X)
}

func TestCorrectIdempotent(t *testing.T) {
	cases := []*warp.Params{
		{},
		{Angle: math32.Pi / 8},
		{Rotate90: 1, Angle: -0.2},
		{TiltV: 20, FocalLength: 28},
		{TiltV: -30, TiltH: 15, Shear: 0.5, FocalLength: 35},
	}
	rects := []Rect{
		FullFrame(),
		{0.25, 0.25, 0.5, 0.5},
		{0.8, 0.8, 0.4, 0.4},
		{-0.2, 0.1, 0.6, 0.3},
	}
	for _, p := range cases {
		c := &Corrector{Params: p, SrcW: testW, SrcH: testH}
		for _, r := range rects {
			once := c.Correct(r)
			twice := c.Correct(once)
			assert.Equal(t, once, twice)
		}
	}
}

func TestCorrectPerspectiveContains(t *testing.T) {
	p := &warp.Params{TiltV: 25, TiltH: -10, FocalLength: 28}
	c := &Corrector{Params: p, SrcW: testW, SrcH: testH}

	r := c.Correct(FullFrame())
	assert.GreaterOrEqual(t, r.W, float32(MinSize))
	assert.GreaterOrEqual(t, r.H, float32(MinSize))
	for _, pt := range r.Corners() {
		uv := p.SourceUV(pt, testW, testH)
		assert.GreaterOrEqual(t, uv.X, float32(-1.0e-3))
		assert.LessOrEqual(t, uv.X, float32(1+1.0e-3))
		assert.GreaterOrEqual(t, uv.Y, float32(-1.0e-3))
		assert.LessOrEqual(t, uv.Y, float32(1+1.0e-3))
	}
}

func TestCorrectMinSize(t *testing.T) {
	ps := []*warp.Params{{}, {Angle: 0.3}, {TiltV: 40, FocalLength: 20}}
	for _, p := range ps {
		c := &Corrector{Params: p, SrcW: testW, SrcH: testH}
		r := c.Correct(Rect{0.5, 0.5, 0.001, 0.001})
		assert.GreaterOrEqual(t, r.W, float32(MinSize))
		assert.GreaterOrEqual(t, r.H, float32(MinSize))
	}
}
