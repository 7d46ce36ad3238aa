// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package warp

import (
	"testing"

	"cogentcore.org/core/base/tolassert"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
)

func TestParamsClamping(t *testing.T) {
	p := &Params{}
	p.Defaults()

	p.SetAngle(2)
	assert.Equal(t, float32(MaxAngle), p.Angle)
	p.SetAngle(-2)
	assert.Equal(t, float32(-MaxAngle), p.Angle)

	p.SetTiltV(90)
	assert.Equal(t, float32(MaxTilt), p.TiltV)
	p.SetTiltH(-50)
	assert.Equal(t, float32(-MaxTilt), p.TiltH)

	p.SetShear(3)
	assert.Equal(t, float32(MaxShear), p.Shear)

	p.SetFocalLength(-10)
	assert.Equal(t, float32(0), p.FocalLength)
	assert.Equal(t, float32(DefaultFocalLength), p.FocalLengthOrDefault())
}

func TestRotate90By(t *testing.T) {
	p := &Params{}
	p.Rotate90By(1)
	assert.Equal(t, 1, p.Rotate90)
	p.Rotate90By(-2)
	assert.Equal(t, 3, p.Rotate90)
	p.Rotate90By(1)
	assert.Equal(t, 0, p.Rotate90)
}

func TestTotalRotation(t *testing.T) {
	p := &Params{Angle: 0.1, Rotate90: 2}
	tolassert.EqualTol(t, math32.Pi+0.1, p.TotalRotation(), 1.0e-6)
}

func TestForwardIdentity(t *testing.T) {
	p := &Params{FocalLength: 50}
	pts := []math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0.5, Y: 0.5}, {X: 0.25, Y: 0.75}}
	for _, pt := range pts {
		assert.Equal(t, pt, p.Forward(pt))
		assert.Equal(t, pt, p.Inverse(pt))
	}
}

func TestWarpRoundTrip(t *testing.T) {
	tilts := []float32{-45, -20, -5, 0, 5, 20, 45}
	shears := []float32{-1, -0.3, 0, 0.3, 1}
	pts := []math32.Vector2{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
		{X: 0.5, Y: 0}, {X: 0.5, Y: 1}, {X: 0, Y: 0.5}, {X: 1, Y: 0.5}, {X: 0.3, Y: 0.7},
	}
	const tol = 1.0e-4
	for _, tv := range tilts {
		for _, th := range tilts {
			for _, sh := range shears {
				p := &Params{TiltV: tv, TiltH: th, Shear: sh, FocalLength: 28}
				for _, pt := range pts {
					rt := p.Forward(p.Inverse(pt))
					tolassert.EqualTol(t, pt.X, rt.X, tol)
					tolassert.EqualTol(t, pt.Y, rt.Y, tol)
					rt = p.Inverse(p.Forward(pt))
					tolassert.EqualTol(t, pt.X, rt.X, tol)
					tolassert.EqualTol(t, pt.Y, rt.Y, tol)
				}
			}
		}
	}
}

func TestWarpCenterFixed(t *testing.T) {
	p := &Params{TiltV: 30, TiltH: -15, FocalLength: 28}
	c := p.Forward(math32.Vec2(0.5, 0.5))
	tolassert.EqualTol(t, 0.5, c.X, 1.0e-6)
	tolassert.EqualTol(t, 0.5, c.Y, 1.0e-6)
}

func TestLongerFocalWarpsLess(t *testing.T) {
	wide := &Params{TiltV: 20, FocalLength: 16}
	tele := &Params{TiltV: 20, FocalLength: 200}
	pt := math32.Vec2(0.5, 0)
	dw := math32.Abs(wide.Forward(pt).Y - pt.Y)
	dt := math32.Abs(tele.Forward(pt).Y - pt.Y)
	assert.Less(t, dt, dw)
}

func TestSourceUVIdentity(t *testing.T) {
	p := &Params{}
	pts := []math32.Vector2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0.5, Y: 0.5}, {X: 0.2, Y: 0.9}}
	for _, pt := range pts {
		uv := p.SourceUV(pt, 1600, 1200)
		tolassert.EqualTol(t, pt.X, uv.X, 1.0e-6)
		tolassert.EqualTol(t, pt.Y, uv.Y, 1.0e-6)
	}
}

// SourceUV must invert the boundary mapping: the BB-normalized
// boundary samples map back onto the source image edge.
func TestSourceUVBoundary(t *testing.T) {
	p := &Params{Angle: 0.2, TiltV: 15, TiltH: -10, Shear: 0.2, FocalLength: 35}
	bps := p.BoundaryPoints(1600, 1200)
	for i, bp := range bps {
		uv := p.SourceUV(bp, 1600, 1200)
		tolassert.EqualTol(t, boundarySamples[i].X, uv.X, 1.0e-3)
		tolassert.EqualTol(t, boundarySamples[i].Y, uv.Y, 1.0e-3)
	}
}
