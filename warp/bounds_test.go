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

func TestBoundsRotationFormula(t *testing.T) {
	const srcW, srcH = 1600, 1200
	angles := []float32{0, 0.1, -0.3, math32.Pi / 8, MaxAngle, -MaxAngle}
	for _, a := range angles {
		for r90 := 0; r90 < 4; r90++ {
			p := &Params{Angle: a, Rotate90: r90}
			rot := p.TotalRotation()
			c := math32.Abs(math32.Cos(rot))
			s := math32.Abs(math32.Sin(rot))
			bb := p.Bounds(srcW, srcH)
			tolassert.EqualTol(t, srcW*c+srcH*s, bb.X, 0.01)
			tolassert.EqualTol(t, srcW*s+srcH*c, bb.Y, 0.01)
		}
	}
}

// A 90° step is an exact reflection: width and height swap with no
// floating point drift.
func TestBoundsRotate90ExactSwap(t *testing.T) {
	p := &Params{}
	bb0 := p.Bounds(1600, 1200)
	assert.Equal(t, math32.Vec2(1600, 1200), bb0)

	p.Rotate90By(1)
	assert.Equal(t, math32.Vec2(1200, 1600), p.Bounds(1600, 1200))

	p.SetAngle(0.2)
	bb1 := p.Bounds(1600, 1200)
	p.Rotate90By(1)
	bb2 := p.Bounds(1600, 1200)
	assert.Equal(t, bb1.X, bb2.Y)
	assert.Equal(t, bb1.Y, bb2.X)
}

func TestBoundsPerspectiveShrinks(t *testing.T) {
	// Positive vertical tilt compresses the top of the frame, so the
	// warped BB cannot exceed the sampled silhouette of the identity.
	p := &Params{TiltV: 20, FocalLength: 28}
	bb := p.Bounds(1600, 1200)
	assert.Greater(t, bb.X, float32(0))
	assert.Greater(t, bb.Y, float32(0))

	// The silhouette extents must match the warped corner samples.
	box := p.bbox(1600, 1200)
	for _, uv := range boundarySamples {
		q := p.Forward(uv)
		px := math32.Vec2((q.X-0.5)*1600, (q.Y-0.5)*1200)
		assert.True(t, box.ContainsPoint(px))
	}
}

func TestBoundaryPointsInUnitSquare(t *testing.T) {
	ps := []*Params{
		{},
		{Angle: 0.3},
		{Rotate90: 1, Angle: -0.2},
		{TiltV: 25, TiltH: -10, Shear: 0.4, FocalLength: 28},
	}
	for _, p := range ps {
		pts := p.BoundaryPoints(1600, 1200)
		for _, pt := range pts {
			assert.GreaterOrEqual(t, pt.X, float32(-1.0e-4))
			assert.LessOrEqual(t, pt.X, float32(1+1.0e-4))
			assert.GreaterOrEqual(t, pt.Y, float32(-1.0e-4))
			assert.LessOrEqual(t, pt.Y, float32(1+1.0e-4))
		}
	}
}
