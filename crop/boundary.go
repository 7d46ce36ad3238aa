// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crop

import (
	"cogentcore.org/core/math32"

	"github.com/tettou771/TrussPhoto-sub002/warp"
)

const (
	// startEps treats a corner resting exactly on the boundary as
	// still inside at the start of a motion, so a rect clamped onto
	// the boundary by a previous drag step does not get stuck there.
	startEps = 1.0e-4

	// endEps is the tolerance at the end of a motion: zero, so that
	// repeated small drag steps cannot creep past the boundary.
	endEps = 0

	// degenerateEdge is the squared length below which a polygon edge
	// is skipped rather than normalized.
	degenerateEdge = 1.0e-12
)

// Boundary approximates the warped image silhouette as an 8-vertex
// polygon in BB-normalized space: the 4 warped corners and 4 warped
// edge midpoints. For any proposed crop-rect motion it computes the
// maximal safe interpolation factor in closed form (8 edges x 4
// corners, no iteration).
type Boundary struct {
	verts    [8]math32.Vector2
	normals  [8]math32.Vector2 // inward unit normal per edge, zero if degenerate
	centroid math32.Vector2
}

// NewBoundary builds the boundary polygon for the given transform and
// source image size.
func NewBoundary(p *warp.Params, srcW, srcH float32) *Boundary {
	b := &Boundary{verts: p.BoundaryPoints(srcW, srcH)}
	for _, v := range b.verts {
		b.centroid = b.centroid.Add(v)
	}
	b.centroid = b.centroid.DivScalar(float32(len(b.verts)))
	for i := range b.verts {
		a := b.verts[i]
		c := b.verts[(i+1)%len(b.verts)]
		d := c.Sub(a)
		if d.LengthSquared() < degenerateEdge {
			continue
		}
		n := math32.Vec2(-d.Y, d.X).Normal()
		if n.Dot(b.centroid.Sub(a)) < 0 {
			n = n.Negate()
		}
		b.normals[i] = n
	}
	return b
}

// Contains reports whether p is inside the polygon within eps of every
// edge.
func (b *Boundary) Contains(p math32.Vector2, eps float32) bool {
	for i, n := range b.normals {
		if n == (math32.Vector2{}) {
			continue
		}
		if n.Dot(p.Sub(b.verts[i])) < -eps {
			return false
		}
	}
	return true
}

// DragLimit returns the maximal t in 0..1 such that every corner of
// Lerp(start, desired, t) remains inside the boundary, along with the
// inward normal of the limiting edge (zero if nothing limits). Corners
// already outside an edge at the start are ignored for that edge, so
// an invalid rect can always be moved back toward validity.
func (b *Boundary) DragLimit(start, desired Rect) (float32, math32.Vector2) {
	t := float32(1)
	var normal math32.Vector2
	c0 := start.Corners()
	c1 := desired.Corners()
	for i, n := range b.normals {
		if n == (math32.Vector2{}) {
			continue
		}
		a := b.verts[i]
		for k := range c0 {
			d0 := n.Dot(c0[k].Sub(a))
			d1 := n.Dot(c1[k].Sub(a))
			if d0 < -startEps {
				continue // outside at start; not this edge's problem
			}
			if d1 >= endEps {
				continue
			}
			if d0 <= d1 {
				continue
			}
			tk := d0 / (d0 - d1)
			if tk < t {
				t = tk
				normal = n
			}
		}
	}
	return math32.Clamp(t, 0, 1), normal
}

// Slide projects the given motion delta onto the tangent of the
// blocking edge with the given inward normal, for the slide-along-the-
// wall second pass of a clamped drag.
func Slide(delta, normal math32.Vector2) math32.Vector2 {
	return delta.Sub(normal.MulScalar(delta.Dot(normal)))
}
