// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crop

import (
	"cogentcore.org/core/math32"

	"github.com/tettou771/TrussPhoto-sub002/warp"
)

const (
	// containEps is the containment slack for the perspective
	// corrector's round-trip corner test.
	containEps = 1.0e-4

	// bisectIters is the iteration budget for each bisection phase.
	bisectIters = 16
)

// Corrector moves and, if necessary, shrinks a crop rect back inside
// the warped image after a discrete parameter change (aspect click,
// slider set, 90° step). It is not used during interactive dragging;
// that is [Boundary.DragLimit]'s job.
type Corrector struct {
	Params     *warp.Params
	SrcW, SrcH float32
}

// Correct returns the closest valid version of r: identical if r is
// already contained, repositioned if repositioning suffices, otherwise
// uniformly shrunk about its own center. The result always has
// W, H >= MinSize. Correct is idempotent.
func (c *Corrector) Correct(r Rect) Rect {
	r = r.MinSized()
	switch {
	case !c.Params.HasPerspective() && !c.Params.HasRotation():
		// BB equals the source image; the unit square is the boundary.
		return r.ClampUnit()
	case !c.Params.HasPerspective():
		return c.correctRotation(r)
	default:
		return c.correctPerspective(r)
	}
}

// correctRotation is the closed-form inscribed-rectangle budget for
// the rotation-only case: rotate the crop half-extents into image
// space, clamp the crop center to the remaining per-axis budget, and
// rotate back. No iteration.
func (c *Corrector) correctRotation(r Rect) Rect {
	bb := c.Params.Bounds(c.SrcW, c.SrcH)
	rot := c.Params.TotalRotation()
	cosA := math32.Abs(math32.Cos(rot))
	sinA := math32.Abs(math32.Sin(rot))

	halfW := r.W * bb.X / 2
	halfH := r.H * bb.Y / 2
	// crop half-extents in image-pixel space
	hx := halfW*cosA + halfH*sinA
	hy := halfW*sinA + halfH*cosA

	// shrink uniformly until the budget is non-negative
	s := float32(1)
	if hx > c.SrcW/2 {
		s = math32.Min(s, c.SrcW/2/hx)
	}
	if hy > c.SrcH/2 {
		s = math32.Min(s, c.SrcH/2/hy)
	}
	if s < 1 {
		ctr := r.Center()
		r.W = math32.Max(r.W*s, MinSize)
		r.H = math32.Max(r.H*s, MinSize)
		r.X = ctr.X - r.W/2
		r.Y = ctr.Y - r.H/2
		halfW = r.W * bb.X / 2
		halfH = r.H * bb.Y / 2
		hx = halfW*cosA + halfH*sinA
		hy = halfW*sinA + halfH*cosA
	}

	budgetX := math32.Max(c.SrcW/2-hx, 0)
	budgetY := math32.Max(c.SrcH/2-hy, 0)

	// clamp the crop center, in image space, to the budget box
	ctr := r.Center()
	bc := math32.Vec2((ctr.X-0.5)*bb.X, (ctr.Y-0.5)*bb.Y)
	ic := math32.Rotate2D(-rot).MulVector2AsPoint(bc)
	// 0.01px slack so a just-clamped rect is an exact fixed point
	if s == 1 && math32.Abs(ic.X) <= budgetX+0.01 && math32.Abs(ic.Y) <= budgetY+0.01 {
		return r
	}
	ic.X = math32.Clamp(ic.X, -budgetX, budgetX)
	ic.Y = math32.Clamp(ic.Y, -budgetY, budgetY)
	bc = math32.Rotate2D(rot).MulVector2AsPoint(ic)

	r.X = bc.X/bb.X + 0.5 - r.W/2
	r.Y = bc.Y/bb.Y + 0.5 - r.H/2
	return r
}

// contained is the perspective containment test: each corner is
// round-tripped to source UV, which must land in the unit square.
// This path is not latency-critical, so it uses the exact warp rather
// than the 8-point polygon.
func (c *Corrector) contained(r Rect) bool {
	for _, pt := range r.Corners() {
		uv := c.Params.SourceUV(pt, c.SrcW, c.SrcH)
		if uv.X < -containEps || uv.X > 1+containEps ||
			uv.Y < -containEps || uv.Y > 1+containEps {
			return false
		}
	}
	return true
}

// reposition bisects between r and the BB-centered position for the
// smallest movement that satisfies containment. ok is false when even
// the centered position fails (the rect is too large).
func (c *Corrector) reposition(r Rect) (_ Rect, ok bool) {
	if c.contained(r) {
		return r, true
	}
	centered := Rect{0.5 - r.W/2, 0.5 - r.H/2, r.W, r.H}
	if !c.contained(centered) {
		return centered, false
	}
	best := centered
	lo, hi := float32(0), float32(1)
	for i := 0; i < bisectIters; i++ {
		mid := (lo + hi) / 2
		cand := Lerp(r, centered, mid)
		if c.contained(cand) {
			best = cand
			hi = mid
		} else {
			lo = mid
		}
	}
	return best, true
}

// correctPerspective is the curved-boundary fallback: reposition by
// bisection, and if repositioning alone cannot satisfy containment,
// bisect a uniform shrink factor about the rect's own center,
// re-repositioning after each trial. The last best candidate is always
// returned, so the worst case is a recentered, shrunken crop.
func (c *Corrector) correctPerspective(r Rect) Rect {
	if fixed, ok := c.reposition(r); ok {
		return fixed
	}
	// known-good floor: the minimum size rect, centered if need be
	minS := MinSize / math32.Max(r.W, r.H)
	best, _ := c.reposition(r.ScaleAbout(minS))
	lo, hi := minS, float32(1)
	for i := 0; i < bisectIters; i++ {
		mid := (lo + hi) / 2
		if cand, ok := c.reposition(r.ScaleAbout(mid)); ok {
			best = cand
			lo = mid
		} else {
			hi = mid
		}
	}
	return best
}
