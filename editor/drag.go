// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"cogentcore.org/core/events/key"
	"cogentcore.org/core/math32"

	"github.com/tettou771/TrussPhoto-sub002/crop"
	"github.com/tettou771/TrussPhoto-sub002/warp"
)

var (
	// HandleRadius is the hit-test radius around the corner and edge
	// handles, in screen pixels.
	HandleRadius = float32(8)

	// RotateMargin is how far outside the view box, in screen pixels,
	// a press still starts a rotation drag.
	RotateMargin = float32(40)

	// FlipHysteresis is how decisively the pointer must cross the
	// flipped ratio before a locked-aspect corner drag changes
	// orientation. 1 would flip right at the diagonal; below 1 it
	// flips late, so the rect never flickers near square.
	FlipHysteresis = float32(0.92)

	// ScrollZoomStep is the crop zoom factor change per scroll step;
	// the factor for one event is clamped to 0.8..1.2 regardless of
	// the step count, so a fast fling cannot blow past the bounds.
	ScrollZoomStep = float32(0.03)
)

// DragModes are the pointer drag interactions of the crop editor.
type DragModes int32

const (
	DragNone DragModes = iota

	// DragMove translates the crop rect (image pans under the frame).
	DragMove

	// DragPerspective maps pointer motion to tilt angles.
	DragPerspective

	// DragRotate adjusts the fine angle around the view center.
	DragRotate

	DragTopLeft
	DragTopRight
	DragBottomLeft
	DragBottomRight

	DragTop
	DragBottom
	DragLeft
	DragRight
)

var dragModeNames = []string{"None", "Move", "Perspective", "Rotate",
	"TopLeft", "TopRight", "BottomLeft", "BottomRight",
	"Top", "Bottom", "Left", "Right"}

func (m DragModes) String() string {
	if m < 0 || int(m) >= len(dragModeNames) {
		return "None"
	}
	return dragModeNames[m]
}

func (m DragModes) isCorner() bool {
	return m >= DragTopLeft && m <= DragBottomRight
}

func (m DragModes) isEdge() bool {
	return m >= DragTop && m <= DragRight
}

func (m DragModes) movesLeft() bool {
	return m == DragTopLeft || m == DragBottomLeft || m == DragLeft
}

func (m DragModes) movesTop() bool {
	return m == DragTopLeft || m == DragTopRight || m == DragTop
}

// dragState is the session snapshot taken at pointer-down. Every drag
// frame recomputes from this start state, never from the previous
// frame, so intermediate clamping cannot accumulate.
type dragState struct {
	mode        DragModes
	startPos    math32.Vector2
	startRect   crop.Rect
	startParams warp.Params
	startBB     math32.Vector2
	startAnchor math32.Vector2

	// uniform scales a corner drag about the rect center (Alt held).
	uniform bool
}

// DragMode returns the active drag interaction, or [DragNone].
func (ed *Editor) DragMode() DragModes {
	return ed.drag.mode
}

// Press hit-tests a pointer-down at the given screen position and, if
// it lands on an interactive region, starts a drag session and pushes
// one undo record. It reports whether a drag started.
//
// Hit priority: corner handles, then edge handles, then the rect
// interior (Move, or PerspectiveMove with Alt), then the area around
// the view (Rotate).
func (ed *Editor) Press(pos math32.Vector2, mods key.Modifiers) bool {
	sr := ed.screenRect()
	mode := DragNone
	switch {
	case hitNear(pos, sr.Min, HandleRadius):
		mode = DragTopLeft
	case hitNear(pos, math32.Vec2(sr.Max.X, sr.Min.Y), HandleRadius):
		mode = DragTopRight
	case hitNear(pos, math32.Vec2(sr.Min.X, sr.Max.Y), HandleRadius):
		mode = DragBottomLeft
	case hitNear(pos, sr.Max, HandleRadius):
		mode = DragBottomRight
	case hitNear(pos, math32.Vec2(sr.Center().X, sr.Min.Y), HandleRadius):
		mode = DragTop
	case hitNear(pos, math32.Vec2(sr.Center().X, sr.Max.Y), HandleRadius):
		mode = DragBottom
	case hitNear(pos, math32.Vec2(sr.Min.X, sr.Center().Y), HandleRadius):
		mode = DragLeft
	case hitNear(pos, math32.Vec2(sr.Max.X, sr.Center().Y), HandleRadius):
		mode = DragRight
	case sr.ContainsPoint(pos):
		if key.HasAnyModifier(mods, key.Alt) {
			mode = DragPerspective
		} else {
			mode = DragMove
		}
	default:
		outer := ed.view
		outer.ExpandByScalar(RotateMargin)
		if outer.ContainsPoint(pos) {
			mode = DragRotate
		}
	}
	if mode == DragNone {
		return false
	}
	ed.pushUndo()
	ed.drag = dragState{
		mode:        mode,
		startPos:    pos,
		startRect:   ed.rect,
		startParams: ed.params,
		startBB:     ed.bb,
		startAnchor: ed.anchor,
		uniform:     mode.isCorner() && key.HasAnyModifier(mods, key.Alt),
	}
	return true
}

// Drag updates the geometry for a pointer move during an active drag
// session. It is a no-op when no session is active.
func (ed *Editor) Drag(pos math32.Vector2) {
	switch {
	case ed.drag.mode == DragNone:
		return
	case ed.drag.mode == DragMove:
		ed.dragMove(pos)
	case ed.drag.mode == DragPerspective:
		ed.dragPerspective(pos)
	case ed.drag.mode == DragRotate:
		ed.dragRotate(pos)
	default:
		ed.dragResize(pos)
	}
	ed.sendChange()
}

// Release ends the drag session. The geometry is already committed by
// the last Drag, so nothing changes.
func (ed *Editor) Release() {
	ed.drag = dragState{}
}

// Scroll zooms the crop about its own center when the pointer is over
// it: scrolling down (positive delta.Y) shrinks the crop. Each scroll
// event is one undo step. It reports whether the event was handled.
func (ed *Editor) Scroll(pos, delta math32.Vector2) bool {
	if !ed.screenRect().ContainsPoint(pos) {
		return false
	}
	f := math32.Clamp(1-ScrollZoomStep*delta.Y, 0.8, 1.2)
	ed.pushUndo()
	r := ed.corrector().Correct(ed.rect.ScaleAbout(f))
	if ar := ed.TargetRatio(); ar > 0 {
		r = lockAboutCenter(r, ar)
	}
	ed.rect = r
	ed.sendChange()
	return true
}

// lockAboutCenter shrinks one dimension back to the locked ratio about
// the rect center, for operations with no dragged handle to anchor on.
// Shrinking a contained rect about its own center keeps it contained.
func lockAboutCenter(r crop.Rect, ar float32) crop.Rect {
	cur := r.AspectRatio()
	if cur <= 0 || math32.Abs(cur-ar) < 1.0e-6 {
		return r
	}
	c := r.Center()
	if cur > ar {
		r.W = r.H * ar
	} else {
		r.H = r.W / ar
	}
	r.X = c.X - r.W/2
	r.Y = c.Y - r.H/2
	return r
}

// dragMove translates the rect by the total pointer delta, clamped
// against the warped boundary, then slides the clamped remainder along
// the blocking edge.
func (ed *Editor) dragMove(pos math32.Vector2) {
	s := &ed.drag
	nd := ed.toNorm(pos.Sub(s.startPos))
	want := s.startRect
	want.X += nd.X
	want.Y += nd.Y

	bnd := ed.boundary()
	t, n := bnd.DragLimit(s.startRect, want)
	cur := crop.Lerp(s.startRect, want, t)
	if t < 1 && n != (math32.Vector2{}) {
		slide := crop.Slide(nd.MulScalar(1-t), n)
		want = cur
		want.X += slide.X
		want.Y += slide.Y
		t2, _ := bnd.DragLimit(cur, want)
		cur = crop.Lerp(cur, want, t2)
	}
	ed.rect = cur
	ed.anchor = s.startAnchor.Add(math32.Vec2(cur.X-s.startRect.X, cur.Y-s.startRect.Y))
}

// dragPerspective maps pointer motion to tilt deltas through the
// focal length: moving by the on-screen focal distance tilts by 45°.
func (ed *Editor) dragPerspective(pos math32.Vector2) {
	s := &ed.drag
	d := pos.Sub(s.startPos)
	focalScreen := s.startParams.FocalLengthOrDefault() / warp.SensorWidth * ed.view.Size().X
	ed.params = s.startParams
	ed.params.SetTiltH(s.startParams.TiltH + math32.RadToDeg(math32.Atan(d.X/focalScreen)))
	ed.params.SetTiltV(s.startParams.TiltV + math32.RadToDeg(math32.Atan(d.Y/focalScreen)))
	ed.bb = ed.params.Bounds(ed.srcW, ed.srcH)
	r := ed.corrector().Correct(rescaleForBounds(s.startRect, s.startBB, ed.bb))
	ed.rect = r
	ed.anchor = s.startAnchor.Add(math32.Vec2(r.X-s.startRect.X, r.Y-s.startRect.Y))
}

// dragRotate sets the fine angle from the pointer's angular sweep
// around the view center.
func (ed *Editor) dragRotate(pos math32.Vector2) {
	s := &ed.drag
	c := ed.view.Center()
	a0 := math32.Atan2(s.startPos.Y-c.Y, s.startPos.X-c.X)
	a1 := math32.Atan2(pos.Y-c.Y, pos.X-c.X)
	ed.params = s.startParams
	ed.params.SetAngle(s.startParams.Angle + wrapPi(a1-a0))
	ed.bb = ed.params.Bounds(ed.srcW, ed.srcH)
	ed.rect = ed.corrector().Correct(rescaleForBounds(s.startRect, s.startBB, ed.bb))
	ed.anchor = rescalePoint(s.startAnchor, s.startBB, ed.bb)
}

// dragResize handles the eight handle drags: free corner, locked
// corner with orientation auto-flip, uniform (Alt) corner, and edges.
func (ed *Editor) dragResize(pos math32.Vector2) {
	s := &ed.drag
	mode := s.mode
	ar := ed.TargetRatio()

	var cand crop.Rect
	switch {
	case mode.isEdge():
		cand = resizeEdge(s.startRect, ed.toNorm(pos.Sub(s.startPos)), mode, ar)
	case s.uniform:
		cand = ed.resizeUniform(s.startRect, pos, ar)
	case ar > 0:
		cand = ed.resizeCornerLocked(s.startRect, pos, mode)
		ar = ed.TargetRatio() // orientation may have flipped
	default:
		cand = resizeCornerFree(s.startRect, ed.toNorm(pos.Sub(s.startPos)), mode)
	}
	cand = cand.MinSized()

	t, _ := ed.boundary().DragLimit(s.startRect, cand)
	applied := crop.Lerp(s.startRect, cand, t)
	if ar > 0 {
		applied = restoreLock(applied, ar, mode)
	}
	ed.rect = applied
}

// resizeCornerFree moves one corner by the pointer delta, keeping the
// opposite corner fixed.
func resizeCornerFree(s0 crop.Rect, nd math32.Vector2, mode DragModes) crop.Rect {
	r := s0
	if mode.movesLeft() {
		r.X += nd.X
		r.W -= nd.X
	} else {
		r.W += nd.X
	}
	if mode.movesTop() {
		r.Y += nd.Y
		r.H -= nd.Y
	} else {
		r.H += nd.Y
	}
	if r.W < crop.MinSize {
		if mode.movesLeft() {
			r.X = s0.X + s0.W - crop.MinSize
		}
		r.W = crop.MinSize
	}
	if r.H < crop.MinSize {
		if mode.movesTop() {
			r.Y = s0.Y + s0.H - crop.MinSize
		}
		r.H = crop.MinSize
	}
	return r
}

// resizeCornerLocked sizes the rect from the fixed opposite corner to
// the pointer, projected onto the locked ratio. For non-square aspects
// it auto-flips the orientation when the pointer crosses decisively to
// the other side of the flipped ratio.
func (ed *Editor) resizeCornerLocked(s0 crop.Rect, pos math32.Vector2, mode DragModes) crop.Rect {
	fixed := math32.Vec2(s0.X, s0.Y)
	if mode.movesLeft() {
		fixed.X = s0.X + s0.W
	}
	if mode.movesTop() {
		fixed.Y = s0.Y + s0.H
	}
	fs := ed.toScreen(fixed)
	sdx := math32.Abs(pos.X - fs.X)
	sdy := math32.Max(math32.Abs(pos.Y-fs.Y), 1.0e-4)

	if ed.aspect != A1x1 {
		cur := ed.targetPixelRatio() * ed.screenPerPixel()
		flipped := 1 / (ed.targetPixelRatio()) * ed.screenPerPixel()
		measured := sdx / sdy
		if cur >= flipped {
			if measured < flipped*FlipHysteresis {
				ed.landscape = !ed.landscape
			}
		} else {
			if measured > flipped/FlipHysteresis {
				ed.landscape = !ed.landscape
			}
		}
	}
	ar := ed.TargetRatio()

	sz := ed.view.Size()
	dn := math32.Vec2(sdx/sz.X, sdy/sz.Y)
	w := math32.Max(dn.X, dn.Y*ar)
	w = math32.Max(w, math32.Max(crop.MinSize, crop.MinSize*ar))
	h := w / ar

	r := crop.Rect{X: fixed.X, Y: fixed.Y, W: w, H: h}
	if mode.movesLeft() {
		r.X = fixed.X - w
	}
	if mode.movesTop() {
		r.Y = fixed.Y - h
	}
	return r
}

// resizeUniform scales the rect about its own center by the pointer's
// distance from the center relative to the start half-extents.
func (ed *Editor) resizeUniform(s0 crop.Rect, pos math32.Vector2, ar float32) crop.Rect {
	c := s0.Center()
	cs := ed.toScreen(c)
	sz := ed.view.Size()
	halfX := math32.Max(s0.W/2*sz.X, 1)
	halfY := math32.Max(s0.H/2*sz.Y, 1)
	f := math32.Max(math32.Abs(pos.X-cs.X)/halfX, math32.Abs(pos.Y-cs.Y)/halfY)
	w := s0.W * f
	h := s0.H * f
	if ar > 0 {
		if w/math32.Max(h, 1.0e-6) > ar {
			w = h * ar
		} else {
			h = w / ar
		}
	}
	return crop.Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// resizeEdge moves one edge by the pointer delta. With a locked ratio
// the perpendicular dimension follows, growing symmetrically about the
// rect center and shrinking back if it would leave the unit square.
func resizeEdge(s0 crop.Rect, nd math32.Vector2, mode DragModes, ar float32) crop.Rect {
	r := s0
	switch mode {
	case DragLeft:
		r.X += nd.X
		r.W -= nd.X
	case DragRight:
		r.W += nd.X
	case DragTop:
		r.Y += nd.Y
		r.H -= nd.Y
	case DragBottom:
		r.H += nd.Y
	}
	if r.W < crop.MinSize {
		if mode == DragLeft {
			r.X = s0.X + s0.W - crop.MinSize
		}
		r.W = crop.MinSize
	}
	if r.H < crop.MinSize {
		if mode == DragTop {
			r.Y = s0.Y + s0.H - crop.MinSize
		}
		r.H = crop.MinSize
	}
	if ar <= 0 {
		return r
	}
	if mode == DragLeft || mode == DragRight {
		cy := s0.Y + s0.H/2
		r.H = r.W / ar
		maxH := math32.Min(cy, 1-cy) * 2
		if r.H > maxH {
			r.H = maxH
			r.W = r.H * ar
			if mode == DragLeft {
				r.X = s0.X + s0.W - r.W
			}
		}
		r.Y = cy - r.H/2
	} else {
		cx := s0.X + s0.W/2
		r.W = r.H * ar
		maxW := math32.Min(cx, 1-cx) * 2
		if r.W > maxW {
			r.W = maxW
			r.H = r.W / ar
			if mode == DragTop {
				r.Y = s0.Y + s0.H - r.H
			}
		}
		r.X = cx - r.W/2
	}
	return r
}

// restoreLock shrinks one dimension of a clamped rect back to the
// locked ratio, keeping the edge opposite the dragged handle fixed.
// Shrinking (never growing) keeps the result inside the boundary.
func restoreLock(r crop.Rect, ar float32, mode DragModes) crop.Rect {
	cur := r.AspectRatio()
	if cur <= 0 || math32.Abs(cur-ar) < 1.0e-6 {
		return r
	}
	if cur > ar {
		w := r.H * ar
		switch {
		case mode.movesLeft():
			r.X += r.W - w
		case mode == DragTop || mode == DragBottom:
			r.X += (r.W - w) / 2
		}
		r.W = w
	} else {
		h := r.W / ar
		switch {
		case mode.movesTop():
			r.Y += r.H - h
		case mode == DragLeft || mode == DragRight:
			r.Y += (r.H - h) / 2
		}
		r.H = h
	}
	return r
}

// screenRect is the crop rect in screen coordinates.
func (ed *Editor) screenRect() math32.Box2 {
	b := ed.rect.Box2()
	return math32.Box2{Min: ed.toScreen(b.Min), Max: ed.toScreen(b.Max)}
}

func (ed *Editor) toScreen(p math32.Vector2) math32.Vector2 {
	sz := ed.view.Size()
	return math32.Vec2(ed.view.Min.X+p.X*sz.X, ed.view.Min.Y+p.Y*sz.Y)
}

// toNorm converts a screen-pixel delta to BB-normalized units.
func (ed *Editor) toNorm(d math32.Vector2) math32.Vector2 {
	sz := ed.view.Size()
	return math32.Vec2(d.X/sz.X, d.Y/sz.Y)
}

// screenPerPixel converts a pixel w/h ratio into the equivalent
// screen w/h ratio, accounting for the view box's own aspect relative
// to the bounding box.
func (ed *Editor) screenPerPixel() float32 {
	sz := ed.view.Size()
	return (sz.X / sz.Y) / (ed.bb.X / ed.bb.Y)
}

func hitNear(p, c math32.Vector2, r float32) bool {
	return math32.Abs(p.X-c.X) <= r && math32.Abs(p.Y-c.Y) <= r
}

func wrapPi(a float32) float32 {
	for a > math32.Pi {
		a -= 2 * math32.Pi
	}
	for a < -math32.Pi {
		a += 2 * math32.Pi
	}
	return a
}
