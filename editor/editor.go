// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package editor implements the interactive state of the crop editor:
// the crop rect and transform parameters, aspect-ratio locking,
// orientation, the view anchor, the undo stack, and the pointer drag
// controller. The hosting view owns all rendering and layout; it calls
// in through [Editor] methods and listens for changes via
// [Editor.OnChange], holding no pointers into the editor.
//
// Everything is single-threaded: one input event produces one atomic
// state transition, and every committed transition leaves all four
// crop corners inside the warped image boundary.
package editor

import (
	"cogentcore.org/core/math32"

	"github.com/tettou771/TrussPhoto-sub002/crop"
	"github.com/tettou771/TrussPhoto-sub002/warp"
)

// Editor is the geometric state of the crop editor for one photo.
// Create with [New], seed with [Editor.Open], and mutate only through
// its methods.
type Editor struct {
	srcW, srcH float32

	// rect is the crop in BB-normalized coordinates.
	rect crop.Rect

	// params is the image transform beneath the crop frame.
	params warp.Params

	// bb is the bounding box size in pixels, derived from params.
	bb math32.Vector2

	aspect    Aspects
	landscape bool

	// anchor is the BB-normalized point currently mapped to the
	// screen center, used by the host for panning.
	anchor math32.Vector2

	// view is the screen rectangle the bounding box maps to,
	// set by the host whenever its layout changes.
	view math32.Box2

	store   Store
	photoID string

	// entry is the snapshot taken at Open, for Cancel and HasChanges.
	entry state

	undos     undoStack
	listeners []func()

	drag dragState
}

// New returns an editor for a source image of the given pixel size,
// with a full-frame crop and identity transform.
func New(srcW, srcH float32) *Editor {
	ed := &Editor{srcW: srcW, srcH: srcH}
	ed.params.Defaults()
	ed.rect = crop.FullFrame()
	ed.bb = ed.params.Bounds(srcW, srcH)
	ed.anchor = math32.Vec2(0.5, 0.5)
	ed.view = math32.B2(0, 0, srcW, srcH)
	ed.landscape = srcW >= srcH
	ed.entry = state{ed.rect, ed.params}
	return ed
}

// Open seeds the editor from the photo's stored record (or defaults if
// none exists) and snapshots the result for Cancel.
func (ed *Editor) Open(store Store, id string) {
	ed.store = store
	ed.photoID = id
	rec := Record{}
	ok := false
	if store != nil {
		rec, ok = store.Record(id)
	}
	ed.params = warp.Params{}
	if ok {
		ed.params.SetAngle(rec.Angle)
		ed.params.Rotate90By(rec.Rotate90)
		ed.params.SetTiltV(rec.TiltV)
		ed.params.SetTiltH(rec.TiltH)
		ed.params.SetShear(rec.Shear)
		ed.params.SetFocalLength(float32(rec.FocalLength35))
		ed.rect = crop.Rect{X: rec.CropX, Y: rec.CropY, W: rec.CropW, H: rec.CropH}.MinSized()
	} else {
		ed.params.Defaults()
		ed.rect = crop.FullFrame()
	}
	ed.bb = ed.params.Bounds(ed.srcW, ed.srcH)
	ed.rect = ed.corrector().Correct(ed.rect)
	ed.anchor = math32.Vec2(0.5, 0.5)
	ed.landscape = ed.rect.W*ed.bb.X >= ed.rect.H*ed.bb.Y
	ed.entry = state{ed.rect, ed.params}
	ed.undos.reset()
	ed.sendChange()
}

// OnChange registers a callback fired after every committed geometry
// change, so dependent UI (preview, output size label) can refresh.
func (ed *Editor) OnChange(fn func()) {
	ed.listeners = append(ed.listeners, fn)
}

func (ed *Editor) sendChange() {
	for _, fn := range ed.listeners {
		fn()
	}
}

// SetView tells the editor where the bounding box lands on screen.
// This is layout, not geometry, so no change notification fires.
func (ed *Editor) SetView(b math32.Box2) {
	ed.view = b
}

// View returns the screen rectangle the bounding box maps to.
func (ed *Editor) View() math32.Box2 {
	return ed.view
}

func (ed *Editor) Rect() crop.Rect          { return ed.rect }
func (ed *Editor) Params() warp.Params      { return ed.params }
func (ed *Editor) BBSize() math32.Vector2   { return ed.bb }
func (ed *Editor) Aspect() Aspects          { return ed.aspect }
func (ed *Editor) IsLandscape() bool        { return ed.landscape }
func (ed *Editor) ViewAnchor() math32.Vector2 { return ed.anchor }

// OutputSize returns the cropped output dimensions in pixels (min 1).
func (ed *Editor) OutputSize() (int, int) {
	w := int(math32.Round(ed.rect.W * ed.bb.X))
	h := int(math32.Round(ed.rect.H * ed.bb.Y))
	return max(w, 1), max(h, 1)
}

// Quad returns the source-UV corners of the crop (TL, TR, BR, BL) for
// preview and export texture sampling.
func (ed *Editor) Quad() [4]math32.Vector2 {
	return ed.rect.Quad(&ed.params, ed.srcW, ed.srcH)
}

// HasChanges reports whether the geometry differs from the Open
// snapshot.
func (ed *Editor) HasChanges() bool {
	return ed.rect != ed.entry.rect || ed.params != ed.entry.params
}

// TargetRatio returns the locked crop ratio in BB-normalized w/h
// terms for the current aspect preset and orientation, or 0 when the
// aspect is Free.
func (ed *Editor) TargetRatio() float32 {
	px := ed.targetPixelRatio()
	if px <= 0 {
		return 0
	}
	return px / (ed.bb.X / ed.bb.Y)
}

// targetPixelRatio is the locked ratio in pixel terms (w/h), oriented.
func (ed *Editor) targetPixelRatio() float32 {
	if ed.aspect == Free {
		return 0
	}
	ar := ed.aspect.Ratio()
	if ed.aspect == Original {
		ar = ed.srcW / ed.srcH
	}
	if !ed.landscape && ed.aspect != A1x1 {
		ar = 1 / ar
	}
	return ar
}

// SetAspect selects an aspect preset and, for locked presets, re-fits
// the crop about its center.
func (ed *Editor) SetAspect(a Aspects) {
	ed.aspect = a
	if !a.IsLocked() {
		ed.sendChange()
		return
	}
	ed.pushUndo()
	ed.applyAspect()
	ed.sendChange()
}

// SetLandscape sets the orientation flag; for locked non-square
// aspects the crop is re-fit to the flipped ratio.
func (ed *Editor) SetLandscape(landscape bool) {
	if ed.landscape == landscape {
		return
	}
	ed.landscape = landscape
	if ed.aspect.IsLocked() && ed.aspect != A1x1 {
		ed.pushUndo()
		ed.applyAspect()
	}
	ed.sendChange()
}

// applyAspect re-fits the crop to the target ratio about its center,
// preserving its larger dimension where possible.
func (ed *Editor) applyAspect() {
	ar := ed.TargetRatio()
	if ar <= 0 {
		return
	}
	ctr := ed.rect.Center()
	var maxW, maxH float32
	if ar >= 1 {
		maxW, maxH = 1, 1/ar
	} else {
		maxW, maxH = ar, 1
	}
	w, h := maxW, maxH
	curMax := math32.Max(ed.rect.W, ed.rect.H)
	newMax := math32.Max(maxW, maxH)
	if newMax > curMax {
		s := curMax / newMax
		w *= s
		h *= s
	}
	r := crop.Rect{X: ctr.X - w/2, Y: ctr.Y - h/2, W: w, H: h}.MinSized()
	ed.rect = ed.corrector().Correct(r)
}

// SetAngle sets the fine rotation (radians, clamped ±π/4).
func (ed *Editor) SetAngle(a float32) {
	ed.pushUndo()
	ed.mutateParams(func(p *warp.Params) { p.SetAngle(a) })
}

// SetTiltV sets the vertical perspective tilt (degrees, clamped ±45).
func (ed *Editor) SetTiltV(deg float32) {
	ed.pushUndo()
	ed.mutateParams(func(p *warp.Params) { p.SetTiltV(deg) })
}

// SetTiltH sets the horizontal perspective tilt (degrees, clamped ±45).
func (ed *Editor) SetTiltH(deg float32) {
	ed.pushUndo()
	ed.mutateParams(func(p *warp.Params) { p.SetTiltH(deg) })
}

// SetShear sets the shear coefficient (clamped ±1).
func (ed *Editor) SetShear(s float32) {
	ed.pushUndo()
	ed.mutateParams(func(p *warp.Params) { p.SetShear(s) })
}

// SetFocalLength sets the focal length (mm, 35mm equivalent) used for
// perspective sensitivity.
func (ed *Editor) SetFocalLength(mm float32) {
	ed.pushUndo()
	ed.mutateParams(func(p *warp.Params) { p.SetFocalLength(mm) })
}

// mutateParams applies a parameter change and the bookkeeping every
// such change requires: recompute the BB, rescale the crop so its
// pixel footprint and screen-center offset are preserved, re-contain
// it, and rescale the view anchor the same way.
func (ed *Editor) mutateParams(mut func(*warp.Params)) {
	oldBB := ed.bb
	mut(&ed.params)
	ed.bb = ed.params.Bounds(ed.srcW, ed.srcH)
	ed.rect = ed.corrector().Correct(rescaleForBounds(ed.rect, oldBB, ed.bb))
	ed.anchor = rescalePoint(ed.anchor, oldBB, ed.bb)
	ed.sendChange()
}

// rescaleForBounds maps a rect across a BB resize so that its physical
// pixel footprint and offset from the BB center are unchanged.
func rescaleForBounds(r crop.Rect, old, nw math32.Vector2) crop.Rect {
	if old == nw || nw.X <= 0 || nw.Y <= 0 {
		return r
	}
	sx := old.X / nw.X
	sy := old.Y / nw.Y
	c := r.Center()
	w := r.W * sx
	h := r.H * sy
	return crop.Rect{
		X: 0.5 + (c.X-0.5)*sx - w/2,
		Y: 0.5 + (c.Y-0.5)*sy - h/2,
		W: w,
		H: h,
	}.MinSized()
}

// rescalePoint maps a BB-normalized point across a BB resize, scaling
// its offset from the BB center.
func rescalePoint(p math32.Vector2, old, nw math32.Vector2) math32.Vector2 {
	if old == nw || nw.X <= 0 || nw.Y <= 0 {
		return p
	}
	return math32.Vec2(0.5+(p.X-0.5)*old.X/nw.X, 0.5+(p.Y-0.5)*old.Y/nw.Y)
}

// Rotate90 steps the 90° rotation by dir (+1 = counterclockwise,
// -1 = clockwise). The step is an exact reflection: the BB swaps and
// the rect is remapped with no rescale error.
func (ed *Editor) Rotate90(dir int) {
	ed.pushUndo()
	ed.params.Rotate90By(dir)
	ed.bb = ed.params.Bounds(ed.srcW, ed.srcH)
	ed.rect = remap90(ed.rect, dir)
	ed.anchor = remapPoint90(ed.anchor, dir)
	if ed.params.HasPerspective() {
		// the warped silhouette is resampled; the exact remap may
		// land a hair outside it
		ed.rect = ed.corrector().Correct(ed.rect)
	}
	ed.sendChange()
}

// remap90 rotates a rect to the new BB frame: a +90° step takes
// centered coordinates (x, y) to (-y, x) and swaps width and height.
func remap90(r crop.Rect, dir int) crop.Rect {
	c := remapPoint90(r.Center(), dir)
	return crop.Rect{X: c.X - r.H/2, Y: c.Y - r.W/2, W: r.H, H: r.W}
}

func remapPoint90(p math32.Vector2, dir int) math32.Vector2 {
	x, y := p.X-0.5, p.Y-0.5
	if dir >= 0 {
		x, y = -y, x
	} else {
		x, y = y, -x
	}
	return math32.Vec2(0.5+x, 0.5+y)
}

// Reset restores the full-frame crop and identity transform, keeping
// the focal length and aspect preset.
func (ed *Editor) Reset() {
	ed.pushUndo()
	focal := ed.params.FocalLength
	ed.params = warp.Params{FocalLength: focal}
	ed.bb = ed.params.Bounds(ed.srcW, ed.srcH)
	ed.rect = crop.FullFrame()
	ed.anchor = math32.Vec2(0.5, 0.5)
	ed.landscape = ed.srcW >= ed.srcH
	ed.sendChange()
}

// Centerize moves the crop to the BB center without resizing it.
func (ed *Editor) Centerize() {
	ed.pushUndo()
	r := ed.rect
	r.X = 0.5 - r.W/2
	r.Y = 0.5 - r.H/2
	ed.rect = ed.corrector().Correct(r)
	ed.sendChange()
}

// Undo restores the most recent snapshot; it reports whether there was
// one.
func (ed *Editor) Undo() bool {
	s, ok := ed.undos.pop()
	if !ok {
		return false
	}
	ed.restore(s)
	ed.sendChange()
	return true
}

// UndoDepthUsed returns how many undo records are held.
func (ed *Editor) UndoDepthUsed() int {
	return ed.undos.len()
}

// Commit pushes the current geometry to the record store.
func (ed *Editor) Commit() {
	if ed.store == nil || ed.photoID == "" {
		return
	}
	ed.store.SetUserCrop(ed.photoID, ed.rect.X, ed.rect.Y, ed.rect.W, ed.rect.H)
	ed.store.SetUserRotation(ed.photoID, ed.params.Angle, ed.params.Rotate90)
	ed.store.SetUserPerspective(ed.photoID, ed.params.TiltV, ed.params.TiltH, ed.params.Shear)
}

// Cancel restores the Open snapshot and stores it, discarding every
// change made since.
func (ed *Editor) Cancel() {
	ed.restore(ed.entry)
	ed.Commit()
	ed.sendChange()
}

func (ed *Editor) restore(s state) {
	ed.rect = s.rect
	ed.params = s.params
	ed.bb = ed.params.Bounds(ed.srcW, ed.srcH)
}

func (ed *Editor) pushUndo() {
	ed.undos.push(state{ed.rect, ed.params})
}

func (ed *Editor) corrector() *crop.Corrector {
	return &crop.Corrector{Params: &ed.params, SrcW: ed.srcW, SrcH: ed.srcH}
}

func (ed *Editor) boundary() *crop.Boundary {
	return crop.NewBoundary(&ed.params, ed.srcW, ed.srcH)
}
