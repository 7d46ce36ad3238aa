// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

import (
	"github.com/tettou771/TrussPhoto-sub002/crop"
	"github.com/tettou771/TrussPhoto-sub002/warp"
)

// Record is the persisted crop/rotation/perspective state of a photo,
// as stored by the photo record store.
type Record struct {
	CropX, CropY float32
	CropW, CropH float32

	// Angle is the fine rotation in radians.
	Angle float32

	// Rotate90 is the number of 90° counterclockwise steps (0-3).
	Rotate90 int

	// TiltV, TiltH are perspective tilts in degrees; Shear is the
	// shear coefficient.
	TiltV, TiltH, Shear float32

	// FocalLength35 is the 35mm-equivalent focal length in mm
	// (0 = unknown).
	FocalLength35 int
}

// Store is the photo record accessor the editor commits to. The
// editor holds only this interface; persistence itself is the host
// application's concern.
type Store interface {

	// Record returns the stored state for the photo, and whether one
	// exists.
	Record(id string) (Record, bool)

	// SetUserCrop stores the crop rect (BB-normalized).
	SetUserCrop(id string, x, y, w, h float32)

	// SetUserRotation stores the fine angle (radians) and 90° steps.
	SetUserRotation(id string, angle float32, rotate90 int)

	// SetUserPerspective stores the tilt (degrees) and shear values.
	SetUserPerspective(id string, tiltV, tiltH, shear float32)
}

// state is one immutable snapshot of the editable geometry, used for
// the undo stack and the cancel snapshot.
type state struct {
	rect   crop.Rect
	params warp.Params
}
