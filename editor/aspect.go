// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package editor

// Aspects are the crop aspect ratio presets.
type Aspects int32

const (
	// Original locks the crop to the source image's own aspect ratio.
	Original Aspects = iota

	A16x9

	A4x3

	A3x2

	A1x1

	A5x4

	// Free imposes no aspect constraint.
	Free
)

// AspectsN is the number of aspect presets.
const AspectsN = 7

var aspectNames = [AspectsN]string{"Original", "16:9", "4:3", "3:2", "1:1", "5:4", "Free"}

func (a Aspects) String() string {
	if a < 0 || a >= AspectsN {
		return "Free"
	}
	return aspectNames[a]
}

// Ratio returns the width/height pixel ratio in landscape orientation,
// or 0 for Free and Original (Original depends on the source image;
// see [Editor.TargetRatio]).
func (a Aspects) Ratio() float32 {
	switch a {
	case A16x9:
		return 16.0 / 9
	case A4x3:
		return 4.0 / 3
	case A3x2:
		return 3.0 / 2
	case A1x1:
		return 1
	case A5x4:
		return 5.0 / 4
	}
	return 0
}

// IsLocked returns whether the preset constrains the crop ratio.
func (a Aspects) IsLocked() bool {
	return a != Free
}
