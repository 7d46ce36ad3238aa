// Copyright (c) 2026, TrussPhoto Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package warp

import "cogentcore.org/core/math32"

const (
	// MaxAngle is the fine rotation limit in radians (±45°).
	MaxAngle = math32.Pi / 4

	// MaxTilt is the perspective tilt limit in degrees.
	MaxTilt = 45

	// MaxShear is the shear coefficient limit.
	MaxShear = 1

	// DefaultFocalLength is the focal length (mm, 35mm equivalent)
	// assumed when the photo record has none.
	DefaultFocalLength = 28

	// SensorWidth is the reference full-frame sensor width in mm,
	// used to convert tilt angles into projective coefficients and
	// screen deltas into tilt angles.
	SensorWidth = 36

	// maxCoeff bounds the combined projective coefficients so the
	// perspective divisor stays positive over the sheared unit square.
	maxCoeff = 0.9
)

// Params holds the geometric transform applied beneath the crop frame:
// fine rotation, 90° steps, vertical/horizontal perspective tilt, and
// shear. All setters clamp, so a Params is always in range; the zero
// value (plus a default focal length) is the identity transform.
type Params struct {

	// Angle is the fine rotation in radians, clamped to ±π/4.
	Angle float32

	// Rotate90 is the number of 90° counterclockwise steps (0-3).
	Rotate90 int

	// TiltV is the vertical perspective tilt in degrees, clamped to ±45.
	TiltV float32

	// TiltH is the horizontal perspective tilt in degrees, clamped to ±45.
	TiltH float32

	// Shear is the horizontal shear coefficient, clamped to ±1.
	Shear float32

	// FocalLength is the lens focal length in mm (35mm equivalent).
	// Longer lenses warp less for the same tilt. 0 means unknown,
	// in which case [DefaultFocalLength] is used.
	FocalLength float32
}

func (p *Params) Defaults() {
	*p = Params{FocalLength: DefaultFocalLength}
}

// HasRotation returns whether any rotation (fine or 90°) is set.
func (p *Params) HasRotation() bool {
	return p.Angle != 0 || p.Rotate90 != 0
}

// HasPerspective returns whether any tilt or shear is set.
func (p *Params) HasPerspective() bool {
	return p.TiltV != 0 || p.TiltH != 0 || p.Shear != 0
}

// TotalRotation returns the full rotation in radians:
// Rotate90 steps plus the fine angle.
func (p *Params) TotalRotation() float32 {
	return float32(p.Rotate90)*(math32.Pi/2) + p.Angle
}

// FocalLengthOrDefault returns FocalLength, or [DefaultFocalLength]
// if none is set.
func (p *Params) FocalLengthOrDefault() float32 {
	if p.FocalLength <= 0 {
		return DefaultFocalLength
	}
	return p.FocalLength
}

func (p *Params) SetAngle(a float32) {
	p.Angle = math32.Clamp(a, -MaxAngle, MaxAngle)
}

func (p *Params) SetTiltV(deg float32) {
	p.TiltV = math32.Clamp(deg, -MaxTilt, MaxTilt)
}

func (p *Params) SetTiltH(deg float32) {
	p.TiltH = math32.Clamp(deg, -MaxTilt, MaxTilt)
}

func (p *Params) SetShear(s float32) {
	p.Shear = math32.Clamp(s, -MaxShear, MaxShear)
}

func (p *Params) SetFocalLength(mm float32) {
	p.FocalLength = math32.Max(mm, 0)
}

// Rotate90By adds dir (+1 = counterclockwise, -1 = clockwise) 90° steps,
// wrapping within 0-3.
func (p *Params) Rotate90By(dir int) {
	p.Rotate90 = ((p.Rotate90+dir)%4 + 4) % 4
}

// coeffs returns the projective coefficients for the current tilt and
// focal length. The pair is scaled down if needed so that the
// perspective divisor 1 + 2*ch*x + 2*cv*y stays at or above 1-maxCoeff
// everywhere on the sheared unit square.
func (p *Params) coeffs() (cv, ch float32) {
	s := SensorWidth / (2 * p.FocalLengthOrDefault())
	cv = math32.Tan(math32.DegToRad(p.TiltV)) * s
	ch = math32.Tan(math32.DegToRad(p.TiltH)) * s
	// worst case of |2*ch*x + 2*cv*y| with |y| <= 0.5 and sheared
	// |x| <= (1+|Shear|)/2
	worst := math32.Abs(ch)*(1+math32.Abs(p.Shear)) + math32.Abs(cv)
	if worst > maxCoeff {
		f := maxCoeff / worst
		cv *= f
		ch *= f
	}
	return cv, ch
}
