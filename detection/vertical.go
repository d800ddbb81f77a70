// detection/vertical.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package detection

import (
	gomath "math"

	"github.com/nasa/daidalus/math"
)

// thetaH is the time at which the relative vertical state (sz,vz) crosses
// the slab of half height h; eps selects entry (-1) or exit (+1). NaN when
// there is no vertical rate.
func thetaH(sz, vz float64, eps int, h float64) float64 {
	if vz == 0 {
		return gomath.NaN()
	}
	return (float64(eps*math.Sign(vz))*h - sz) / vz
}

// timeCoalt is the time to co-altitude; 0 at co-altitude, NaN when the
// vertical rate is zero, negative when the aircraft diverge vertically.
func timeCoalt(sz, vz float64) float64 {
	if sz == 0 {
		return 0
	}
	if vz == 0 {
		return gomath.NaN()
	}
	return -sz / vz
}

// vmd is the vertical miss distance within lookahead time T.
func vmd(sz, vz, t float64) float64 {
	if sz*vz < 0 {
		// vertically converging
		if timeCoalt(sz, vz) <= t {
			return 0
		}
		return gomath.Abs(sz + t*vz)
	}
	return gomath.Abs(sz)
}

// almostVerticalLos reports loss of vertical separation, excluding the
// boundary up to ULP tolerance.
func almostVerticalLos(sz, h float64) bool {
	absz := gomath.Abs(sz)
	return !math.Almost(absz, h) && absz < h
}

///////////////////////////////////////////////////////////////////////////
// vertical well-clear models

// VerticalModel selects the one-dimensional vertical well-clear predicate
// of a time-variable detector.
type VerticalModel int

const (
	// VertTCOA declares vertical loss within ZTHR or when the time to
	// co-altitude is in [0,TCOA].
	VertTCOA VerticalModel = iota
	// VertVMOD declares vertical loss within a rate-modulated height band
	// ZTHR + |vz|*TCOA on converging geometries.
	VertVMOD
)

func (vm VerticalModel) String() string {
	if vm == VertVMOD {
		return "VMOD"
	}
	return "TCOA"
}

// verticalWCV reports vertical loss of well-clear at the current instant.
func (vm VerticalModel) verticalWCV(zthr, tcoa, sz, vz float64) bool {
	if gomath.Abs(sz) <= zthr {
		return true
	}
	switch vm {
	case VertVMOD:
		return !math.Almost(vz, 0) && sz*vz <= 0 &&
			gomath.Abs(sz) <= zthr+gomath.Abs(vz)*tcoa
	default:
		return vz != 0 && sz*vz <= 0 && timeCoalt(sz, vz) <= tcoa
	}
}

// verticalWCVInterval returns the sub-interval of [b,t] with vertical loss
// of well-clear, empty encoded as low > up.
func (vm VerticalModel) verticalWCVInterval(zthr, tcoa, b, t, sz, vz float64) math.Interval {
	if math.Almost(vz, 0) {
		if gomath.Abs(sz) <= zthr {
			return math.Interval{Low: b, Up: t}
		}
		return math.Interval{Low: t, Up: b}
	}
	var actH float64
	switch vm {
	case VertVMOD:
		actH = gomath.Max(zthr, zthr-float64(math.Sign(sz*vz))*gomath.Abs(vz)*tcoa)
	default:
		actH = gomath.Max(zthr, gomath.Abs(vz)*tcoa)
	}
	tentry := thetaH(sz, vz, entry, actH)
	texit := thetaH(sz, vz, exit, zthr)
	if t < tentry || texit < b {
		return math.Interval{Low: t, Up: b}
	}
	return math.Interval{Low: gomath.Max(b, tentry), Up: gomath.Min(t, texit)}
}
