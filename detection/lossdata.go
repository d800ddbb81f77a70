// detection/lossdata.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package detection implements the conflict and well-clear volume detectors:
// the plain separation cylinder, the time-modulated well-clear volumes
// (TAUMOD, TCPA, TEP, HZ over TCOA/VMOD vertical models), and the legacy
// TCAS II resolution-advisory volume. Detectors answer, for a pair of
// linearly projected aircraft states and a lookahead window [B,T], whether
// and when the volume is violated.
package detection

import (
	gomath "math"

	"github.com/nasa/daidalus/math"
)

// LossData is the time interval [TimeIn,TimeOut] of a loss of separation or
// well-clear within a lookahead window. Every point of the open interval is
// in violation; whether the bounds themselves are depends on the detector.
// TimeIn > TimeOut encodes "no conflict in the window".
type LossData struct {
	TimeIn, TimeOut float64
}

// NoLossData is the canonical empty loss interval.
func NoLossData() LossData {
	return LossData{TimeIn: gomath.Inf(1), TimeOut: gomath.Inf(-1)}
}

// Conflict reports whether the interval is (robustly) non-empty.
func (ld LossData) Conflict() bool {
	return math.AlmostLess(ld.TimeIn, ld.TimeOut)
}

// ConflictBefore reports whether loss starts before time t.
func (ld LossData) ConflictBefore(t float64) bool {
	// Zero is special since loss intervals are cut at 0.
	return (ld.TimeIn == 0 || math.AlmostLess(ld.TimeIn, t)) &&
		math.AlmostLess(ld.TimeIn, ld.TimeOut)
}

// ConflictLastsMoreThan reports whether the loss lasts at least thr seconds.
func (ld LossData) ConflictLastsMoreThan(thr float64) bool {
	return ld.Conflict() && ld.TimeOut-ld.TimeIn >= thr
}

// GetTimeIn is the time to first loss, +inf when there is no conflict.
func (ld LossData) GetTimeIn() float64 {
	if ld.Conflict() {
		return ld.TimeIn
	}
	return gomath.Inf(1)
}

// GetTimeOut is the time to last loss, -inf when there is no conflict.
func (ld LossData) GetTimeOut() float64 {
	if ld.Conflict() {
		return ld.TimeOut
	}
	return gomath.Inf(-1)
}

// TimeInterval is the loss interval as a math.Interval.
func (ld LossData) TimeInterval() math.Interval {
	return math.Interval{Low: ld.TimeIn, Up: ld.TimeOut}
}

// ConflictData extends a loss interval with the critical time and distance
// of the encounter and the relative state (Δs,Δv) it was computed from.
type ConflictData struct {
	LossData
	// TimeCrit orders conflicts by urgency for arbitrary well-clear
	// volumes; it is not necessarily TCPA.
	TimeCrit float64
	// DistCrit is a unitless severity scalar (cylindrical norm at
	// TimeCrit), not a physical distance.
	DistCrit float64
	S, V     math.Vect3
}

// EmptyConflictData is the no-conflict sentinel.
func EmptyConflictData() ConflictData {
	return ConflictData{
		LossData: NoLossData(),
		TimeCrit: gomath.Inf(1),
		DistCrit: gomath.Inf(1),
		S:        math.Vect3Invalid(),
		V:        math.Vect3Invalid(),
	}
}

// HMD is the horizontal miss distance within lookahead time T on the linear
// trajectory.
func (cd ConflictData) HMD(t float64) float64 {
	return hmd(cd.S.Vect2(), cd.V.Vect2(), t)
}

// VMD is the vertical miss distance within lookahead time T on the linear
// trajectory.
func (cd ConflictData) VMD(t float64) float64 {
	return vmd(cd.S.Z, cd.V.Z, t)
}

// HorizontalSeparation at current time.
func (cd ConflictData) HorizontalSeparation() float64 {
	return cd.S.Norm2D()
}

// HorizontalSeparationAtTime on the linear trajectory.
func (cd ConflictData) HorizontalSeparationAtTime(t float64) float64 {
	return cd.S.AddScal(t, cd.V).Norm2D()
}

// VerticalSeparation at current time.
func (cd ConflictData) VerticalSeparation() float64 {
	return gomath.Abs(cd.S.Z)
}

// VerticalSeparationAtTime on the linear trajectory.
func (cd ConflictData) VerticalSeparationAtTime(t float64) float64 {
	return gomath.Abs(cd.S.AddScal(t, cd.V).Z)
}

// HorizontalClosureRate at current time.
func (cd ConflictData) HorizontalClosureRate() float64 {
	return cd.V.Norm2D()
}

// VerticalClosureRate at current time.
func (cd ConflictData) VerticalClosureRate() float64 {
	return gomath.Abs(cd.V.Z)
}

// Tcpa2D is the non-negative time to horizontal closest approach.
func (cd ConflictData) Tcpa2D() float64 {
	return gomath.Max(0, tcpa(cd.S.Vect2(), cd.V.Vect2()))
}

// Tcpa3D is the non-negative time to 3-D closest approach.
func (cd ConflictData) Tcpa3D() float64 {
	return math.Tcpa(cd.S, cd.V, math.Vect3Zero(), math.Vect3Zero())
}

// Tcoa is the time to co-altitude: NaN when the vertical rate is zero,
// negative when the aircraft diverge vertically.
func (cd ConflictData) Tcoa() float64 {
	return timeCoalt(cd.S.Z, cd.V.Z)
}
