// traffic/traffic.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package traffic holds the per-aircraft state consumed by detection and
// alerting: an identifier, a Euclidean position, a velocity, the index of
// the alerter that governs the aircraft, and optional sensor-uncertainty
// (SUM) standard deviations. States are value-like and read-only once
// built for a time step.
package traffic

import (
	gomath "math"

	"github.com/nasa/daidalus/math"
)

// SUMData carries the sensor uncertainty standard deviations of an aircraft
// state, all in internal units. A zero value means no uncertainty.
type SUMData struct {
	SEWStd float64 // east/west position std
	SNSStd float64 // north/south position std
	SENStd float64 // east/north position cross term, as a std (squared to give the covariance)
	SzStd  float64 // vertical position std
	VEWStd float64 // east/west velocity std
	VNSStd float64 // north/south velocity std
	VENStd float64 // east/north velocity cross term, as a std (squared to give the covariance)
	VzStd  float64 // vertical velocity std
}

// IsZero reports whether no uncertainty is declared.
func (d SUMData) IsZero() bool {
	return d == SUMData{}
}

// eigenValueBound is the largest eigenvalue of the 2x2 covariance matrix
// [var1 cov; cov var2].
func eigenValueBound(var1, var2, cov float64) float64 {
	m := (var1 + var2) / 2
	return m + gomath.Sqrt(math.Sqr((var1-var2)/2)+math.Sqr(cov))
}

// HorizontalPositionError is a scalar bound on the horizontal position
// uncertainty.
func (d SUMData) HorizontalPositionError() float64 {
	return gomath.Sqrt(eigenValueBound(math.Sqr(d.SEWStd), math.Sqr(d.SNSStd), math.Sqr(d.SENStd)))
}

// HorizontalSpeedError is a scalar bound on the horizontal velocity
// uncertainty.
func (d SUMData) HorizontalSpeedError() float64 {
	return gomath.Sqrt(eigenValueBound(math.Sqr(d.VEWStd), math.Sqr(d.VNSStd), math.Sqr(d.VENStd)))
}

// State is a single aircraft state at a time step.
type State struct {
	ID string
	// Pos is the Euclidean position in internal units.
	Pos math.Vect3
	Vel math.Velocity
	// AlerterIndex is the 1-based index of the alerter governing this
	// aircraft; 0 means unset.
	AlerterIndex int
	SUM          SUMData
}

// Invalid is the sentinel state.
func Invalid() State {
	return State{Pos: math.Vect3Invalid(), Vel: math.VelocityInvalid()}
}

// MakeOwnship builds an ownship state governed by alerter 1.
func MakeOwnship(id string, pos math.Vect3, vel math.Velocity) State {
	return State{ID: id, Pos: pos, Vel: vel, AlerterIndex: 1}
}

// MakeIntruder builds a traffic state that inherits the ownship's alerter
// unless one is set explicitly.
func MakeIntruder(id string, pos math.Vect3, vel math.Velocity) State {
	return State{ID: id, Pos: pos, Vel: vel}
}

// IsValid reports whether the state carries finite position and velocity
// and a non-empty identifier.
func (s State) IsValid() bool {
	return s.ID != "" && !s.Pos.IsInvalid() && !s.Vel.IsInvalid()
}

// Linear projects the state forward by time t at constant velocity.
func (s State) Linear(t float64) State {
	out := s
	out.Pos = s.Pos.Linear(s.Vel.V, t)
	return out
}
