// detection/detector.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package detection

import (
	"github.com/nasa/daidalus/math"
	"github.com/nasa/daidalus/param"
)

// Detector is a conflict/volume detector over a pair of linearly projected
// aircraft states. Implementations are value-like: Copy returns an
// independent detector so callers can snapshot configuration.
type Detector interface {
	// ConflictDetection returns the loss interval within the lookahead
	// window [b,t] (0 <= b <= t) plus the critical time/distance of the
	// encounter and the relative state it was computed from.
	ConflictDetection(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) ConflictData

	// Violation reports loss of the volume at the current instant.
	Violation(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity) bool

	// Conflict reports whether a loss occurs within [b,t].
	Conflict(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) bool

	// Copy returns a deep, independent copy.
	Copy() Detector

	// Make returns a fresh detector of the same kind with default values.
	Make() Detector

	// TypeName names the detector kind for configuration round-trips.
	TypeName() string

	// Identifier is the configured instance id, possibly empty.
	Identifier() string
	SetIdentifier(id string)

	// Parameters/SetParameters round-trip the detector configuration.
	Parameters() param.Data
	SetParameters(p param.Data)

	// Contains reports whether this detector's volume contains the
	// other's at every state (false when incomparable).
	Contains(other Detector) bool

	Equals(other Detector) bool
}

// conflictWithin implements Conflict in terms of ConflictDetection, with a
// degenerate instantaneous window handled by a one-second probe.
func conflictWithin(d Detector, so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) bool {
	if math.Almost(b, t) {
		interval := d.ConflictDetection(so, vo, si, vi, b, b+1)
		return interval.Conflict() && math.Almost(interval.GetTimeIn(), b)
	}
	if b > t {
		return false
	}
	return d.ConflictDetection(so, vo, si, vi, b, t).Conflict()
}

// FromTypeName builds a default detector of the named kind, or nil for an
// unknown name. Names are those returned by TypeName; the fully qualified
// class names found in legacy DAIDALUS configuration files are accepted as
// aliases.
func FromTypeName(name string) Detector {
	switch name {
	case "CDCylinder", "gov.nasa.larcfm.ACCoRD.CDCylinder":
		return DefaultCDCylinder()
	case "WCV_TAUMOD", "gov.nasa.larcfm.ACCoRD.WCV_TAUMOD":
		return NewWCVTauMod(DefaultWCVTable())
	case "WCV_TCPA", "gov.nasa.larcfm.ACCoRD.WCV_TCPA":
		return NewWCVTcpa(DefaultWCVTable())
	case "WCV_TEP", "gov.nasa.larcfm.ACCoRD.WCV_TEP":
		return NewWCVTep(DefaultWCVTable())
	case "WCV_HZ", "gov.nasa.larcfm.ACCoRD.WCV_HZ":
		return NewWCVHz(DefaultWCVTable())
	case "TCAS3D", "gov.nasa.larcfm.ACCoRD.TCAS3D":
		return NewTCAS3D(MakeTCASIITable(true))
	case "NoDetector", "gov.nasa.larcfm.ACCoRD.NoDetector":
		return NoDetector{}
	}
	return nil
}

// DefaultWCVTable is the DO-365 Phase I DWC table, the original's default.
func DefaultWCVTable() WCVTable {
	return DO365DWCPhaseI()
}
