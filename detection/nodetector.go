// detection/nodetector.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package detection

import (
	"github.com/nasa/daidalus/math"
	"github.com/nasa/daidalus/param"
)

// NoDetector never reports a conflict. It acts as the identity for
// composition and as a placeholder for unset levels.
type NoDetector struct {
	id string
}

func (n NoDetector) ConflictDetection(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) ConflictData {
	cd := EmptyConflictData()
	cd.S = so.Sub(si)
	cd.V = vo.V.Sub(vi.V)
	return cd
}

func (n NoDetector) Violation(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity) bool {
	return false
}

func (n NoDetector) Conflict(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) bool {
	return false
}

func (n NoDetector) Copy() Detector { return n }

func (n NoDetector) Make() Detector { return NoDetector{} }

func (n NoDetector) TypeName() string { return "NoDetector" }

func (n NoDetector) Identifier() string { return n.id }

func (n NoDetector) SetIdentifier(id string) {}

func (n NoDetector) Parameters() param.Data {
	p := param.New()
	p.Set("id", n.id)
	return p
}

func (n NoDetector) SetParameters(p param.Data) {}

// Contains holds only against another NoDetector: the empty volume
// contains nothing else.
func (n NoDetector) Contains(other Detector) bool {
	_, ok := other.(NoDetector)
	return ok
}

func (n NoDetector) Equals(other Detector) bool {
	_, ok := other.(NoDetector)
	return ok
}
