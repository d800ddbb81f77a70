// traffic/traffic_test.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package traffic

import (
	gomath "math"
	"testing"

	"github.com/nasa/daidalus/math"
)

func TestStateValidity(t *testing.T) {
	ok := MakeOwnship("own", math.Vect3{}, math.MkVxyz(100, 0, 0))
	if !ok.IsValid() {
		t.Errorf("well-formed state reported invalid")
	}
	if ok.AlerterIndex != 1 {
		t.Errorf("ownship alerter index = %d, expected 1", ok.AlerterIndex)
	}
	if Invalid().IsValid() {
		t.Errorf("sentinel state reported valid")
	}
	nan := MakeIntruder("x", math.Vect3{X: gomath.NaN()}, math.MkVxyz(0, 0, 0))
	if nan.IsValid() {
		t.Errorf("NaN state reported valid")
	}
	if (State{Pos: math.Vect3{}, Vel: math.MkVxyz(1, 0, 0)}).IsValid() {
		t.Errorf("state without id reported valid")
	}
}

func TestStateLinear(t *testing.T) {
	s := MakeIntruder("i", math.Vect3{X: 100}, math.MkVxyz(10, 0, -1))
	p := s.Linear(5)
	if p.Pos != (math.Vect3{X: 150, Z: -5}) {
		t.Errorf("projected position = %+v", p.Pos)
	}
	if p.Vel != s.Vel {
		t.Errorf("projection must not change the velocity")
	}
	if s.Pos.X != 100 {
		t.Errorf("projection mutated the source state")
	}
}

func TestSUMData(t *testing.T) {
	var d SUMData
	if !d.IsZero() {
		t.Errorf("zero SUM data should report zero")
	}
	d.SEWStd = 50
	if d.IsZero() {
		t.Errorf("nonzero SUM data should not report zero")
	}
	// isotropic uncertainty: the eigenvalue bound is the common sigma
	iso := SUMData{SEWStd: 30, SNSStd: 30}
	if got := iso.HorizontalPositionError(); gomath.Abs(got-30) > 1e-9 {
		t.Errorf("isotropic position error = %g, expected 30", got)
	}
	vel := SUMData{VEWStd: 4, VNSStd: 3}
	if got := vel.HorizontalSpeedError(); got < 4 {
		t.Errorf("speed error %g should be at least the larger sigma", got)
	}
}
