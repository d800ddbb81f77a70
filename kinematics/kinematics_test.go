// kinematics/kinematics_test.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package kinematics

import (
	gomath "math"
	"testing"

	"github.com/nasa/daidalus/math"
	"github.com/nasa/daidalus/units"
)

func TestLinear(t *testing.T) {
	s := math.Vect3{X: 1, Y: 2, Z: 3}
	v := math.MkVxyz(10, -5, 1)
	ns, nv := Linear(s, v, 4)
	if ns != (math.Vect3{X: 41, Y: -18, Z: 7}) {
		t.Errorf("Linear position = %+v", ns)
	}
	if nv != v {
		t.Errorf("Linear must not change the velocity")
	}
}

func TestTurnOmegaLinearInLimit(t *testing.T) {
	s := math.Vect3{}
	v := math.MkTrkGsVs(0.7, 130, 3)
	ns, _ := TurnOmega(s, v, 10, 1e-12)
	ls, _ := Linear(s, v, 10)
	if ns.Sub(ls).Norm() > 1e-6 {
		t.Errorf("turnOmega(1e-12) deviates from linear by %g m", ns.Sub(ls).Norm())
	}
}

func TestTurnOmegaTimeReversal(t *testing.T) {
	s0 := math.Vect3{X: 100, Y: -200, Z: 3000}
	v0 := math.MkTrkGsVs(1.1, 180, -4)
	omega := 0.03
	s1, v1 := TurnOmega(s0, v0, 25, omega)
	// stepping back along the same arc retraces the state
	s2, v2 := TurnOmega(s1, v1, -25, omega)
	if s2.Sub(s0).Norm() > 1e-9*gomath.Max(1, s0.Norm()) {
		t.Errorf("turn reversal position error %g", s2.Sub(s0).Norm())
	}
	if v2.V.Sub(v0.V).Norm() > 1e-9 {
		t.Errorf("turn reversal velocity error %g", v2.V.Sub(v0.V).Norm())
	}
}

func TestTurnOmegaPreservesGs(t *testing.T) {
	v := math.MkTrkGsVs(0, 100, 0)
	_, nv := TurnOmega(math.Vect3{}, v, 17, 0.05)
	if gomath.Abs(nv.Gs()-100) > 1e-9 {
		t.Errorf("turn changed ground speed: %g", nv.Gs())
	}
	if gomath.Abs(math.To2Pi(nv.Trk())-math.To2Pi(0.05*17)) > 1e-12 {
		t.Errorf("turn track = %g, expected %g", nv.Trk(), 0.05*17)
	}
}

func TestTurnRadius(t *testing.T) {
	r := TurnRadius(100, gomath.Pi/6)
	expected := 100 * 100 / (units.Gn * gomath.Tan(gomath.Pi/6))
	if gomath.Abs(r-expected) > 1e-9 {
		t.Errorf("TurnRadius = %g, expected %g", r, expected)
	}
	if TurnRadius(100, 0) < gomath.MaxFloat64 {
		t.Errorf("zero bank should give an unbounded radius")
	}
	if r < 0 || TurnRadius(0, 0.5) < 0 {
		t.Errorf("turn radius must be non-negative")
	}
}

func TestTurnUntilTrack(t *testing.T) {
	// right quarter turn from north at 100 m/s with a 30 degree bank
	v0 := math.MkTrkGsVs(0, 100, 0)
	goal := gomath.Pi / 2
	bank := gomath.Pi / 6
	turnTime := TurnTime(v0, goal, bank)
	r := TurnRadius(100, bank)

	ns, nv := TurnUntilTrack(math.Vect3{}, v0, turnTime, goal, bank)
	if gomath.Abs(nv.Trk()-goal) > 1e-6 {
		t.Errorf("final track = %g, expected %g", nv.Trk(), goal)
	}
	// the quarter arc from the origin heading north, turning right about
	// (R,0), ends at (R,R)
	if gomath.Abs(ns.X-r) > 1e-6 || gomath.Abs(ns.Y-r) > 1e-6 {
		t.Errorf("final position (%g,%g), expected (%g,%g)", ns.X, ns.Y, r, r)
	}

	// past the turn, flight is linear along the goal track
	dt := 10.0
	ns2, nv2 := TurnUntilTrack(math.Vect3{}, v0, turnTime+dt, goal, bank)
	if gomath.Abs(nv2.Trk()-goal) > 1e-6 {
		t.Errorf("track after turn complete = %g", nv2.Trk())
	}
	if gomath.Abs(ns2.X-(ns.X+100*dt)) > 1e-6 || gomath.Abs(ns2.Y-ns.Y) > 1e-6 {
		t.Errorf("linear remainder is off: (%g,%g)", ns2.X, ns2.Y)
	}
}

func TestTurnByDist2D(t *testing.T) {
	// undefined when the position coincides with the center
	_, nv := TurnByDist2D(math.Vect3{}, math.Vect3{}, 1, 100, 50)
	if !nv.IsInvalid() {
		t.Errorf("turn about own position should be invalid")
	}

	// quarter arc of radius 100, starting south of the center
	so := math.Vect3{X: 0, Y: -100}
	center := math.Vect3{}
	d := 100 * gomath.Pi / 2
	ns, v := TurnByDist2D(so, center, 1, d, 50)
	if gomath.Abs(ns.X+100) > 1e-6 || gomath.Abs(ns.Y) > 1e-6 {
		t.Errorf("turnByDist2D position (%g,%g), expected (-100,0)", ns.X, ns.Y)
	}
	if gomath.Abs(v.Gs()-50) > 1e-12 {
		t.Errorf("turnByDist2D gs = %g", v.Gs())
	}
}

func TestGsAccel(t *testing.T) {
	v0 := math.MkTrkGsVs(0, 100, 2)
	ns, nv := GsAccel(math.Vect3{}, v0, 10, 1)
	if gomath.Abs(nv.Gs()-110) > 1e-12 {
		t.Errorf("gsAccel speed = %g, expected 110", nv.Gs())
	}
	// northbound: distance gs*t + a t^2/2 = 1050
	if gomath.Abs(ns.Y-1050) > 1e-9 {
		t.Errorf("gsAccel distance = %g, expected 1050", ns.Y)
	}
	if gomath.Abs(ns.Z-20) > 1e-12 {
		t.Errorf("gsAccel altitude = %g, expected 20", ns.Z)
	}
}

func TestGsAccelUntil(t *testing.T) {
	v0 := math.MkTrkGsVs(0, 100, 0)
	// reach 120 m/s at 2 m/s^2 after 10 s, then hold
	ns, nv := GsAccelUntil(math.Vect3{}, v0, 20, 120, 2)
	if gomath.Abs(nv.Gs()-120) > 1e-12 {
		t.Errorf("gsAccelUntil speed = %g", nv.Gs())
	}
	expected := 100*10 + 0.5*2*100 + 120*10
	if gomath.Abs(ns.Y-expected) > 1e-9 {
		t.Errorf("gsAccelUntil distance = %g, expected %g", ns.Y, expected)
	}
}

func TestAccelToDist(t *testing.T) {
	gs, tm := AccelToDist(100, 1050, 1)
	if gomath.Abs(tm-10) > 1e-9 || gomath.Abs(gs-110) > 1e-9 {
		t.Errorf("accelToDist = (%g,%g), expected (110,10)", gs, tm)
	}
	// unreachable distance under braking
	if _, tm := AccelToDist(10, 1e6, -1); tm != -1 {
		t.Errorf("accelToDist should fail when speed hits zero, got %g", tm)
	}
}

func TestVsAccel(t *testing.T) {
	v0 := math.MkTrkGsVs(0, 100, 0)
	ns, nv := VsAccel(math.Vect3{}, v0, 10, 0.5)
	if gomath.Abs(nv.Vs()-5) > 1e-12 {
		t.Errorf("vsAccel vertical speed = %g, expected 5", nv.Vs())
	}
	if gomath.Abs(ns.Z-25) > 1e-12 {
		t.Errorf("vsAccel altitude = %g, expected 25", ns.Z)
	}
	if gomath.Abs(ns.Y-1000) > 1e-9 {
		t.Errorf("vsAccel horizontal distance = %g", ns.Y)
	}
}

func TestVsLevelOutFeasible(t *testing.T) {
	// climb from 0 to 300 m at 5 m/s with 2 m/s^2 ramps
	so := math.Vect3{}
	vo := math.MkVxyz(50, 0, 0)
	lt := VsLevelOutTimesSym(so, vo, 5, 300, 2, true)
	if gomath.Abs(lt.T1-2.5) > 1e-9 {
		t.Errorf("T1 = %g, expected 2.5", lt.T1)
	}
	if gomath.IsInf(lt.T3, 0) || lt.T3 < lt.T2 || lt.T2 < lt.T1 {
		t.Errorf("level-out times not ordered: %+v", lt)
	}

	ns, nv, t3 := VsLevelOutFinal(so, vo, 5, 300, 2, true)
	if t3 < 0 {
		t.Fatalf("feasible level-out reported infeasible")
	}
	if gomath.Abs(ns.Z-300) > 1e-6 {
		t.Errorf("final altitude = %g, expected 300", ns.Z)
	}
	if gomath.Abs(nv.Vs()) > 1e-6 {
		t.Errorf("final vertical speed = %g, expected 0", nv.Vs())
	}
}

func TestVsLevelOutDescent(t *testing.T) {
	so := math.Vect3{Z: 500}
	vo := math.MkVxyz(50, 0, 0)
	ns, nv, t3 := VsLevelOutFinal(so, vo, 5, 200, 2, true)
	if t3 < 0 {
		t.Fatalf("descent level-out reported infeasible")
	}
	if gomath.Abs(ns.Z-200) > 1e-6 {
		t.Errorf("final altitude = %g, expected 200", ns.Z)
	}
	if gomath.Abs(nv.Vs()) > 1e-6 {
		t.Errorf("final vertical speed = %g", nv.Vs())
	}
}

func TestVsLevelOutMidProfile(t *testing.T) {
	so := math.Vect3{}
	vo := math.MkVxyz(50, 0, 0)
	lt := VsLevelOutTimesSym(so, vo, 5, 300, 2, true)
	// during the constant phase the climb rate is the requested one
	mid := (lt.T1 + lt.T2) / 2
	_, nv := VsLevelOut(so, vo, mid, 5, 300, 2, true)
	if gomath.Abs(nv.Vs()-5) > 1e-9 {
		t.Errorf("climb rate during constant phase = %g, expected 5", nv.Vs())
	}
	// past T3 the state is level at the target
	ns, nv2 := VsLevelOut(so, vo, lt.T3+100, 5, 300, 2, true)
	if gomath.Abs(ns.Z-300) > 1e-9 || nv2.Vs() != 0 {
		t.Errorf("state past T3: z=%g vs=%g", ns.Z, nv2.Vs())
	}
}

func TestTcpaDcpa(t *testing.T) {
	so := math.Vect3{}
	vo := math.MkVxyz(100, 0, 0)
	si := math.Vect3{X: 10000, Y: 500}
	vi := math.MkVxyz(-100, 0, 0)
	tau := Tcpa(so, vo, si, vi)
	if tau < 0 {
		t.Errorf("tcpa must be non-negative")
	}
	if gomath.Abs(tau-50) > 1e-9 {
		t.Errorf("tcpa = %g, expected 50", tau)
	}
	if d := Dcpa(so, vo, si, vi); gomath.Abs(d-500) > 1e-9 {
		t.Errorf("dcpa = %g, expected 500", d)
	}
}

func TestMinDistBetweenGs(t *testing.T) {
	so := math.Vect3{}
	vo := math.MkVxyz(0, 100, 0)
	si := math.Vect3{Y: 5000}
	vi := math.MkVxyz(0, 80, 0)
	res := MinDistBetweenGs(so, vo, vo.MkGs(80), si, vi, 1, 120)
	if res.T < 0 {
		t.Errorf("minDistBetweenGs found no minimum")
	}
	// slowing to the intruder speed keeps separation above the initial gap
	// minus the closure during the deceleration
	if res.Y > 5000 || res.Y < 4000 {
		t.Errorf("minimum distance %g out of expected range", res.Y)
	}
}

func TestTestLoSGs(t *testing.T) {
	so := math.Vect3{}
	vo := math.MkVxyz(0, 100, 0)
	si := math.Vect3{Y: 4000}
	vi := math.MkVxyz(0, -100, 0)
	// head-on at 200 m/s: loss of 1852/305 separation within 60 s
	if !TestLoSGs(so, vo, vo, si, vi, 0.1, 60, 1852, 305) {
		t.Errorf("expected loss of separation")
	}
	// diverging intruder: no loss
	if TestLoSGs(so, vo, vo, si, vi.Neg(), 0.1, 60, 1852, 305) {
		t.Errorf("unexpected loss of separation")
	}
}
