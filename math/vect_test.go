// math/vect_test.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	gomath "math"
	"testing"
)

func TestHat(t *testing.T) {
	v := Vect2{3, 4}
	h := v.Hat()
	if gomath.Abs(h.Norm()-1) > 1e-15 {
		t.Errorf("Hat norm = %g, expected 1", h.Norm())
	}
	if !Vect2Zero().Hat().IsZero() {
		t.Errorf("Hat of zero vector should be zero")
	}
	if !Vect3Zero().Hat().IsZero() {
		t.Errorf("Hat of zero 3-vector should be zero")
	}
}

func TestPerp(t *testing.T) {
	v := Vect2{1, 2}
	l := v.PerpL()
	r := v.PerpR()
	if l.Dot(v) != 0 || r.Dot(v) != 0 {
		t.Errorf("perpendiculars not orthogonal: %v %v", l, r)
	}
	if l != (Vect2{-2, 1}) {
		t.Errorf("PerpL = %v, expected (-2,1)", l)
	}
	if r != (Vect2{2, -1}) {
		t.Errorf("PerpR = %v, expected (2,-1)", r)
	}
}

func TestInvalidSentinels(t *testing.T) {
	if !Vect2Invalid().IsInvalid() || !Vect3Invalid().IsInvalid() {
		t.Errorf("invalid sentinels should report invalid")
	}
	if Vect3Zero().IsInvalid() {
		t.Errorf("zero vector reported invalid")
	}
	if !VelocityInvalid().IsInvalid() {
		t.Errorf("invalid velocity should report invalid")
	}
}

func TestDetDot(t *testing.T) {
	a := Vect2{1, 0}
	b := Vect2{0, 1}
	if a.Det(b) != 1 {
		t.Errorf("Det((1,0),(0,1)) = %g, expected 1", a.Det(b))
	}
	if b.Det(a) != -1 {
		t.Errorf("Det((0,1),(1,0)) = %g, expected -1", b.Det(a))
	}
	if a.Dot(b) != 0 {
		t.Errorf("Dot of orthogonal vectors = %g", a.Dot(b))
	}
}

func TestLinearByDist2D(t *testing.T) {
	p := Vect3{0, 0, 100}
	// track 0 is due north
	n := p.LinearByDist2D(0, 10)
	if gomath.Abs(n.Y-10) > 1e-12 || gomath.Abs(n.X) > 1e-12 || n.Z != 100 {
		t.Errorf("LinearByDist2D north: %v", n)
	}
	e := p.LinearByDist2D(gomath.Pi/2, 10)
	if gomath.Abs(e.X-10) > 1e-12 || gomath.Abs(e.Y) > 1e-9 {
		t.Errorf("LinearByDist2D east: %v", e)
	}
}

func TestCylNorm(t *testing.T) {
	// a point on the cylinder boundary has norm 1
	v := Vect3{100, 0, 0}
	if got := v.CylNorm(100, 50); gomath.Abs(got-1) > 1e-12 {
		t.Errorf("CylNorm boundary = %g, expected 1", got)
	}
	if got := (Vect3{0, 0, 50}).CylNorm(100, 50); gomath.Abs(got-1) > 1e-12 {
		t.Errorf("CylNorm vertical boundary = %g, expected 1", got)
	}
}

func TestTcpaNonNegative(t *testing.T) {
	// diverging aircraft have tcpa 0
	if got := Tcpa(Vect3{0, 0, 0}, Vect3{100, 0, 0}, Vect3{1000, 0, 0}, Vect3{200, 0, 0}); got != 0 {
		t.Errorf("diverging tcpa = %g, expected 0", got)
	}
	// equal velocities have tcpa 0
	if got := Tcpa(Vect3{0, 0, 0}, Vect3{100, 0, 0}, Vect3{1000, 0, 0}, Vect3{100, 0, 0}); got != 0 {
		t.Errorf("parallel tcpa = %g, expected 0", got)
	}
	// head-on closure at 200 m/s over 10 km
	got := Tcpa(Vect3{0, 0, 0}, Vect3{100, 0, 0}, Vect3{10000, 0, 0}, Vect3{-100, 0, 0})
	if gomath.Abs(got-50) > 1e-12 {
		t.Errorf("head-on tcpa = %g, expected 50", got)
	}
}

func TestVelocityTrackPreservation(t *testing.T) {
	v := MkTrkGsVs(gomath.Pi/4, 150, -3)
	stopped := v.MkGs(0)
	if stopped.Gs() != 0 {
		t.Errorf("MkGs(0) ground speed = %g", stopped.Gs())
	}
	if stopped.Trk() != v.Trk() {
		t.Errorf("MkGs(0) lost the track: %g != %g", stopped.Trk(), v.Trk())
	}
	restored := stopped.MkGs(150)
	if !restored.AlmostEquals(v) {
		t.Errorf("MkGs(0) then MkGs(150) is not reversible: %+v vs %+v", restored, v)
	}
}

func TestVelocityMk(t *testing.T) {
	v := MkTrkGsVs(1, 100, 5)
	if nv := v.MkTrk(2); gomath.Abs(nv.Trk()-2) > 1e-12 || nv.Gs() != v.Gs() || nv.Vs() != v.Vs() {
		t.Errorf("MkTrk changed more than the track: %+v", nv)
	}
	if nv := v.MkGs(50); gomath.Abs(nv.Gs()-50) > 1e-12 || gomath.Abs(nv.Trk()-1) > 1e-12 {
		t.Errorf("MkGs changed more than the speed: %+v", nv)
	}
	if nv := v.MkVs(-2); nv.Vs() != -2 || nv.Gs() != v.Gs() {
		t.Errorf("MkVs changed more than the vertical speed: %+v", nv)
	}
	if !v.MkGs(-1).IsInvalid() {
		t.Errorf("MkGs of a negative speed should be invalid")
	}
}

func TestVelocityMkAddTrk(t *testing.T) {
	v := MkTrkGsVs(0.3, 120, 2)
	rotated := v.MkAddTrk(0.5)
	if gomath.Abs(rotated.Trk()-0.8) > 1e-12 {
		t.Errorf("MkAddTrk track = %g, expected 0.8", rotated.Trk())
	}
	if gomath.Abs(rotated.Gs()-120) > 1e-9 {
		t.Errorf("MkAddTrk changed ground speed: %g", rotated.Gs())
	}
	direct := MkTrkGsVs(0.8, 120, 2)
	if !rotated.AlmostEquals(direct) {
		t.Errorf("MkAddTrk disagrees with MkTrkGsVs: %+v vs %+v", rotated, direct)
	}
}

func TestVelocitySubTrackAtZero(t *testing.T) {
	v := MkTrkGsVs(1.2, 80, 0)
	// subtracting the own horizontal components zeroes gs but keeps track
	res := v.Sub(Vect3{v.V.X, v.V.Y, 5})
	if res.Gs() != 0 {
		t.Errorf("Sub to zero gs: gs = %g", res.Gs())
	}
	if res.Trk() != v.Trk() {
		t.Errorf("Sub to zero gs lost track")
	}
	if gomath.Abs(res.Vs()+5) > 1e-12 {
		t.Errorf("Sub vertical speed = %g, expected -5", res.Vs())
	}
}

func TestInterval(t *testing.T) {
	if !EmptyInterval().IsEmpty() {
		t.Errorf("EmptyInterval not empty")
	}
	in := Interval{Low: 1, Up: 3}
	if in.IsEmpty() || !in.In(2) || in.In(4) {
		t.Errorf("interval membership broken: %+v", in)
	}
	got := in.Intersect(Interval{Low: 2, Up: 5})
	if got.Low != 2 || got.Up != 3 {
		t.Errorf("Intersect = %+v, expected [2,3]", got)
	}
	if !in.Intersect(Interval{Low: 4, Up: 5}).IsEmpty() {
		t.Errorf("disjoint Intersect should be empty")
	}
}
