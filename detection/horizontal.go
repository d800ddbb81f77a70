// detection/horizontal.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package detection

import (
	gomath "math"

	"github.com/nasa/daidalus/math"
)

// Circle entry/exit selectors for thetaD and thetaH.
const (
	entry = -1
	exit  = 1
)

// tcpa is the time of horizontal closest approach of relative state (s,v);
// NaN when v is zero.
func tcpa(s, v math.Vect2) float64 {
	if !v.IsZero() {
		return -s.Dot(v) / v.Sqv()
	}
	return gomath.NaN()
}

// dcpa is the horizontal distance at closest approach.
func dcpa(s, v math.Vect2) float64 {
	return v.ScalAdd(tcpa(s, v), s).Norm()
}

// hmd is the horizontal miss distance within lookahead time T.
func hmd(s, v math.Vect2, t float64) float64 {
	tau := 0.0
	if s.Dot(v) < 0 {
		// horizontally converging
		tau = gomath.Min(tcpa(s, v), t)
	}
	return v.ScalAdd(tau, s).Norm()
}

// thetaD is the time at which the relative trajectory (s,v) crosses the
// circle of radius d; eps selects the entry (-1) or exit (+1) crossing.
func thetaD(s, v math.Vect2, eps int, d float64) float64 {
	a := v.Sqv()
	b := s.Dot(v)
	c := s.Sqv() - math.Sqr(d)
	return math.Root2b(a, b, c, eps)
}

// delta is positive exactly when the relative trajectory crosses the circle
// of radius d: delta(s,v,d) = d^2*|v|^2 - det(s,v)^2.
func delta(s, v math.Vect2, d float64) float64 {
	return math.Sqr(d)*v.Sqv() - math.Sqr(s.Det(v))
}

// almostHorizontalLos reports loss of horizontal separation, excluding the
// boundary up to ULP tolerance.
func almostHorizontalLos(s math.Vect2, d float64) bool {
	sqs := s.Sqv()
	sqD := math.Sqr(d)
	return !math.Almost(sqs, sqD) && sqs < sqD
}

func horizontalSep(s math.Vect2, d float64) bool {
	return s.Sqv() >= math.Sqr(d)
}
