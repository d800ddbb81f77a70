// detection/cd3d.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package detection

import (
	gomath "math"

	"github.com/nasa/daidalus/math"
)

///////////////////////////////////////////////////////////////////////////
// cylindrical conflict detection on relative states

// losCylinder reports loss of separation of the relative position s against
// the closed cylinder of radius d and half height h.
func losCylinder(s math.Vect3, d, h float64) bool {
	return s.Vect2().Sqv() <= math.Sqr(d) && gomath.Abs(s.Z) <= h
}

// cd2dDetection is the horizontal conflict interval of the relative state
// within [b,t], clipped to the window.
func cd2dDetection(s, vo, vi math.Vect2, d, b, t float64) LossData {
	tIn := t + 1
	tOut := b
	if b >= 0 && b < t {
		if vo.AlmostEquals(vi) && almostHorizontalLos(s, d) {
			tIn = b
			tOut = t
		} else {
			v := vo.Sub(vi)
			if delta(s, v, d) > 0 {
				tin := thetaD(s, v, entry, d)
				tout := thetaD(s, v, exit, d)
				tIn = gomath.Min(gomath.Max(tin, b), t)
				tOut = gomath.Max(gomath.Min(tout, t), b)
			}
		}
	}
	return LossData{TimeIn: tIn, TimeOut: tOut}
}

// cd3dDetection is the 3-D conflict interval of the relative state s and
// absolute velocities vo,vi against the cylinder (d,h), within [b,t].
func cd3dDetection(s math.Vect3, vo, vi math.Vect3, d, h, b, t float64) LossData {
	tIn := t + 1
	tOut := b
	if b >= 0 && b < t {
		s2 := s.Vect2()
		vo2 := vo.Vect2()
		vi2 := vi.Vect2()
		vz := vo.Z - vi.Z
		if vo2.AlmostEquals(vi2) && almostHorizontalLos(s2, d) {
			if !math.Almost(vo.Z, vi.Z) {
				tIn = gomath.Min(gomath.Max(thetaH(s.Z, vz, entry, h), b), t)
				tOut = gomath.Max(gomath.Min(thetaH(s.Z, vz, exit, h), t), b)
			} else if almostVerticalLos(s.Z, h) {
				tIn = b
				tOut = t
			}
		} else {
			v2 := vo2.Sub(vi2)
			if delta(s2, v2, d) > 0 {
				td1 := thetaD(s2, v2, entry, d)
				td2 := thetaD(s2, v2, exit, d)
				if !math.Almost(vo.Z, vi.Z) {
					tin := gomath.Max(td1, thetaH(s.Z, vz, entry, h))
					tout := gomath.Min(td2, thetaH(s.Z, vz, exit, h))
					tIn = gomath.Min(gomath.Max(tin, b), t)
					tOut = gomath.Max(gomath.Min(tout, t), b)
				} else if almostVerticalLos(s.Z, h) {
					tIn = gomath.Min(gomath.Max(td1, b), t)
					tOut = gomath.Max(gomath.Min(td2, t), b)
				}
			}
		}
	}
	return LossData{TimeIn: tIn, TimeOut: tOut}
}

// cd3dTccpa is the time of closest cylindrical approach of the relative
// state, minimizing the cylindrical norm over the candidate critical times.
func cd3dTccpa(s math.Vect3, vo, vi math.Vect3, d, h float64) float64 {
	v := vo.Sub(vi)
	s2 := s.Vect2()
	v2 := v.Vect2()
	mint := 0.0
	mind := s.CylNorm(d, h)
	if !vo.Vect2().AlmostEquals(vi.Vect2()) {
		t := -s2.Dot(v2) / v2.Sqv()
		if t > 0 {
			if dd := s.AddScal(t, v).CylNorm(d, h); dd < mind {
				mint = t
				mind = dd
			}
		}
	}
	if !math.Almost(vo.Z, vi.Z) {
		t := -s.Z / v.Z
		if t > 0 {
			if dd := s.AddScal(t, v).CylNorm(d, h); dd < mind {
				mint = t
				mind = dd
			}
		}
	}
	a := v2.Sqv()/math.Sqr(d) - math.Sqr(v.Z/h)
	b := s2.Dot(v2)/math.Sqr(d) - s.Z*v.Z/math.Sqr(h)
	c := s2.Sqv()/math.Sqr(d) - math.Sqr(s.Z/h)
	for _, eps := range []int{entry, exit} {
		t := math.Root2b(a, b, c, eps)
		if !gomath.IsNaN(t) && t > 0 {
			if dd := s.AddScal(t, v).CylNorm(d, h); dd < mind {
				mint = t
				mind = dd
			}
		}
	}
	return mint
}

// cd3dTccpaIn clips the time of closest cylindrical approach to [b,t].
func cd3dTccpaIn(s math.Vect3, vo, vi math.Vect3, d, h, b, t float64) float64 {
	return gomath.Min(gomath.Max(b, cd3dTccpa(s, vo, vi, d, h)), t)
}
