// math/scalar.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package math provides the Euclidean vector, velocity, and scalar
// primitives that the detect-and-avoid core is built on. All quantities are
// in SI internal units; unit conversion happens at the boundary (see the
// units package).
package math

import (
	gomath "math"

	"golang.org/x/exp/constraints"
)

// ULP tolerances for AlmostEquals, expressed as a maximum difference between
// the lexicographically-ordered bit patterns of two doubles.
const (
	Precision5       = 1 << 40
	Precision7       = 1 << 34
	Precision9       = 1 << 27
	Precision13      = 16348
	PrecisionDefault = Precision13
)

///////////////////////////////////////////////////////////////////////////
// small generic helpers

func Abs[V constraints.Integer | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

func Sqr[V constraints.Integer | constraints.Float](v V) V { return v * v }

func Clamp[T constraints.Ordered](x T, low T, high T) T {
	if x < low {
		return low
	} else if x > high {
		return high
	}
	return x
}

// Sign returns 1 for non-negative x and -1 otherwise. Zero counts as
// positive, matching the branch conventions of the detection geometry.
func Sign(x float64) int {
	if x >= 0 {
		return 1
	}
	return -1
}

// SignTriple distinguishes zero.
func SignTriple(x float64) int {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}

///////////////////////////////////////////////////////////////////////////
// almost-equals and friends

// AlmostEquals reports whether a and b are within maxUlps units in the last
// place of one another. Near zero it falls back to an absolute comparison
// keyed to the tolerance. This is the only float equality allowed in the
// detection code path.
func AlmostEquals(a, b float64, maxUlps int64) bool {
	if a == b {
		return true
	}

	if a == 0 || b == 0 {
		comp := 1.0e-13
		switch maxUlps {
		case Precision5:
			comp = 1.0e-5
		case Precision7:
			comp = 1.0e-7
		case Precision9:
			comp = 1.0e-9
		}
		if gomath.Abs(a) < comp && gomath.Abs(b) < comp {
			return true
		}
	}

	if !(a < b || b < a) { // filters NaNs
		return false
	}
	if gomath.IsInf(a, 0) || gomath.IsInf(b, 0) {
		return false
	}

	aInt := int64(gomath.Float64bits(a))
	if aInt < 0 {
		aInt = gomath.MinInt64 - aInt
	}
	bInt := int64(gomath.Float64bits(b))
	if bInt < 0 {
		bInt = gomath.MinInt64 - bInt
	}

	diff := aInt - bInt
	if diff < 0 {
		diff = -diff
	}
	return diff <= maxUlps
}

func Almost(a, b float64) bool {
	return AlmostEquals(a, b, PrecisionDefault)
}

func AlmostLess(a, b float64) bool {
	if Almost(a, b) {
		return false
	}
	return a < b
}

func AlmostGreater(a, b float64) bool {
	if Almost(a, b) {
		return false
	}
	return a > b
}

func AlmostGeq(a, b float64) bool {
	return a >= b || Almost(a, b)
}

func AlmostLeq(a, b float64) bool {
	return a <= b || Almost(a, b)
}

func WithinEpsilon(a, b, epsilon float64) bool {
	return gomath.Abs(a-b) < epsilon
}

///////////////////////////////////////////////////////////////////////////
// safe transcendentals

func SqrtSafe(x float64) float64 {
	return gomath.Sqrt(gomath.Max(x, 0))
}

// Atan2Safe is atan2 with the (0,0) singularity pinned to 0.
func Atan2Safe(y, x float64) float64 {
	if y == 0 && x == 0 {
		return 0
	}
	return gomath.Atan2(y, x)
}

func AsinSafe(x float64) float64 {
	return gomath.Asin(Clamp(x, -1, 1))
}

func AcosSafe(x float64) float64 {
	return gomath.Acos(Clamp(x, -1, 1))
}

///////////////////////////////////////////////////////////////////////////
// quadratics

// Discr returns the discriminant of a*x^2 + b*x + c.
func Discr(a, b, c float64) float64 {
	return Sqr(b) - 4*a*c
}

// Root returns the eps root (+1 or -1) of a*x^2 + b*x + c, or NaN when the
// discriminant is negative. Degenerate linear equations are solved directly.
func Root(a, b, c float64, eps int) float64 {
	if a == 0 && b == 0 {
		return gomath.NaN()
	} else if a == 0 {
		return -c / b
	}
	sqb := Sqr(b)
	ac := 4 * a * c
	if Almost(sqb, ac) || sqb > ac {
		return (-b + float64(eps)*SqrtSafe(sqb-ac)) / (2 * a)
	}
	return gomath.NaN()
}

// Root2b is Root for quadratics pre-divided by 2: a*x^2 + 2*b*x + c.
func Root2b(a, b, c float64, eps int) float64 {
	if a == 0 && b == 0 {
		return gomath.NaN()
	} else if a == 0 {
		return -c / (2 * b)
	}
	sqb := Sqr(b)
	ac := a * c
	if Almost(sqb, ac) || sqb > ac {
		return (-b + float64(eps)*SqrtSafe(sqb-ac)) / a
	}
	return gomath.NaN()
}

// RootNegC is the positive root of a*x^2 + b*x + c under the assumption
// c <= 0, returning -1 when no real root exists.
func RootNegC(a, b, c float64) float64 {
	if a == 0 {
		return -c / b
	}
	sqb := Sqr(b)
	ac := 4 * a * c
	if Almost(sqb, ac) || sqb > ac {
		return (-b + SqrtSafe(sqb-ac)) / (2 * a)
	}
	return -1
}

///////////////////////////////////////////////////////////////////////////
// angles and turn directions

// Modulo returns val mod m in [0,m); values almost equal to m snap to 0.
func Modulo(val, m float64) float64 {
	n := gomath.Floor(val / m)
	r := val - n*m
	if Almost(r, m) {
		return 0
	}
	return r
}

func SafeModulo(val, m float64) float64 {
	if m > 0 {
		return Modulo(val, m)
	}
	return val
}

// To2Pi reduces an angle to [0,2*pi).
func To2Pi(rad float64) float64 {
	return Modulo(rad, 2*gomath.Pi)
}

// ToPi reduces an angle to (-pi,pi].
func ToPi(rad float64) float64 {
	r := To2Pi(rad)
	if r > gomath.Pi {
		return r - 2*gomath.Pi
	}
	return r
}

// ToPi2Cont reduces an angle to [-pi/2,pi/2] continuously, so that
// ToPi2Cont(pi/2+eps) = pi/2-eps.
func ToPi2Cont(rad float64) float64 {
	r := ToPi(rad)
	switch {
	case r < -gomath.Pi/2:
		return -gomath.Pi - r
	case r < gomath.Pi/2:
		return r
	default:
		return gomath.Pi - r
	}
}

// Clockwise reports whether the shortest turn from track alpha to track beta
// is clockwise.
func Clockwise(alpha, beta float64) bool {
	a := To2Pi(alpha)
	b := To2Pi(beta)
	if gomath.Abs(a-b) <= gomath.Pi {
		return b >= a
	}
	return a > b
}

// TurnDir returns +1 for a clockwise (right) turn from initTrack to
// goalTrack and -1 otherwise.
func TurnDir(initTrack, goalTrack float64) int {
	if Clockwise(initTrack, goalTrack) {
		return 1
	}
	return -1
}

// TurnDelta returns the smallest angle between two tracks, in [0,pi].
func TurnDelta(alpha, beta float64) float64 {
	a := To2Pi(alpha)
	b := To2Pi(beta)
	delta := gomath.Abs(a - b)
	if delta <= gomath.Pi {
		return delta
	}
	return 2*gomath.Pi - delta
}

// TurnDeltaDir returns the angular travel from alpha to beta when turning in
// the given direction (dir > 0 is clockwise), in [0,2*pi).
func TurnDeltaDir(alpha, beta float64, dir int) float64 {
	if AlmostEquals(To2Pi(alpha), To2Pi(beta), Precision7) {
		return 0 // do not want 2*pi returned
	}
	delta := TurnDelta(alpha, beta)
	if (dir > 0) != Clockwise(alpha, beta) { // go the long way around
		delta = 2*gomath.Pi - delta
	}
	return delta
}

// SignedTurnDelta is the angular travel from alpha to beta, signed by the
// shortest turn direction.
func SignedTurnDelta(alpha, beta float64) float64 {
	return float64(TurnDir(alpha, beta)) * TurnDelta(alpha, beta)
}
