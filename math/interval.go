// math/interval.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

// Interval is a closed interval [Low,Up]. It is empty iff Low > Up; the
// canonical empty interval is [0,-1].
type Interval struct {
	Low, Up float64
}

func EmptyInterval() Interval {
	return Interval{0, -1}
}

func (in Interval) IsEmpty() bool {
	return in.Low > in.Up
}

// IsSingle reports whether the interval holds exactly one value.
func (in Interval) IsSingle() bool {
	return in.Low == in.Up
}

// In reports whether x lies in the closed interval.
func (in Interval) In(x float64) bool {
	return in.Low <= x && x <= in.Up
}

// InOO reports whether x lies strictly inside the interval.
func (in Interval) InOO(x float64) bool {
	return in.Low < x && x < in.Up
}

// AlmostIn reports whether x is in the interval with the bound closures
// given as parameters and ULP tolerance at the endpoints.
func (in Interval) AlmostIn(x float64, lbClose, ubClose bool) bool {
	var inLb, inUb bool
	if in.Low < x {
		inLb = lbClose || !Almost(in.Low, x)
	} else {
		inLb = lbClose && Almost(in.Low, x)
	}
	if x < in.Up {
		inUb = ubClose || !Almost(in.Up, x)
	} else {
		inUb = ubClose && Almost(in.Up, x)
	}
	return inLb && inUb
}

func (in Interval) Overlap(r Interval) bool {
	if in.IsEmpty() || r.IsEmpty() {
		return false
	}
	switch {
	case in.Low <= r.Low && r.Up <= in.Up:
		return true
	case r.Low <= in.Low && in.Low < r.Up:
		return true
	case r.Low <= in.Low && in.Up <= r.Up:
		return true
	case r.Low < in.Up && in.Up <= r.Up:
		return true
	}
	return false
}

// Intersect returns the intersection of two intervals, empty when they do
// not overlap.
func (in Interval) Intersect(r Interval) Interval {
	if r == in {
		return in
	}
	if !in.Overlap(r) {
		return EmptyInterval()
	}
	return Interval{gomath.Max(in.Low, r.Low), gomath.Min(in.Up, r.Up)}
}

// Width is the length of the interval, 0 when empty.
func (in Interval) Width() float64 {
	if in.IsEmpty() {
		return 0
	}
	return in.Up - in.Low
}
