// kinematics/dist.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package kinematics

import (
	gomath "math"

	"github.com/nasa/daidalus/math"
)

// The scans below step maneuvered trajectories at 1 s out to a caller
// supplied horizon; stopTime must be finite.

const scanStep = 1.0

// MinDistBetweenTrk is the minimum separation between two aircraft that
// both turn toward new tracks, scanned up to stopTime. The result packs
// (horizontal distance, 3-D distance, vertical distance, time) at the
// closest point; the scan stops early once the aircraft diverge.
func MinDistBetweenTrk(so math.Vect3, vo, nvo math.Velocity, si math.Vect3, vi, nvi math.Velocity,
	bankAngOwn, stopTime float64) math.Vect4 {
	minDist := gomath.MaxFloat64
	minDistH := gomath.MaxFloat64
	minDistV := gomath.MaxFloat64
	minT := -1.0
	for t := 0.0; t < stopTime; t += scanStep {
		soAtTm, vown := TurnUntilTrack(so, vo, t, nvo.Trk(), bankAngOwn)
		siAtTm, vtraf := TurnUntilTrack(si, vi, t, nvi.Trk(), bankAngOwn)
		s := soAtTm.Sub(siAtTm)
		if dist := s.Norm(); dist < minDist {
			minDist = dist
			minDistH = s.Norm2D()
			minDistV = gomath.Abs(s.Z)
			minT = t
		}
		if s.Dot(vown.V.Sub(vtraf.V)) > 0 { // diverging
			break
		}
	}
	return math.Vect4{X: minDistH, Y: minDist, Z: minDistV, T: minT}
}

// MinDistBetweenGs is the minimum separation when the ownship accelerates
// to a new ground speed and the intruder flies linearly.
func MinDistBetweenGs(so math.Vect3, vo, nvo math.Velocity, si math.Vect3, vi math.Velocity,
	gsAccelOwn, stopTime float64) math.Vect4 {
	return minDistScan(stopTime,
		func(t float64) math.Vect3 {
			s, _ := GsAccelUntil(so, vo, t, nvo.Gs(), gsAccelOwn)
			return s
		},
		func(t float64) math.Vect3 { return si.Linear(vi.V, t) })
}

// MinDistBetweenGs2 is MinDistBetweenGs with both aircraft accelerating.
func MinDistBetweenGs2(so math.Vect3, vo, nvo math.Velocity, si math.Vect3, vi, nvi math.Velocity,
	gsAccelOwn, gsAccelTraf, stopTime float64) math.Vect4 {
	return minDistScan(stopTime,
		func(t float64) math.Vect3 {
			s, _ := GsAccelUntil(so, vo, t, nvo.Gs(), gsAccelOwn)
			return s
		},
		func(t float64) math.Vect3 {
			s, _ := GsAccelUntil(si, vi, t, nvi.Gs(), gsAccelTraf)
			return s
		})
}

// MinDistBetweenVs is the minimum separation when the ownship ramps to a
// new vertical speed and the intruder flies linearly.
func MinDistBetweenVs(so math.Vect3, vo, nvo math.Velocity, si math.Vect3, vi math.Velocity,
	vsAccelOwn, stopTime float64) math.Vect4 {
	return minDistScan(stopTime,
		func(t float64) math.Vect3 {
			s, _ := VsAccelUntil(so, vo, t, nvo.Vs(), vsAccelOwn)
			return s
		},
		func(t float64) math.Vect3 { return si.Linear(vi.V, t) })
}

// MinDistBetweenVs2 is MinDistBetweenVs with both aircraft ramping.
func MinDistBetweenVs2(so math.Vect3, vo, nvo math.Velocity, si math.Vect3, vi, nvi math.Velocity,
	vsAccelOwn, vsAccelTraf, stopTime float64) math.Vect4 {
	return minDistScan(stopTime,
		func(t float64) math.Vect3 {
			s, _ := VsAccelUntil(so, vo, t, nvo.Vs(), vsAccelOwn)
			return s
		},
		func(t float64) math.Vect3 {
			s, _ := VsAccelUntil(si, vi, t, nvi.Vs(), vsAccelTraf)
			return s
		})
}

func minDistScan(stopTime float64, own, traf func(float64) math.Vect3) math.Vect4 {
	minDist := gomath.MaxFloat64
	minDistH := gomath.MaxFloat64
	minDistV := gomath.MaxFloat64
	minT := -1.0
	for t := 0.0; t < stopTime; t += scanStep {
		s := own(t).Sub(traf(t))
		if dist := s.Norm(); dist < minDist {
			minDist = dist
			minDistH = s.Norm2D()
			minDistV = gomath.Abs(s.Z)
			minT = t
		}
	}
	return math.Vect4{X: minDistH, Y: minDist, Z: minDistV, T: minT}
}

// TestLoSTrk reports whether the ownship's turn to a new track loses
// separation (D,H) with a linearly flying intruder within stopTime.
func TestLoSTrk(so math.Vect3, vo, nvo math.Velocity, si math.Vect3, vi math.Velocity,
	bankAngOwn, stopTime, d, h float64) bool {
	for t := 0.0; t < stopTime; t += scanStep {
		soAtTm, _ := TurnUntilTrack(so, vo, t, nvo.Trk(), bankAngOwn)
		if losAt(soAtTm, si.Linear(vi.V, t), d, h) {
			return true
		}
	}
	return false
}

// TestLoSGs reports whether the ownship's ground-speed change loses
// separation (D,H) with a linearly flying intruder within stopTime.
func TestLoSGs(so math.Vect3, vo, nvo math.Velocity, si math.Vect3, vi math.Velocity,
	gsAccelOwn, stopTime, d, h float64) bool {
	for t := 0.0; t < stopTime; t += scanStep {
		soAtTm, _ := GsAccelUntil(so, vo, t, nvo.Gs(), gsAccelOwn)
		if losAt(soAtTm, si.Linear(vi.V, t), d, h) {
			return true
		}
	}
	return false
}

// TestLoSVs reports whether the ownship's vertical-speed change loses
// separation (D,H) with a linearly flying intruder within stopTime.
func TestLoSVs(so math.Vect3, vo, nvo math.Velocity, si math.Vect3, vi math.Velocity,
	vsAccelOwn, stopTime, d, h float64) bool {
	for t := 0.0; t < stopTime; t += scanStep {
		soAtTm, _ := VsAccelUntil(so, vo, t, nvo.Vs(), vsAccelOwn)
		if losAt(soAtTm, si.Linear(vi.V, t), d, h) {
			return true
		}
	}
	return false
}

func losAt(so, si math.Vect3, d, h float64) bool {
	s := so.Sub(si)
	return s.Norm2D() < d && gomath.Abs(s.Z) < h
}
