// kinematics/kinematics.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package kinematics provides closed-form trajectory projections for
// maneuvering aircraft: straight-line flight, constant-rate turns,
// ground-speed ramps, vertical-speed ramps, and the three-phase vertical
// level-out profile. All functions are pure; infeasible inputs yield
// invalid sentinel positions and velocities or negative times.
package kinematics

import (
	gomath "math"

	"github.com/nasa/daidalus/math"
	"github.com/nasa/daidalus/units"
)

const maxDouble = gomath.MaxFloat64

///////////////////////////////////////////////////////////////////////////
// linear flight

// Linear extrapolates the state (so,vo) for time t at constant velocity.
func Linear(so math.Vect3, vo math.Velocity, t float64) (math.Vect3, math.Velocity) {
	return so.Linear(vo.V, t), vo
}

///////////////////////////////////////////////////////////////////////////
// turn rates, radii, and times

// TurnRadiusG is the radius of a coordinated turn at the given speed and
// bank angle under gravitational acceleration g.
func TurnRadiusG(speed, bank, g float64) float64 {
	abank := gomath.Abs(bank)
	if g <= 0 {
		g = units.Gn
	}
	abank = gomath.Min(gomath.Pi/2, abank)
	if abank == 0 {
		return maxDouble
	}
	return speed * speed / (g * gomath.Tan(abank))
}

// TurnRadius is TurnRadiusG at standard gravity.
func TurnRadius(speed, bank float64) float64 {
	return TurnRadiusG(speed, bank, units.Gn)
}

// TurnRadiusByRate is the turn radius implied by speed and turn rate omega.
func TurnRadiusByRate(speed, omega float64) float64 {
	if math.Almost(omega, 0) {
		return maxDouble
	}
	return gomath.Abs(speed / omega)
}

// SpeedOfTurn is the ground speed of a coordinated turn with the given
// radius and bank angle.
func SpeedOfTurn(r, bank float64) float64 {
	abank := gomath.Min(gomath.Pi/2, gomath.Abs(bank))
	r = gomath.Max(0, r)
	return gomath.Sqrt(units.Gn * gomath.Tan(abank) * r)
}

// TurnRate is the signed turn rate of a coordinated turn at the given speed
// and bank angle.
func TurnRate(speed, bankAngle float64) float64 {
	if math.Almost(speed, 0) {
		return 0
	}
	bankAngle = math.Clamp(bankAngle, -gomath.Pi/2, gomath.Pi/2)
	return units.Gn * gomath.Tan(bankAngle) / speed
}

// TurnRateByRadius is the turn rate implied by speed and radius.
func TurnRateByRadius(speed, r float64) float64 {
	if math.Almost(r, 0) {
		return 0
	}
	return speed / r
}

// BankAngle is the bank angle that yields the given turn rate at speed.
func BankAngle(speed, turnRate float64) float64 {
	return gomath.Atan(turnRate * speed / units.Gn)
}

// BankAngleByRadius is the (positive) bank angle of a turn with radius r.
func BankAngleByRadius(speed, r float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Atan2Safe(speed*speed, r*units.Gn)
}

// BankAngleGoal signs the bank angle toward the goal track.
func BankAngleGoal(track, goalTrack, signedBank float64) float64 {
	return float64(math.TurnDir(track, goalTrack)) * signedBank
}

// TurnRateGoal is the turn rate toward goalTrack at bank magnitude
// signedBank.
func TurnRateGoal(vo math.Velocity, goalTrack, signedBank float64) float64 {
	return TurnRate(vo.Gs(), BankAngleGoal(vo.Trk(), goalTrack, signedBank))
}

// TurnTimeOmega is the time to traverse deltaTrack at turn rate omega.
func TurnTimeOmega(deltaTrack, omega float64) float64 {
	if omega == 0 {
		return maxDouble
	}
	return gomath.Abs(deltaTrack / omega)
}

// TurnTimeBank is the time to traverse deltaTrack at the given ground speed
// and bank angle.
func TurnTimeBank(groundSpeed, deltaTrack, bankAngle float64) float64 {
	return TurnTimeOmega(deltaTrack, TurnRate(groundSpeed, bankAngle))
}

// TurnTime is the time for v0 to reach goalTrack via the shortest turn at
// bank magnitude signedBank.
func TurnTime(v0 math.Velocity, goalTrack, signedBank float64) float64 {
	return TurnTimeBank(v0.Gs(), math.SignedTurnDelta(v0.Trk(), goalTrack), signedBank)
}

// TurnDone reports whether the turn from currentTrack has reached
// targetTrack in the given direction.
func TurnDone(currentTrack, targetTrack float64, turnRight bool) bool {
	if math.TurnDelta(currentTrack, targetTrack) < 0.0001 {
		return true
	}
	if turnRight {
		return !math.Clockwise(currentTrack, targetTrack)
	}
	return math.Clockwise(currentTrack, targetTrack)
}

///////////////////////////////////////////////////////////////////////////
// turn projections

// TurnOmega projects a constant-rate turn for time t at turn rate omega.
// Ground speed is preserved and the heading changes by omega*t. The position
// update works from the sine and cosine of the turn angle directly, so it
// stays accurate for very small omega and reduces to Linear in the
// omega -> 0 limit.
func TurnOmega(s0 math.Vect3, v0 math.Velocity, t, omega float64) (math.Vect3, math.Velocity) {
	if math.Almost(omega, 0) {
		return Linear(s0, v0, t)
	}
	theta := omega * t
	sinT, cosT := gomath.Sin(theta), gomath.Cos(theta)
	// 1-cos(theta), written to avoid cancellation at small angles
	versT := 1 - cosT
	if cosT > 0 {
		versT = sinT * sinT / (1 + cosT)
	}
	nv := v0.MkAddTrk(theta)
	xT := s0.X + (v0.V.Y*versT+v0.V.X*sinT)/omega
	yT := s0.Y + (v0.V.Y*sinT-v0.V.X*versT)/omega
	zT := s0.Z + v0.V.Z*t
	return math.Vect3{X: xT, Y: yT, Z: zT}, nv
}

// Turn projects a turn of radius r in direction dir (+1 right, -1 left).
func Turn(s0 math.Vect3, v0 math.Velocity, t, r float64, dir int) (math.Vect3, math.Velocity) {
	omega := float64(dir) * TurnRateByRadius(v0.Gs(), r)
	return TurnOmega(s0, v0, t, omega)
}

// TurnByDist2D advances the state along the arc centered at center by the
// signed distance d, with ground speed gsAtD on exit. The position must not
// coincide with the center.
func TurnByDist2D(so, center math.Vect3, dir int, d, gsAtD float64) (math.Vect3, math.Velocity) {
	r := so.DistanceH(center)
	if r == 0 {
		return so, math.VelocityInvalid()
	}
	alpha := float64(dir) * d / r
	trkFromCenter := math.Track(center, so)
	nTrk := trkFromCenter + alpha
	sn := center.LinearByDist2D(nTrk, r).MkZ(0)
	finalTrk := nTrk + float64(dir)*gomath.Pi/2
	return sn, math.MkTrkGsVs(finalTrk, gsAtD, 0)
}

// TurnByAngle2D rotates the position about center by angle alpha.
func TurnByAngle2D(so, center math.Vect3, alpha float64) math.Vect3 {
	r := so.DistanceH(center)
	trkFromCenter := math.Track(center, so)
	return center.LinearByDist2D(trkFromCenter+alpha, r)
}

// CenterOfTurn is the center of the turn of radius r from position so in
// direction dir.
func CenterOfTurn(so, vo math.Vect2, r float64, dir int) math.Vect2 {
	var vperp math.Vect2
	if dir > 0 { // turn right
		vperp = vo.PerpR().Hat()
	} else {
		vperp = vo.PerpL().Hat()
	}
	return so.Add(vperp.Scal(r))
}

// TurnUntilTimeOmega turns at rate omega for turnTime, then continues
// linearly for the remainder of t.
func TurnUntilTimeOmega(so math.Vect3, vo math.Velocity, t, turnTime, omega float64) (math.Vect3, math.Velocity) {
	if t <= turnTime {
		return TurnOmega(so, vo, t, omega)
	}
	ns, nv := TurnOmega(so, vo, turnTime, omega)
	return Linear(ns, nv, t-turnTime)
}

// TurnUntilTimeRadius is TurnUntilTimeOmega parameterized by radius and
// direction.
func TurnUntilTimeRadius(so math.Vect3, vo math.Velocity, t, turnTime, r float64, dir int) (math.Vect3, math.Velocity) {
	if t <= turnTime {
		return Turn(so, vo, t, r, dir)
	}
	ns, nv := Turn(so, vo, turnTime, r, dir)
	return Linear(ns, nv, t-turnTime)
}

// TurnUntilTrack turns toward goalTrack at bank magnitude signedBank,
// choosing the direction of smallest angular delta, then continues linearly
// once the goal track is reached.
func TurnUntilTrack(so math.Vect3, vo math.Velocity, t, goalTrack, signedBank float64) (math.Vect3, math.Velocity) {
	omega := TurnRateGoal(vo, goalTrack, signedBank)
	turnTime := TurnTime(vo, goalTrack, signedBank)
	return TurnUntilTimeOmega(so, vo, t, turnTime, omega)
}

// TurnTrack is the position at the completion of a turn to goalTrack.
func TurnTrack(so math.Vect3, vo math.Velocity, goalTrack, signedBank float64) math.Vect3 {
	omega := TurnRateGoal(vo, goalTrack, signedBank)
	turnTime := TurnTime(vo, goalTrack, signedBank)
	ns, _ := TurnOmega(so, vo, turnTime, omega)
	return ns
}

///////////////////////////////////////////////////////////////////////////
// closest approach

// Tcpa is the non-negative time of horizontal closest approach between two
// linear trajectories; diverging or parallel geometries give 0.
func Tcpa(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity) float64 {
	s := so.Vect2().Sub(si.Vect2())
	v := vo.Vect2().Sub(vi.Vect2())
	nv := v.Sqv()
	if nv > 0 {
		return gomath.Max(0, -s.Dot(v)/nv)
	}
	return 0
}

// Dcpa is the horizontal distance at the time of closest approach.
func Dcpa(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity) float64 {
	t := Tcpa(so, vo, si, vi)
	s := so.Vect2().Sub(si.Vect2())
	v := vo.Vect2().Sub(vi.Vect2())
	return s.AddScal(t, v).Norm()
}
