// kinematics/gs.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package kinematics

import (
	gomath "math"

	"github.com/nasa/daidalus/math"
)

///////////////////////////////////////////////////////////////////////////
// ground-speed maneuvers

// GsAccelPos is the position after accelerating along the current track for
// time t at horizontal acceleration a; altitude advances linearly.
func GsAccelPos(so3 math.Vect3, vo3 math.Velocity, t, a float64) math.Vect3 {
	so := so3.Vect2()
	vo := vo3.Vect2()
	sK := so.Add(vo.Hat().Scal(vo.Norm()*t + 0.5*a*t*t))
	return math.MkVect3(sK, so3.Z+vo3.Vs()*t)
}

// GsAccel projects a constant ground-speed acceleration a for time t.
func GsAccel(so math.Vect3, vo math.Velocity, t, a float64) (math.Vect3, math.Velocity) {
	nvo := vo.MkGs(vo.Gs() + a*t)
	return GsAccelPos(so, vo, t, a), nvo
}

// AccelTime is the time to change speed from gs0 to goalGs at acceleration
// magnitude accel.
func AccelTime(gs0, goalGs, accel float64) float64 {
	deltaGs := gs0 - goalGs
	if deltaGs == 0 || accel == 0 {
		return 0
	}
	return gomath.Abs(deltaGs / accel)
}

// GsAccelTime is the time for vo to reach goalGs at acceleration magnitude
// gsAccel.
func GsAccelTime(vo math.Velocity, goalGs, gsAccel float64) float64 {
	return AccelTime(vo.Gs(), goalGs, gsAccel)
}

// GsAccelGoal projects the state to the point where goalGs is attained and
// also returns the time that takes.
func GsAccelGoal(so math.Vect3, vo math.Velocity, goalGs, gsAccel float64) (math.Vect3, math.Velocity, float64) {
	accelTime := GsAccelTime(vo, goalGs, gsAccel)
	gsAccel = gomath.Abs(gsAccel)
	sgn := 1.0
	if goalGs < vo.Gs() {
		sgn = -1
	}
	nso := GsAccelPos(so, vo, accelTime, sgn*gsAccel)
	return nso, vo.MkGs(goalGs), accelTime
}

// GsAccelUntil accelerates toward goalGs, then holds it for the remainder
// of t.
func GsAccelUntil(so math.Vect3, vo math.Velocity, t, goalGs, gsAccel float64) (math.Vect3, math.Velocity) {
	accelTime := GsAccelTime(vo, goalGs, gsAccel)
	gsAccel = gomath.Abs(gsAccel)
	sgn := 1.0
	if goalGs < vo.Gs() {
		sgn = -1
	}
	if t <= accelTime {
		return GsAccel(so, vo, t, sgn*gsAccel)
	}
	ns, nv := GsAccel(so, vo, accelTime, sgn*gsAccel)
	return Linear(ns, nv, t-accelTime)
}

// AccelToDist returns the speed attained and the time taken when traveling
// distance dist from initial speed gsIn at acceleration gsAccel. The time
// is -1 when the distance cannot be reached (the speed would pass through
// zero first).
func AccelToDist(gsIn, dist, gsAccel float64) (float64, float64) {
	if gsIn < 0 || dist < 0 || (gsAccel < 0 && dist > -0.5*gsIn*gsIn/gsAccel) {
		return 0, -1
	}
	ta := math.Root(0.5*gsAccel, gsIn, -dist, 1)
	if ta >= 0 {
		return gsIn + gsAccel*ta, ta
	}
	tb := math.Root(0.5*gsAccel, gsIn, -dist, -1)
	if tb >= 0 {
		return gsIn + gsAccel*tb, tb
	}
	return 0, -1
}

// AccelDist is the distance needed to change speed from gs1 to gs2 at
// acceleration magnitude a.
func AccelDist(gs1, gs2, a float64) float64 {
	if a == 0 {
		return 0
	}
	accelTime := gomath.Abs((gs1 - gs2) / a)
	return accelTime * (gs1 + gs2) / 2
}

// AccelUntil returns the distance traveled and final speed after time dt
// when accelerating from gs0 toward gsTarget at magnitude gsAccel.
func AccelUntil(gs0, gsTarget, gsAccel, dt float64) (float64, float64) {
	if math.Almost(gsAccel, 0) {
		return gs0 * dt, gs0
	}
	deltaGs := gsTarget - gs0
	t0 := gomath.Abs(deltaGs / gsAccel)
	a := float64(math.Sign(deltaGs)) * gomath.Abs(gsAccel)
	if dt < t0 {
		return gs0*dt + 0.5*a*dt*dt, gs0 + a*dt
	}
	return gs0*t0 + 0.5*a*t0*t0 + (dt-t0)*gsTarget, gsTarget
}

// TimeToDistance is the time required to cover dist starting at speed gs
// with signed acceleration aGs, or -1 when the speed reaches zero first.
func TimeToDistance(gs, aGs, dist float64) float64 {
	return math.RootNegC(0.5*aGs, gs, -dist)
}
