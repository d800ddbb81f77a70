// kinematics/vs.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package kinematics

import (
	gomath "math"

	"github.com/nasa/daidalus/math"
)

///////////////////////////////////////////////////////////////////////////
// vertical-speed maneuvers

// ElevationAngle is the climb angle (negative glide-slope angle) of v.
func ElevationAngle(v math.Velocity) float64 {
	return math.Atan2Safe(v.Vs(), v.Gs())
}

// VsAccelPos is the position after accelerating vertically for time t at
// acceleration a; the horizontal components advance linearly.
func VsAccelPos(so3 math.Vect3, vo3 math.Velocity, t, a float64) math.Vect3 {
	return math.Vect3{
		X: so3.X + t*vo3.V.X,
		Y: so3.Y + t*vo3.V.Y,
		Z: so3.Z + vo3.Vs()*t + 0.5*a*t*t,
	}
}

// VsAccel projects a constant vertical acceleration a for time t.
func VsAccel(so3 math.Vect3, vo3 math.Velocity, t, a float64) (math.Vect3, math.Velocity) {
	nvo := vo3.MkVs(vo3.Vs() + a*t)
	return VsAccelPos(so3, vo3, t, a), nvo
}

// VsAccelTime is the time for vo to reach goalVs at acceleration magnitude
// vsAccel.
func VsAccelTime(vo math.Velocity, goalVs, vsAccel float64) float64 {
	return AccelTime(vo.Vs(), goalVs, vsAccel)
}

// VsAccelGoal projects the state to the point where goalVs is attained and
// also returns the time that takes.
func VsAccelGoal(so math.Vect3, vo math.Velocity, goalVs, vsAccel float64) (math.Vect3, math.Velocity, float64) {
	sgn := 1.0
	if goalVs < vo.Vs() {
		sgn = -1
	}
	accelTime := VsAccelTime(vo, goalVs, vsAccel)
	nso := VsAccelPos(so, vo, accelTime, sgn*vsAccel)
	return nso, vo.MkVs(goalVs), accelTime
}

// VsAccelUntil accelerates vertically toward goalVs, then holds it for the
// remainder of t.
func VsAccelUntil(so math.Vect3, vo math.Velocity, t, goalVs, vsAccel float64) (math.Vect3, math.Velocity) {
	vsAccel = gomath.Abs(vsAccel)
	accelTime := VsAccelTime(vo, goalVs, vsAccel)
	sgn := 1.0
	if goalVs < vo.Vs() {
		sgn = -1
	}
	if t <= accelTime {
		return VsAccel(so, vo, t, sgn*vsAccel)
	}
	posEnd := VsAccelPos(so, vo, accelTime, sgn*vsAccel)
	nvo := vo.MkVs(goalVs)
	return Linear(posEnd, nvo, t-accelTime)
}

// TimeNeededForFLC is the time needed for a flight-level change of deltaZ at
// climb rate vsFLC; when kinematic, the acceleration ramp is included.
func TimeNeededForFLC(deltaZ, vsFLC, vsAccel float64, kinematic bool) float64 {
	if kinematic {
		return gomath.Abs(deltaZ/vsFLC) + gomath.Abs(vsFLC/vsAccel)
	}
	return gomath.Abs(deltaZ / vsFLC)
}

///////////////////////////////////////////////////////////////////////////
// vertical level-out

// LevelOutTimes describes a three-phase level-out profile: accelerate at A1
// until T1, hold the climb rate until T2, then decelerate at A2, reaching
// the target altitude with zero vertical speed at T3. When the profile is
// degenerate (no constant phase), T1 == T2. T1 < 0 marks an infeasible
// request.
type LevelOutTimes struct {
	T1, T2, T3 float64
	A1, A2     float64
}

func v1(voz, a1, t float64) float64 {
	return voz + a1*t
}

func s1(voz, a1, t float64) float64 {
	return voz*t + 0.5*a1*t*t
}

func t3(voz, a1 float64) float64 {
	return -voz / a1
}

func s3(voz, a1 float64) float64 {
	return s1(voz, a1, t3(voz, a1))
}

func vsLevelOutTimesBase(s0z, v0z, climbRate, targetAlt, accelUp, accelDown float64, allowClimbRateChange bool) LevelOutTimes {
	altDir := -1.0
	if targetAlt >= s0z {
		altDir = 1
	}
	climbRate = altDir * gomath.Abs(climbRate)
	if allowClimbRateChange {
		climbRate = altDir * gomath.Max(gomath.Abs(climbRate), gomath.Abs(v0z))
	}
	s := targetAlt - s0z
	a1 := accelDown
	if climbRate >= v0z {
		a1 = accelUp
	}
	a2 := accelUp
	if targetAlt >= s0z {
		a2 = accelDown
	}
	t1 := (climbRate - v0z) / a1

	if gomath.Abs(s) >= gomath.Abs(s1(v0z, a1, t1)+s3(v1(v0z, a1, t1), a2)) {
		t2 := (s - s1(v0z, a1, t1) - s3(v1(v0z, a1, t1), a2)) / climbRate
		return LevelOutTimes{T1: t1, T2: t1 + t2, T3: t1 + t2 + t3(climbRate, a2), A1: a1, A2: a2}
	}
	// No constant-rate phase: reduce the climb rate by solving for the
	// time at which deceleration must begin.
	aa := 0.5 * a1 * (1 - a1/a2)
	bb := v0z * (1 - a1/a2)
	cc := -v0z*v0z/(2*a2) - s
	root1 := math.Root(aa, bb, cc, 1)
	root2 := math.Root(aa, bb, cc, -1)
	if root1 < 0 {
		t1 = root2
	} else if root2 < 0 {
		t1 = root1
	} else {
		t1 = gomath.Min(root1, root2)
	}
	return LevelOutTimes{T1: t1, T2: t1, T3: t1 + t3(v1(v0z, a1, t1), a2), A1: a1, A2: a2}
}

// VsLevelOutTimes computes the phase boundaries and accelerations of the
// level-out profile from altitude s0z and vertical speed v0z toward
// targetAlt at the requested climbRate. The accelerations are chosen from
// accelUp/accelDown by the signs of (targetAlt - s0z) and
// (climbRate - v0z). When the initial vertical speed opposes the altitude
// change, a pre-phase cancels it first.
func VsLevelOutTimes(s0z, v0z, climbRate, targetAlt, accelUp, accelDown float64, allowClimbRateChange bool) LevelOutTimes {
	sgnv := -1.0
	if v0z >= 0 {
		sgnv = 1
	}
	altDir := -1.0
	if targetAlt >= s0z {
		altDir = 1
	}
	s := targetAlt - s0z
	a1 := accelDown
	if targetAlt >= s0z {
		a1 = accelUp
	}
	a2 := accelUp
	if targetAlt >= s0z {
		a2 = accelDown
	}

	if sgnv == altDir || math.Almost(v0z, 0) {
		if gomath.Abs(s) >= gomath.Abs(s3(v0z, a2)) {
			return vsLevelOutTimesBase(s0z, v0z, climbRate, targetAlt, accelUp, accelDown, allowClimbRateChange)
		}
		ot := vsLevelOutTimesBase(s0z+s3(v0z, a2), 0, climbRate, targetAlt, accelUp, accelDown, allowClimbRateChange)
		off := -v0z / a2
		return LevelOutTimes{T1: off + ot.T1, T2: off + ot.T2, T3: off + ot.T3, A1: ot.A1, A2: ot.A2}
	}
	ot := vsLevelOutTimesBase(s0z+s3(v0z, a1), 0, climbRate, targetAlt, accelUp, accelDown, allowClimbRateChange)
	off := -v0z / a1
	return LevelOutTimes{T1: off + ot.T1, T2: off + ot.T2, T3: off + ot.T3, A1: ot.A1, A2: ot.A2}
}

// VsLevelOutTimesSym is VsLevelOutTimes with symmetric accelerations +a/-a.
func VsLevelOutTimesSym(so math.Vect3, vo math.Velocity, climbRate, targetAlt, a float64, allowClimbRateChange bool) LevelOutTimes {
	return VsLevelOutTimes(so.Z, vo.Vs(), climbRate, targetAlt, a, -a, allowClimbRateChange)
}

// vsLevelOutCalc evaluates the altitude/vertical-speed profile at time t.
func vsLevelOutCalc(soz, voz, targetAlt float64, lt LevelOutTimes, t float64) (float64, float64) {
	switch {
	case t <= lt.T1:
		return soz + s1(voz, lt.A1, t), voz + lt.A1*t
	case t <= lt.T2:
		return soz + s1(voz, lt.A1, lt.T1) + v1(voz, lt.A1, lt.T1)*(t-lt.T1), voz + lt.A1*lt.T1
	case t <= lt.T3:
		nz := soz + s1(voz, lt.A1, lt.T1) + v1(voz, lt.A1, lt.T1)*(lt.T2-lt.T1) +
			s1(v1(voz, lt.A1, lt.T1), lt.A2, t-lt.T2)
		return nz, voz + lt.A1*lt.T1 + lt.A2*(t-lt.T2)
	default:
		return targetAlt, 0
	}
}

// VsLevelOutCalculation evaluates the full state at time t given
// precomputed level-out times.
func VsLevelOutCalculation(so math.Vect3, vo math.Velocity, targetAlt float64, lt LevelOutTimes, t float64) (math.Vect3, math.Velocity) {
	nz, nvs := vsLevelOutCalc(so.Z, vo.Vs(), targetAlt, lt, t)
	ns := so.Linear(vo.V, t).MkZ(nz)
	return ns, vo.MkVs(nvs)
}

// VsLevelOut projects the level-out maneuver to time t: accelerate to the
// climb rate, hold, and decelerate to level flight at targetAlt.
func VsLevelOut(so math.Vect3, vo math.Velocity, t, climbRate, targetAlt, a float64, allowClimbRateChange bool) (math.Vect3, math.Velocity) {
	lt := VsLevelOutTimes(so.Z, vo.Vs(), climbRate, targetAlt, a, -a, allowClimbRateChange)
	return VsLevelOutCalculation(so, vo, targetAlt, lt, t)
}

// VsLevelOutFinal returns the state at completion of the level-out together
// with the completion time; an infeasible profile yields invalid sentinels
// and time -1.
func VsLevelOutFinal(so math.Vect3, vo math.Velocity, climbRate, targetAlt, a float64, allowClimbRateChange bool) (math.Vect3, math.Velocity, float64) {
	lt := VsLevelOutTimes(so.Z, vo.Vs(), climbRate, targetAlt, a, -a, allowClimbRateChange)
	if lt.T1 < 0 { // overshoot case
		return math.Vect3Invalid(), math.VelocityInvalid(), -1
	}
	ns, nv := VsLevelOutCalculation(so, vo, targetAlt, lt, lt.T3)
	return ns, nv, lt.T3
}
