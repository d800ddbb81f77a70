// math/velocity.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import gomath "math"

// Velocity is a 3-D velocity carrying its polar decomposition: trk is the
// compass track in (-pi,pi] (clockwise from north), gs is the non-negative
// ground speed, and V is the Cartesian triple. When gs is zero the track is
// preserved rather than reset, so a velocity zeroed with MkGs(0) recovers
// its direction when the speed is restored.
type Velocity struct {
	trk, gs float64
	V       Vect3
}

// VelocityZero is the zero velocity with a north track.
func VelocityZero() Velocity { return Velocity{} }

// VelocityInvalid is the all-NaN sentinel velocity.
func VelocityInvalid() Velocity {
	return Velocity{gomath.NaN(), gomath.NaN(), Vect3Invalid()}
}

// MkVxyz builds a velocity from Cartesian components in internal units.
func MkVxyz(vx, vy, vz float64) Velocity {
	return Velocity{
		trk: Atan2Safe(vx, vy),
		gs:  SqrtSafe(vx*vx + vy*vy),
		V:   Vect3{vx, vy, vz},
	}
}

// MkVel builds a velocity from a Cartesian vector.
func MkVel(v Vect3) Velocity {
	return MkVxyz(v.X, v.Y, v.Z)
}

// MkTrkGsVs builds a velocity from track [rad], ground speed [m/s], and
// vertical speed [m/s].
func MkTrkGsVs(trk, gs, vs float64) Velocity {
	return Velocity{
		trk: ToPi(trk),
		gs:  gs,
		V:   Vect3{gs * gomath.Sin(trk), gs * gomath.Cos(trk), vs},
	}
}

// Track is the compass track from p1 to p2.
func Track(p1, p2 Vect3) float64 {
	return Atan2Safe(p2.X-p1.X, p2.Y-p1.Y)
}

func (v Velocity) IsZero() bool {
	return v.V.IsZero()
}

func (v Velocity) IsInvalid() bool {
	return v.V.IsInvalid()
}

// Trk is the track angle in (-pi,pi].
func (v Velocity) Trk() float64 { return v.trk }

// Compass is the track angle in [0,2*pi).
func (v Velocity) Compass() float64 { return To2Pi(v.trk) }

// Gs is the ground speed, >= 0.
func (v Velocity) Gs() float64 { return v.gs }

// Vs is the vertical speed.
func (v Velocity) Vs() float64 { return v.V.Z }

func (v Velocity) Vect2() Vect2 { return v.V.Vect2() }

func (v Velocity) Norm() float64 { return v.V.Norm() }

func (v Velocity) Norm2D() float64 { return v.V.Norm2D() }

func (v Velocity) Sqv() float64 { return v.V.Sqv() }

// Hat2D is the horizontal unit vector of the track, valid even at gs=0.
func (v Velocity) Hat2D() Vect2 {
	return Vect2{gomath.Sin(v.trk), gomath.Cos(v.trk)}
}

// Neg reverses the velocity, flipping the track by pi.
func (v Velocity) Neg() Velocity {
	return Velocity{ToPi(v.trk + gomath.Pi), v.gs, v.V.Neg()}
}

// Add sums in a Cartesian vector. If the result has (almost) zero horizontal
// speed, the original track is retained.
func (v Velocity) Add(w Vect3) Velocity {
	if Almost(v.V.X, -w.X) && Almost(v.V.Y, -w.Y) {
		return Velocity{v.trk, 0, Vect3{0, 0, v.V.Z + w.Z}}
	}
	return MkVxyz(v.V.X+w.X, v.V.Y+w.Y, v.V.Z+w.Z)
}

// Sub subtracts a Cartesian vector, retaining the track at (almost) zero
// horizontal speed.
func (v Velocity) Sub(w Vect3) Velocity {
	if Almost(v.V.X, w.X) && Almost(v.V.Y, w.Y) {
		return Velocity{v.trk, 0, Vect3{0, 0, v.V.Z - w.Z}}
	}
	return MkVxyz(v.V.X-w.X, v.V.Y-w.Y, v.V.Z-w.Z)
}

// MkTrk returns a velocity with only the track changed.
func (v Velocity) MkTrk(trk float64) Velocity {
	return MkTrkGsVs(trk, v.gs, v.V.Z)
}

// MkAddTrk rotates the track by atrk using a single sine and cosine, which
// keeps repeated small rotations numerically stable.
func (v Velocity) MkAddTrk(atrk float64) Velocity {
	s, c := gomath.Sincos(atrk)
	return Velocity{
		trk: ToPi(v.trk + atrk),
		gs:  v.gs,
		V:   Vect3{v.V.X*c + v.V.Y*s, -v.V.X*s + v.V.Y*c, v.V.Z},
	}
}

// MkGs returns a velocity with only the ground speed changed; a negative
// speed yields the invalid velocity. The track is preserved even when the
// current speed is zero.
func (v Velocity) MkGs(ags float64) Velocity {
	if ags < 0 {
		return VelocityInvalid()
	}
	if v.gs > 0 {
		scal := ags / v.gs
		return Velocity{v.trk, ags, Vect3{v.V.X * scal, v.V.Y * scal, v.V.Z}}
	}
	return MkTrkGsVs(v.trk, ags, v.V.Z)
}

// MkVs returns a velocity with only the vertical speed changed.
func (v Velocity) MkVs(vs float64) Velocity {
	return Velocity{v.trk, v.gs, Vect3{v.V.X, v.V.Y, vs}}
}

// ZeroSmallVs zeroes the vertical speed when it is below the threshold.
func (v Velocity) ZeroSmallVs(threshold float64) Velocity {
	if gomath.Abs(v.V.Z) < threshold {
		return v.MkVs(0)
	}
	return v
}

func (v Velocity) AlmostEquals(w Velocity) bool {
	return v.V.AlmostEquals(w.V)
}

// Compare reports whether w is within the given track, ground speed, and
// vertical speed tolerances of v.
func (v Velocity) Compare(w Velocity, maxTrk, maxGs, maxVs float64) bool {
	if TurnDelta(w.Trk(), v.Trk()) > maxTrk {
		return false
	}
	if gomath.Abs(w.Gs()-v.Gs()) > maxGs {
		return false
	}
	return gomath.Abs(w.Vs()-v.Vs()) <= maxVs
}
