// detection/cdcylinder.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package detection

import (
	gomath "math"

	"github.com/nasa/daidalus/math"
	"github.com/nasa/daidalus/param"
	"github.com/nasa/daidalus/units"
)

// CDCylinder detects loss of separation against a fixed cylinder: loss iff
// horizontal distance <= D and vertical distance <= H. It is the degenerate
// well-clear volume with all time thresholds at zero.
type CDCylinder struct {
	D, H         float64 // radius and half height [m]
	dUnit, hUnit string
	id           string
}

// DefaultCDCylinder is the legacy CD3D cylinder, D=5nmi, H=1000ft.
func DefaultCDCylinder() *CDCylinder {
	return MakeCDCylinder(5, "nmi", 1000, "ft")
}

// MkCDCylinder builds a cylinder from values in internal units.
func MkCDCylinder(d, h float64) *CDCylinder {
	return &CDCylinder{D: gomath.Abs(d), H: gomath.Abs(h), dUnit: "m", hUnit: "m"}
}

// MakeCDCylinder builds a cylinder from values in the given units.
func MakeCDCylinder(d float64, dUnit string, h float64, hUnit string) *CDCylinder {
	return &CDCylinder{
		D:     units.From(dUnit, gomath.Abs(d)),
		H:     units.From(hUnit, gomath.Abs(h)),
		dUnit: dUnit,
		hUnit: hUnit,
	}
}

// Detection is the loss-of-separation interval of the relative state within
// [b,t].
func (c *CDCylinder) Detection(s math.Vect3, vo, vi math.Vect3, b, t float64) LossData {
	return cd3dDetection(s, vo, vi, c.D, c.H, b, t)
}

func (c *CDCylinder) ConflictDetection(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) ConflictData {
	s := so.Sub(si)
	v := vo.V.Sub(vi.V)
	tTca := cd3dTccpaIn(s, vo.V, vi.V, c.D, c.H, b, t)
	distTca := s.AddScal(tTca, v).CylNorm(c.D, c.H)
	ld := cd3dDetection(s, vo.V, vi.V, c.D, c.H, b, t)
	return ConflictData{LossData: ld, TimeCrit: tTca, DistCrit: distTca, S: s, V: v}
}

func (c *CDCylinder) Violation(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity) bool {
	return losCylinder(so.Sub(si), c.D, c.H)
}

func (c *CDCylinder) Conflict(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) bool {
	return conflictWithin(c, so, vo, si, vi, b, t)
}

// TimeOfClosestApproach is the critical time of the cylindrical encounter
// within [b,t].
func (c *CDCylinder) TimeOfClosestApproach(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) float64 {
	return cd3dTccpaIn(so.Sub(si), vo.V, vi.V, c.D, c.H, b, t)
}

func (c *CDCylinder) Copy() Detector {
	cc := *c
	return &cc
}

func (c *CDCylinder) Make() Detector {
	return DefaultCDCylinder()
}

func (c *CDCylinder) TypeName() string { return "CDCylinder" }

func (c *CDCylinder) Identifier() string { return c.id }

func (c *CDCylinder) SetIdentifier(id string) { c.id = id }

func (c *CDCylinder) Parameters() param.Data {
	p := param.New()
	c.UpdateParamData(p)
	return p
}

func (c *CDCylinder) UpdateParamData(p param.Data) {
	p.SetInternal("D", c.D, c.dUnit)
	p.SetInternal("H", c.H, c.hUnit)
	p.Set("id", c.id)
}

func (c *CDCylinder) SetParameters(p param.Data) {
	if p.Contains("D") {
		c.D = gomath.Abs(p.GetValue("D"))
		c.dUnit = p.GetUnit("D")
	}
	if p.Contains("H") {
		c.H = gomath.Abs(p.GetValue("H"))
		c.hUnit = p.GetUnit("H")
	}
	if p.Contains("id") {
		c.id = p.GetString("id")
	}
}

func (c *CDCylinder) Contains(other Detector) bool {
	if cd, ok := other.(*CDCylinder); ok {
		return c.D >= cd.D && c.H >= cd.H
	}
	return false
}

func (c *CDCylinder) Equals(other Detector) bool {
	cd, ok := other.(*CDCylinder)
	return ok && c.id == cd.id && c.D == cd.D && c.H == cd.H
}

func (c *CDCylinder) String() string {
	s := c.TypeName() + " = {D = " + units.Str(c.dUnit, c.D, 6) + ", H = " + units.Str(c.hUnit, c.H, 6) + "}"
	if c.id != "" {
		s = c.id + " : " + s
	}
	return s
}
