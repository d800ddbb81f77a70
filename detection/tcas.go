// detection/tcas.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package detection

import (
	gomath "math"

	"github.com/brunoga/deep"

	"github.com/nasa/daidalus/math"
	"github.com/nasa/daidalus/param"
	"github.com/nasa/daidalus/units"
)

///////////////////////////////////////////////////////////////////////////
// TCASTable

// tcasDefaultLevels are the upper altitude bounds of sensitivity levels
// 1..7 [ft]; there is an implicit eighth level with an infinite bound.
var tcasDefaultLevels = [7]float64{0, 1000, 2350, 5000, 10000, 20000, 42000}

// Per-sensitivity-level thresholds, indexed by SL-1 (SL 1..8).
var (
	tcasTATau  = [8]float64{0, 20, 25, 30, 40, 45, 48, 48}
	tcasRATau  = [8]float64{0, 0, 15, 20, 25, 30, 35, 35}
	tcasTADmod = [8]float64{0, 0.30, 0.33, 0.48, 0.75, 1.0, 1.3, 1.3} // [nmi]
	tcasRADmod = [8]float64{0, 0, 0.2, 0.35, 0.55, 0.8, 1.1, 1.1}     // [nmi]
	tcasTAZthr = [8]float64{0, 850, 850, 850, 850, 850, 850, 1200}    // [ft]
	tcasRAZthr = [8]float64{0, 0, 600, 600, 600, 600, 700, 800}       // [ft]
	tcasRAHmd  = [8]float64{0, 0, 1215, 2126, 3342, 4861, 6683, 6683} // [ft]
)

// TCASTable holds TCAS II sensitivity-level thresholds. Levels are indexed
// from 1; level k applies at altitudes up to Levels[k-1], and the last level
// is unbounded.
type TCASTable struct {
	Levels    []float64 // upper altitude bounds [m], one fewer than rows
	TAU       []float64 // [s]
	TCOA      []float64 // [s]
	DMOD      []float64 // [m]
	ZTHR      []float64 // [m]
	HMD       []float64 // [m]
	HMDFilter bool
}

// EmptyTCASTable is a zeroed table with a single unbounded level.
func EmptyTCASTable() TCASTable {
	return TCASTable{
		TAU:  make([]float64, 1),
		TCOA: make([]float64, 1),
		DMOD: make([]float64, 1),
		ZTHR: make([]float64, 1),
		HMD:  make([]float64, 1),
	}
}

// MakeTCASIITable is the standard TCAS II table: the RA thresholds when ra
// is true, the TA thresholds otherwise. The HMD filter is active only for
// RA.
func MakeTCASIITable(ra bool) TCASTable {
	t := TCASTable{HMDFilter: ra}
	t.Levels = make([]float64, 7)
	for i, ft := range tcasDefaultLevels {
		t.Levels[i] = units.From("ft", ft)
	}
	t.TAU = make([]float64, 8)
	t.TCOA = make([]float64, 8)
	t.DMOD = make([]float64, 8)
	t.ZTHR = make([]float64, 8)
	t.HMD = make([]float64, 8)
	for i := 0; i < 8; i++ {
		if ra {
			t.TAU[i] = tcasRATau[i]
			t.TCOA[i] = tcasRATau[i]
			t.DMOD[i] = units.From("nmi", tcasRADmod[i])
			t.ZTHR[i] = units.From("ft", tcasRAZthr[i])
			t.HMD[i] = units.From("ft", tcasRAHmd[i])
		} else {
			t.TAU[i] = tcasTATau[i]
			t.TCOA[i] = tcasTATau[i]
			t.DMOD[i] = units.From("nmi", tcasTADmod[i])
			t.ZTHR[i] = units.From("ft", tcasTAZthr[i])
			t.HMD[i] = units.From("nmi", tcasTADmod[i])
		}
	}
	return t
}

// SensitivityLevel returns the sensitivity level for an altitude in
// internal units; levels are indexed from 1.
func (t *TCASTable) SensitivityLevel(alt float64) int {
	for i, bound := range t.Levels {
		if alt <= bound {
			return i + 1
		}
	}
	return len(t.Levels) + 1
}

// IsValidSensitivityLevel reports whether sl indexes a row of the table.
func (t *TCASTable) IsValidSensitivityLevel(sl int) bool {
	return 1 <= sl && sl <= len(t.Levels)+1
}

// MaxSensitivityLevel is the last (unbounded) sensitivity level.
func (t *TCASTable) MaxSensitivityLevel() int {
	return len(t.Levels) + 1
}

// LevelAltitudeLowerBound is the lower altitude bound of level sl, skipping
// degenerate zero-width levels; -1 for an invalid level.
func (t *TCASTable) LevelAltitudeLowerBound(sl int) float64 {
	if !t.IsValidSensitivityLevel(sl) {
		return -1
	}
	for sl--; sl > 0 && t.Levels[sl-1] == 0; sl-- {
	}
	if sl > 0 {
		return t.Levels[sl-1]
	}
	return 0
}

// LevelAltitudeUpperBound is the (closed) upper altitude bound of level sl;
// +inf for the last level, -1 for an invalid one.
func (t *TCASTable) LevelAltitudeUpperBound(sl int) float64 {
	if !t.IsValidSensitivityLevel(sl) {
		return -1
	}
	if sl == t.MaxSensitivityLevel() {
		return gomath.Inf(1)
	}
	return t.Levels[sl-1]
}

func (t *TCASTable) row(vals []float64, sl int) float64 {
	if t.IsValidSensitivityLevel(sl) && sl <= len(vals) {
		return vals[sl-1]
	}
	return 0
}

func (t *TCASTable) GetTAU(sl int) float64  { return t.row(t.TAU, sl) }
func (t *TCASTable) GetTCOA(sl int) float64 { return t.row(t.TCOA, sl) }
func (t *TCASTable) GetDMOD(sl int) float64 { return t.row(t.DMOD, sl) }
func (t *TCASTable) GetZTHR(sl int) float64 { return t.row(t.ZTHR, sl) }
func (t *TCASTable) GetHMD(sl int) float64  { return t.row(t.HMD, sl) }

// Contains reports row-wise threshold dominance over tab, provided both
// tables share altitude levels and HMD filtering.
func (t *TCASTable) Contains(tab *TCASTable) bool {
	if len(t.Levels) != len(tab.Levels) {
		return false
	}
	// An active HMD filter shrinks the volume, so a filtered table cannot
	// contain an unfiltered one.
	if t.HMDFilter && !tab.HMDFilter {
		return false
	}
	for i := range t.Levels {
		if t.Levels[i] != tab.Levels[i] {
			return false
		}
	}
	for i := range t.TAU {
		if t.TAU[i] < tab.TAU[i] || t.TCOA[i] < tab.TCOA[i] || t.DMOD[i] < tab.DMOD[i] ||
			t.ZTHR[i] < tab.ZTHR[i] || t.HMD[i] < tab.HMD[i] {
			return false
		}
	}
	return true
}

func (t *TCASTable) Equals(tab *TCASTable) bool {
	return t.Contains(tab) && tab.Contains(t)
}

func (t *TCASTable) copy() TCASTable {
	return deep.MustCopy(*t)
}

///////////////////////////////////////////////////////////////////////////
// 2-D TCAS geometry

// tcasTauMod is the TCAS modified tau; 0 at zero closure.
func tcasTauMod(dmod float64, s, v math.Vect2) float64 {
	sdotv := s.Dot(v)
	if math.Almost(sdotv, 0) {
		return 0
	}
	return (math.Sqr(dmod) - s.Sqv()) / sdotv
}

func tcasHorizontalRA(dmod, tau float64, s, v math.Vect2) bool {
	if s.Dot(v) >= 0 {
		return s.Norm() <= dmod
	}
	return s.Norm() <= dmod || tcasTauMod(dmod, s, v) <= tau
}

func tcasCD2DAfter(hmdThr float64, s, vo, vi math.Vect2, t float64) bool {
	v := vo.Sub(vi)
	return (vo.AlmostEquals(vi) && s.Sqv() <= math.Sqr(hmdThr)) ||
		(v.Sqv() > 0 && delta(s, v, hmdThr) >= 0 &&
			thetaD(s, v, exit, hmdThr) >= t)
}

func tcasNominalTau(b, t float64, s, v math.Vect2, rr float64) float64 {
	if v.IsZero() {
		return b
	}
	return gomath.Max(b, gomath.Min(t, -s.Dot(v)/v.Sqv()-rr/2))
}

// tcasTimeOfMinTau is the time in [b,t] minimizing the modified tau.
func tcasTimeOfMinTau(dmod, b, t float64, s, v math.Vect2) float64 {
	if v.ScalAdd(b, s).Dot(v) >= 0 {
		return b
	}
	d := delta(s, v, dmod)
	rr := 0.0
	if d < 0 {
		rr = 2 * gomath.Sqrt(-d) / v.Sqv()
	}
	if v.ScalAdd(t, s).Dot(v) < 0 {
		return t
	}
	return tcasNominalTau(b, t, s, v, rr)
}

// tcasRA2DInterval is the 2-D RA interval within [b,t].
func tcasRA2DInterval(dmod, tau, b, t float64, s, vo, vi math.Vect2) LossData {
	tIn := b
	tOut := t
	v := vo.Sub(vi)
	sqs := s.Sqv()
	sdotv := s.Dot(v)
	sqD := math.Sqr(dmod)
	if vo.AlmostEquals(vi) && sqs <= sqD {
		return LossData{TimeIn: tIn, TimeOut: tOut}
	}
	sqv := v.Sqv()
	if sqs <= sqD {
		return LossData{TimeIn: tIn, TimeOut: math.Root2b(sqv, sdotv, sqs-sqD, exit)}
	}
	bq := 2*sdotv + tau*sqv
	cq := sqs + tau*sdotv - sqD
	if sdotv >= 0 || math.Discr(sqv, bq, cq) < 0 {
		return LossData{TimeIn: t + 1, TimeOut: 0}
	}
	tIn = math.Root(sqv, bq, cq, entry)
	if delta(s, v, dmod) >= 0 {
		tOut = thetaD(s, v, exit, dmod)
	} else {
		tOut = math.Root(sqv, bq, cq, exit)
	}
	return LossData{TimeIn: tIn, TimeOut: tOut}
}

///////////////////////////////////////////////////////////////////////////
// TCAS3D

// TCAS3D is the legacy TCAS II resolution-advisory volume, preserved for
// regression and comparison. Thresholds vary with the ownship's sensitivity
// level, so the conflict interval is swept across level changes within the
// lookahead window.
type TCAS3D struct {
	Table TCASTable
	id    string
}

// NewTCAS3D wraps a TCAS table in a detector.
func NewTCAS3D(tab TCASTable) *TCAS3D {
	return &TCAS3D{Table: tab}
}

// TCASIIRA is the RA detector with standard thresholds.
func TCASIIRA() *TCAS3D {
	return NewTCAS3D(MakeTCASIITable(true))
}

// TCASIITA is the TA detector with standard thresholds.
func TCASIITA() *TCAS3D {
	return NewTCAS3D(MakeTCASIITable(false))
}

func tcasVerticalRA(sz, vz, zthr, tcoa float64) bool {
	if gomath.Abs(sz) <= zthr {
		return true
	}
	if math.Almost(vz, 0) {
		return false
	}
	t := timeCoalt(sz, vz)
	return 0 <= t && t <= tcoa
}

// RA reports a resolution advisory at the current instant.
func (d *TCAS3D) RA(so, vo, si, vi math.Vect3) bool {
	s2 := so.Vect2().Sub(si.Vect2())
	vo2 := vo.Vect2()
	vi2 := vi.Vect2()
	sl := d.Table.SensitivityLevel(so.Z)
	if d.Table.HMDFilter && !tcasCD2DAfter(d.Table.GetHMD(sl), s2, vo2, vi2, 0) {
		return false
	}
	return tcasHorizontalRA(d.Table.GetDMOD(sl), d.Table.GetTAU(sl), s2, vo2.Sub(vi2)) &&
		tcasVerticalRA(so.Z-si.Z, vo.Z-vi.Z, d.Table.GetZTHR(sl), d.Table.GetTCOA(sl))
}

// ra3dInterval is the RA interval within [b,t] at a fixed sensitivity
// level; the third result is the time of minimum tau used as critical time.
func (d *TCAS3D) ra3dInterval(sl int, so2 math.Vect2, soz float64, vo2 math.Vect2, voz float64,
	si2 math.Vect2, siz float64, vi2 math.Vect2, viz float64, b, t float64) (float64, float64, float64) {
	timeIn := t
	timeOut := b
	timeMinTau := gomath.Inf(1)
	s2 := so2.Sub(si2)
	v2 := vo2.Sub(vi2)
	sz := soz - siz
	vz := voz - viz
	usehmdf := d.Table.HMDFilter
	tauThr := d.Table.GetTAU(sl)
	tcoaThr := d.Table.GetTCOA(sl)
	dmod := d.Table.GetDMOD(sl)
	hmdThr := d.Table.GetHMD(sl)
	zthr := d.Table.GetZTHR(sl)

	if usehmdf && !tcasCD2DAfter(hmdThr, s2, vo2, vi2, b) {
		timeMinTau = tcasTimeOfMinTau(dmod, b, t, s2, v2)
		return timeIn, timeOut, timeMinTau
	}
	if math.Almost(voz, viz) && gomath.Abs(sz) > zthr {
		timeMinTau = tcasTimeOfMinTau(dmod, b, t, s2, v2)
		return timeIn, timeOut, timeMinTau
	}
	tentry := b
	texit := t
	if !math.Almost(voz, viz) {
		actH := gomath.Max(zthr, gomath.Abs(vz)*tcoaThr)
		tentry = thetaH(sz, vz, entry, actH)
		texit = thetaH(sz, vz, exit, zthr)
	}
	ventry := v2.ScalAdd(tentry, s2)
	exitAtCentry := ventry.Dot(v2) >= 0
	losAtCentry := ventry.Sqv() <= math.Sqr(hmdThr)
	if texit < b || t < tentry {
		timeMinTau = tcasTimeOfMinTau(dmod, b, t, s2, v2)
		return timeIn, timeOut, timeMinTau
	}
	tin := gomath.Max(b, tentry)
	tout := gomath.Min(t, texit)
	ra2d := tcasRA2DInterval(dmod, tauThr, tin, tout, s2, vo2, vi2)
	raIn := ra2d.TimeIn
	raOut := ra2d.TimeOut
	raInLookahead := gomath.Max(tin, gomath.Min(tout, raIn))
	raOutLookahead := gomath.Max(tin, gomath.Min(tout, raOut))
	if raIn > raOut || raOut < tin || raIn > tout ||
		(usehmdf && hmdThr < dmod && exitAtCentry && !losAtCentry) {
		timeMinTau = tcasTimeOfMinTau(dmod, b, t, s2, v2)
		return timeIn, timeOut, timeMinTau
	}
	if usehmdf && hmdThr < dmod {
		exitTheta := t
		if v2.Sqv() > 0 {
			exitTheta = gomath.Max(b, gomath.Min(thetaD(s2, v2, exit, hmdThr), t))
		}
		minRAOutTheta := gomath.Min(raOutLookahead, exitTheta)
		timeIn = raInLookahead
		timeOut = minRAOutTheta
		if raInLookahead <= minRAOutTheta {
			timeMinTau = tcasTimeOfMinTau(dmod, raInLookahead, minRAOutTheta, s2, v2)
		} else {
			timeMinTau = tcasTimeOfMinTau(dmod, b, t, s2, v2)
		}
		return timeIn, timeOut, timeMinTau
	}
	timeIn = raInLookahead
	timeOut = raOutLookahead
	timeMinTau = tcasTimeOfMinTau(dmod, raInLookahead, raOutLookahead, s2, v2)
	return timeIn, timeOut, timeMinTau
}

// ConflictDetection sweeps the RA interval across the sensitivity levels
// traversed by the ownship's linear vertical profile within [b,t].
func (d *TCAS3D) ConflictDetection(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) ConflictData {
	s := so.Sub(si)
	v := vo.V.Sub(vi.V)
	so2 := so.Vect2()
	vo2 := vo.Vect2()
	si2 := si.Vect2()
	vi2 := vi.Vect2()

	maxSL := d.Table.MaxSensitivityLevel()
	dmodMax := d.Table.GetDMOD(maxSL)
	zthrMax := d.Table.GetZTHR(maxSL)

	tin := gomath.Inf(1)
	tout := gomath.Inf(-1)
	tmin := gomath.Inf(1)
	slFirst := d.Table.SensitivityLevel(so.Z + b*vo.Vs())
	slLast := d.Table.SensitivityLevel(so.Z + t*vo.Vs())
	if slFirst == slLast || math.Almost(vo.Vs(), 0) {
		tin, tout, tmin = d.ra3dInterval(slFirst, so2, so.Z, vo2, vo.Vs(), si2, si.Z, vi2, vi.Vs(), b, t)
	} else {
		sl := slFirst
		for tB := b; tB < t; {
			if d.Table.IsValidSensitivityLevel(sl) {
				var level float64
				if slFirst < slLast {
					level = d.Table.LevelAltitudeUpperBound(sl)
				} else {
					level = d.Table.LevelAltitudeLowerBound(sl)
				}
				tLevel := gomath.Inf(1)
				if !gomath.IsInf(level, 0) {
					tLevel = (level - so.Z) / vo.Vs()
				}
				rin, rout, rmin := d.ra3dInterval(sl, so2, so.Z, vo2, vo.Vs(), si2, si.Z, vi2, vi.Vs(), tB, gomath.Min(tLevel, t))
				if math.AlmostLess(rin, rout) {
					tin = gomath.Min(tin, rin)
					tout = gomath.Max(tout, rout)
				}
				tmin = gomath.Min(tmin, rmin)
				tB = tLevel
				if sl == slLast {
					break
				}
			}
			if slFirst < slLast {
				sl++
			} else {
				sl--
			}
		}
	}
	dmin := s.AddScal(tmin, v).CylNorm(dmodMax, zthrMax)
	return ConflictData{
		LossData: LossData{TimeIn: tin, TimeOut: tout},
		TimeCrit: tmin,
		DistCrit: dmin,
		S:        s,
		V:        v,
	}
}

func (d *TCAS3D) Violation(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity) bool {
	return d.RA(so, vo.V, si, vi.V)
}

func (d *TCAS3D) Conflict(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) bool {
	return conflictWithin(d, so, vo, si, vi, b, t)
}

func (d *TCAS3D) Copy() Detector {
	return &TCAS3D{Table: d.Table.copy(), id: d.id}
}

func (d *TCAS3D) Make() Detector {
	return NewTCAS3D(MakeTCASIITable(true))
}

func (d *TCAS3D) TypeName() string { return "TCAS3D" }

func (d *TCAS3D) Identifier() string { return d.id }

func (d *TCAS3D) SetIdentifier(id string) { d.id = id }

func (d *TCAS3D) Parameters() param.Data {
	p := param.New()
	d.UpdateParamData(p)
	return p
}

func (d *TCAS3D) UpdateParamData(p param.Data) {
	p.SetBool("TCAS_HMDFilter", d.Table.HMDFilter)
	p.Set("id", d.id)
}

func (d *TCAS3D) SetParameters(p param.Data) {
	if p.Contains("TCAS_HMDFilter") {
		d.Table.HMDFilter = p.GetBool("TCAS_HMDFilter")
	}
	if p.Contains("id") {
		d.id = p.GetString("id")
	}
}

func (d *TCAS3D) Contains(other Detector) bool {
	if cd, ok := other.(*TCAS3D); ok {
		return d.Table.Contains(&cd.Table)
	}
	return false
}

func (d *TCAS3D) Equals(other Detector) bool {
	cd, ok := other.(*TCAS3D)
	return ok && d.Table.Equals(&cd.Table) && d.id == cd.id
}
