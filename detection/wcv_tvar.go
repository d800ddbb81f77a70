// detection/wcv_tvar.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package detection

import (
	gomath "math"

	"github.com/nasa/daidalus/math"
	"github.com/nasa/daidalus/param"
)

// HorizontalVariant selects the time variable of a WCVTvar detector.
type HorizontalVariant int

const (
	// HorizTauMod uses modified tau: (DTHR^2 - |s|^2)/(s.v) on converging
	// geometries.
	HorizTauMod HorizontalVariant = iota
	// HorizTcpa gates on time to closest approach relative to TTHR.
	HorizTcpa
	// HorizTep gates on time to entry point relative to TTHR.
	HorizTep
	// HorizHz is the hazard-zone variant: TAUMOD horizontally with the
	// VMOD vertical model.
	HorizHz
)

func (h HorizontalVariant) String() string {
	switch h {
	case HorizTcpa:
		return "WCV_TCPA"
	case HorizTep:
		return "WCV_TEP"
	case HorizHz:
		return "WCV_HZ"
	default:
		return "WCV_TAUMOD"
	}
}

// WCVTvar is a time-variable well-clear volume detector: a horizontal
// predicate on relative position/velocity gated by the time variable of the
// chosen variant, composed with a one-dimensional vertical model.
type WCVTvar struct {
	Horiz HorizontalVariant
	Vert  VerticalModel
	Table WCVTable
	id    string
}

// NewWCVTauMod is the standard DAA well-clear detector (TAUMOD over TCOA).
func NewWCVTauMod(tab WCVTable) *WCVTvar {
	return &WCVTvar{Horiz: HorizTauMod, Vert: VertTCOA, Table: tab}
}

// NewWCVTcpa is the TCPA-gated variant (over TCOA).
func NewWCVTcpa(tab WCVTable) *WCVTvar {
	return &WCVTvar{Horiz: HorizTcpa, Vert: VertTCOA, Table: tab}
}

// NewWCVTep is the time-to-entry-point variant (over TCOA).
func NewWCVTep(tab WCVTable) *WCVTvar {
	return &WCVTvar{Horiz: HorizTep, Vert: VertTCOA, Table: tab}
}

// NewWCVHz is the hazard-zone variant (TAUMOD over VMOD).
func NewWCVHz(tab WCVTable) *WCVTvar {
	return &WCVTvar{Horiz: HorizHz, Vert: VertVMOD, Table: tab}
}

// horizontalTvar evaluates the variant's time variable (modified tau, time
// to closest approach, or time to entry point) on the relative horizontal
// state; a negative value means not converging.
func (w *WCVTvar) horizontalTvar(s, v math.Vect2) float64 {
	sdotv := s.Dot(v)
	switch w.Horiz {
	case HorizTcpa:
		return tcpa(s, v)
	case HorizTep:
		if sdotv < 0 && delta(s, v, w.Table.DTHR) >= 0 {
			return thetaD(s, v, entry, w.Table.DTHR)
		}
		return -1
	}
	if sdotv < 0 {
		return (math.Sqr(w.Table.DTHR) - s.Sqv()) / sdotv
	}
	return -1
}

// horizontalWCV reports horizontal loss of well-clear at the current
// instant: within DTHR, or closing to within DTHR with the time variable in
// [0,TTHR].
func (w *WCVTvar) horizontalWCV(s, v math.Vect2) bool {
	if s.Norm() <= w.Table.DTHR {
		return true
	}
	if dcpa(s, v) <= w.Table.DTHR {
		tvar := w.horizontalTvar(s, v)
		return 0 <= tvar && tvar <= w.Table.TTHR
	}
	return false
}

// horizontalWCVInterval is the horizontal loss interval on [0,T] for the
// relative state (s,v).
func (w *WCVTvar) horizontalWCVInterval(t float64, s, v math.Vect2) LossData {
	switch w.Horiz {
	case HorizTcpa:
		return w.horizontalIntervalTcpa(t, s, v)
	case HorizTep:
		return w.horizontalIntervalTep(t, s, v)
	default:
		return w.horizontalIntervalTauMod(t, s, v)
	}
}

func (w *WCVTvar) horizontalIntervalTauMod(t float64, s, v math.Vect2) LossData {
	timeIn := t
	timeOut := 0.0
	sqs := s.Sqv()
	sdotv := s.Dot(v)
	sqD := math.Sqr(w.Table.DTHR)
	a := v.Sqv()
	b := 2*sdotv + w.Table.TTHR*v.Sqv()
	c := sqs + w.Table.TTHR*sdotv - sqD
	if math.Almost(a, 0) && sqs <= sqD { // almost_equals mitigates numerical problems near zero closure
		return LossData{TimeIn: 0, TimeOut: t}
	}
	if sqs <= sqD {
		return LossData{TimeIn: 0, TimeOut: gomath.Min(t, thetaD(s, v, exit, w.Table.DTHR))}
	}
	discr := math.Sqr(b) - 4*a*c
	if sdotv >= 0 || discr < 0 {
		return LossData{TimeIn: timeIn, TimeOut: timeOut}
	}
	tt := (-b - gomath.Sqrt(discr)) / (2 * a)
	if delta(s, v, w.Table.DTHR) >= 0 && tt <= t {
		timeIn = gomath.Max(0, tt)
		timeOut = gomath.Min(t, thetaD(s, v, exit, w.Table.DTHR))
	}
	return LossData{TimeIn: timeIn, TimeOut: timeOut}
}

func (w *WCVTvar) horizontalIntervalTcpa(t float64, s, v math.Vect2) LossData {
	timeIn := t
	timeOut := 0.0
	sqs := s.Sqv()
	sqv := v.Sqv()
	sdotv := s.Dot(v)
	sqD := math.Sqr(w.Table.DTHR)
	if math.Almost(sqv, 0) && sqs <= sqD {
		return LossData{TimeIn: 0, TimeOut: t}
	}
	if math.Almost(sqv, 0) {
		return LossData{TimeIn: timeIn, TimeOut: timeOut}
	}
	if sqs <= sqD {
		return LossData{TimeIn: 0, TimeOut: gomath.Min(t, thetaD(s, v, exit, w.Table.DTHR))}
	}
	if sdotv > 0 {
		return LossData{TimeIn: timeIn, TimeOut: timeOut}
	}
	tc := tcpa(s, v)
	if v.ScalAdd(tc, s).Norm() > w.Table.DTHR {
		return LossData{TimeIn: timeIn, TimeOut: timeOut}
	}
	del := delta(s, v, w.Table.DTHR)
	if del < 0 && tc-w.Table.TTHR > t {
		return LossData{TimeIn: timeIn, TimeOut: timeOut}
	}
	if del < 0 {
		return LossData{TimeIn: gomath.Max(0, tc-w.Table.TTHR), TimeOut: gomath.Min(t, tc)}
	}
	tmin := gomath.Min(thetaD(s, v, entry, w.Table.DTHR), tc-w.Table.TTHR)
	if tmin > t {
		return LossData{TimeIn: timeIn, TimeOut: timeOut}
	}
	return LossData{TimeIn: gomath.Max(0, tmin), TimeOut: gomath.Min(t, thetaD(s, v, exit, w.Table.DTHR))}
}

func (w *WCVTvar) horizontalIntervalTep(t float64, s, v math.Vect2) LossData {
	timeIn := t
	timeOut := 0.0
	sqs := s.Sqv()
	sqv := v.Sqv()
	sdotv := s.Dot(v)
	sqD := math.Sqr(w.Table.DTHR)
	if math.Almost(sqv, 0) && sqs <= sqD {
		return LossData{TimeIn: 0, TimeOut: t}
	}
	if math.Almost(sqv, 0) {
		return LossData{TimeIn: timeIn, TimeOut: timeOut}
	}
	if sqs <= sqD {
		return LossData{TimeIn: 0, TimeOut: gomath.Min(t, thetaD(s, v, exit, w.Table.DTHR))}
	}
	if sdotv > 0 || delta(s, v, w.Table.DTHR) < 0 {
		return LossData{TimeIn: timeIn, TimeOut: timeOut}
	}
	tep := thetaD(s, v, entry, w.Table.DTHR)
	if tep-w.Table.TTHR > t {
		return LossData{TimeIn: timeIn, TimeOut: timeOut}
	}
	return LossData{TimeIn: gomath.Max(0, tep-w.Table.TTHR), TimeOut: gomath.Min(t, thetaD(s, v, exit, w.Table.DTHR))}
}

// WCVInterval composes the vertical loss interval with the horizontal
// interval computed on the vertically-restricted window. Assumes
// 0 <= b <= t.
func (w *WCVTvar) WCVInterval(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) LossData {
	timeIn := t
	timeOut := b

	s2 := so.Vect2().Sub(si.Vect2())
	v2 := vo.Vect2().Sub(vi.Vect2())
	sz := so.Z - si.Z
	vz := vo.Vs() - vi.Vs()

	ii := w.Vert.verticalWCVInterval(w.Table.ZTHR, w.Table.TCOA, b, t, sz, vz)
	if ii.Low > ii.Up {
		return LossData{TimeIn: timeIn, TimeOut: timeOut}
	}
	step := v2.ScalAdd(ii.Low, s2)
	if math.Almost(ii.Low, ii.Up) { // almost_equals mitigates numerical problems at instant windows
		if w.horizontalWCV(step, v2) {
			timeIn = ii.Low
			timeOut = ii.Up
		}
		return LossData{TimeIn: timeIn, TimeOut: timeOut}
	}
	ld := w.horizontalWCVInterval(ii.Up-ii.Low, step, v2)
	return LossData{TimeIn: ld.TimeIn + ii.Low, TimeOut: ld.TimeOut + ii.Low}
}

func (w *WCVTvar) ConflictDetection(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) ConflictData {
	ld := w.WCVInterval(so, vo, si, vi, b, t)
	tTca := (ld.TimeIn + ld.TimeOut) / 2
	distTca := so.Linear(vo.V, tTca).Sub(si.Linear(vi.V, tTca)).CylNorm(w.Table.DTHR, w.Table.ZTHR)
	return ConflictData{
		LossData: ld,
		TimeCrit: tTca,
		DistCrit: distTca,
		S:        so.Sub(si),
		V:        vo.V.Sub(vi.V),
	}
}

// Violation reports loss of well-clear at the current instant.
func (w *WCVTvar) Violation(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity) bool {
	s2 := so.Vect2().Sub(si.Vect2())
	v2 := vo.Vect2().Sub(vi.Vect2())
	return w.horizontalWCV(s2, v2) &&
		w.Vert.verticalWCV(w.Table.ZTHR, w.Table.TCOA, so.Z-si.Z, vo.Vs()-vi.Vs())
}

func (w *WCVTvar) Conflict(so math.Vect3, vo math.Velocity, si math.Vect3, vi math.Velocity, b, t float64) bool {
	return conflictWithin(w, so, vo, si, vi, b, t)
}

func (w *WCVTvar) Copy() Detector {
	ww := *w
	return &ww
}

func (w *WCVTvar) Make() Detector {
	return &WCVTvar{Horiz: w.Horiz, Vert: w.Vert, Table: DefaultWCVTable()}
}

func (w *WCVTvar) TypeName() string { return w.Horiz.String() }

func (w *WCVTvar) Identifier() string { return w.id }

func (w *WCVTvar) SetIdentifier(id string) { w.id = id }

func (w *WCVTvar) Parameters() param.Data {
	p := param.New()
	w.UpdateParamData(p)
	return p
}

func (w *WCVTvar) UpdateParamData(p param.Data) {
	w.Table.UpdateParamData(p)
	p.Set("id", w.id)
}

func (w *WCVTvar) SetParameters(p param.Data) {
	w.Table.SetParameters(p)
	if p.Contains("id") {
		w.id = p.GetString("id")
	}
}

// Contains compares tables across variants whose volumes are ordered: a
// TAUMOD volume contains a TCPA volume with a contained table, and a TEP
// volume contains both.
func (w *WCVTvar) Contains(other Detector) bool {
	cd, ok := other.(*WCVTvar)
	if !ok {
		return false
	}
	if w.Vert != cd.Vert {
		return false
	}
	switch w.Horiz {
	case HorizTauMod:
		if cd.Horiz != HorizTauMod && cd.Horiz != HorizTcpa {
			return false
		}
	case HorizTep:
		if cd.Horiz != HorizTep && cd.Horiz != HorizTauMod && cd.Horiz != HorizTcpa {
			return false
		}
	default:
		if cd.Horiz != w.Horiz {
			return false
		}
	}
	return w.Table.Contains(cd.Table)
}

func (w *WCVTvar) Equals(other Detector) bool {
	cd, ok := other.(*WCVTvar)
	return ok && w.Horiz == cd.Horiz && w.Vert == cd.Vert &&
		w.Table.Equals(cd.Table) && w.id == cd.id
}

func (w *WCVTvar) String() string {
	s := w.TypeName() + " = {" + w.Table.String() + "}"
	if w.id != "" {
		s = w.id + " : " + s
	}
	return s
}
