// detection/wcvtable.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package detection

import (
	gomath "math"

	"github.com/nasa/daidalus/param"
	"github.com/nasa/daidalus/units"
)

// WCVTable holds the four well-clear thresholds in internal units, with the
// display unit of each remembered for round-trips. Thresholds are clamped
// non-negative on the way in; the table is not mutated by detectors.
type WCVTable struct {
	DTHR float64 // horizontal distance threshold [m]
	ZTHR float64 // vertical distance threshold [m]
	TTHR float64 // modified-tau time threshold [s]
	TCOA float64 // time to co-altitude threshold [s]

	dthrUnit, zthrUnit, tthrUnit, tcoaUnit string
}

// MkWCVTable builds a table from values in internal units.
func MkWCVTable(dthr, zthr, tthr, tcoa float64) WCVTable {
	return WCVTable{
		DTHR:     gomath.Abs(dthr),
		ZTHR:     gomath.Abs(zthr),
		TTHR:     gomath.Abs(tthr),
		TCOA:     gomath.Abs(tcoa),
		dthrUnit: "m", zthrUnit: "m", tthrUnit: "s", tcoaUnit: "s",
	}
}

// MakeWCVTable builds a table from values in the given units.
func MakeWCVTable(dthr float64, udthr string, zthr float64, uzthr string, tthr float64, utthr string, tcoa float64, utcoa string) WCVTable {
	return makeWCVTable(dthr, udthr, zthr, uzthr, tthr, utthr, tcoa, utcoa)
}

// DO365PhaseIPreventive is DTHR=0.66nmi, ZTHR=700ft, TTHR=35s, TCOA=0.
func DO365PhaseIPreventive() WCVTable {
	return makeWCVTable(0.66, "nmi", 700, "ft", 35, "s", 0, "s")
}

// DO365DWCPhaseI is the DO-365 Phase I (en-route) well-clear table:
// DTHR=0.66nmi, ZTHR=450ft, TTHR=35s, TCOA=0.
func DO365DWCPhaseI() WCVTable {
	return makeWCVTable(0.66, "nmi", 450, "ft", 35, "s", 0, "s")
}

// DO365DWCPhaseII is the DO-365A Phase II (DTA) well-clear table:
// DTHR=1500ft, ZTHR=450ft, TTHR=0, TCOA=0.
func DO365DWCPhaseII() WCVTable {
	return makeWCVTable(1500, "ft", 450, "ft", 0, "s", 0, "s")
}

// DO365DWCNonCoop is the DO-365B non-cooperative well-clear table:
// DTHR=2200ft, ZTHR=450ft, TTHR=0, TCOA=0.
func DO365DWCNonCoop() WCVTable {
	return makeWCVTable(2200, "ft", 450, "ft", 0, "s", 0, "s")
}

// BufferedPhaseIPreventive is DTHR=1nmi, ZTHR=750ft, TTHR=35s, TCOA=20s.
func BufferedPhaseIPreventive() WCVTable {
	return makeWCVTable(1.0, "nmi", 750, "ft", 35, "s", 20, "s")
}

// BufferedDWCPhaseI is the buffered Phase I well-clear table:
// DTHR=1nmi, ZTHR=450ft, TTHR=35s, TCOA=20s.
func BufferedDWCPhaseI() WCVTable {
	return makeWCVTable(1.0, "nmi", 450, "ft", 35, "s", 20, "s")
}

func makeWCVTable(dthr float64, udthr string, zthr float64, uzthr string, tthr float64, utthr string, tcoa float64, utcoa string) WCVTable {
	return WCVTable{
		DTHR:     units.From(udthr, gomath.Abs(dthr)),
		ZTHR:     units.From(uzthr, gomath.Abs(zthr)),
		TTHR:     units.From(utthr, gomath.Abs(tthr)),
		TCOA:     units.From(utcoa, gomath.Abs(tcoa)),
		dthrUnit: udthr, zthrUnit: uzthr, tthrUnit: utthr, tcoaUnit: utcoa,
	}
}

// Contains reports the component-wise partial order on tables: every
// threshold of t is at least the corresponding threshold of tab, so the
// volume of t contains the volume of tab.
func (t WCVTable) Contains(tab WCVTable) bool {
	return t.DTHR >= tab.DTHR && t.ZTHR >= tab.ZTHR && t.TTHR >= tab.TTHR && t.TCOA >= tab.TCOA
}

func (t WCVTable) Equals(tab WCVTable) bool {
	return t.DTHR == tab.DTHR && t.ZTHR == tab.ZTHR && t.TTHR == tab.TTHR && t.TCOA == tab.TCOA
}

// UpdateParamData writes the thresholds into p with their display units.
func (t WCVTable) UpdateParamData(p param.Data) {
	p.SetInternal("WCV_DTHR", t.DTHR, t.dthrUnit)
	p.SetInternal("WCV_ZTHR", t.ZTHR, t.zthrUnit)
	p.SetInternal("WCV_TTHR", t.TTHR, t.tthrUnit)
	p.SetInternal("WCV_TCOA", t.TCOA, t.tcoaUnit)
}

// SetParameters reads any present thresholds from p.
func (t *WCVTable) SetParameters(p param.Data) {
	if p.Contains("WCV_DTHR") {
		t.DTHR = gomath.Abs(p.GetValue("WCV_DTHR"))
		t.dthrUnit = p.GetUnit("WCV_DTHR")
	}
	if p.Contains("WCV_ZTHR") {
		t.ZTHR = gomath.Abs(p.GetValue("WCV_ZTHR"))
		t.zthrUnit = p.GetUnit("WCV_ZTHR")
	}
	if p.Contains("WCV_TTHR") {
		t.TTHR = gomath.Abs(p.GetValue("WCV_TTHR"))
		t.tthrUnit = p.GetUnit("WCV_TTHR")
	}
	if p.Contains("WCV_TCOA") {
		t.TCOA = gomath.Abs(p.GetValue("WCV_TCOA"))
		t.tcoaUnit = p.GetUnit("WCV_TCOA")
	}
}

func (t WCVTable) String() string {
	return "WCV_DTHR = " + units.Str(t.dthrUnit, t.DTHR, 6) +
		", WCV_ZTHR = " + units.Str(t.zthrUnit, t.ZTHR, 6) +
		", WCV_TTHR = " + units.Str(t.tthrUnit, t.TTHR, 6) +
		", WCV_TCOA = " + units.Str(t.tcoaUnit, t.TCOA, 6)
}
