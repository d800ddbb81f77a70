// alerting/presets.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package alerting

import (
	"github.com/nasa/daidalus/detection"
	"github.com/nasa/daidalus/errlog"
)

// Named alerter presets. Each call builds a fresh, independent ladder; the
// names round-trip through LookupPreset.

// DWCPhaseI is the RTCA DO-365 Phase I (en-route) ladder:
// preventive (ZTHR=700ft) 55/75s NONE, corrective 55/75s MID,
// warning 25/55s NEAR.
func DWCPhaseI(err *errlog.Log) *Alerter {
	a := NewAlerter("DWC_Phase_I", err)
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365PhaseIPreventive()), 55, 75, None))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCPhaseI()), 55, 75, Mid))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCPhaseI()), 25, 55, Near))
	return a
}

// DWCPhaseII is the RTCA DO-365A Phase II (DTA) ladder; all levels share
// the 1500ft/450ft table with 45/75s windows.
func DWCPhaseII(err *errlog.Log) *Alerter {
	a := NewAlerter("DWC_Phase_II", err)
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCPhaseII()), 45, 75, None))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCPhaseII()), 45, 75, Mid))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCPhaseII()), 45, 75, Near))
	return a
}

// DWCNonCoop is the RTCA DO-365B non-cooperative ladder:
// preventive and corrective 55/110s, warning 25/90s.
func DWCNonCoop(err *errlog.Log) *Alerter {
	a := NewAlerter("DWC_Non_Coop", err)
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCNonCoop()), 55, 110, None))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCNonCoop()), 55, 110, Mid))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCNonCoop()), 25, 90, Near))
	return a
}

// DWCPhaseISUM is DWCPhaseI with the sensor-uncertainty alerting times
// (preventive/corrective shortened to 50s).
func DWCPhaseISUM(err *errlog.Log) *Alerter {
	a := NewAlerter("DWC_Phase_I_SUM", err)
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365PhaseIPreventive()), 50, 75, None))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCPhaseI()), 50, 75, Mid))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCPhaseI()), 25, 55, Near))
	return a
}

// DWCPhaseIISUM is DWCPhaseII with the sensor-uncertainty alerting times.
func DWCPhaseIISUM(err *errlog.Log) *Alerter {
	a := NewAlerter("DWC_Phase_II_SUM", err)
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCPhaseII()), 40, 75, None))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCPhaseII()), 40, 75, Mid))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCPhaseII()), 40, 75, Near))
	return a
}

// DWCNonCoopSUM is DWCNonCoop with the sensor-uncertainty alerting times.
func DWCNonCoopSUM(err *errlog.Log) *Alerter {
	a := NewAlerter("DWC_Non_Coop_SUM", err)
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCNonCoop()), 50, 110, None))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCNonCoop()), 50, 110, Mid))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.DO365DWCNonCoop()), 20, 90, Near))
	return a
}

// BufferedDWCPhaseI is the buffered Phase I ladder: preventive
// (1nmi/750ft) 60/75s NONE, corrective 60/75s MID, warning 30/55s NEAR.
func BufferedDWCPhaseI(err *errlog.Log) *Alerter {
	a := NewAlerter("Buffered_DWC_Phase_I", err)
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.BufferedPhaseIPreventive()), 60, 75, None))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.BufferedDWCPhaseI()), 60, 75, Mid))
	a.AddLevel(NewAlertThresholds(detection.NewWCVTauMod(detection.BufferedDWCPhaseI()), 30, 55, Near))
	return a
}

// SingleBands is a one-level ladder over the given detector; the single
// region is NEAR.
func SingleBands(det detection.Detector, alertingTime, lookaheadTime float64, name string, err *errlog.Log) *Alerter {
	a := NewAlerter(name, err)
	a.AddLevel(NewAlertThresholds(det, alertingTime, lookaheadTime, Near))
	return a
}

// CD3DSingleBands is the legacy CD3D cylinder (5nmi/1000ft) with a 180s
// alerting time.
func CD3DSingleBands(err *errlog.Log) *Alerter {
	return SingleBands(detection.DefaultCDCylinder(), 180, 180, "CD3D", err)
}

// WCVTauModSingleBands is the DO-365 Phase I volume as a single level with
// 55/75s windows.
func WCVTauModSingleBands(err *errlog.Log) *Alerter {
	return SingleBands(detection.NewWCVTauMod(detection.DO365DWCPhaseI()), 55, 75, "WCV_TAUMOD", err)
}

// TCASII is the ideal TCAS II ladder: TA thresholds at MID severity below
// RA thresholds at NEAR. Alerting times are zero; the levels fire on
// current violation only.
func TCASII(err *errlog.Log) *Alerter {
	a := NewAlerter("TCASII", err)
	a.AddLevel(NewAlertThresholds(detection.TCASIITA(), 0, 0, Mid))
	a.AddLevel(NewAlertThresholds(detection.TCASIIRA(), 0, 0, Near))
	return a
}

// LookupPreset builds the named preset, or nil for an unknown name.
func LookupPreset(name string, err *errlog.Log) *Alerter {
	switch name {
	case "DWC_Phase_I":
		return DWCPhaseI(err)
	case "DWC_Phase_II":
		return DWCPhaseII(err)
	case "DWC_Non_Coop":
		return DWCNonCoop(err)
	case "DWC_Phase_I_SUM":
		return DWCPhaseISUM(err)
	case "DWC_Phase_II_SUM":
		return DWCPhaseIISUM(err)
	case "DWC_Non_Coop_SUM":
		return DWCNonCoopSUM(err)
	case "Buffered_DWC_Phase_I":
		return BufferedDWCPhaseI(err)
	case "CD3D":
		return CD3DSingleBands(err)
	case "WCV_TAUMOD":
		return WCVTauModSingleBands(err)
	case "TCASII":
		return TCASII(err)
	}
	return nil
}
