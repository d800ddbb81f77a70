// alerting/thresholds.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package alerting

import (
	"fmt"
	gomath "math"

	"github.com/nasa/daidalus/detection"
	"github.com/nasa/daidalus/param"
	"github.com/nasa/daidalus/units"
)

// AlertThresholds pairs a detector with the time windows that decide when
// its volume raises an alert. AlertingTime is the nominal window;
// EarlyAlertingTime (>= AlertingTime) is used instead when sensor
// uncertainty mitigation is active and the intruder declares uncertainty.
type AlertThresholds struct {
	detector          detection.Detector
	AlertingTime      float64 // [s], >= 0
	EarlyAlertingTime float64 // [s], >= AlertingTime
	Region            Region

	alertingTimeUnit, earlyAlertingTimeUnit string
}

// NewAlertThresholds copies the detector and clamps the time windows into
// their invariants.
func NewAlertThresholds(det detection.Detector, alertingTime, earlyAlertingTime float64, region Region) AlertThresholds {
	at := gomath.Abs(alertingTime)
	var d detection.Detector
	if det != nil {
		d = det.Copy()
	}
	return AlertThresholds{
		detector:              d,
		AlertingTime:          at,
		EarlyAlertingTime:     gomath.Max(at, earlyAlertingTime),
		Region:                region,
		alertingTimeUnit:      "s",
		earlyAlertingTimeUnit: "s",
	}
}

// InvalidAlertThresholds is the sentinel returned for out-of-range levels.
func InvalidAlertThresholds() AlertThresholds {
	return AlertThresholds{alertingTimeUnit: "s", earlyAlertingTimeUnit: "s"}
}

// IsValid reports whether the thresholds carry a detector and a region.
func (at AlertThresholds) IsValid() bool {
	return at.detector != nil && at.Region != Unknown
}

// Detector returns the level's detector. The returned value is shared with
// the thresholds; use Copy for an independent snapshot.
func (at AlertThresholds) Detector() detection.Detector {
	return at.detector
}

// SetDetector replaces the detector with a copy of det.
func (at *AlertThresholds) SetDetector(det detection.Detector) {
	if det != nil {
		at.detector = det.Copy()
	} else {
		at.detector = nil
	}
}

// Copy returns an independent deep copy.
func (at AlertThresholds) Copy() AlertThresholds {
	out := at
	if at.detector != nil {
		out.detector = at.detector.Copy()
	}
	return out
}

// Parameters round-trips the threshold configuration.
func (at AlertThresholds) Parameters() param.Data {
	p := param.New()
	at.UpdateParamData(p)
	return p
}

func (at AlertThresholds) UpdateParamData(p param.Data) {
	p.Set("region", at.Region.String())
	p.SetInternal("alerting_time", at.AlertingTime, at.alertingTimeUnit)
	p.SetInternal("early_alerting_time", at.EarlyAlertingTime, at.earlyAlertingTimeUnit)
	if at.detector != nil {
		p.Set("detector", at.detector.Identifier())
	}
}

func (at *AlertThresholds) SetParameters(p param.Data) {
	if p.Contains("region") {
		if r, err := ParseRegion(p.GetString("region")); err == nil {
			at.Region = r
		}
	}
	if p.Contains("alerting_time") {
		at.AlertingTime = gomath.Abs(p.GetValue("alerting_time"))
		at.alertingTimeUnit = p.GetUnit("alerting_time")
	}
	if p.Contains("early_alerting_time") {
		at.EarlyAlertingTime = gomath.Max(at.AlertingTime, gomath.Abs(p.GetValue("early_alerting_time")))
		at.earlyAlertingTimeUnit = p.GetUnit("early_alerting_time")
	}
}

func (at AlertThresholds) String() string {
	vol := "INVALID_DETECTOR"
	if at.detector != nil {
		if s, ok := at.detector.(fmt.Stringer); ok {
			vol = s.String()
		} else {
			vol = at.detector.TypeName()
		}
	}
	return "volume = " + vol +
		", alerting_time = " + units.Str(at.alertingTimeUnit, at.AlertingTime, 6) +
		", early_alerting_time = " + units.Str(at.earlyAlertingTimeUnit, at.EarlyAlertingTime, 6) +
		", region = " + at.Region.String()
}
