// alerting/alerter.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package alerting

import (
	"fmt"
	"strings"

	"github.com/nasa/daidalus/detection"
	"github.com/nasa/daidalus/errlog"
	"github.com/nasa/daidalus/param"
)

// Alerter is an ordered ladder of alert thresholds, indexed 1..N by
// increasing severity. The ladder must be monotone: each level's volume
// contains the next level's volume, so triggering level i+1 implies
// triggering level i. The alerter does not reorder levels; a non-monotone
// ladder is reported to the error sink and left in place.
type Alerter struct {
	id     string
	levels []AlertThresholds
	err    *errlog.Log
}

// NewAlerter returns an empty alerter; an empty id becomes "default". The
// error sink may be nil.
func NewAlerter(id string, err *errlog.Log) *Alerter {
	if id == "" {
		id = "default"
	}
	return &Alerter{id: id, err: err}
}

// IsValid reports whether the ladder has at least one level.
func (a *Alerter) IsValid() bool {
	return len(a.levels) > 0
}

func (a *Alerter) ID() string { return a.id }

func (a *Alerter) SetID(id string) {
	if id != "" {
		a.id = id
	}
}

// Clear removes all levels.
func (a *Alerter) Clear() {
	a.levels = nil
}

// MostSevereAlertLevel is N, the number of levels.
func (a *Alerter) MostSevereAlertLevel() int {
	return len(a.levels)
}

// AlertLevelForRegion returns the smallest level assigned to the region, or
// -1 when none is.
func (a *Alerter) AlertLevelForRegion(region Region) int {
	for i := range a.levels {
		if a.levels[i].Region == region {
			return i + 1
		}
	}
	return -1
}

// GetDetector returns the detector of the given 1-based level, or nil when
// the level is out of range.
func (a *Alerter) GetDetector(alertLevel int) detection.Detector {
	if 1 <= alertLevel && alertLevel <= len(a.levels) {
		return a.levels[alertLevel-1].Detector()
	}
	return nil
}

// GetLevel returns the thresholds of the given 1-based level, or the
// invalid sentinel.
func (a *Alerter) GetLevel(alertLevel int) AlertThresholds {
	if 1 <= alertLevel && alertLevel <= len(a.levels) {
		return a.levels[alertLevel-1]
	}
	return InvalidAlertThresholds()
}

// SetLevel replaces an existing level with a copy of thresholds.
func (a *Alerter) SetLevel(level int, thresholds AlertThresholds) {
	if 1 <= level && level <= len(a.levels) {
		a.levels[level-1] = thresholds.Copy()
		a.checkMonotone(level)
	}
}

// AddLevel appends a level and returns its 1-based index. The detector is
// tagged det_<i> for parameter round-trips.
func (a *Alerter) AddLevel(thresholds AlertThresholds) int {
	a.levels = append(a.levels, thresholds.Copy())
	sz := len(a.levels)
	if cd := a.levels[sz-1].Detector(); cd != nil {
		cd.SetIdentifier(fmt.Sprintf("det_%d", sz))
	}
	a.checkMonotone(sz)
	return sz
}

// checkMonotone reports a configuration diagnostic when the level below
// does not contain the given level's volume.
func (a *Alerter) checkMonotone(level int) {
	if level < 2 || level > len(a.levels) {
		return
	}
	lower := a.levels[level-2].Detector()
	upper := a.levels[level-1].Detector()
	if lower == nil || upper == nil {
		return
	}
	if !lower.Contains(upper) {
		a.err.Warning(errlog.ConfigurationInvalid,
			"alerter %s: volume of level %d does not contain volume of level %d", a.id, level-1, level)
	}
}

// Copy returns a deep, independent copy of the alerter sharing the error
// sink.
func (a *Alerter) Copy() *Alerter {
	out := &Alerter{id: a.id, err: a.err, levels: make([]AlertThresholds, len(a.levels))}
	for i := range a.levels {
		out.levels[i] = a.levels[i].Copy()
	}
	return out
}

///////////////////////////////////////////////////////////////////////////
// parameter round-trip

// Parameters writes the ladder as a flat parameter map: per-level
// thresholds under alert_<i>_, detector settings under their identifiers,
// and load_core_detection_<id> entries naming each detector kind.
func (a *Alerter) Parameters() param.Data {
	p := param.New()
	a.UpdateParamData(p)
	return p
}

func (a *Alerter) UpdateParamData(p param.Data) {
	for i := range a.levels {
		prefix := fmt.Sprintf("alert_%d_", i+1)
		p.Copy(a.levels[i].Parameters().CopyWithPrefix(prefix), true)
		det := a.levels[i].Detector()
		if det == nil {
			continue
		}
		p.Copy(det.Parameters().CopyWithPrefix(det.Identifier()+"_"), true)
		p.Set("load_core_detection_"+det.Identifier(), det.TypeName())
		p.Remove(det.Identifier() + "_id")
	}
}

// SetParameters rebuilds levels from a parameter map produced by
// UpdateParamData. When p holds at least one alert_1_ level, the existing
// levels are discarded and replaced by the levels found in p; otherwise the
// levels are left unchanged.
func (a *Alerter) SetParameters(p param.Data) {
	detectors := map[string]detection.Detector{}
	for _, key := range p.Keys() {
		if !strings.HasPrefix(key, "load_core_detection_") {
			continue
		}
		id := strings.TrimPrefix(key, "load_core_detection_")
		det := detection.FromTypeName(p.GetString(key))
		if det == nil {
			a.err.Error(errlog.ConfigurationInvalid, "alerter %s: unknown detector type %q", a.id, p.GetString(key))
			continue
		}
		det.SetParameters(p.ExtractPrefix(id + "_"))
		det.SetIdentifier(id)
		detectors[id] = det
	}
	counter := 1
	pdsub := p.ExtractPrefix(fmt.Sprintf("alert_%d_", counter))
	if pdsub.Size() > 0 {
		a.levels = nil
	}
	for pdsub.Size() > 0 {
		var at AlertThresholds
		at.alertingTimeUnit = "s"
		at.earlyAlertingTimeUnit = "s"
		at.SetDetector(detectors[pdsub.GetString("detector")])
		at.SetParameters(pdsub)
		if counter <= len(a.levels) {
			a.SetLevel(counter, at)
		} else {
			a.AddLevel(at)
		}
		counter++
		pdsub = p.ExtractPrefix(fmt.Sprintf("alert_%d_", counter))
	}
}

func (a *Alerter) String() string {
	var sb strings.Builder
	sb.WriteString("Alerter: " + a.id + "\n")
	for i := range a.levels {
		fmt.Fprintf(&sb, "Level %d: %s\n", i+1, a.levels[i].String())
	}
	return sb.String()
}
