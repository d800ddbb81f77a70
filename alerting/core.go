// alerting/core.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package alerting

import (
	gomath "math"

	"github.com/nasa/daidalus/detection"
	"github.com/nasa/daidalus/errlog"
	"github.com/nasa/daidalus/math"
	"github.com/nasa/daidalus/traffic"
)

// DefaultLookaheadTime bounds conflict reporting windows [s].
const DefaultLookaheadTime = 180

// Core holds the per-time-step state bundle and configuration of the
// alerting decision: ownship, traffic, the configured alerters, and the
// policy knobs. It is value-like; Copy snapshots the whole configuration.
type Core struct {
	Ownship traffic.State
	Traffic []traffic.State

	// Alerters are indexed 1..N by the aircraft alerter indices.
	Alerters []*Alerter

	// LookaheadTime bounds the conflict intervals reported by
	// ViolationOfAlertThresholds.
	LookaheadTime float64

	// OwnshipCentric selects the ownship's alerter for every intruder;
	// otherwise each intruder's declared alerter is used.
	OwnshipCentric bool

	// SUM enables sensor uncertainty mitigation: levels alert on their
	// early alerting time when the intruder declares uncertainty.
	SUM bool

	// ProjectionTime linearly projects all aircraft states before
	// alerting when positive.
	ProjectionTime float64

	Err *errlog.Log
}

// NewCore returns a core with the DO-365 Phase I alerter preconfigured.
func NewCore(err *errlog.Log) *Core {
	return &Core{
		Alerters:       []*Alerter{DWCPhaseI(err)},
		LookaheadTime:  DefaultLookaheadTime,
		OwnshipCentric: true,
		Err:            err,
	}
}

// SetOwnship installs the ownship state and clears the traffic list.
func (c *Core) SetOwnship(id string, pos math.Vect3, vel math.Velocity) {
	c.Ownship = traffic.MakeOwnship(id, pos, vel)
	c.Traffic = c.Traffic[:0]
}

// AddTraffic appends an intruder and returns its 1-based aircraft index, or
// -1 when the state is invalid or duplicates an existing identifier.
func (c *Core) AddTraffic(id string, pos math.Vect3, vel math.Velocity) int {
	st := traffic.MakeIntruder(id, pos, vel)
	return c.AddTrafficState(st)
}

// AddTrafficState appends a prebuilt intruder state.
func (c *Core) AddTrafficState(st traffic.State) int {
	if !st.IsValid() {
		c.Err.Error(errlog.InputValidation, "traffic state %q is invalid", st.ID)
		return -1
	}
	if st.ID == c.Ownship.ID {
		c.Err.Error(errlog.InputValidation, "traffic id %q duplicates ownship", st.ID)
		return -1
	}
	for _, other := range c.Traffic {
		if other.ID == st.ID {
			c.Err.Error(errlog.InputValidation, "duplicate traffic id %q", st.ID)
			return -1
		}
	}
	if st.AlerterIndex == 0 {
		st.AlerterIndex = c.Ownship.AlerterIndex
	}
	c.Traffic = append(c.Traffic, st)
	return len(c.Traffic)
}

// AddAlerter appends a deep copy of the alerter and returns its 1-based
// index.
func (c *Core) AddAlerter(a *Alerter) int {
	c.Alerters = append(c.Alerters, a.Copy())
	return len(c.Alerters)
}

// GetAlerter returns the 1-based alerter, or nil when out of range.
func (c *Core) GetAlerter(idx int) *Alerter {
	if 1 <= idx && idx <= len(c.Alerters) {
		return c.Alerters[idx-1]
	}
	return nil
}

// LastTrafficIndex is the largest valid aircraft index.
func (c *Core) LastTrafficIndex() int {
	return len(c.Traffic)
}

// Copy returns a deep snapshot of the core: alerters and states of the
// copy are independent of the original.
func (c *Core) Copy() *Core {
	out := *c
	out.Traffic = append([]traffic.State(nil), c.Traffic...)
	out.Alerters = make([]*Alerter, len(c.Alerters))
	for i, a := range c.Alerters {
		out.Alerters[i] = a.Copy()
	}
	return &out
}

// alerterIndexOf resolves which alerter governs an intruder under the
// configured centricity.
func (c *Core) alerterIndexOf(intruder traffic.State) int {
	if c.OwnshipCentric {
		return c.Ownship.AlerterIndex
	}
	return intruder.AlerterIndex
}

// alertingWindow is the time window of a level against an intruder: the
// nominal alerting time, or the early alerting time when SUM is active and
// the intruder declares uncertainty.
func (c *Core) alertingWindow(at AlertThresholds, intruder traffic.State) float64 {
	if c.SUM && !intruder.SUM.IsZero() {
		return at.EarlyAlertingTime
	}
	return at.AlertingTime
}

// projected returns the ownship and intruder states after the configured
// projection time.
func (c *Core) projected(intruder traffic.State) (traffic.State, traffic.State) {
	own := c.Ownship
	if c.ProjectionTime > 0 {
		own = own.Linear(c.ProjectionTime)
		intruder = intruder.Linear(c.ProjectionTime)
	}
	return own, intruder
}

// checkAlertingThresholds reports whether the level's volume is predicted
// to be violated within its alerting window.
func (c *Core) checkAlertingThresholds(at AlertThresholds, own, intruder traffic.State) bool {
	if !at.IsValid() {
		return false
	}
	window := c.alertingWindow(at, intruder)
	det := at.Detector()
	return det.Conflict(own.Pos, own.Vel, intruder.Pos, intruder.Vel, 0, window)
}

// rawAlertLevel walks the ladder from most severe to least and returns the
// first triggered level, or 0.
func (c *Core) rawAlertLevel(a *Alerter, own, intruder traffic.State) int {
	for level := a.MostSevereAlertLevel(); level > 0; level-- {
		if c.checkAlertingThresholds(a.GetLevel(level), own, intruder) {
			return level
		}
	}
	return 0
}

// AlertLevel computes the alert level against the 1-based traffic aircraft
// acIdx. 0 means no alert; a negative number means the index or alerter
// configuration is invalid.
func (c *Core) AlertLevel(acIdx int) int {
	if acIdx < 1 || acIdx > len(c.Traffic) {
		c.Err.Error(errlog.InputValidation, "alertLevel: aircraft index %d is out of bounds", acIdx)
		return -1
	}
	intruder := c.Traffic[acIdx-1]
	alerterIdx := c.alerterIndexOf(intruder)
	a := c.GetAlerter(alerterIdx)
	if a == nil {
		c.Err.Error(errlog.ConfigurationInvalid, "alertLevel: alerter index %d is out of bounds", alerterIdx)
		return -1
	}
	own, intr := c.projected(intruder)
	return c.rawAlertLevel(a, own, intr)
}

// AlertLevelAllTraffic is the most severe alert level over all intruders,
// or -1 with no traffic.
func (c *Core) AlertLevelAllTraffic() int {
	max := -1
	for idx := 1; idx <= len(c.Traffic); idx++ {
		if alert := c.AlertLevel(idx); alert > max {
			max = alert
		}
	}
	return max
}

// ViolationOfAlertThresholds detects violation of the given level's volume
// within the lookahead time. Level 0 selects the corrective (MID) level.
// The empty conflict data is returned for invalid indices.
func (c *Core) ViolationOfAlertThresholds(acIdx, alertLevel int) detection.ConflictData {
	if acIdx < 1 || acIdx > len(c.Traffic) {
		c.Err.Error(errlog.InputValidation, "violationOfAlertThresholds: aircraft index %d is out of bounds", acIdx)
		return detection.EmptyConflictData()
	}
	intruder := c.Traffic[acIdx-1]
	a := c.GetAlerter(c.alerterIndexOf(intruder))
	if a == nil {
		c.Err.Error(errlog.ConfigurationInvalid, "violationOfAlertThresholds: alerter of traffic aircraft %d is out of bounds", acIdx)
		return detection.EmptyConflictData()
	}
	if alertLevel == 0 {
		alertLevel = a.AlertLevelForRegion(Mid)
	}
	if alertLevel <= 0 {
		c.Err.Error(errlog.ConfigurationInvalid, "violationOfAlertThresholds: no corrective alert level for aircraft %d", acIdx)
		return detection.EmptyConflictData()
	}
	det := a.GetDetector(alertLevel)
	if det == nil {
		c.Err.Error(errlog.ConfigurationInvalid, "violationOfAlertThresholds: detector of level %d is not set", alertLevel)
		return detection.EmptyConflictData()
	}
	own, intr := c.projected(intruder)
	return det.ConflictDetection(own.Pos, own.Vel, intr.Pos, intr.Vel, 0, c.LookaheadTime)
}

// TimeToVolume is the entry time into the volume of the given level
// relative to now, +inf when there is no conflict within the lookahead
// time, NaN for invalid indices. This is the per-level "time to volume"
// reporting column.
func (c *Core) TimeToVolume(acIdx, alertLevel int) float64 {
	if acIdx < 1 || acIdx > len(c.Traffic) {
		return gomath.NaN()
	}
	det := c.ViolationOfAlertThresholds(acIdx, alertLevel)
	if det.Conflict() {
		return det.GetTimeIn()
	}
	return gomath.Inf(1)
}

// TimesToVolumes returns the per-level entry times for the intruder's
// alerter ladder, indexed by level-1.
func (c *Core) TimesToVolumes(acIdx int) []float64 {
	if acIdx < 1 || acIdx > len(c.Traffic) {
		return nil
	}
	a := c.GetAlerter(c.alerterIndexOf(c.Traffic[acIdx-1]))
	if a == nil {
		return nil
	}
	times := make([]float64, a.MostSevereAlertLevel())
	for level := 1; level <= a.MostSevereAlertLevel(); level++ {
		times[level-1] = c.TimeToVolume(acIdx, level)
	}
	return times
}
