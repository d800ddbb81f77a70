// alerting/region.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package alerting maps encounter geometry to discrete alert levels. An
// Alerter is an ordered ladder of threshold sets, each pairing a detector
// with alerting-time windows and a guidance region; the Core walks the
// ladder from most severe to least for each intruder and reports the first
// level whose volume is predicted to be violated.
package alerting

import "fmt"

// Region is the coarse severity label attached to an alert level for
// downstream guidance colouring.
type Region int

const (
	Unknown Region = iota
	None
	Far
	Mid
	Near
)

func (r Region) String() string {
	switch r {
	case None:
		return "NONE"
	case Far:
		return "FAR"
	case Mid:
		return "MID"
	case Near:
		return "NEAR"
	default:
		return "UNKNOWN"
	}
}

// ParseRegion is the inverse of String; unrecognized names yield Unknown.
func ParseRegion(s string) (Region, error) {
	switch s {
	case "NONE":
		return None, nil
	case "FAR":
		return Far, nil
	case "MID":
		return Mid, nil
	case "NEAR":
		return Near, nil
	}
	return Unknown, fmt.Errorf("invalid region %q", s)
}

// IsConflictRegion reports whether the region participates in conflict
// bands (FAR, MID, or NEAR).
func (r Region) IsConflictRegion() bool {
	return r >= Far
}
