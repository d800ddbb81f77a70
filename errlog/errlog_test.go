// errlog/errlog_test.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package errlog

import (
	"strings"
	"testing"
)

func TestErrorAndWarning(t *testing.T) {
	l := New("alerter")
	if l.HasMessage() || l.HasError() {
		t.Errorf("fresh sink should be empty")
	}
	l.Warning(ConfigurationInvalid, "ladder not monotone at level %d", 2)
	if !l.HasMessage() {
		t.Errorf("warning not recorded")
	}
	if l.HasError() {
		t.Errorf("warning must not count as an error")
	}
	l.Error(InputValidation, "duplicate id %q", "N123")
	if !l.HasError() {
		t.Errorf("error not recorded")
	}

	msg := l.Message()
	if !strings.Contains(msg, "alerter [configuration]") || !strings.Contains(msg, `"N123"`) {
		t.Errorf("unexpected message: %q", msg)
	}
	// Message drains
	if l.HasMessage() {
		t.Errorf("Message should drain the sink")
	}
}

func TestNilSink(t *testing.T) {
	var l *Log
	l.Error(ArithmeticDomain, "ignored")
	l.Warning(LimitViolation, "ignored")
	if l.HasMessage() || l.HasError() || l.Message() != "" {
		t.Errorf("nil sink should discard everything")
	}
}

func TestGlobalPurge(t *testing.T) {
	l := New("x")
	l.Error(ConfigurationInvalid, "boom")

	SetGlobalPurgeFlag(false)
	l.Purge()
	if !l.HasError() {
		t.Errorf("purge must be inert when the flag is off")
	}

	SetGlobalPurgeFlag(true)
	defer SetGlobalPurgeFlag(false)
	l.Purge()
	if l.HasError() {
		t.Errorf("purge should drain when the flag is on")
	}
}

func TestEntriesSnapshot(t *testing.T) {
	l := New("x")
	l.Warning(LimitViolation, "w1")
	entries := l.Entries()
	if len(entries) != 1 || entries[0].Kind != LimitViolation {
		t.Errorf("unexpected entries: %+v", entries)
	}
	if !l.HasMessage() {
		t.Errorf("Entries must not drain the sink")
	}
}
