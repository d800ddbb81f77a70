// param/param_test.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package param

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSetGetRoundTrip(t *testing.T) {
	p := New()
	p.SetInternal("WCV_DTHR", 1852, "nmi")
	assert.Equal(t, 1852.0, p.GetValue("WCV_DTHR"))
	assert.Equal(t, "nmi", p.GetUnit("WCV_DTHR"))

	p.Set("id", "det_1")
	assert.Equal(t, "det_1", p.GetString("id"))
	assert.False(t, p.Contains("missing"))
	assert.Equal(t, "unspecified", p.GetUnit("missing"))
}

func TestSetParsesValuesWithUnits(t *testing.T) {
	p := New()
	p.Set("alerting_time", "55 [s]")
	assert.Equal(t, 55.0, p.GetValue("alerting_time"))
	assert.Equal(t, "s", p.GetUnit("alerting_time"))

	p.Set("dthr", "0.5 nmi")
	assert.InDelta(t, 926, p.GetValue("dthr"), 1e-9)

	p.SetBool("flag", true)
	assert.True(t, p.GetBool("flag"))
	assert.False(t, p.GetBool("missing"))
}

func TestInsertionOrderPreserved(t *testing.T) {
	p := New()
	keys := []string{"zulu", "alpha", "mike", "bravo"}
	for _, k := range keys {
		p.Set(k, "1")
	}
	assert.Empty(t, cmp.Diff(keys, p.Keys()))
}

func TestPrefixOperations(t *testing.T) {
	p := New()
	p.SetInternal("alert_1_alerting_time", 55, "s")
	p.SetInternal("alert_1_early_alerting_time", 75, "s")
	p.SetInternal("alert_2_alerting_time", 25, "s")

	sub := p.ExtractPrefix("alert_1_")
	assert.Equal(t, 2, sub.Size())
	assert.Equal(t, 55.0, sub.GetValue("alerting_time"))

	pre := sub.CopyWithPrefix("x_")
	assert.True(t, pre.Contains("x_alerting_time"))
	assert.False(t, pre.Contains("alerting_time"))
}

func TestCopyOverwrite(t *testing.T) {
	a := New()
	a.Set("k", "old")
	b := New()
	b.Set("k", "new")

	a.Copy(b, false)
	assert.Equal(t, "old", a.GetString("k"))
	a.Copy(b, true)
	assert.Equal(t, "new", a.GetString("k"))
}

func TestRemove(t *testing.T) {
	p := New()
	p.Set("k", "v")
	p.Remove("k")
	assert.False(t, p.Contains("k"))
	assert.Equal(t, 0, p.Size())
}
