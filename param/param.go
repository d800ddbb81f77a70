// param/param.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package param holds string-keyed configuration parameters with explicit
// unit tags. Detectors and alerters round-trip their threshold settings
// through a Data value, which preserves insertion order so that written
// configurations are stable and diffable.
package param

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/nasa/daidalus/units"
)

// Entry is a single parameter: a numeric value in internal units with its
// preferred display unit, or a bare string.
type Entry struct {
	Value    float64
	Unit     string
	Str      string
	IsNumber bool
}

// Data is an insertion-ordered parameter map.
type Data struct {
	m *orderedmap.OrderedMap
}

func New() Data {
	return Data{m: orderedmap.New()}
}

func (d Data) Size() int {
	if d.m == nil {
		return 0
	}
	return len(d.m.Keys())
}

// Keys returns the parameter names in insertion order.
func (d Data) Keys() []string {
	if d.m == nil {
		return nil
	}
	return d.m.Keys()
}

func (d Data) Contains(key string) bool {
	if d.m == nil {
		return false
	}
	_, ok := d.m.Get(key)
	return ok
}

func (d Data) entry(key string) (Entry, bool) {
	if d.m == nil {
		return Entry{}, false
	}
	v, ok := d.m.Get(key)
	if !ok {
		return Entry{}, false
	}
	return v.(Entry), true
}

// SetInternal stores a numeric value given in internal units, tagged with
// the unit it should be displayed in.
func (d Data) SetInternal(key string, value float64, unit string) {
	d.m.Set(key, Entry{Value: value, Unit: unit, IsNumber: true})
}

// Set stores a bare string value. Strings of the form "<number> [<unit>]"
// or "<number> <unit>" are parsed as numbers in the given unit.
func (d Data) Set(key, value string) {
	fields := strings.Fields(strings.NewReplacer("[", " ", "]", " ").Replace(value))
	if len(fields) > 0 {
		if x, err := strconv.ParseFloat(fields[0], 64); err == nil {
			unit := "unitless"
			if len(fields) > 1 && units.IsUnit(fields[1]) {
				unit = fields[1]
			}
			d.m.Set(key, Entry{Value: units.From(unit, x), Unit: unit, Str: value, IsNumber: true})
			return
		}
	}
	d.m.Set(key, Entry{Str: value})
}

// SetBool stores a boolean value.
func (d Data) SetBool(key string, value bool) {
	d.m.Set(key, Entry{Str: strconv.FormatBool(value)})
}

func (d Data) Remove(key string) {
	if d.m != nil {
		d.m.Delete(key)
	}
}

// GetValue returns a numeric parameter in internal units, or 0 when absent.
func (d Data) GetValue(key string) float64 {
	e, ok := d.entry(key)
	if !ok || !e.IsNumber {
		return 0
	}
	return e.Value
}

// GetUnit returns the display unit of a parameter, or "unspecified".
func (d Data) GetUnit(key string) string {
	e, ok := d.entry(key)
	if !ok || e.Unit == "" {
		return "unspecified"
	}
	return e.Unit
}

// GetString returns the string form of a parameter.
func (d Data) GetString(key string) string {
	e, ok := d.entry(key)
	if !ok {
		return ""
	}
	if e.Str != "" || !e.IsNumber {
		return e.Str
	}
	return units.Str(e.Unit, e.Value, 6)
}

// GetBool returns a boolean parameter; absent or malformed values are false.
func (d Data) GetBool(key string) bool {
	b, err := strconv.ParseBool(strings.ToLower(d.GetString(key)))
	return err == nil && b
}

// Copy merges src into d. When overwrite is false, existing keys keep their
// values.
func (d Data) Copy(src Data, overwrite bool) {
	for _, k := range src.Keys() {
		if !overwrite && d.Contains(k) {
			continue
		}
		e, _ := src.entry(k)
		d.m.Set(k, e)
	}
}

// CopyWithPrefix returns a copy of d with every key prefixed.
func (d Data) CopyWithPrefix(prefix string) Data {
	out := New()
	for _, k := range d.Keys() {
		e, _ := d.entry(k)
		out.m.Set(prefix+k, e)
	}
	return out
}

// ExtractPrefix returns the sub-map of keys starting with prefix, with the
// prefix stripped.
func (d Data) ExtractPrefix(prefix string) Data {
	out := New()
	for _, k := range d.Keys() {
		if strings.HasPrefix(k, prefix) {
			e, _ := d.entry(k)
			out.m.Set(strings.TrimPrefix(k, prefix), e)
		}
	}
	return out
}

// String renders the parameters one per line in insertion order.
func (d Data) String() string {
	var sb strings.Builder
	for _, k := range d.Keys() {
		fmt.Fprintf(&sb, "%s = %s\n", k, d.GetString(k))
	}
	return sb.String()
}
