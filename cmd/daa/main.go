// cmd/daa/main.go
// Copyright(c) 2024-2026 daidalus contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// daa is a small driver around the DAA core. It builds a handful of
// programmatic encounters, runs the alerting logic against a configured
// alerter preset, and prints the per-intruder alert levels and conflict
// intervals. Run configuration (preset, precision, uncertainty handling,
// threshold overrides) is read from an optional daa.{yaml,toml,json} file
// in the working directory.
package main

import (
	"fmt"
	gomath "math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/nasa/daidalus/alerting"
	"github.com/nasa/daidalus/errlog"
	"github.com/nasa/daidalus/log"
	"github.com/nasa/daidalus/math"
	"github.com/nasa/daidalus/param"
	"github.com/nasa/daidalus/units"
)

type runConfig struct {
	Preset    string
	Precision int
	SUM       bool
	Lookahead float64
	Overrides map[string]string
}

func loadConfig(lg *log.Logger) runConfig {
	cfg := runConfig{Preset: "DWC_Phase_I", Precision: 6, Lookahead: alerting.DefaultLookaheadTime}

	v := viper.New()
	v.SetConfigName("daa")
	v.AddConfigPath(".")
	v.SetEnvPrefix("daa")
	v.AutomaticEnv()
	v.SetDefault("preset", cfg.Preset)
	v.SetDefault("precision", cfg.Precision)
	v.SetDefault("sum", cfg.SUM)
	v.SetDefault("lookahead_time", cfg.Lookahead)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			lg.Errorf("unable to read configuration: %v", err)
		}
	} else {
		lg.Infof("configuration loaded from %s", v.ConfigFileUsed())
	}

	cfg.Preset = v.GetString("preset")
	cfg.Precision = v.GetInt("precision")
	cfg.SUM = v.GetBool("sum")
	cfg.Lookahead = v.GetFloat64("lookahead_time")
	cfg.Overrides = v.GetStringMapString("overrides")
	return cfg
}

// applyOverrides pushes "overrides" config entries (e.g. WCV_DTHR: "0.8
// [nmi]") through the parameter round-trip of every ladder level.
func applyOverrides(a *alerting.Alerter, overrides map[string]string) {
	if len(overrides) == 0 {
		return
	}
	p := a.Parameters()
	for level := 1; level <= a.MostSevereAlertLevel(); level++ {
		det := a.GetDetector(level)
		if det == nil {
			continue
		}
		sub := param.New()
		for key, val := range overrides {
			// viper lower-cases configuration keys, so parameter names are
			// matched without regard to case
			for _, name := range p.Keys() {
				if strings.EqualFold(name, det.Identifier()+"_"+key) {
					sub.Set(name, val)
				}
			}
		}
		p.Copy(sub, true)
	}
	a.SetParameters(p)
}

type encounter struct {
	name    string
	ownPos  math.Vect3
	ownVel  math.Velocity
	intrPos math.Vect3
	intrVel math.Velocity
}

// The encounters mirror the reference scenarios of the core: a head-on
// co-altitude closure, a laterally separated parallel cruise, and a pure
// vertical closure.
var encounters = []encounter{
	{
		name:    "head-on",
		ownPos:  math.Vect3{},
		ownVel:  math.MkVxyz(100, 0, 0),
		intrPos: math.Vect3{X: units.From("nmi", 5)},
		intrVel: math.MkVxyz(-100, 0, 0),
	},
	{
		name:    "parallel-separated",
		ownPos:  math.Vect3{},
		ownVel:  math.MkVxyz(100, 0, 0),
		intrPos: math.Vect3{Y: 4000},
		intrVel: math.MkVxyz(100, 0, 0),
	},
	{
		name:    "vertical-closure",
		ownPos:  math.Vect3{},
		ownVel:  math.MkVxyz(0, 0, 5),
		intrPos: math.Vect3{X: 100, Z: 300},
		intrVel: math.MkVxyz(0, 0, -5),
	},
}

func fm(x float64, prec int) string {
	if gomath.IsInf(x, 1) {
		return "-"
	}
	return strconv.FormatFloat(x, 'f', prec, 64)
}

func main() {
	lg := log.New(os.Getenv("DAA_LOG_LEVEL"), "")
	cfg := loadConfig(lg)

	sink := errlog.New("daa")
	alerter := alerting.LookupPreset(cfg.Preset, sink)
	if alerter == nil {
		lg.Errorf("unknown alerter preset %q", cfg.Preset)
		fmt.Fprintf(os.Stderr, "unknown alerter preset %q\n", cfg.Preset)
		os.Exit(1)
	}
	applyOverrides(alerter, cfg.Overrides)

	core := alerting.NewCore(sink)
	core.Alerters = []*alerting.Alerter{alerter}
	core.SUM = cfg.SUM
	core.LookaheadTime = cfg.Lookahead

	fmt.Printf("alerter: %s\n", alerter.ID())
	for _, enc := range encounters {
		core.SetOwnship("ownship", enc.ownPos, enc.ownVel)
		idx := core.AddTraffic(enc.name, enc.intrPos, enc.intrVel)
		if idx < 0 {
			continue
		}
		level := core.AlertLevel(idx)
		fmt.Printf("%-20s alert level %d/%d\n", enc.name, level, alerter.MostSevereAlertLevel())
		for i, tin := range core.TimesToVolumes(idx) {
			cd := core.ViolationOfAlertThresholds(idx, i+1)
			fmt.Printf("    level %d: time to volume %s s, interval [%s, %s]\n",
				i+1, fm(tin, cfg.Precision), fm(cd.TimeIn, cfg.Precision), fm(cd.TimeOut, cfg.Precision))
		}
	}

	if sink.HasMessage() {
		lg.Warnf("diagnostics:\n%s", sink.Message())
	}
}
