package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the engine tuning file. Every field has a working default so a
// missing file is not an error.
type Config struct {
	Calendar  Calendar  `yaml:"calendar"`
	Streak    Streak    `yaml:"streak"`
	Slate     Slate     `yaml:"slate"`
	Reminders Reminders `yaml:"reminders"`
}

type Calendar struct {
	// FirstWeekday uses Monday-first 1..7 codes.
	FirstWeekday int `yaml:"first_weekday"`
}

type Streak struct {
	// ActiveThreshold is the intensity above which a day counts as active.
	ActiveThreshold float64 `yaml:"active_threshold"`
	// FreezeAllowance is the monthly freeze-token budget.
	FreezeAllowance int `yaml:"freeze_allowance"`
	// DisplayWeeks bounds history views; streak math still walks all logs.
	DisplayWeeks int `yaml:"display_weeks"`
}

type Slate struct {
	// Size is the top-N priority slate that counts toward the daily log.
	Size int `yaml:"size"`
}

type Reminders struct {
	Enabled       bool `yaml:"enabled"`
	DefaultHour   int  `yaml:"default_hour"`
	DefaultMinute int  `yaml:"default_minute"`
}

func Default() Config {
	return Config{
		Calendar:  Calendar{FirstWeekday: 1},
		Streak:    Streak{ActiveThreshold: 0.05, FreezeAllowance: 2, DisplayWeeks: 16},
		Slate:     Slate{Size: 3},
		Reminders: Reminders{Enabled: false, DefaultHour: 9, DefaultMinute: 0},
	}
}

// Load reads the yaml config at path, layering it over defaults. A missing
// file yields pure defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.Calendar.FirstWeekday < 1 || c.Calendar.FirstWeekday > 7 {
		c.Calendar.FirstWeekday = 1
	}
	if c.Streak.ActiveThreshold < 0 || c.Streak.ActiveThreshold >= 1 {
		c.Streak.ActiveThreshold = 0.05
	}
	if c.Streak.FreezeAllowance < 0 {
		c.Streak.FreezeAllowance = 0
	}
	if c.Streak.DisplayWeeks <= 0 {
		c.Streak.DisplayWeeks = 16
	}
	if c.Slate.Size <= 0 {
		c.Slate.Size = 3
	}
	if c.Reminders.DefaultHour < 0 || c.Reminders.DefaultHour > 23 {
		c.Reminders.DefaultHour = 9
	}
	if c.Reminders.DefaultMinute < 0 || c.Reminders.DefaultMinute > 59 {
		c.Reminders.DefaultMinute = 0
	}
}
