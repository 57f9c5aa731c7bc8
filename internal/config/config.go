// Package config loads rxtrack.toml and applies RXTRACK_* environment
// overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/sandeepkv93/rxtrack/internal/model"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Pharmacy Pharmacy `toml:"pharmacy"`
	Storage  Storage  `toml:"storage"`
	Policy   Policy   `toml:"policy"`
	Rotation Rotation `toml:"rotation"`
	TUI      TUI      `toml:"tui"`
	Log      Log      `toml:"log"`
}

type Pharmacy struct {
	Name string `toml:"name"`
	// Timezone is an IANA name. Calendar dates and "today" are read in it.
	Timezone string `toml:"timezone"`
}

type Storage struct {
	// Driver is "sqlite3" (cgo) or "sqlite" (pure Go).
	Driver string `toml:"driver"`
	Path   string `toml:"path"`
}

type Policy struct {
	AmberWindowDays           int               `toml:"amber-window-days"`
	RefresherYears            int               `toml:"refresher-years"`
	RefresherWarningDays      int               `toml:"refresher-warning-days"`
	TreatMissingDateAsFailure bool              `toml:"treat-missing-date-as-failure"`
	FridgeMinC                float64           `toml:"fridge-min-c"`
	FridgeMaxC                float64           `toml:"fridge-max-c"`
	Windows                   map[string]Window `toml:"windows"`
}

type Window struct {
	Due     float64 `toml:"due"`
	Overdue float64 `toml:"overdue"`
}

type Rotation struct {
	Staff      []string          `toml:"staff"`
	Fixed      map[string]string `toml:"fixed"`
	Pharmacist string            `toml:"pharmacist"`
}

type TUI struct {
	AlertBuffer    int `toml:"alert-buffer"`
	RefreshSeconds int `toml:"refresh-seconds"`
}

type Log struct {
	Level string `toml:"level"`
	// File receives TUI logs; empty discards them.
	File string `toml:"file"`
}

func Default() Config {
	p := model.DefaultPolicy()
	windows := make(map[string]Window, len(p.Windows))
	for f, w := range p.Windows {
		windows[string(f)] = Window{Due: w.DueDays, Overdue: w.OverdueDays}
	}
	return Config{
		Pharmacy: Pharmacy{Timezone: "Local"},
		Storage:  Storage{Driver: "sqlite3", Path: "rxtrack.db"},
		Policy: Policy{
			AmberWindowDays:           p.AmberWindowDays,
			RefresherYears:            p.RefresherYears,
			RefresherWarningDays:      p.RefresherWarningDays,
			TreatMissingDateAsFailure: p.TreatMissingDateAsFailure,
			FridgeMinC:                p.FridgeMinC,
			FridgeMaxC:                p.FridgeMaxC,
			Windows:                   windows,
		},
		TUI: TUI{AlertBuffer: 64, RefreshSeconds: 60},
		Log: Log{Level: "info"},
	}
}

// DefaultPath is the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config directory: %w", err)
	}
	return filepath.Join(dir, "rxtrack", "config.toml"), nil
}

// Load reads path over the defaults and then applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, meta, err := loadConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := mergeFile(&cfg, fileCfg, meta); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	FromEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("%w: unknown key %s in %s", ErrInvalidConfig, undecoded[0], path)
	}
	return &cfg, meta, nil
}

// mergeFile copies every key the file defines onto cfg.
func mergeFile(cfg *Config, file *Config, meta toml.MetaData) error {
	cfg.Pharmacy.Name = mergeString(meta.IsDefined("pharmacy", "name"), file.Pharmacy.Name, cfg.Pharmacy.Name)
	cfg.Pharmacy.Timezone = mergeString(meta.IsDefined("pharmacy", "timezone"), file.Pharmacy.Timezone, cfg.Pharmacy.Timezone)
	cfg.Storage.Driver = mergeString(meta.IsDefined("storage", "driver"), file.Storage.Driver, cfg.Storage.Driver)
	cfg.Storage.Path = mergeString(meta.IsDefined("storage", "path"), file.Storage.Path, cfg.Storage.Path)
	cfg.Log.Level = mergeString(meta.IsDefined("log", "level"), file.Log.Level, cfg.Log.Level)
	cfg.Log.File = mergeString(meta.IsDefined("log", "file"), file.Log.File, cfg.Log.File)
	cfg.Rotation.Pharmacist = mergeString(meta.IsDefined("rotation", "pharmacist"), file.Rotation.Pharmacist, cfg.Rotation.Pharmacist)

	if meta.IsDefined("policy", "amber-window-days") {
		cfg.Policy.AmberWindowDays = file.Policy.AmberWindowDays
	}
	if meta.IsDefined("policy", "refresher-years") {
		cfg.Policy.RefresherYears = file.Policy.RefresherYears
	}
	if meta.IsDefined("policy", "refresher-warning-days") {
		cfg.Policy.RefresherWarningDays = file.Policy.RefresherWarningDays
	}
	if meta.IsDefined("policy", "treat-missing-date-as-failure") {
		cfg.Policy.TreatMissingDateAsFailure = file.Policy.TreatMissingDateAsFailure
	}
	if meta.IsDefined("policy", "fridge-min-c") {
		cfg.Policy.FridgeMinC = file.Policy.FridgeMinC
	}
	if meta.IsDefined("policy", "fridge-max-c") {
		cfg.Policy.FridgeMaxC = file.Policy.FridgeMaxC
	}
	for name, w := range file.Policy.Windows {
		f, err := model.ParseFrequency(name)
		if err != nil {
			return err
		}
		base := cfg.Policy.Windows[string(f)]
		if meta.IsDefined("policy", "windows", name, "due") {
			base.Due = w.Due
		}
		if meta.IsDefined("policy", "windows", name, "overdue") {
			base.Overdue = w.Overdue
		}
		cfg.Policy.Windows[string(f)] = base
	}

	if meta.IsDefined("rotation", "staff") {
		cfg.Rotation.Staff = trimAll(file.Rotation.Staff)
	}
	if meta.IsDefined("rotation", "fixed") {
		cfg.Rotation.Fixed = make(map[string]string, len(file.Rotation.Fixed))
		for task, name := range file.Rotation.Fixed {
			cfg.Rotation.Fixed[strings.TrimSpace(task)] = strings.TrimSpace(name)
		}
	}

	if meta.IsDefined("tui", "alert-buffer") {
		cfg.TUI.AlertBuffer = file.TUI.AlertBuffer
	}
	if meta.IsDefined("tui", "refresh-seconds") {
		cfg.TUI.RefreshSeconds = file.TUI.RefreshSeconds
	}
	return nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case "sqlite3", "sqlite":
	default:
		return fmt.Errorf("%w: storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.Path) == "" {
		return fmt.Errorf("%w: storage path is empty", ErrInvalidConfig)
	}
	if c.TUI.AlertBuffer <= 0 {
		return fmt.Errorf("%w: alert buffer %d", ErrInvalidConfig, c.TUI.AlertBuffer)
	}
	if c.TUI.RefreshSeconds < 0 {
		return fmt.Errorf("%w: refresh seconds %d", ErrInvalidConfig, c.TUI.RefreshSeconds)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.ModelPolicy(); err != nil {
		return err
	}
	return nil
}

// ModelPolicy converts the [policy] section into a validated rules policy.
func (c Config) ModelPolicy() (model.Policy, error) {
	p := model.Policy{
		AmberWindowDays:           c.Policy.AmberWindowDays,
		RefresherYears:            c.Policy.RefresherYears,
		RefresherWarningDays:      c.Policy.RefresherWarningDays,
		TreatMissingDateAsFailure: c.Policy.TreatMissingDateAsFailure,
		FridgeMinC:                c.Policy.FridgeMinC,
		FridgeMaxC:                c.Policy.FridgeMaxC,
		Windows:                   make(map[model.Frequency]model.Window, len(c.Policy.Windows)),
	}
	for name, w := range c.Policy.Windows {
		f, err := model.ParseFrequency(name)
		if err != nil {
			return model.Policy{}, err
		}
		p.Windows[f] = model.Window{DueDays: w.Due, OverdueDays: w.Overdue}
	}
	if err := p.Validate(); err != nil {
		return model.Policy{}, err
	}
	return p, nil
}

func (c Config) ModelRotation() model.Rotation {
	fixed := make(map[string]string, len(c.Rotation.Fixed))
	for task, name := range c.Rotation.Fixed {
		fixed[task] = name
	}
	return model.Rotation{
		Staff:      append([]string(nil), c.Rotation.Staff...),
		Fixed:      fixed,
		Pharmacist: c.Rotation.Pharmacist,
	}
}

func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Pharmacy.Timezone)
	if name == "" || name == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, name, err)
	}
	return loc, nil
}

func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.TUI.RefreshSeconds) * time.Second
}

func mergeString(defined bool, fileValue, current string) string {
	value := current
	if defined {
		value = fileValue
	}
	return strings.TrimSpace(value)
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
