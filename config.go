// FILE: config.go
package sawlog

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/lixenwraith/config"

	"github.com/lixenwraith/sawlog/formatter"
	"github.com/lixenwraith/sawlog/sanitizer"
)

// Config holds all logger configuration values
type Config struct {
	// Basic settings
	Level  int64  `toml:"level"`  // Least urgent severity written (1=error .. 5=debug)
	Async  bool   `toml:"async"`  // Hand records to the background worker
	Output string `toml:"output"` // "stdout", "stderr" or a file path
	Color  string `toml:"color"`  // "auto", "always" or "never"

	// Formatting
	TimestampBrackets string `toml:"timestamp_brackets"`
	ProducerBrackets  string `toml:"producer_brackets"`
	LocationBrackets  string `toml:"location_brackets"`
	ProducerShift     int64  `toml:"producer_shift"` // Low bits of the producer id dropped before display
	Sanitize          string `toml:"sanitize"`       // "raw", "txt", "strip" or "escape"

	// Heartbeat configuration
	HeartbeatIntervalS int64 `toml:"heartbeat_interval_s"` // 0 = disabled

	// Internal error handling
	InternalErrorsToStderr bool `toml:"internal_errors_to_stderr"`
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Level:  int64(SeverityDebug),
	Async:  true,
	Output: OutputStdout,
	Color:  ColorAuto,

	TimestampBrackets: "[]",
	ProducerBrackets:  "[]",
	LocationBrackets:  "[]",
	ProducerShift:     0,
	Sanitize:          string(sanitizer.PolicyRaw),

	HeartbeatIntervalS: 0,

	InternalErrorsToStderr: true,
}

// configPrefix is the table holding logger settings in a config file
const configPrefix = "log."

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	copiedConfig := defaultConfig
	return &copiedConfig
}

// NewConfigFromFile loads the [log] table of a TOML file over the defaults.
// A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	loader := config.New()
	if err := loader.RegisterStruct(configPrefix, *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config file '%s': %w", path, err)
	}

	if err := extractConfig(loader, configPrefix, cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values from '%s': %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmtErrorf("invalid configuration in '%s': %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg as a [log] table to path
func SaveConfig(cfg *Config, path string) error {
	if cfg == nil {
		return fmtErrorf("configuration cannot be nil")
	}

	// Registered values are what Save writes out
	saver := config.New()
	if err := saver.RegisterStruct(configPrefix, *cfg); err != nil {
		return fmtErrorf("failed to register config struct: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmtErrorf("failed to create config directory '%s': %w", dir, err)
		}
	}
	if err := saver.Save(path); err != nil {
		return fmtErrorf("failed to write config file '%s': %w", path, err)
	}
	return nil
}

// extractConfig copies the values found under prefix into cfg, keys the
// loader does not know keep their defaults
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	cfgVal := reflect.ValueOf(cfg).Elem()
	cfgType := cfgVal.Type()

	for i := 0; i < cfgType.NumField(); i++ {
		tag := cfgType.Field(i).Tag.Get("toml")
		if tag == "" {
			continue
		}
		val, found := loader.Get(prefix + tag)
		if !found || val == nil {
			continue
		}
		if err := setFieldValue(cfgVal.Field(i), tag, val); err != nil {
			return err
		}
	}
	return nil
}

// NewConfigFromDefaults creates a Config with default values and applies the provided overrides.
// Override keys are the toml tag names; values must match the field type.
func NewConfigFromDefaults(overrides map[string]any) (*Config, error) {
	cfg := DefaultConfig()

	if overrides != nil {
		if err := applyOverrides(cfg, overrides); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	var errs []error

	if !Severity(c.Level).Valid() {
		errs = append(errs, fmtErrorf("level must be between %d and %d: %d", SeverityError, SeverityDebug, c.Level))
	}

	if strings.TrimSpace(c.Output) == "" {
		errs = append(errs, fmtErrorf("output cannot be empty"))
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmtErrorf("invalid color mode: '%s' (use auto, always, or never)", c.Color))
	}

	for name, pair := range map[string]string{
		"timestamp_brackets": c.TimestampBrackets,
		"producer_brackets":  c.ProducerBrackets,
		"location_brackets":  c.LocationBrackets,
	} {
		if !formatter.ValidBrackets(pair) {
			errs = append(errs, fmtErrorf("%s must be exactly two characters: '%s'", name, pair))
		}
	}

	if c.ProducerShift < 0 || c.ProducerShift > maxProducerShift {
		errs = append(errs, fmtErrorf("producer_shift must be between 0 and %d: %d", maxProducerShift, c.ProducerShift))
	}

	if !sanitizer.IsPolicy(c.Sanitize) {
		errs = append(errs, fmtErrorf("invalid sanitize policy: '%s' (use raw, txt, strip, or escape)", c.Sanitize))
	}

	if c.HeartbeatIntervalS < 0 {
		errs = append(errs, fmtErrorf("heartbeat_interval_s cannot be negative: %d", c.HeartbeatIntervalS))
	}

	return combineConfigErrors(errs)
}

// newFormatter builds the line formatter described by c
func newFormatter(c *Config) *formatter.Formatter {
	san := sanitizer.New().Policy(sanitizer.PolicyPreset(c.Sanitize))
	return formatter.New(san).
		TimestampBrackets(c.TimestampBrackets).
		ProducerBrackets(c.ProducerBrackets).
		LocationBrackets(c.LocationBrackets).
		ProducerShift(uint(c.ProducerShift))
}

// applyOverrides applies a map of overrides to the config struct using reflection
func applyOverrides(cfg *Config, overrides map[string]any) error {
	cfgVal := reflect.ValueOf(cfg).Elem()
	cfgType := cfgVal.Type()

	fieldMap := make(map[string]int, cfgType.NumField())
	for i := 0; i < cfgType.NumField(); i++ {
		tag := cfgType.Field(i).Tag.Get("toml")
		if tag != "" {
			fieldMap[tag] = i
		}
	}

	for key, value := range overrides {
		idx, ok := fieldMap[key]
		if !ok {
			return fmtErrorf("unknown configuration key '%s'", key)
		}
		if err := setFieldValue(cfgVal.Field(idx), key, value); err != nil {
			return err
		}
	}
	return nil
}

// setFieldValue assigns value to field with the integer widening TOML decoders produce
func setFieldValue(field reflect.Value, key string, value any) error {
	v := reflect.ValueOf(value)
	switch field.Kind() {
	case reflect.Int64:
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			field.SetInt(v.Int())
			return nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			field.SetInt(int64(v.Uint()))
			return nil
		case reflect.Float32, reflect.Float64:
			if f := v.Float(); f == float64(int64(f)) {
				field.SetInt(int64(f))
				return nil
			}
		}
	case reflect.String:
		if v.Kind() == reflect.String {
			field.SetString(v.String())
			return nil
		}
	case reflect.Bool:
		if v.Kind() == reflect.Bool {
			field.SetBool(v.Bool())
			return nil
		}
	}
	return fmtErrorf("invalid type for '%s': expected %s, got %T", key, field.Kind(), value)
}
