// FILE: lixenwraith/sawlog/config_test.go
package sawlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, int64(SeverityDebug), cfg.Level)
	assert.True(t, cfg.Async)
	assert.Equal(t, OutputStdout, cfg.Output)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, "[]", cfg.TimestampBrackets)
	assert.Equal(t, "[]", cfg.ProducerBrackets)
	assert.Equal(t, "[]", cfg.LocationBrackets)
	assert.Equal(t, int64(0), cfg.ProducerShift)
	assert.Equal(t, "raw", cfg.Sanitize)
	assert.Equal(t, int64(0), cfg.HeartbeatIntervalS)
	assert.True(t, cfg.InternalErrorsToStderr)
	assert.NoError(t, cfg.Validate())
}

func TestConfigClone(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg1.Level = int64(SeverityInfo)
	cfg1.Output = "/custom/path.log"

	cfg2 := cfg1.Clone()
	assert.Equal(t, cfg1.Output, cfg2.Output)

	cfg1.Level = int64(SeverityError)
	assert.Equal(t, int64(SeverityInfo), cfg2.Level)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError string
	}{
		{
			name:   "valid config",
			modify: func(c *Config) {},
		},
		{
			name:      "level too low",
			modify:    func(c *Config) { c.Level = 0 },
			wantError: "level must be between 1 and 5",
		},
		{
			name:      "level too high",
			modify:    func(c *Config) { c.Level = 6 },
			wantError: "level must be between 1 and 5",
		},
		{
			name:      "empty output",
			modify:    func(c *Config) { c.Output = " " },
			wantError: "output cannot be empty",
		},
		{
			name:      "unknown color mode",
			modify:    func(c *Config) { c.Color = "rainbow" },
			wantError: "invalid color mode",
		},
		{
			name:      "short brackets",
			modify:    func(c *Config) { c.TimestampBrackets = "[" },
			wantError: "timestamp_brackets must be exactly two characters",
		},
		{
			name:      "long brackets",
			modify:    func(c *Config) { c.LocationBrackets = "[[]]" },
			wantError: "location_brackets must be exactly two characters",
		},
		{
			name:      "negative shift",
			modify:    func(c *Config) { c.ProducerShift = -1 },
			wantError: "producer_shift must be between 0 and 63",
		},
		{
			name:      "unknown sanitize policy",
			modify:    func(c *Config) { c.Sanitize = "json" },
			wantError: "invalid sanitize policy",
		},
		{
			name:      "negative heartbeat",
			modify:    func(c *Config) { c.HeartbeatIntervalS = -5 },
			wantError: "heartbeat_interval_s cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}

	t.Run("multiple errors combined", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Level = 9
		cfg.Color = "x"
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple configuration errors")
	})
}

func TestNewConfigFromFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := NewConfigFromFile(filepath.Join(dir, "absent.toml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig(), cfg)
	})

	t.Run("log table overrides defaults", func(t *testing.T) {
		path := filepath.Join(dir, "app.toml")
		content := `
[log]
level = 3
async = false
output = "/var/log/app.log"
color = "never"
producer_brackets = "<>"
producer_shift = 12
sanitize = "txt"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := NewConfigFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, int64(SeverityNotice), cfg.Level)
		assert.False(t, cfg.Async)
		assert.Equal(t, "/var/log/app.log", cfg.Output)
		assert.Equal(t, ColorNever, cfg.Color)
		assert.Equal(t, "<>", cfg.ProducerBrackets)
		assert.Equal(t, int64(12), cfg.ProducerShift)
		assert.Equal(t, "txt", cfg.Sanitize)
		// untouched keys keep their defaults
		assert.Equal(t, "[]", cfg.TimestampBrackets)
		assert.True(t, cfg.InternalErrorsToStderr)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("[log\nlevel = "), 0o644))
		_, err := NewConfigFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load config file")
	})

	t.Run("invalid value", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.toml")
		require.NoError(t, os.WriteFile(path, []byte("[log]\ncolor = \"loud\"\n"), 0o644))
		_, err := NewConfigFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid color mode")
	})
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "log.toml")

	cfg := DefaultConfig()
	cfg.Level = int64(SeverityWarning)
	cfg.Output = OutputStderr
	cfg.HeartbeatIntervalS = 30
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := NewConfigFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	assert.Error(t, SaveConfig(nil, path))
}

func TestNewConfigFromDefaults(t *testing.T) {
	t.Run("typed overrides", func(t *testing.T) {
		cfg, err := NewConfigFromDefaults(map[string]any{
			"level":  3,
			"async":  false,
			"output": "stderr",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3), cfg.Level)
		assert.False(t, cfg.Async)
		assert.Equal(t, OutputStderr, cfg.Output)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := NewConfigFromDefaults(map[string]any{"directory": "/tmp"})
		assert.Error(t, err)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := NewConfigFromDefaults(map[string]any{"async": "yes"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid type for 'async'")
	})

	t.Run("decoder number kinds", func(t *testing.T) {
		cfg, err := NewConfigFromDefaults(map[string]any{
			"level":                uint8(2),
			"heartbeat_interval_s": float64(30),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), cfg.Level)
		assert.Equal(t, int64(30), cfg.HeartbeatIntervalS)

		_, err = NewConfigFromDefaults(map[string]any{"producer_shift": 1.5})
		assert.Error(t, err)
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := NewConfigFromDefaults(map[string]any{"level": int64(0)})
		assert.Error(t, err)
	})
}

func TestApplyConfigString(t *testing.T) {
	tests := []struct {
		name      string
		overrides []string
		verify    func(t *testing.T, cfg *Config)
		wantError string
	}{
		{
			name:      "named level and flags",
			overrides: []string{"level=warning", "async=false", "color=NEVER"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, int64(SeverityWarning), cfg.Level)
				assert.False(t, cfg.Async)
				assert.Equal(t, ColorNever, cfg.Color)
			},
		},
		{
			name:      "numeric level and formatting",
			overrides: []string{"level=2", "timestamp_brackets=()", "producer_shift=4", "sanitize=strip"},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, int64(2), cfg.Level)
				assert.Equal(t, "()", cfg.TimestampBrackets)
				assert.Equal(t, int64(4), cfg.ProducerShift)
				assert.Equal(t, "strip", cfg.Sanitize)
			},
		},
		{
			name:      "unknown key",
			overrides: []string{"rotate=true"},
			wantError: "unknown configuration key 'rotate'",
		},
		{
			name:      "bad boolean",
			overrides: []string{"async=maybe"},
			wantError: "invalid boolean value for async",
		},
		{
			name:      "missing equals",
			overrides: []string{"level"},
			wantError: "expected key=value",
		},
		{
			name:      "several errors",
			overrides: []string{"level=loud", "producer_shift=x"},
			wantError: "multiple configuration errors",
		},
		{
			name:      "valid syntax invalid value",
			overrides: []string{"producer_shift=99"},
			wantError: "producer_shift must be between 0 and 63",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger()
			err := logger.ApplyConfigString(tt.overrides...)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			tt.verify(t, logger.GetConfig())
		})
	}
}

func TestApplyConfigNil(t *testing.T) {
	assert.Error(t, NewLogger().ApplyConfig(nil))
}

func TestApplyConfigFormatting(t *testing.T) {
	logger, out := createTestLogger(t)

	require.NoError(t, logger.ApplyConfigString(
		"timestamp_brackets=<>",
		"producer_brackets={}",
		"location_brackets=()",
		"sanitize=txt",
	))
	logger.Emit(SeverityInfo, Location{Function: "f", File: "f.go", Line: 1}, "a\tb")
	require.NoError(t, logger.Shutdown())

	lines := out.lines()
	require.Len(t, lines, 1)
	assert.Regexp(t, `^INF <[^>]+>\{[0-9a-f]{7}\} a<09>b \(f:f\.go\+1\)$`, lines[0])
}
