package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesAndNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ember.yml")
	data := []byte("calendar:\n  first_weekday: 7\nstreak:\n  active_threshold: 0.1\n  freeze_allowance: -3\nslate:\n  size: 5\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Calendar.FirstWeekday)
	assert.Equal(t, 0.1, cfg.Streak.ActiveThreshold)
	assert.Equal(t, 0, cfg.Streak.FreezeAllowance, "negative allowance clamps to zero")
	assert.Equal(t, 5, cfg.Slate.Size)
	assert.Equal(t, 16, cfg.Streak.DisplayWeeks, "unset field keeps default")
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ember.yml")
	require.NoError(t, os.WriteFile(path, []byte(":\t not yaml ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
