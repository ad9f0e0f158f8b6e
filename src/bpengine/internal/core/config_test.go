package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigFromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.yaml"), []byte("files:\n  - base.yaml\n  - development.yaml\n  - local.yaml\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base.yaml"), []byte("project: base\nlogging:\n  level: info\nlineBreakpoints:\n  mergeWindow: 300ms\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "development.yaml"), []byte("project: dev\n"), 0644))

	provider, err := newConfigFromDir(dir)
	require.NoError(t, err)

	assert.Equal(t, "dev", provider.Get("project").String())
	assert.Equal(t, "info", provider.Get("logging.level").String())
	assert.Equal(t, "300ms", provider.Get("lineBreakpoints.mergeWindow").String())
	assert.False(t, provider.Get("nonexistent.path").HasValue())
	assert.Equal(t, "config", provider.(Config).Name())
}

func TestNewConfigFromDirErrors(t *testing.T) {
	t.Run("missing meta", func(t *testing.T) {
		_, err := newConfigFromDir(t.TempDir())
		assert.Error(t, err)
	})

	t.Run("no listed file exists", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "meta.yaml"), []byte("files:\n  - base.yaml\n"), 0644))
		_, err := newConfigFromDir(dir)
		assert.ErrorContains(t, err, "no configuration files found")
	})
}

func TestGetConfigDir(t *testing.T) {
	tests := []struct {
		name           string
		env            string
		expectedResult string
	}{
		{
			name:           "returns environment variable when set",
			env:            "/custom/config/path",
			expectedResult: "/custom/config/path",
		},
		{
			name:           "returns default path when environment variable not set",
			expectedResult: "src/bpengine/config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(_configDirEnv, tt.env)
			assert.Equal(t, tt.expectedResult, getConfigDir())
		})
	}
}
