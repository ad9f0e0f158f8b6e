package core

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/config"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name          string
		loggingConfig string
		expectedLevel zapcore.Level
		expectError   bool
	}{
		{
			name: "info level json encoding",
			loggingConfig: `
logging:
  level: info
  development: false
  encoding: json
`,
			expectedLevel: zapcore.InfoLevel,
		},
		{
			name: "debug level console encoding",
			loggingConfig: `
logging:
  level: debug
  development: true
  encoding: console
  outputPaths:
    - stdout
`,
			expectedLevel: zapcore.DebugLevel,
		},
		{
			name: "error level default encoding",
			loggingConfig: `
logging:
  level: error
`,
			expectedLevel: zapcore.ErrorLevel,
		},
		{
			name: "invalid level",
			loggingConfig: `
logging:
  level: invalid
`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := config.NewYAML(config.Source(strings.NewReader(tt.loggingConfig)))
			require.NoError(t, err)

			sugar, err := NewSugaredLogger(provider)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, sugar.Desugar().Core().Enabled(tt.expectedLevel))
			assert.False(t, sugar.Desugar().Core().Enabled(tt.expectedLevel-1))
			assert.NotNil(t, NewLogger(sugar))
		})
	}
}

func TestNewLoggerOutputPath(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bpengine.log")
	provider, err := config.NewYAML(config.Source(strings.NewReader("logging:\n  level: info\n  outputPaths:\n    - " + out + "\n")))
	require.NoError(t, err)

	sugar, err := NewSugaredLogger(provider)
	require.NoError(t, err)
	sugar.Infow("written", "key", "value")
	assert.FileExists(t, out)
}
