package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name       string
		jsonOutput bool
		verbosity  int
	}{
		{name: "JSON output mode", jsonOutput: true, verbosity: 0},
		{name: "Console output mode", jsonOutput: false, verbosity: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Logger = nil
			JSONOutput = false

			require.NoError(t, Initialize(tt.jsonOutput, tt.verbosity))
			require.NotNil(t, Logger)
			assert.Equal(t, tt.jsonOutput, JSONOutput)
			assert.Equal(t, tt.verbosity, Verbosity)

			Logger = zap.NewNop().Sugar()
		})
	}
}

func TestNewConsole_RespectsVerbosity(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsole(&buf, VerbosityUser)

	log.Infow("hidden at default verbosity")
	log.Warnw("shown", FieldFile, "index.d.ts")
	_ = log.Sync()

	out := buf.String()
	assert.NotContains(t, out, "hidden at default verbosity")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, `"file": "index.d.ts"`)
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	Logger = NewConsole(&buf, VerbosityDebug)
	defer func() { Logger = zap.NewNop().Sugar() }()

	log := ChildLogger(ComponentLogger("pipeline"), FieldRunID, "abc")
	log.Debugw("pass finished", FieldPass, "overload")
	_ = log.Sync()

	out := buf.String()
	assert.Contains(t, out, "pipeline")
	assert.Contains(t, out, `"run_id": "abc"`)
	assert.Contains(t, out, `"pass": "overload"`)
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{VerbosityTrace, zapcore.DebugLevel},
		{7, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VerbosityToLevel(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "User", LevelName(0))
	assert.Equal(t, "Debug (-vv)", LevelName(2))
	assert.Equal(t, "Trace (-vvv+)", LevelName(5))
	assert.Equal(t, "Unknown", LevelName(-1))
}

// TestLoggingFunctions tests the package-level logging functions
func TestLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer
	Logger = NewConsole(&buf, VerbosityDebug)
	defer func() { Logger = zap.NewNop().Sugar() }()

	Info("info")
	Infof("infof %s", "x")
	Infow("infow", "key", "value")
	Warnw("warnw")
	Errorw("errorw")
	Debugw("debugw")
	Cleanup()

	for _, want := range []string{"info", "infof x", "infow", "warnw", "errorw", "debugw"} {
		assert.Contains(t, buf.String(), want)
	}

	t.Run("With nil logger (should not panic)", func(t *testing.T) {
		Logger = nil
		Info("test")
		Infof("test %s", "format")
		Infow("test", "key", "value")
		Warnw("test")
		Errorw("test")
		Debugw("test")
		Cleanup()
	})
}
