package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestSetup_DefaultLevelInfo(t *testing.T) {
	Setup(Options{})
	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled by default")
	}
	if !slog.Default().Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be enabled by default")
	}
}

func TestSetup_DebugOption(t *testing.T) {
	Setup(Options{Debug: true})
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be enabled")
	}
}

func TestSetup_LogLevelEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	Setup(Options{})
	if slog.Default().Enabled(context.Background(), slog.LevelWarn) {
		t.Error("warn should be disabled with LOG_LEVEL=error")
	}
}

func TestSetup_DebugOverridesEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	Setup(Options{Debug: true})
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug option should override LOG_LEVEL")
	}
}
