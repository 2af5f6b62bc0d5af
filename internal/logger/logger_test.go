package logger

import (
	"testing"

	"github.com/wfunc/casino-jackpot/internal/config"
	"go.uber.org/zap/zapcore"
)

func initTestLogger(t *testing.T) {
	t.Helper()
	cfg := &config.LogConfig{
		Level:  "info",
		Format: "console",
		Output: "stdout",
	}
	if err := Init(cfg); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
}

func TestSetLevel(t *testing.T) {
	initTestLogger(t)

	SetLevel("info")
	if GetLogger().Core().Enabled(zapcore.DebugLevel) {
		t.Error("info级别下不应输出debug日志")
	}

	// 运行时调整级别应立即生效
	SetLevel("debug")
	if !GetLogger().Core().Enabled(zapcore.DebugLevel) {
		t.Error("调整为debug级别后应输出debug日志")
	}

	SetLevel("warn")
	if GetLogger().Core().Enabled(zapcore.InfoLevel) {
		t.Error("调整为warn级别后不应输出info日志")
	}
	if !GetLogger().Core().Enabled(zapcore.ErrorLevel) {
		t.Error("warn级别下仍应输出error日志")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"unknown", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
