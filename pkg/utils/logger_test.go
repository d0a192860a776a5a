package utils

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		debug    bool
		json     bool
		level    zapcore.Level
		encoding string
	}{
		{"default", false, false, zapcore.InfoLevel, "console"},
		{"debug console", true, false, zapcore.DebugLevel, "console"},
		{"json", false, true, zapcore.InfoLevel, "json"},
		{"debug json", true, true, zapcore.DebugLevel, "json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loggerConfig(tt.debug, tt.json)
			if cfg.Level.Level() != tt.level {
				t.Errorf("level = %v, want %v", cfg.Level.Level(), tt.level)
			}
			if cfg.Encoding != tt.encoding {
				t.Errorf("encoding = %q, want %q", cfg.Encoding, tt.encoding)
			}
			logger, err := NewLogger(tt.debug, tt.json)
			if err != nil {
				t.Fatalf("NewLogger error: %v", err)
			}
			if logger == nil {
				t.Fatal("NewLogger returned nil logger")
			}
			if got := logger.Core().Enabled(zapcore.DebugLevel); got != tt.debug {
				t.Errorf("debug enabled = %v, want %v", got, tt.debug)
			}
		})
	}
}
