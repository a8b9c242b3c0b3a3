package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		want    string
		problem bool
	}{
		{"default", Config{}, "info", false},
		{"verbose", Config{Verbose: true}, "debug", false},
		{"quiet", Config{Quiet: true}, "warn", false},
		{"quiet wins over verbose", Config{Verbose: true, Quiet: true}, "warn", true},
		{"explicit level wins", Config{Verbose: true, LogLevel: "error"}, "error", false},
		{"invalid level falls back", Config{LogLevel: "loud"}, "info", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, problem := determineLogLevel(&tt.config)
			assert.Equal(t, tt.want, level)
			assert.Equal(t, tt.problem, problem != "")
		})
	}
}
