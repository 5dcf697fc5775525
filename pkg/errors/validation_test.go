package errors

import (
	"strings"
	"testing"
)

func TestValidateBasename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default loop", "agentic_ai_loop", false},
		{"default chart", "chart", false},
		{"with dash and dot", "loop-v2.final", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"slash", "out/chart", true},
		{"backslash", `out\chart`, true},
		{"parent", "..chart", true},
		{"hidden", ".chart", true},
		{"control", "chart\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBasename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBasename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateBasename(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateOutputDir(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"out", false},
		{"/tmp/loopchart", false},
		{"../renders", false},
		{"out\x00", true},
		{strings.Repeat("d", 1025), true},
	}

	for _, tt := range tests {
		if err := ValidateOutputDir(tt.input); (err != nil) != tt.wantErr {
			t.Errorf("ValidateOutputDir(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
