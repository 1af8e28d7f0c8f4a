package errors

import (
	"math"
	"testing"
)

func TestValidateAlgorithmID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "quick", false},
		{"valid unknown name", "bogo", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 40)), true},
		{"space", "quick sort", true},
		{"newline", "quick\n", true},
		{"slash", "../heap", true},
		{"backslash", "heap\\x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAlgorithmID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAlgorithmID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidAlgorithm) {
				t.Errorf("code = %v, want %v", GetCode(err), ErrCodeInvalidAlgorithm)
			}
		})
	}
}

func TestValidateArraySize(t *testing.T) {
	tests := []struct {
		input   int
		wantErr bool
	}{
		{1, false},
		{130, false},
		{MaxArraySize, false},
		{0, true},
		{-3, true},
		{MaxArraySize + 1, true},
	}

	for _, tt := range tests {
		err := ValidateArraySize(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateArraySize(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateMaxValue(t *testing.T) {
	tests := []struct {
		input   int
		wantErr bool
	}{
		{1, false},
		{750, false},
		{0, true},
		{MaxBarValue + 1, true},
	}

	for _, tt := range tests {
		err := ValidateMaxValue(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateMaxValue(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateSpeed(t *testing.T) {
	tests := []struct {
		input   float64
		wantErr bool
	}{
		{1, false},
		{0.25, false},
		{16, false},
		{MinSpeed, false},
		{MaxSpeed, false},
		{MinSpeed / 2, true},
		{MaxSpeed * 2, true},
		{1e-15, true},
		{0, true},
		{-1, true},
		{math.NaN(), true},
		{math.Inf(1), true},
	}

	for _, tt := range tests {
		err := ValidateSpeed(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSpeed(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
