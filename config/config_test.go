// Copyright (c) 2026 The psdf authors.

package config

import "testing"

func TestNewDefaultValidates(t *testing.T) {
	cfg := NewDefault()
	if err := cfg.Validate(); err != nil {
		t.Errorf("NewDefault() failed validation: %v", err)
	}
}

func TestValidateRejectsZeroExecutionSteps(t *testing.T) {
	cfg := NewDefault()
	cfg.MaxExecutionSteps = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected a validation error for MaxExecutionSteps = 0")
	}
}

func TestValidateRejectsBadParsingMode(t *testing.T) {
	cfg := NewDefault()
	cfg.ParsingMode = "whatever"
	if err := cfg.Validate(); err == nil {
		t.Error("expected a validation error for an unrecognized ParsingMode")
	}
}

func TestValidateRejectsWorkerCountOutOfRange(t *testing.T) {
	cfg := NewDefault()
	cfg.MaxWorkersPerPDF = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected a validation error for MaxWorkersPerPDF = 0")
	}
	cfg.MaxWorkersPerPDF = 1000
	if err := cfg.Validate(); err == nil {
		t.Error("expected a validation error for MaxWorkersPerPDF = 1000")
	}
}
