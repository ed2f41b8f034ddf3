// Copyright (c) 2026 The psdf authors.

// Package config collects the execution limits and parsing-strictness
// knobs shared by the ps and pdf packages into one validated struct,
// rather than scattering ad hoc constants and range checks through the
// implementation.
package config

import (
	"github.com/go-playground/validator/v10"
)

// ParsingMode controls how the PDF reader reacts to structurally
// questionable input (bad xref entries, missing trailer keys, and the
// like): fail outright, or salvage what can be salvaged.
type ParsingMode string

const (
	Strict     ParsingMode = "strict"
	BestEffort ParsingMode = "best-effort"
)

// Config bounds the resources a single interpreter run or PDF read may
// consume, and selects parsing strictness. Zero-value Config is not
// valid; use NewDefault and override fields as needed.
type Config struct {
	// PostScript engine limits.
	MaxOperandStackDepth int `validate:"min=16"`
	MaxGraphicsStackDepth int `validate:"min=1"`
	MaxExecutionSteps     int `validate:"min=1"`

	// PDF reader limits.
	MaxPageTreeDepth  int `validate:"min=1"`
	MaxWorkersPerPDF  int `validate:"min=1,max=64"`
	ParsingMode       ParsingMode `validate:"oneof=strict best-effort"`
}

// NewDefault returns a Config with conservative, generous-enough-for-real-files defaults.
func NewDefault() *Config {
	return &Config{
		MaxOperandStackDepth: 10000,
		MaxGraphicsStackDepth: 256,
		MaxExecutionSteps:     10_000_000,
		MaxPageTreeDepth:      64,
		MaxWorkersPerPDF:      4,
		ParsingMode:           BestEffort,
	}
}

// Validate checks the struct tags above and returns a descriptive error
// if the configuration is out of range.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
