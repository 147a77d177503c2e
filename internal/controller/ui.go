// Package controller provides the output adapters that report rewrite progress.
package controller

import (
	m "github.com/mouse-blink/strokefix/internal/model"
)

// StartMode defines the mode of operation for the UI.
type StartMode int

// Available StartMode values.
const (
	ModeApply StartMode = iota
	ModeEstimate
)

// StartOption is a functional option for Start method.
type StartOption func(*StartConfig)

// StartConfig holds configuration for starting the UI.
type StartConfig struct {
	mode StartMode
}

// WithEstimateMode sets the UI to estimation (dry run) mode.
func WithEstimateMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeEstimate
	}
}

// WithApplyMode sets the UI to rewrite mode.
func WithApplyMode() StartOption {
	return func(c *StartConfig) {
		c.mode = ModeApply
	}
}

func newStartConfig(options ...StartOption) StartConfig {
	var cfg StartConfig
	for _, opt := range options {
		opt(&cfg)
	}

	return cfg
}

// UI defines how a run reports its progress.
// Implementations must be safe for use from several goroutines.
type UI interface {
	Start(options ...StartOption) error
	Close()
	DisplayRunInfo(roots []m.Path, threads int)
	DisplayWarning(path m.Path, err error)
	DisplayRewritten(result m.FileResult)
	DisplayCompletion(summary m.Summary)
	DisplayEstimation(results []m.FileResult, err error) error
}
