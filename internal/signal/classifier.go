// Package signal turns per-frame brightness measurements into an ON/OFF signal
// and collapses that signal into runs.
package signal

import (
	"errors"
)

var (
	// ErrInvalidThreshold indicates threshold must be on the 0-255 brightness scale
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 255")
	// ErrInvalidHysteresis indicates hysteresis must be non-negative
	ErrInvalidHysteresis = errors.New("hysteresis must be non-negative")
)

// Sample is the colour measured for the changed pixels of one frame.
// Channels are on the 0-255 scale.
type Sample struct {
	R int
	G int
	B int
}

// Brightness returns the average of the three channels.
func (s Sample) Brightness() float64 {
	return float64(s.R+s.G+s.B) / 3
}

// IsOn reports whether the sample is at or above threshold.
func IsOn(s Sample, threshold int) bool {
	return s.Brightness() >= float64(threshold)
}

// ClassifierConfig holds configuration for the brightness classifier.
// All values should come from the application config file.
type ClassifierConfig struct {
	// Threshold is the ON cutoff, 0-255 (from config: threshold)
	Threshold int
	// Hysteresis is consecutive frames required to confirm a state change (from config: hysteresis)
	// 0 and 1 both mean every frame is classified on its own.
	Hysteresis int
}

// Classifier converts brightness samples into an ON/OFF signal.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier creates a classifier with the given configuration.
func NewClassifier(cfg ClassifierConfig) (*Classifier, error) {
	if cfg.Threshold < 0 || cfg.Threshold > 255 {
		return nil, ErrInvalidThreshold
	}
	if cfg.Hysteresis < 0 {
		return nil, ErrInvalidHysteresis
	}
	return &Classifier{config: cfg}, nil
}

// Classify returns one boolean per sample, true = ON.
//
// With hysteresis above 1 a change of state is only accepted once that many
// consecutive frames agree. The frames that confirmed the change are relabelled
// so run lengths still start at the first frame of the new state; shorter
// excursions keep the previous state.
func (c *Classifier) Classify(samples []Sample) []bool {
	out := make([]bool, len(samples))
	if len(samples) == 0 {
		return out
	}

	hysteresis := c.config.Hysteresis
	if hysteresis <= 1 {
		for i, s := range samples {
			out[i] = IsOn(s, c.config.Threshold)
		}
		return out
	}

	state := false
	pending := 0
	for i, s := range samples {
		on := IsOn(s, c.config.Threshold)
		if on == state {
			pending = 0
			out[i] = state
			continue
		}

		pending++
		out[i] = state
		if pending >= hysteresis {
			state = on
			for j := i - hysteresis + 1; j <= i; j++ {
				out[j] = state
			}
			pending = 0
		}
	}
	return out
}
