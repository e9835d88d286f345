package decode

import (
	"errors"
	"fmt"
)

var (
	// ErrNoOnSignal indicates no frame reached the brightness threshold
	ErrNoOnSignal = errors.New("no ON signal")
	// ErrDegenerateClasses indicates too few distinct durations for the requested classes
	ErrDegenerateClasses = errors.New("too few distinct durations for duration classes")
)

// ConfigurationError reports a threshold that produced no ON frames.
// Decoding stops and no partial output is returned.
type ConfigurationError struct {
	Threshold int
	Frames    int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no ON signal: none of %d frames reached brightness threshold %d, adjust it with --threshold/-t",
		e.Frames, e.Threshold)
}

func (e *ConfigurationError) Unwrap() error { return ErrNoOnSignal }

// DegenerateClassError reports a run population whose durations do not
// separate into the requested duration classes: there are fewer distinct
// lengths than classes, or jittered lengths split one gap role over several
// classes. It is only returned in strict mode.
type DegenerateClassError struct {
	// Polarity is "on" or "off"
	Polarity string
	// Runs is the number of runs of that polarity
	Runs int
	// Distinct is the number of separable durations found
	Distinct int
	// Classes is the number of classes requested
	Classes int
}

func (e *DegenerateClassError) Error() string {
	return fmt.Sprintf("%s runs: %d runs with %d separable lengths cannot fill %d duration classes",
		e.Polarity, e.Runs, e.Distinct, e.Classes)
}

func (e *DegenerateClassError) Unwrap() error { return ErrDegenerateClasses }
