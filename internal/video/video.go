// Package video turns a clip into a frame record. Every frame after the first
// is compared with the first one; pixels whose grey-level difference exceeds
// the tolerance are treated as the light, and their average colour is
// recorded together with their count.
//
// Decoding clips needs OpenCV and is only compiled with the gocv build tag.
package video

import (
	"errors"
	"fmt"

	"github.com/ColonelBlimp/cwclip/internal/signal"
)

const (
	// DefaultWidth is the width frames are resized to before comparison
	DefaultWidth = 320
	// DefaultHeight is the height frames are resized to before comparison
	DefaultHeight = 240
	// DefaultTolerance is the grey-level difference that counts as changed
	DefaultTolerance = 90
)

var (
	// ErrVideoUnsupported indicates the binary was built without OpenCV
	ErrVideoUnsupported = errors.New("video decoding not available, rebuild with -tags gocv")
	// ErrOpen indicates the clip could not be opened
	ErrOpen = errors.New("cannot open video")
	// ErrNoFrames indicates the clip has no readable first frame
	ErrNoFrames = errors.New("video has no readable frames")
)

// Config controls frame extraction.
type Config struct {
	// Width of the comparison frame (from config: frame_width)
	Width int
	// Height of the comparison frame (from config: frame_height)
	Height int
	// Tolerance is the changed-pixel cutoff (from config: rgb_tolerance)
	Tolerance int
}

// DefaultConfig returns the extraction settings of a fresh config file.
func DefaultConfig() Config {
	return Config{
		Width:     DefaultWidth,
		Height:    DefaultHeight,
		Tolerance: DefaultTolerance,
	}
}

// Validate checks the frame size and tolerance.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("frame size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Tolerance < 0 || c.Tolerance > 255 {
		errs = append(errs, fmt.Errorf("tolerance must be between 0 and 255, got %d", c.Tolerance))
	}
	return errors.Join(errs...)
}

// Sink receives one sample per frame, in order. framelog.Writer is a Sink.
type Sink interface {
	Write(s signal.Sample, count int) (int, error)
}
