//go:build !gocv

package video

import (
	"context"

	"go.uber.org/zap"
)

// Available reports whether this build can decode clips.
func Available() bool { return false }

// Extract always fails with ErrVideoUnsupported in builds without OpenCV.
func Extract(ctx context.Context, path string, cfg Config, sink Sink, log *zap.SugaredLogger) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	return 0, ErrVideoUnsupported
}
