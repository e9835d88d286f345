//go:build gocv

package video

import (
	"context"
	"fmt"
	"image"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/ColonelBlimp/cwclip/internal/signal"
)

// Available reports whether this build can decode clips.
func Available() bool { return true }

// Extract reads the clip at path and writes one sample per frame after the
// first to sink. It returns the number of frames written.
func Extract(ctx context.Context, path string, cfg Config, sink Sink, log *zap.SugaredLogger) (int, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w %s: %v", ErrOpen, path, err)
	}
	defer func() { _ = capture.Close() }()
	if !capture.IsOpened() {
		return 0, fmt.Errorf("%w %s", ErrOpen, path)
	}

	size := image.Pt(cfg.Width, cfg.Height)

	raw := gocv.NewMat()
	defer raw.Close()
	base := gocv.NewMat()
	defer base.Close()

	if !capture.Read(&raw) || raw.Empty() {
		return 0, fmt.Errorf("%w: %s", ErrNoFrames, path)
	}
	gocv.Resize(raw, &base, size, 0, 0, gocv.InterpolationLinear)

	frame := gocv.NewMat()
	defer frame.Close()
	diff := gocv.NewMat()
	defer diff.Close()
	gray := gocv.NewMat()
	defer gray.Close()
	mask := gocv.NewMat()
	defer mask.Close()

	frames := 0
	for capture.Read(&raw) {
		if err := ctx.Err(); err != nil {
			return frames, err
		}
		if raw.Empty() {
			break
		}
		gocv.Resize(raw, &frame, size, 0, 0, gocv.InterpolationLinear)

		gocv.AbsDiff(base, frame, &diff)
		gocv.CvtColor(diff, &gray, gocv.ColorBGRToGray)
		gocv.Threshold(gray, &mask, float32(cfg.Tolerance), 255, gocv.ThresholdBinary)

		var sample signal.Sample
		count := gocv.CountNonZero(mask)
		if count > 0 {
			// frames are BGR
			mean := frame.MeanWithMask(mask)
			sample = signal.Sample{R: int(mean.Val3), G: int(mean.Val2), B: int(mean.Val1)}
		}

		if _, err := sink.Write(sample, count); err != nil {
			return frames, err
		}
		frames++
	}

	log.Debugw("frames extracted", "path", path, "frames", frames, "size", size, "tolerance", cfg.Tolerance)
	return frames, nil
}
