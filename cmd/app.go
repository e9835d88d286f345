package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/ColonelBlimp/cwclip/internal/cli/decode"
	"github.com/ColonelBlimp/cwclip/internal/config"
	"github.com/ColonelBlimp/cwclip/internal/framelog"
	"github.com/ColonelBlimp/cwclip/internal/logging"
	"github.com/ColonelBlimp/cwclip/internal/recovery"
	"github.com/ColonelBlimp/cwclip/internal/report"
	"github.com/ColonelBlimp/cwclip/internal/video"
)

// appFs is the filesystem frame records are read from and written to.
var appFs = afero.NewOsFs()

// app is what every command needs once the config is loaded.
type app struct {
	settings *config.Settings
	format   report.Format
	log      *zap.SugaredLogger
	fs       afero.Fs
}

func newApp() (*app, error) {
	settings, err := config.Get()
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	format, err := report.ParseFormat(settings.Format)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	log, err := logging.New(settings.Debug)
	if err != nil {
		return nil, err
	}
	return &app{settings: settings, format: format, log: log, fs: appFs}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

func (a *app) decoder() (*decode.Decoder, error) {
	d, err := decode.NewDecoder(*a.settings, decode.WithLogger(a.log))
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	return d, nil
}

// extract writes the frame record for clip to the configured frames path.
func (a *app) extract(ctx context.Context, clip string) (int, error) {
	if !video.Available() {
		return 0, video.ErrVideoUnsupported
	}
	w, err := framelog.Create(a.fs, a.settings.FramesPath)
	if err != nil {
		return 0, err
	}

	cfg := video.Config{
		Width:     a.settings.FrameWidth,
		Height:    a.settings.FrameHeight,
		Tolerance: a.settings.RGBTolerance,
	}
	n, err := video.Extract(ctx, clip, cfg, w, a.log)
	if cerr := w.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("write frame record: %w", cerr)
	}
	if err != nil {
		return n, fmt.Errorf("extract %s: %w", clip, err)
	}
	a.log.Infow("frame data saved", "clip", clip, "path", a.settings.FramesPath, "frames", n)
	return n, nil
}

// decodeFile decodes one frame record. A panic inside the decoder is
// returned as an error.
func (a *app) decodeFile(d *decode.Decoder, path string) (res *decode.Result, err error) {
	defer recovery.Catch(&err)

	records, err := framelog.Load(a.fs, path)
	if err != nil {
		return nil, err
	}
	a.log.Debugw("frame record loaded", "path", path, "frames", len(records))

	return d.Decode(framelog.Samples(records))
}
