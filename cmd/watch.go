package cmd

import (
	"errors"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/cwclip/internal/framelog"
	"github.com/ColonelBlimp/cwclip/internal/report"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Decode the frame record every time it changes",
	Long: `Watch decodes the frame record once, then again every time it is rewritten,
for example by extract running in another terminal. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	d, err := a.decoder()
	if err != nil {
		return err
	}

	ctx, stop := ossignal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := a.settings.FramesPath
	out := cmd.OutOrStdout()
	render := func() {
		res, err := a.decodeFile(d, path)
		if err != nil {
			a.log.Errorw("decode failed", "path", path, "error", err)
			return
		}
		if err := report.New(path, a.settings.Threshold, res, nil).Write(out, a.format); err != nil {
			a.log.Errorw("write report", "error", err)
		}
	}

	if _, err := a.fs.Stat(path); err == nil {
		render()
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	debounce := time.Duration(a.settings.DebounceMs) * time.Millisecond
	a.log.Infow("watching frame record", "path", path)
	return framelog.Watch(ctx, path, debounce, a.log, render)
}
