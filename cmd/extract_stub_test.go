//go:build !gocv

package cmd

import (
	"errors"
	"testing"

	"github.com/spf13/afero"

	"github.com/ColonelBlimp/cwclip/internal/video"
)

func TestExtractCmd_Unsupported(t *testing.T) {
	fs := setupTest(t, "")
	writeRecord(t, fs, "frames.txt", abcRuns, 250)

	_, err := execute("extract", "--clip", "clip.mp4", "-F", "frames.txt")
	if !errors.Is(err, video.ErrVideoUnsupported) {
		t.Fatalf("extract error = %v, want ErrVideoUnsupported", err)
	}

	// the existing record is left alone
	records, err := afero.ReadFile(fs, "frames.txt")
	if err != nil || len(records) == 0 {
		t.Errorf("frame record was clobbered: %v", err)
	}
}

func TestDecodeCmd_ClipUnsupported(t *testing.T) {
	setupTest(t, "")

	_, err := execute("decode", "--clip", "clip.mp4")
	if !errors.Is(err, video.ErrVideoUnsupported) {
		t.Errorf("decode --clip error = %v, want ErrVideoUnsupported", err)
	}
}
