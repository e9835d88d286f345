package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract per-frame light colour from a video clip",
	Long: `Extract compares every frame of the clip with the first one and writes the
average colour of the changed pixels to the frame record, one line per frame.

Raise rgb_tolerance in the config file when ambient light changes during the
clip. Requires a build with OpenCV (-tags gocv).`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringP("clip", "c", "", "video clip to extract (required)")
	_ = extractCmd.MarkFlagRequired("clip")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	clip, _ := cmd.Flags().GetString("clip")
	n, err := a.extract(cmd.Context(), clip)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Frame data saved to %s (%d frames)\n", a.settings.FramesPath, n)
	return err
}
