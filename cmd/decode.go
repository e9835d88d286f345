package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/cwclip/internal/report"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode the frame record into Morse code and text",
	Long: `Decode reads the frame record, classifies every frame as ON or OFF using the
brightness threshold, clusters the ON and OFF durations and prints the Morse
code and the decoded text.

With --clip the clip is extracted into the frame record first.`,
	Args: cobra.NoArgs,
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringP("clip", "c", "", "video clip to extract before decoding")
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	d, err := a.decoder()
	if err != nil {
		return err
	}

	if clip, _ := cmd.Flags().GetString("clip"); clip != "" {
		if _, err := a.extract(cmd.Context(), clip); err != nil {
			return err
		}
	}

	path := a.settings.FramesPath
	res, err := a.decodeFile(d, path)
	if err != nil {
		return err
	}

	return report.New(path, a.settings.Threshold, res, nil).Write(cmd.OutOrStdout(), a.format)
}
