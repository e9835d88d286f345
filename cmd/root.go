// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ColonelBlimp/cwclip/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "cwclip",
	Short: "Decode a Morse code light signal from a video clip",
	Long: `cwclip finds a blinking light in a video clip, measures how long it stays on
and off, groups those durations into dots, dashes and gaps, and decodes the
resulting Morse code into text.

Frames are first extracted into a frame record (extract), which is then
decoded (decode). Both steps can be run at once with decode --clip.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: bindFlags,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().IntP("threshold", "t", config.DefaultThreshold, "brightness (0-255) at which a frame counts as ON")
	rootCmd.PersistentFlags().StringP("frames", "F", config.DefaultFramesPath, "frame record path")
	rootCmd.PersistentFlags().StringP("format", "o", config.DefaultFormat, "output format: text, json or yaml")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug output")
}

// flagKeys maps persistent flags to their config keys.
var flagKeys = map[string]string{
	"threshold": "threshold",
	"frames":    "frames_path",
	"format":    "format",
	"debug":     "debug",
}

// bindFlags runs after initConfig so explicitly set flags override the config file.
func bindFlags(cmd *cobra.Command, _ []string) error {
	for name, key := range flagKeys {
		if err := viper.BindPFlag(key, cmd.Flag(name)); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}
