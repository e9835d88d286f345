package cmd

import (
	"fmt"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/ColonelBlimp/cwclip/internal/report"
)

var batchCmd = &cobra.Command{
	Use:   "batch <record>...",
	Short: "Decode several frame records in parallel",
	Long: `Batch decodes every frame record given as an argument, using up to
"workers" decodes at a time, and prints one report per record in argument
order. Records that fail to decode are reported with their error; the command
fails if any record failed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntP("workers", "w", 0, "parallel decodes (0 uses the config value)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	d, err := a.decoder()
	if err != nil {
		return err
	}

	workers := a.settings.Workers
	if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
		workers = n
	}

	reports := make([]*report.Report, len(args))
	p := pool.New().WithMaxGoroutines(workers)
	for i, path := range args {
		i, path := i, path
		p.Go(func() {
			res, err := a.decodeFile(d, path)
			if err != nil {
				a.log.Errorw("decode failed", "path", path, "error", err)
			}
			reports[i] = report.New(path, a.settings.Threshold, res, err)
		})
	}
	p.Wait()

	if err := report.WriteAll(cmd.OutOrStdout(), a.format, reports); err != nil {
		return err
	}

	failed := 0
	for _, r := range reports {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d records failed to decode", failed, len(reports))
	}
	return nil
}
