package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const defaultChartsDir = "charts"

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Draw the age histogram, smoker counts, charges scatter and charges box plot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.ChartsDir
		if dir == "" {
			dir = defaultChartsDir
		}
		ds, err := loadDataset()
		if err != nil {
			return err
		}
		paths, err := renderCharts(ds, dir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartsCmd)
}
