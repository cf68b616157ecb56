package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/seguro-stats/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set segurostats configuration",
	// Config commands must work even when the stored config does not validate.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration, including flag overrides",
	RunE: func(cmd *cobra.Command, args []string) error {
		eff := *cfg
		applyOverrides(cmd, &eff)
		cfg := &eff
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "input: %s\n", cfg.Input)
		fmt.Fprintf(out, "target: %s\n", cfg.Target)
		fmt.Fprintf(out, "correlate: %t\n", cfg.Correlate)
		fmt.Fprintf(out, "format: %s\n", cfg.Format)
		if cfg.Output != "" {
			fmt.Fprintf(out, "output: %s\n", cfg.Output)
		}
		if cfg.ChartsDir != "" {
			fmt.Fprintf(out, "charts_dir: %s\n", cfg.ChartsDir)
		}
		fmt.Fprintf(out, "chart_format: %s\n", cfg.ChartFormat)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_json: %t\n", cfg.LogJSON)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		switch key {
		case "input":
			cfg.Input = val
		case "target":
			cfg.Target = val
		case "correlate", "log_json":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for %s: %v", key, val)
			}
			if key == "correlate" {
				cfg.Correlate = b
			} else {
				cfg.LogJSON = b
			}
		case "format":
			cfg.Format = val
		case "output":
			cfg.Output = val
		case "charts_dir":
			cfg.ChartsDir = val
		case "chart_format":
			cfg.ChartFormat = val
		case "log_level":
			cfg.LogLevel = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
