package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/seguro-stats/internal/analysis"
	"github.com/KaramelBytes/seguro-stats/internal/chart"
	cfgpkg "github.com/KaramelBytes/seguro-stats/internal/config"
	"github.com/KaramelBytes/seguro-stats/internal/dataset"
	"github.com/KaramelBytes/seguro-stats/internal/logging"
	"github.com/KaramelBytes/seguro-stats/internal/present"
	"github.com/KaramelBytes/seguro-stats/internal/utils"
)

var (
	// Global flags; each overrides the matching config key when set.
	cfgFile         string
	debug           bool
	flagInput       string
	flagTarget      string
	flagNoCorr      bool
	flagFormat      string
	flagOutput      string
	flagChartsDir   string
	flagChartFormat string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "segurostats",
	Short: "Descriptive statistics for the life-insurance policy dataset",
	Long: `segurostats loads the policy CSV (seguro_de_vida.csv by default), prints
column types, missing values, descriptive measures, the smoker share and region
counts, correlates the numeric columns against charges, and optionally draws charts.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runReport,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default is ~/.segurostats/config.yaml)")
	f.BoolVar(&debug, "debug", false, "enable debug logging")
	f.StringVar(&flagInput, "input", "", "input CSV path (overrides config)")
	f.StringVar(&flagTarget, "target", "", "column whose strongest correlate is reported (overrides config)")
	f.BoolVar(&flagNoCorr, "no-corr", false, "skip the correlation report")
	f.StringVar(&flagFormat, "format", "", "report format: text|json|yaml (overrides config)")
	f.StringVarP(&flagOutput, "output", "o", "", "write the report to this file instead of stdout")
	f.StringVar(&flagChartsDir, "charts-dir", "", "directory to write charts into (charts are skipped when empty)")
	f.StringVar(&flagChartFormat, "chart-format", "", "chart image format: png|svg|pdf (overrides config)")
}

// setup loads config, applies flag overrides, and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	applyOverrides(cmd, c)
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	l, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// applyOverrides copies explicitly set global flags onto c.
func applyOverrides(cmd *cobra.Command, c *cfgpkg.Global) {
	f := cmd.Flags()
	if f.Changed("input") {
		c.Input = flagInput
	}
	if f.Changed("target") {
		c.Target = flagTarget
	}
	if f.Changed("no-corr") {
		c.Correlate = !flagNoCorr
	}
	if f.Changed("format") {
		c.Format = flagFormat
	}
	if f.Changed("output") {
		c.Output = flagOutput
	}
	if f.Changed("charts-dir") {
		c.ChartsDir = flagChartsDir
	}
	if f.Changed("chart-format") {
		c.ChartFormat = flagChartFormat
	}
	if debug {
		c.LogLevel = "debug"
	}
}

func runReport(cmd *cobra.Command, _ []string) error {
	ds, err := loadDataset()
	if err != nil {
		return err
	}
	rep, err := analysis.Analyze(ds)
	if err != nil {
		return err
	}
	doc := present.Document{Dataset: ds.Name(), Rows: ds.Rows(), Report: rep}
	if cfg.Correlate {
		corr, err := analysis.Correlate(ds, cfg.Target)
		if err != nil {
			return err
		}
		doc.Correlation = corr
		if corr.Driver != nil {
			logger.Debug().Str("target", cfg.Target).Str("driver", corr.Driver.Column).Float64("r", corr.Driver.R).Msg("correlation computed")
		}
	}
	if err := writeReport(cmd.OutOrStdout(), doc); err != nil {
		return err
	}
	if cfg.ChartsDir != "" {
		if _, err := renderCharts(ds, cfg.ChartsDir); err != nil {
			return err
		}
	}
	return nil
}

func loadDataset() (*dataset.Dataset, error) {
	ds, err := dataset.Load(cfg.Input)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("file", ds.Name()).Int("rows", ds.Rows()).Int("columns", len(ds.Columns())).Msg("dataset loaded")
	return ds, nil
}

func writeReport(stdout io.Writer, doc present.Document) error {
	f, err := present.ForName(cfg.Format)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := f.Format(&buf, doc); err != nil {
		return fmt.Errorf("format report: %w", err)
	}
	if cfg.Output == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}
	if err := utils.SafeWriteFile(cfg.Output, buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	logger.Info().Str("path", cfg.Output).Str("format", cfg.Format).Msg("report written")
	return nil
}

func renderCharts(ds *dataset.Dataset, dir string) ([]string, error) {
	r := chart.NewRenderer(dir, cfg.ChartFormat, logger)
	paths, err := r.Render(ds)
	if err != nil {
		return paths, err
	}
	logger.Info().Str("dir", dir).Int("charts", len(paths)).Msg("charts written")
	return paths, nil
}
