package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaRthiK15789/tablechat-cli/internal/config"
	"github.com/KaRthiK15789/tablechat-cli/internal/oracle"
	"github.com/KaRthiK15789/tablechat-cli/internal/query"
)

var (
	// Global flags
	cfgFile            string
	debug              bool
	flagHTTPTimeoutSec int
	flagModel          string
	flagNoOracle       bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "tablechat",
	Short: "TableChat CLI: ask questions about tabular data in plain English",
	Long: `TableChat loads a CSV, TSV or XLSX file and answers natural-language
questions about it: summary statistics, filters, comparisons, correlations
and charts. An optional AI classifier improves question understanding; the
tool stays fully functional without it.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.tablechat/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagModel, "model", "", "classifier model (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoOracle, "no-oracle", false, "disable the AI classifier and use only built-in analysis")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("model") && flagModel != "" {
		cfg.DefaultModel = flagModel
	}
	if flagNoOracle {
		cfg.OracleEnabled = false
	}
}

// newEngine builds a query engine, attaching the intent oracle only when
// configured and enabled. A nil oracle means purely rule-based classification.
func newEngine() *query.Engine {
	var cls query.Classifier
	if cfg != nil && cfg.OracleEnabled && cfg.APIKey != "" {
		c := oracle.NewClientWithBaseURL(cfg.APIKey, cfg.DefaultModel,
			time.Duration(cfg.HTTPTimeoutSec)*time.Second, cfg.BaseURL)
		c.SetSampling(cfg.Temperature, cfg.MaxTokens)
		cls = c
	} else if debug {
		fmt.Fprintln(os.Stderr, "debug: AI classifier disabled, using built-in analysis only")
	}
	return query.NewEngine(cls)
}
