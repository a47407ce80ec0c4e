package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/config"
	"github.com/maplemetrics/maplemetrics/internal/entitlement"
	"github.com/maplemetrics/maplemetrics/internal/reference"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var monthsPerYear = decimal.NewFromInt(12)

var rootCmd = &cobra.Command{
	Use:   "maplemetrics",
	Short: "Canadian cost-of-living calculators",
	Long: "MapleMetrics estimates mortgage payments, housing affordability, retirement readiness,\n" +
		"benefit eligibility and the salary needed to live in Canadian cities.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML application config")
	rootCmd.PersistentFlags().String("log-level", "", "Log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("tier", "premium", "Subscription tier used to unlock calculators (free, basic, premium)")

	rootCmd.AddCommand(versionCmd())
}

func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "maplemetrics %s (commit %s, built %s)\n", version, commit, date)
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
					fmt.Fprintln(cmd.OutOrStdout(), bi.String())
				}
			}
		},
	}
	cmd.Flags().BoolP("verbose", "v", false, "Include Go build information")
	return cmd
}

// app is what every calculator command needs
type app struct {
	cfg    *config.AppConfig
	logger *zap.Logger
	engine *calculation.Engine
}

// loadApp reads the config, builds the logger and an engine over the
// configured reference tables. CLI commands log at warn unless told otherwise.
func loadApp(cmd *cobra.Command, defaultLevel string) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadAppConfig(configPath)
	if err != nil {
		return nil, err
	}

	level, _ := cmd.Flags().GetString("log-level")
	if level == "" && configPath == "" {
		level = defaultLevel
	}
	logger, err := config.NewLogger(cfg.Logging, level)
	if err != nil {
		return nil, err
	}

	tables, err := reference.Default()
	if cfg.ReferenceFile != "" {
		tables, err = reference.LoadFile(cfg.ReferenceFile)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reference data: %w", err)
	}

	engine := calculation.NewEngine(tables)
	cfg.ApplyTo(engine)
	engine.SetLogger(calculation.NewZapLogger(logger))
	return &app{cfg: cfg, logger: logger, engine: engine}, nil
}

// requireFeature fails when the --tier flag does not unlock feature
func requireFeature(cmd *cobra.Command, feature entitlement.Feature) error {
	name, _ := cmd.Flags().GetString("tier")
	tier, ok := entitlement.ParseTier(name)
	if !ok {
		return fmt.Errorf("unknown tier %q (expected free, basic or premium)", name)
	}
	if err := entitlement.Check(tier, feature); err != nil {
		return fmt.Errorf("%w: upgrade to %s", err, entitlement.Required(feature))
	}
	return nil
}

func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	raw = strings.NewReplacer(",", "", "$", "", "_", "").Replace(strings.TrimSpace(raw))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, raw)
	}
	return d, nil
}

// optionalDecimalFlag returns nil when the flag was not given
func optionalDecimalFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	d, err := decimalFlag(cmd, name)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
