package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maplemetrics/maplemetrics/internal/compare"
	"github.com/maplemetrics/maplemetrics/internal/entitlement"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare housing affordability and purchasing power across cities",
	Long: "Analyzes housing in a base city and each alternative at the same income, and\n" +
		"shows what the base income is worth in each alternative's cost of living.\n\n" +
		"Example:\n  maplemetrics compare --base Toronto --cities Calgary,Halifax --income 120000",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFeature(cmd, entitlement.FeatureCompare); err != nil {
			return err
		}
		a, err := loadApp(cmd, "warn")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		opts := compare.CityOptions{}
		opts.BaseCity, _ = cmd.Flags().GetString("base")
		list, _ := cmd.Flags().GetString("cities")
		for _, c := range strings.Split(list, ",") {
			if c = strings.TrimSpace(c); c != "" {
				opts.Cities = append(opts.Cities, c)
			}
		}
		if len(opts.Cities) == 0 {
			return fmt.Errorf("--cities needs at least one city")
		}
		if opts.AnnualIncome, err = decimalFlag(cmd, "income"); err != nil {
			return err
		}
		if opts.MonthlyDebts, err = decimalFlag(cmd, "debts"); err != nil {
			return err
		}
		if opts.DownPaymentPercent, err = decimalFlag(cmd, "down"); err != nil {
			return err
		}

		set, err := compare.NewCompareEngine(a.engine).CompareCities(cmd.Context(), opts)
		if err != nil {
			return err
		}
		if compact, _ := cmd.Flags().GetBool("compact"); compact {
			fmt.Fprint(cmd.OutOrStdout(), (&compare.TableFormatter{}).FormatCompact(set))
			return nil
		}
		return renderComparison(cmd, set)
	},
}

func init() {
	compareCmd.Flags().String("base", "", "City to compare against (required)")
	compareCmd.Flags().String("cities", "", "Comma-separated alternative cities (required)")
	compareCmd.Flags().String("income", "", "Gross annual household income (required)")
	compareCmd.Flags().String("debts", "0", "Monthly debt payments")
	compareCmd.Flags().String("down", "20", "Down payment in percent")
	compareCmd.Flags().Bool("compact", false, "One line per city")
	compareCmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	_ = compareCmd.MarkFlagRequired("base")
	_ = compareCmd.MarkFlagRequired("cities")
	_ = compareCmd.MarkFlagRequired("income")

	rootCmd.AddCommand(compareCmd)
}
