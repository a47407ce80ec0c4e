package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/entitlement"
	"github.com/maplemetrics/maplemetrics/internal/output"
)

// renderReport prints report with the formatter named by --format
func renderReport(cmd *cobra.Command, report *domain.Report) error {
	name, _ := cmd.Flags().GetString("format")
	f, err := output.GetFormatterByName(name)
	if err != nil {
		return err
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now().UTC()
	}
	if save, _ := cmd.Flags().GetBool("out-file"); save {
		filename, err := output.WriteFormatted(f, report, fileExtension(name))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
		return nil
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "console",
		"Output format ("+strings.Join(output.FormatterNames(), ", ")+")")
	cmd.Flags().Bool("out-file", false, "Write the report to a timestamped file in the working directory")
}

func fileExtension(format string) string {
	switch format {
	case "html", "json", "csv":
		return format
	default:
		return "txt"
	}
}

var mortgageCmd = &cobra.Command{
	Use:   "mortgage",
	Short: "Monthly payment and total interest for a mortgage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFeature(cmd, entitlement.FeatureMortgage); err != nil {
			return err
		}
		a, err := loadApp(cmd, "warn")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		principal, err := decimalFlag(cmd, "principal")
		if err != nil {
			return err
		}
		if !principal.IsPositive() {
			return domain.NewValidationError("principal", "must be positive")
		}
		rate := a.engine.Assumptions.MortgageRatePercent
		if r, err := optionalDecimalFlag(cmd, "rate"); err != nil {
			return err
		} else if r != nil {
			rate = *r
		}
		years, _ := cmd.Flags().GetInt("years")
		if years == 0 {
			years = a.engine.Assumptions.AmortizationYears
		}
		if years < 1 || years > 30 {
			return domain.NewValidationError("years", "must be between 1 and 30")
		}
		schedule, _ := cmd.Flags().GetBool("schedule")

		summary := calculation.SummarizeMortgage(principal, rate, years, schedule)
		return renderReport(cmd, &domain.Report{Title: "Mortgage", Mortgage: summary})
	},
}

var affordCmd = &cobra.Command{
	Use:   "afford",
	Short: "Check a monthly cost against income (GDS, TDS or rent ratio)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFeature(cmd, entitlement.FeatureAffordability); err != nil {
			return err
		}
		a, err := loadApp(cmd, "warn")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		cost, err := decimalFlag(cmd, "cost")
		if err != nil {
			return err
		}
		income, err := decimalFlag(cmd, "monthly-income")
		if err != nil {
			return err
		}
		if income.IsZero() {
			annual, err := decimalFlag(cmd, "income")
			if err != nil {
				return err
			}
			income = annual.Div(monthsPerYear)
		}

		ratio, _ := cmd.Flags().GetString("ratio")
		th := a.engine.Thresholds
		threshold := th.GDS
		switch ratio {
		case "gds":
		case "tds":
			threshold = th.TDS
		case "rent":
			threshold = th.Rent
		default:
			return domain.NewValidationError("ratio", "must be gds, tds or rent")
		}

		result := calculation.ClassifyAffordability(cost, income, threshold)
		out := cmd.OutOrStdout()
		if result.InsufficientData {
			fmt.Fprintln(out, "Insufficient data: a positive income is required")
			return nil
		}
		verdict := "within"
		if !result.WithinThreshold {
			verdict = "above"
		}
		fmt.Fprintf(out, "%s ratio: %s%% (%s the %s%% limit)\n",
			strings.ToUpper(ratio), result.Ratio.StringFixed(2), verdict, result.Threshold.String())
		return nil
	},
}

var housingCmd = &cobra.Command{
	Use:   "housing",
	Short: "Full purchase analysis for a city or postal code",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFeature(cmd, entitlement.FeatureHousing); err != nil {
			return err
		}
		a, err := loadApp(cmd, "warn")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		var in domain.FinancialInput
		if in.AnnualIncome, err = decimalFlag(cmd, "income"); err != nil {
			return err
		}
		if in.MonthlyDebts, err = decimalFlag(cmd, "debts"); err != nil {
			return err
		}
		if in.DownPaymentPercent, err = decimalFlag(cmd, "down"); err != nil {
			return err
		}
		if in.HomePrice, err = decimalFlag(cmd, "price"); err != nil {
			return err
		}
		if in.MortgageRatePercent, err = optionalDecimalFlag(cmd, "rate"); err != nil {
			return err
		}
		in.City, _ = cmd.Flags().GetString("city")
		in.PostalCode, _ = cmd.Flags().GetString("postal-code")
		in.AmortizationYears, _ = cmd.Flags().GetInt("years")

		result, err := a.engine.AnalyzeHousing(in)
		if err != nil {
			return err
		}
		report := &domain.Report{Title: "Housing: " + result.City, Housing: result}
		report.Mortgage = calculation.SummarizeMortgage(result.Principal, result.MortgageRate, result.AmortizationYears, false)
		return renderReport(cmd, report)
	},
}

var cityCmd = &cobra.Command{
	Use:   "city [name-or-postal-code]",
	Short: "Show reference data for a city, or list all cities",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFeature(cmd, entitlement.FeatureCityLookup); err != nil {
			return err
		}
		a, err := loadApp(cmd, "warn")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		cities := a.engine.Tables.Cities()
		if len(args) == 1 {
			rec, ok := a.engine.Tables.City(args[0])
			if !ok {
				rec, ok = a.engine.Tables.CityByPostalCode(args[0])
			}
			if !ok {
				return fmt.Errorf("city %q: %w", args[0], domain.ErrNotFound)
			}
			cities = []domain.CityCostRecord{rec}
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cities)
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CITY\tPROVINCE\tHOME PRICE\tRENT/MO\tCOST INDEX\tPROPERTY TAX")
		for _, c := range cities {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s%%\n", c.Name, c.Province,
				output.FormatCurrency(c.AvgHomePrice), output.FormatCurrency(c.AvgRent),
				c.CostMultiplier.StringFixed(2), c.PropertyTaxRate.StringFixed(2))
		}
		return w.Flush()
	},
}

func init() {
	mortgageCmd.Flags().String("principal", "", "Amount borrowed (required)")
	mortgageCmd.Flags().String("rate", "", "Annual interest rate in percent (default from config)")
	mortgageCmd.Flags().Int("years", 0, "Amortization in years (default from config)")
	mortgageCmd.Flags().Bool("schedule", false, "Include the month-by-month amortization schedule")
	_ = mortgageCmd.MarkFlagRequired("principal")
	addFormatFlag(mortgageCmd)

	affordCmd.Flags().String("cost", "", "Monthly housing cost (or housing plus debts for tds)")
	affordCmd.Flags().String("monthly-income", "", "Gross monthly income")
	affordCmd.Flags().String("income", "", "Gross annual income, used when --monthly-income is not given")
	affordCmd.Flags().String("ratio", "gds", "Ratio to check: gds, tds or rent")
	_ = affordCmd.MarkFlagRequired("cost")

	housingCmd.Flags().String("income", "", "Gross annual household income")
	housingCmd.Flags().String("debts", "0", "Monthly debt payments")
	housingCmd.Flags().String("down", "20", "Down payment in percent")
	housingCmd.Flags().String("price", "", "Home price (default: city benchmark)")
	housingCmd.Flags().String("rate", "", "Mortgage rate in percent (default from config)")
	housingCmd.Flags().Int("years", 0, "Amortization in years (default from config)")
	housingCmd.Flags().String("city", "", "City name")
	housingCmd.Flags().String("postal-code", "", "Postal code, used instead of --city")
	housingCmd.MarkFlagsOneRequired("city", "postal-code")
	addFormatFlag(housingCmd)

	cityCmd.Flags().Bool("json", false, "Print JSON")

	rootCmd.AddCommand(mortgageCmd, affordCmd, housingCmd, cityCmd)
}
