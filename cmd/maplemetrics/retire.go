package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/maplemetrics/maplemetrics/internal/compare"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/entitlement"
	"github.com/maplemetrics/maplemetrics/internal/transform"
)

var retireCmd = &cobra.Command{
	Use:   "retire",
	Short: "Project retirement savings against the cost of retiring in a province",
	Long: "Projects savings to the retirement age and compares them with the corpus needed\n" +
		"to fund the chosen lifestyle until the life expectancy. Use --what-if to compare\n" +
		"variations such as retiring later or saving more.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if list, _ := cmd.Flags().GetBool("list-templates"); list {
			fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			return nil
		}
		if err := requireFeature(cmd, entitlement.FeatureRetirement); err != nil {
			return err
		}
		a, err := loadApp(cmd, "warn")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		in, err := retirementInputsFromFlags(cmd)
		if err != nil {
			return err
		}
		if in.ExpectedReturnPercent.IsZero() && !cmd.Flags().Changed("return") {
			in.ExpectedReturnPercent = a.engine.Assumptions.ExpectedReturnPercent
		}
		if in.InflationPercent.IsZero() && !cmd.Flags().Changed("inflation") {
			in.InflationPercent = a.engine.Assumptions.InflationPercent
		}

		whatIf, _ := cmd.Flags().GetString("what-if")
		if whatIf != "" {
			if err := requireFeature(cmd, entitlement.FeatureWhatIf); err != nil {
				return err
			}
			set, err := compare.NewCompareEngine(a.engine).CompareWhatIf(cmd.Context(), in, transform.ParseTemplateList(whatIf))
			if err != nil {
				return err
			}
			return renderComparison(cmd, set)
		}

		result, err := a.engine.ProjectRetirement(in)
		if err != nil {
			return err
		}
		if err := renderReport(cmd, &domain.Report{Title: "Retirement", Retirement: result}); err != nil {
			return err
		}

		if earliest, _ := cmd.Flags().GetBool("earliest"); earliest {
			age, _, ok, err := a.engine.EarliestFundedAge(in)
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(cmd.OutOrStdout(), "\nEarliest funded retirement age: %d\n", age)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "\nNo retirement age before %d is funded at this savings rate\n", in.TerminalAge())
			}
		}
		return nil
	},
}

func retirementInputsFromFlags(cmd *cobra.Command) (domain.RetirementInputs, error) {
	var in domain.RetirementInputs
	var err error
	flags := cmd.Flags()

	in.CurrentAge, _ = flags.GetInt("current-age")
	in.RetirementAge, _ = flags.GetInt("retirement-age")
	in.LifeExpectancy, _ = flags.GetInt("life-expectancy")
	in.Province, _ = flags.GetString("province")
	lifestyle, _ := flags.GetString("lifestyle")
	in.Lifestyle = domain.Lifestyle(lifestyle)
	in.IncludeGovernmentPensions, _ = flags.GetBool("pensions")

	if in.CurrentSavings, err = decimalFlag(cmd, "savings"); err != nil {
		return in, err
	}
	if in.MonthlyContribution, err = decimalFlag(cmd, "contribution"); err != nil {
		return in, err
	}
	if in.ExpectedReturnPercent, err = decimalFlag(cmd, "return"); err != nil {
		return in, err
	}
	if in.InflationPercent, err = decimalFlag(cmd, "inflation"); err != nil {
		return in, err
	}
	return in, nil
}

// renderComparison prints a city or what-if comparison in the --format style.
// console and table both mean the text table.
func renderComparison(cmd *cobra.Command, set any) error {
	name, _ := cmd.Flags().GetString("format")
	out := cmd.OutOrStdout()

	var text string
	var err error
	switch name {
	case "console", "console-lite", "table", "":
		table := compare.TableFormatter{}
		switch s := set.(type) {
		case *compare.ComparisonSet:
			text = table.Format(s)
		case *compare.WhatIfSet:
			text = table.FormatWhatIf(s)
		}
	case "csv":
		csv := compare.CSVFormatter{}
		switch s := set.(type) {
		case *compare.ComparisonSet:
			text, err = csv.Format(s)
		case *compare.WhatIfSet:
			text, err = csv.FormatWhatIf(s)
		}
	case "json":
		text, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
	default:
		return fmt.Errorf("unsupported comparison format: %s (expected table, csv or json)", name)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

func init() {
	f := retireCmd.Flags()
	f.Int("current-age", 0, "Current age (required)")
	f.Int("retirement-age", 65, "Planned retirement age")
	f.Int("life-expectancy", 0, fmt.Sprintf("Age savings must last to (default %d)", domain.DefaultLifeExpectancy))
	f.String("savings", "0", "Current retirement savings")
	f.String("contribution", "0", "Monthly contribution")
	f.String("return", "", "Expected annual return in percent (default from config)")
	f.String("inflation", "", "Annual inflation in percent (default from config)")
	f.String("province", "", "Province to retire in, e.g. ON (required)")
	f.String("lifestyle", "comfortable", "Retirement lifestyle: modest, comfortable or affluent")
	f.Bool("pensions", false, "Offset costs with CPP and OAS")
	f.Bool("earliest", false, "Also find the earliest funded retirement age")
	f.String("what-if", "", "Comma-separated templates or transforms to compare, e.g. retire_later_2yr,save_more_250")
	f.Bool("list-templates", false, "List the built-in what-if templates")
	addFormatFlag(retireCmd)

	rootCmd.AddCommand(retireCmd)
}
