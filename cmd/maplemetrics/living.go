package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maplemetrics/maplemetrics/internal/benefits"
	"github.com/maplemetrics/maplemetrics/internal/calculation"
	"github.com/maplemetrics/maplemetrics/internal/domain"
	"github.com/maplemetrics/maplemetrics/internal/entitlement"
)

var benefitsCmd = &cobra.Command{
	Use:   "benefits",
	Short: "List federal and provincial benefits a household may qualify for",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFeature(cmd, entitlement.FeatureBenefits); err != nil {
			return err
		}
		a, err := loadApp(cmd, "warn")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		catalog, err := benefits.DefaultCatalog()
		if err != nil {
			return err
		}

		var p domain.UserProfile
		flags := cmd.Flags()
		p.Age, _ = flags.GetInt("age")
		p.Province, _ = flags.GetString("province")
		p.HouseholdSize, _ = flags.GetInt("household-size")
		p.HasChildren, _ = flags.GetBool("children")
		p.IsStudent, _ = flags.GetBool("student")
		p.IsDisabled, _ = flags.GetBool("disability")
		p.IsSenior, _ = flags.GetBool("senior")
		if p.AnnualIncome, err = decimalFlag(cmd, "income"); err != nil {
			return err
		}
		if p.Age < 0 || p.Age > 120 {
			return domain.NewValidationError("age", "must be between 0 and 120")
		}
		p.Province = strings.ToUpper(p.Province)

		result := benefits.Evaluate(catalog, p)
		if explain, _ := flags.GetString("explain"); explain != "" {
			rec, ok := benefits.FindByID(catalog, explain)
			if !ok {
				return fmt.Errorf("benefit %q: %w", explain, domain.ErrNotFound)
			}
			reasons := benefits.Explain(rec, p)
			out := cmd.OutOrStdout()
			if len(reasons) == 0 {
				fmt.Fprintf(out, "%s: eligible\n", rec.Name)
				return nil
			}
			fmt.Fprintf(out, "%s: not eligible\n", rec.Name)
			for _, r := range reasons {
				fmt.Fprintf(out, "  - %s\n", r)
			}
			return nil
		}
		return renderReport(cmd, &domain.Report{Title: "Benefits", Benefits: &result})
	},
}

var salaryCmd = &cobra.Command{
	Use:   "salary [city]",
	Short: "Gross salary needed to live in a city",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFeature(cmd, entitlement.FeatureSalary); err != nil {
			return err
		}
		a, err := loadApp(cmd, "warn")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		in := domain.SalaryInput{City: args[0]}
		lifestyle, _ := cmd.Flags().GetString("lifestyle")
		in.Lifestyle = domain.Lifestyle(lifestyle)
		if in.MonthlyRent, err = optionalDecimalFlag(cmd, "rent"); err != nil {
			return err
		}
		if in.SavingsRatePercent, err = decimalFlag(cmd, "savings-rate"); err != nil {
			return err
		}

		result, err := a.engine.RequiredSalary(in)
		if err != nil {
			return err
		}
		return renderReport(cmd, &domain.Report{Title: "Salary: " + result.City, Salary: result})
	},
}

var relocateCmd = &cobra.Command{
	Use:   "relocate [from-city] [to-city]",
	Short: "Salary in one city that matches a salary in another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFeature(cmd, entitlement.FeatureSalary); err != nil {
			return err
		}
		a, err := loadApp(cmd, "warn")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		salary, err := decimalFlag(cmd, "salary")
		if err != nil {
			return err
		}
		result, err := a.engine.EquivalentSalary(salary, args[0], args[1])
		if err != nil {
			return err
		}
		return renderReport(cmd, &domain.Report{Title: "Relocation", Relocation: result})
	},
}

var utilitiesCmd = &cobra.Command{
	Use:   "utilities [province]",
	Short: "Monthly utility bill for a province, or every province ranked",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFeature(cmd, entitlement.FeatureUtilities); err != nil {
			return err
		}
		a, err := loadApp(cmd, "warn")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		province := ""
		if len(args) == 1 {
			province = args[0]
		}
		usage := calculation.DefaultUtilityUsage(province)
		if cmd.Flags().Changed("kwh") {
			if usage.ElectricityKWh, err = decimalFlag(cmd, "kwh"); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("gas") {
			if usage.GasCubicMetres, err = decimalFlag(cmd, "gas"); err != nil {
				return err
			}
		}
		if noInternet, _ := cmd.Flags().GetBool("no-internet"); noInternet {
			usage.IncludeInternet = false
		}

		var rows []domain.UtilityBreakdown
		if province == "" {
			rows, err = a.engine.CompareUtilities(usage)
		} else {
			var bill *domain.UtilityBreakdown
			if bill, err = a.engine.UtilityCost(usage); err == nil {
				rows = []domain.UtilityBreakdown{*bill}
			}
		}
		if err != nil {
			return err
		}
		return renderReport(cmd, &domain.Report{Title: "Utilities", Utilities: rows})
	},
}

func init() {
	f := benefitsCmd.Flags()
	f.Int("age", 0, "Age of the applicant")
	f.String("income", "0", "Household net income")
	f.String("province", "", "Province code, e.g. ON (required)")
	f.Int("household-size", 1, "People in the household")
	f.Bool("children", false, "Household has children under 18")
	f.Bool("student", false, "Applicant is a full-time student")
	f.Bool("disability", false, "Applicant has a disability")
	f.Bool("senior", false, "Applicant is 65 or older")
	f.String("explain", "", "Explain eligibility for one benefit ID")
	_ = benefitsCmd.MarkFlagRequired("province")
	addFormatFlag(benefitsCmd)

	salaryCmd.Flags().String("lifestyle", "comfortable", "Lifestyle: modest, comfortable or affluent")
	salaryCmd.Flags().String("rent", "", "Monthly rent (default: city average)")
	salaryCmd.Flags().String("savings-rate", "0", "Percent of take-home pay to save")
	addFormatFlag(salaryCmd)

	relocateCmd.Flags().String("salary", "", "Current salary (required)")
	_ = relocateCmd.MarkFlagRequired("salary")
	addFormatFlag(relocateCmd)

	utilitiesCmd.Flags().String("kwh", "", "Monthly electricity use in kWh")
	utilitiesCmd.Flags().String("gas", "", "Monthly natural gas use in cubic metres")
	utilitiesCmd.Flags().Bool("no-internet", false, "Leave internet out of the bill")
	addFormatFlag(utilitiesCmd)

	rootCmd.AddCommand(benefitsCmd, salaryCmd, relocateCmd, utilitiesCmd)
}
