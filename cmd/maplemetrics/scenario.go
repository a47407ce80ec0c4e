package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maplemetrics/maplemetrics/internal/benefits"
	"github.com/maplemetrics/maplemetrics/internal/compare"
	"github.com/maplemetrics/maplemetrics/internal/config"
	"github.com/maplemetrics/maplemetrics/internal/entitlement"
	"github.com/maplemetrics/maplemetrics/internal/storage"
)

var calculateCmd = &cobra.Command{
	Use:   "calculate [input-file]",
	Short: "Run every calculator a scenario file has a section for",
	Long: "Reads a YAML scenario with optional profile, housing, retirement, salary,\n" +
		"relocation and utilities sections and prints one combined report.\n" +
		"A what_if list in the file compares retirement variations as well.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd, "warn")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		scenario, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return err
		}
		if scenario.Retirement != nil {
			if err := requireFeature(cmd, entitlement.FeatureRetirement); err != nil {
				return err
			}
		}
		catalog, err := benefits.DefaultCatalog()
		if err != nil {
			return err
		}

		report, err := a.engine.RunScenario(scenario, catalog)
		if err != nil {
			return err
		}
		if err := renderReport(cmd, report); err != nil {
			return err
		}

		if len(scenario.WhatIf) > 0 && scenario.Retirement != nil {
			if err := requireFeature(cmd, entitlement.FeatureWhatIf); err != nil {
				return err
			}
			set, err := compare.NewCompareEngine(a.engine).CompareWhatIf(cmd.Context(), *scenario.Retirement, scenario.WhatIf)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			if err := renderComparison(cmd, set); err != nil {
				return err
			}
		}

		profileID, _ := cmd.Flags().GetString("save")
		if profileID == "" {
			return nil
		}
		if err := requireFeature(cmd, entitlement.FeatureSnapshots); err != nil {
			return err
		}
		if a.cfg.Storage.Driver != storage.DriverSQLite {
			a.logger.Warn("snapshot store is not persistent", zap.String("driver", a.cfg.Storage.Driver))
		}
		store, err := storage.Open(a.cfg.Storage.Driver, a.cfg.Storage.DSN, a.logger)
		if err != nil {
			return err
		}
		defer store.Close()

		snap, err := storage.NewSnapshot(profileID, "scenario", report)
		if err != nil {
			return err
		}
		if err := store.Save(cmd.Context(), snap); err != nil {
			return fmt.Errorf("failed to save snapshot: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved snapshot %s for profile %s\n", snap.ID, profileID)
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [input-file]",
	Short: "Check a scenario file without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Scenario file %s is valid\n", args[0])
		return nil
	},
}

func init() {
	addFormatFlag(calculateCmd)
	calculateCmd.Flags().String("save", "", "Save the report as a snapshot for this profile ID")

	rootCmd.AddCommand(calculateCmd, validateCmd)
}
