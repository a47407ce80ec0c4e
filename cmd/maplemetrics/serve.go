package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maplemetrics/maplemetrics/internal/benefits"
	"github.com/maplemetrics/maplemetrics/internal/live"
	"github.com/maplemetrics/maplemetrics/internal/server"
	"github.com/maplemetrics/maplemetrics/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API",
	Long: "Serves the calculators over HTTP. The caller's tier is read from the\n" +
		server.TierHeader + " header. Settings come from --config and MAPLEMETRICS_* variables.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd, "")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if addr, _ := cmd.Flags().GetString("address"); addr != "" {
			a.cfg.Server.Address = addr
		}

		catalog, err := benefits.DefaultCatalog()
		if err != nil {
			return err
		}

		store, err := storage.Open(a.cfg.Storage.Driver, a.cfg.Storage.DSN, a.logger)
		if err != nil {
			return err
		}
		defer store.Close()

		var rates live.Source = live.NewStaticSource(a.engine.Assumptions)
		if a.cfg.Redis.Address != "" {
			src := live.Dial(a.cfg.Redis, a.engine.Assumptions, a.logger)
			defer src.Close()
			rates = src
			a.logger.Info("using live rates", zap.String("redis", a.cfg.Redis.Address))
		}

		srv := server.New(a.cfg.Server, server.Deps{
			Engine:   a.engine,
			Catalog:  catalog,
			Rates:    rates,
			Store:    store,
			Profiles: storage.NewProfileStore(),
			Logger:   a.logger,
			Version:  version,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Manage live rate overrides",
}

var ratesSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Write rate overrides to redis for running API servers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd, "info")
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if a.cfg.Redis.Address == "" {
			return fmt.Errorf("no redis address configured (set redis.address or MAPLEMETRICS_REDIS_ADDRESS)")
		}

		var u live.RateUpdate
		if u.MortgageRatePercent, err = optionalDecimalFlag(cmd, "mortgage"); err != nil {
			return err
		}
		if u.InflationPercent, err = optionalDecimalFlag(cmd, "inflation"); err != nil {
			return err
		}
		if u.ExpectedReturnPercent, err = optionalDecimalFlag(cmd, "return"); err != nil {
			return err
		}

		src := live.Dial(a.cfg.Redis, a.engine.Assumptions, a.logger)
		defer src.Close()

		if err := src.SetRates(cmd.Context(), u); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Rates updated")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("address", "", "Listen address (default from config)")

	ratesSetCmd.Flags().String("mortgage", "", "Mortgage rate in percent")
	ratesSetCmd.Flags().String("inflation", "", "Inflation in percent")
	ratesSetCmd.Flags().String("return", "", "Expected return in percent")
	ratesCmd.AddCommand(ratesSetCmd)

	rootCmd.AddCommand(serveCmd, ratesCmd)
}
