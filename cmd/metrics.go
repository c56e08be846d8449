package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/sells-group/report-cli/internal/fetcher"
	"github.com/sells-group/report-cli/internal/metrics"
	"github.com/sells-group/report-cli/internal/source"
	"github.com/sells-group/report-cli/internal/transform"
)

var metricsDateFlag string

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Compute weekly metrics and print JSON to stdout",
	Long:  "Runs load, clean, and aggregation without writing report artifacts or run history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		runDate, err := resolveRunDate(metricsDateFlag)
		if err != nil {
			return err
		}

		rules, err := loadRules()
		if err != nil {
			return err
		}

		loader := source.NewLoader(fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MaxRetries: cfg.Fetch.MaxRetries,
			RateLimit:  rate.Limit(cfg.Fetch.RateLimit),
		}))

		ordersTable, err := loader.LoadOrders(cfg.Data.OrdersPath)
		if err != nil {
			return err
		}
		adsTable := loader.LoadAds(ctx, cfg.Data.AdsURL, cfg.Data.AdsFallbackPath)

		orders := transform.CleanOrders(ordersTable)
		ads := transform.CleanAds(adsTable)

		bundle := metrics.Compute(orders, ads, runDate, rules)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(bundle)
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsDateFlag, "date", "", "run date in YYYY-MM-DD (default today)")
	rootCmd.AddCommand(metricsCmd)
}
