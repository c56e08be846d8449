package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/report-cli/internal/fetcher"
	"github.com/sells-group/report-cli/internal/metrics"
	"github.com/sells-group/report-cli/internal/model"
	"github.com/sells-group/report-cli/internal/narrative"
	"github.com/sells-group/report-cli/internal/report"
	"github.com/sells-group/report-cli/internal/source"
	"github.com/sells-group/report-cli/internal/store"
	"github.com/sells-group/report-cli/internal/transform"
	anthropicpkg "github.com/sells-group/report-cli/pkg/anthropic"
	"github.com/sells-group/report-cli/pkg/notion"
)

var runDateFlag string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full reporting pipeline",
	Long:  "Loads and cleans both datasets, computes weekly metrics and anomalies, renders the executive report, and writes all artifacts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		runDate, err := resolveRunDate(runDateFlag)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		rec, err := st.CreateRun(ctx, runDate.Format("2006-01-02"))
		if err != nil {
			return eris.Wrap(err, "create run")
		}

		bundle, artifacts, err := executePipeline(cmd, runDate)
		if err != nil {
			if failErr := st.FailRun(ctx, rec.ID, err); failErr != nil {
				zap.L().Error("failed to record run failure", zap.Error(failErr))
			}
			return err
		}

		metricsJSON, err := json.Marshal(bundle)
		if err != nil {
			return eris.Wrap(err, "marshal metrics")
		}
		summary := store.RunSummary{
			OrdersRows:   bundle.Meta.OrdersRowsClean,
			AdsRows:      bundle.Meta.AdsRowsClean,
			Weeks:        bundle.Meta.WeekRange.Weeks,
			AnomalyCount: len(bundle.Anomalies),
			Metrics:      metricsJSON,
			ReportPath:   artifacts.WeeklyReport,
		}
		if err := st.CompleteRun(ctx, rec.ID, summary); err != nil {
			return eris.Wrap(err, "complete run")
		}

		zap.L().Info("pipeline complete",
			zap.String("run_id", rec.ID),
			zap.Int("weeks", summary.Weeks),
			zap.Int("anomalies", summary.AnomalyCount),
			zap.String("report", artifacts.WeeklyReport),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(artifacts)
	},
}

// executePipeline runs load, clean, compute, render, and write. The store is
// handled by the caller so failures here can be recorded against the run.
func executePipeline(cmd *cobra.Command, runDate time.Time) (*model.MetricsBundle, *report.Artifacts, error) {
	ctx := cmd.Context()

	rules, err := loadRules()
	if err != nil {
		return nil, nil, err
	}

	loader := source.NewLoader(fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Fetch.MaxRetries,
		RateLimit:  rate.Limit(cfg.Fetch.RateLimit),
	}))

	var ordersTable, adsTable source.Table
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := loader.LoadOrders(cfg.Data.OrdersPath)
		if err != nil {
			return err
		}
		ordersTable = t
		return nil
	})
	g.Go(func() error {
		adsTable = loader.LoadAds(gctx, cfg.Data.AdsURL, cfg.Data.AdsFallbackPath)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	orders := transform.CleanOrders(ordersTable)
	ads := transform.CleanAds(adsTable)

	bundle := metrics.Compute(orders, ads, runDate, rules)

	gen := narrative.NewGenerator(llmClient(), cfg.Anthropic.Model, cfg.Anthropic.MaxTokens)
	reportMD := gen.Render(ctx, &bundle)

	writer := &report.Writer{Dir: cfg.Reports.Dir, WriteXLSX: cfg.Reports.WriteXLSX}
	artifacts, err := writer.Write(reportMD, &bundle, runDate)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Notion.Token != "" && cfg.Notion.ReportDB != "" {
		notionClient := notion.NewClient(cfg.Notion.Token)
		if err := report.DeliverToNotion(ctx, notionClient, cfg.Notion.ReportDB, &bundle, reportMD); err != nil {
			zap.L().Warn("notion delivery failed", zap.Error(err))
		}
	}

	return &bundle, artifacts, nil
}

func loadRules() (metrics.Rules, error) {
	if cfg.Rules.Path == "" {
		return metrics.DefaultRules(), nil
	}
	rules, err := metrics.LoadRules(cfg.Rules.Path)
	if err != nil {
		return metrics.Rules{}, eris.Wrap(err, "load rules")
	}
	return rules, nil
}

func llmClient() anthropicpkg.Client {
	if cfg.Anthropic.Key == "" {
		return nil
	}
	return anthropicpkg.NewClient(cfg.Anthropic.Key)
}

// resolveRunDate parses the --date flag, defaulting to today in UTC.
func resolveRunDate(flag string) (time.Time, error) {
	if flag == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", flag)
	if err != nil {
		return time.Time{}, eris.Wrapf(err, "parse run date %q", flag)
	}
	return t, nil
}

func init() {
	runCmd.Flags().StringVar(&runDateFlag, "date", "", "run date in YYYY-MM-DD (default today)")
	rootCmd.AddCommand(runCmd)
}
