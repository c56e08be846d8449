package source

import (
	"bytes"
	"context"
	"os"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/report-cli/internal/fetcher"
)

// Column schemas the cleaners expect. Missing columns are synthesized as
// all-missing downstream, so these are best-effort, not requirements.
var (
	OrderColumns = []string{"order_id", "order_date", "channel", "revenue", "customer_type", "country"}
	AdColumns    = []string{"date", "channel", "campaign", "spend", "impressions", "clicks", "conversions"}
)

// Loader resolves the two raw datasets.
type Loader struct {
	fetcher *fetcher.HTTPFetcher
}

// NewLoader creates a Loader using the given HTTP fetcher for remote fetches.
func NewLoader(f *fetcher.HTTPFetcher) *Loader {
	return &Loader{fetcher: f}
}

// LoadOrders reads the local orders CSV. Orders are a required input; a
// missing or unreadable file is an error for the caller to surface.
func (l *Loader) LoadOrders(path string) (Table, error) {
	zap.L().Info("loading orders csv", zap.String("path", path))
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, eris.Wrapf(err, "source: read orders csv %s", path)
	}
	t, err := ReadCSV(bytes.NewReader(data))
	if err != nil {
		return Table{}, err
	}
	zap.L().Info("loaded orders csv", zap.Int("rows", t.Len()))
	return t, nil
}

// LoadAds resolves the ads dataset best-effort: remote URL when configured,
// then the local fallback file, then an empty table with the expected
// schema. It never returns an error; total absence of ads data degrades to
// an empty dataset the metrics engine accepts transparently.
func (l *Loader) LoadAds(ctx context.Context, adsURL, fallbackPath string) Table {
	if adsURL != "" {
		zap.L().Info("fetching ads csv from url", zap.String("url", adsURL))
		body, err := l.fetcher.Fetch(ctx, adsURL)
		if err == nil {
			t, parseErr := ReadCSV(bytes.NewReader(body))
			if parseErr == nil {
				zap.L().Info("loaded ads csv from url", zap.Int("rows", t.Len()))
				return t
			}
			err = parseErr
		}
		zap.L().Warn("failed to fetch/parse ads csv from url, falling back to local file",
			zap.String("url", adsURL),
			zap.Error(err),
		)
	} else {
		zap.L().Info("ads url not set, using local ads fallback")
	}

	data, err := os.ReadFile(fallbackPath)
	if err == nil {
		t, parseErr := ReadCSV(bytes.NewReader(data))
		if parseErr == nil {
			zap.L().Info("loaded ads csv from fallback path",
				zap.String("path", fallbackPath),
				zap.Int("rows", t.Len()),
			)
			return t
		}
		err = parseErr
	}

	zap.L().Warn("ads fallback unavailable, returning empty ads dataset",
		zap.String("path", fallbackPath),
		zap.Error(err),
	)
	return Empty(AdColumns...)
}
