package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/report-cli/internal/fetcher"
)

func newTestLoader() *Loader {
	return NewLoader(fetcher.NewHTTPFetcher(fetcher.HTTPOptions{MaxRetries: 1}))
}

func writeCSVFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadOrders(t *testing.T) {
	path := writeCSVFile(t, "orders.csv", "order_id,revenue\no1,100\n")

	tbl, err := newTestLoader().LoadOrders(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, "o1", tbl.Cell(0, "order_id").Text())
}

func TestLoadOrders_MissingFile(t *testing.T) {
	_, err := newTestLoader().LoadOrders(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestLoadAds_FromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("date,spend\n2024-01-01,100\n"))
	}))
	defer srv.Close()

	tbl := newTestLoader().LoadAds(context.Background(), srv.URL, "")
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, "100", tbl.Cell(0, "spend").Text())
}

func TestLoadAds_URLFailureFallsBackToFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	fallback := writeCSVFile(t, "ads.csv", "date,spend\n2024-01-02,50\n")

	tbl := newTestLoader().LoadAds(context.Background(), srv.URL, fallback)
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, "50", tbl.Cell(0, "spend").Text())
}

func TestLoadAds_NoURLUsesFallback(t *testing.T) {
	fallback := writeCSVFile(t, "ads.csv", "date,spend\n2024-01-02,50\n")

	tbl := newTestLoader().LoadAds(context.Background(), "", fallback)
	assert.Equal(t, 1, tbl.Len())
}

func TestLoadAds_NothingAvailableYieldsEmptySchema(t *testing.T) {
	tbl := newTestLoader().LoadAds(context.Background(), "", filepath.Join(t.TempDir(), "nope.csv"))

	assert.Zero(t, tbl.Len())
	assert.Equal(t, AdColumns, tbl.Columns)
}
