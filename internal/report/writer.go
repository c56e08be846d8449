package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/report-cli/internal/model"
)

// Artifacts lists the files one run produced, keyed by artifact name.
type Artifacts struct {
	WeeklyReport string `json:"weekly_report"`
	LatestReport string `json:"latest_report"`
	MetricsJSON  string `json:"metrics_json"`
	WeeklyCSV    string `json:"weekly_csv"`
	LatestCSV    string `json:"latest_csv"`
	WeeklyXLSX   string `json:"weekly_xlsx,omitempty"`
}

// Writer persists report artifacts to a directory.
type Writer struct {
	Dir       string
	WriteXLSX bool
}

// Write persists the markdown narrative and all tabular/metric artifacts.
// Dated files accumulate run history; latest.* are overwritten each run.
func (w *Writer) Write(reportMD string, m *model.MetricsBundle, runDate time.Time) (*Artifacts, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "report: create dir %s", w.Dir)
	}

	dateStr := runDate.Format("2006-01-02")
	art := &Artifacts{
		WeeklyReport: filepath.Join(w.Dir, "weekly_report_"+dateStr+".md"),
		LatestReport: filepath.Join(w.Dir, "latest.md"),
		MetricsJSON:  filepath.Join(w.Dir, "metrics_"+dateStr+".json"),
		WeeklyCSV:    filepath.Join(w.Dir, "weekly_report_"+dateStr+".csv"),
		LatestCSV:    filepath.Join(w.Dir, "latest.csv"),
	}

	md := strings.TrimSpace(reportMD) + "\n"
	for _, path := range []string{art.WeeklyReport, art.LatestReport} {
		if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
			return nil, eris.Wrapf(err, "report: write %s", path)
		}
	}

	metricsJSON, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, eris.Wrap(err, "report: marshal metrics")
	}
	if err := os.WriteFile(art.MetricsJSON, metricsJSON, 0o644); err != nil {
		return nil, eris.Wrapf(err, "report: write %s", art.MetricsJSON)
	}

	header, rows := Flatten(m)
	for _, path := range []string{art.WeeklyCSV, art.LatestCSV} {
		if err := writeCSV(path, header, rows); err != nil {
			return nil, err
		}
	}

	if w.WriteXLSX {
		art.WeeklyXLSX = filepath.Join(w.Dir, "weekly_report_"+dateStr+".xlsx")
		if err := writeXLSX(art.WeeklyXLSX, header, rows); err != nil {
			return nil, err
		}
	}

	zap.L().Info("wrote report artifacts", zap.String("dir", w.Dir))
	return art, nil
}

func writeCSV(path string, header []string, rows [][]any) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "report: create %s", path)
	}
	defer f.Close()

	// Match the JSON semantics: zero rows produce an empty file, not a
	// bare header.
	if len(rows) == 0 {
		return nil
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	record := make([]string, len(header))
	for _, row := range rows {
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrap(err, "report: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}
