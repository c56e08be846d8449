package source

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// ReadCSV parses CSV data into a Table. The first row is the header; header
// names are trimmed. Field values are trimmed and become string cells, with
// empty fields kept as empty strings (blank-marker interpretation belongs to
// the transform layer). Ragged rows are allowed.
func ReadCSV(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return Table{}, nil
	}
	if err != nil {
		return Table{}, eris.Wrap(err, "source: read csv header")
	}
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	t := Table{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, eris.Wrap(err, "source: read csv row")
		}
		cells := make([]Cell, len(record))
		for i, field := range record {
			cells[i] = String(strings.TrimSpace(field))
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, nil
}
