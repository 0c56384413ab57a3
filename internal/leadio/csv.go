package leadio

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/lead-ranker/internal/model"
)

// ReadCSV parses a lead table from a CSV file. The first row is the
// header; source columns are aliased onto canonical fields and rows
// without a company name are dropped.
func ReadCSV(path string) (model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Table{}, eris.Wrap(err, "leadio: open csv")
	}
	defer f.Close()

	return ParseCSV(f)
}

// ParseCSV reads a lead table from an open CSV stream.
func ParseCSV(r io.Reader) (model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return model.Table{}, eris.Wrap(err, "leadio: parse csv")
	}
	if len(records) == 0 {
		return model.Table{}, eris.New("leadio: csv file is empty")
	}

	return tableFromRows(records[0], records[1:])
}
