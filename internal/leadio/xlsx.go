package leadio

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/lead-ranker/internal/model"
)

// ReadXLSX parses a lead table from the first sheet of an XLSX
// workbook. The first row is the header; the same aliasing rules as
// CSV apply.
func ReadXLSX(path string) (model.Table, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return model.Table{}, eris.Wrap(err, "leadio: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return model.Table{}, eris.New("leadio: xlsx file has no sheets")
	}

	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return model.Table{}, eris.New("leadio: xlsx sheet is empty")
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.String()
		}
		rows = append(rows, cells)
	}

	return tableFromRows(rows[0], rows[1:])
}
