package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Row maps a column label to the cell parsed from that column.
type Row map[string]Cell

// Table is an ordered sequence of rows read from one delimited file.
// Columns preserves the native column order of the source; no assumption
// is made about which semantic role a column plays.
type Table struct {
	Columns []string
	Rows    []Row
}

// ReadCSV parses delimited input into a Table. The first record is the
// header. Fields are trimmed; empty fields become missing cells and fields
// that parse as numbers become numeric cells.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make([]string, 0, len(header))
	for i, label := range header {
		if i == 0 {
			label = strings.TrimPrefix(label, "\uFEFF")
		}
		columns = append(columns, strings.TrimSpace(label))
	}

	tbl := &Table{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		row := make(Row, len(columns))
		for i, label := range columns {
			if i >= len(record) {
				row[label] = MissingCell()
				continue
			}
			row[label] = parseField(record[i])
		}
		tbl.Rows = append(tbl.Rows, row)
	}

	return tbl, nil
}

// ReadCSVFile reads and parses a delimited file from disk.
func ReadCSVFile(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return ReadCSV(file)
}

func parseField(field string) Cell {
	field = strings.TrimSpace(field)
	if field == "" {
		return MissingCell()
	}
	if v, err := strconv.ParseFloat(field, 64); err == nil {
		return NumberCell(v)
	}
	return TextCell(field)
}
