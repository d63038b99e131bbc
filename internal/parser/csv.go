package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles CSV files: one "Header: value" line per cell, one block
// per row. Two exports of the same sheet then diff row by row.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	headers := records[0]
	var out strings.Builder
	for i, row := range records[1:] {
		if out.Len() > 0 {
			out.WriteString("\n\n")
		}
		out.WriteString(fmt.Sprintf("%d. ", i+1)) // row marker doubles as a chunk anchor
		for j, cell := range row {
			if j > 0 {
				out.WriteString(", ")
			}
			if j < len(headers) {
				out.WriteString(headers[j] + ": " + cell)
			} else {
				out.WriteString(cell)
			}
		}
	}
	return out.String(), nil
}
