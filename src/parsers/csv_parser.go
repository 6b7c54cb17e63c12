package parsers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/models"
)

// CSVParser reads a header-first CSV corpus. Columns are matched by name,
// so their order is free and extra columns are ignored.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(file io.Reader) ([]models.HistoricalRecord, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCorpus
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		col := canonicalColumn(name)
		if _, seen := index[col]; !seen {
			index[col] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var records []models.HistoricalRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.L.Warn("Failed to read CSV record, skipping", "line", line, "error", err)
			continue
		}
		if isBlankRow(row) {
			continue
		}

		values := make(map[string]string, len(requiredColumns))
		for _, col := range requiredColumns {
			if i := index[col]; i < len(row) {
				values[col] = row[i]
			}
		}
		rec, err := buildRecord(values)
		if err != nil {
			logger.L.Warn("Invalid corpus record, skipping", "line", line, "error", err)
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}
	logger.L.Info("CSV corpus parsed", "records", len(records))
	return records, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
