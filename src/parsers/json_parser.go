package parsers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/username/salarypredictor/src/logger"
	"github.com/username/salarypredictor/src/models"
)

// JSONParser reads a corpus given as a JSON array of objects keyed by the
// CSV column names. salary may be a number or a numeric string.
type JSONParser struct{}

func NewJSONParser() *JSONParser {
	return &JSONParser{}
}

func (p *JSONParser) Parse(file io.Reader) ([]models.HistoricalRecord, error) {
	var raw []map[string]json.RawMessage
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyCorpus
		}
		return nil, fmt.Errorf("failed to decode JSON corpus: %w", err)
	}

	var records []models.HistoricalRecord
	for i, obj := range raw {
		values := make(map[string]string, len(obj))
		for key, msg := range obj {
			values[canonicalColumn(key)] = rawValue(msg)
		}
		if missing := firstMissing(values); missing != "" {
			logger.L.Warn("JSON corpus record missing column, skipping", "index", i, "column", missing)
			continue
		}
		rec, err := buildRecord(values)
		if err != nil {
			logger.L.Warn("Invalid corpus record, skipping", "index", i, "error", err)
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrEmptyCorpus
	}
	logger.L.Info("JSON corpus parsed", "records", len(records))
	return records, nil
}

func rawValue(msg json.RawMessage) string {
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}
	var f float64
	if err := json.Unmarshal(msg, &f); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

func firstMissing(values map[string]string) string {
	for _, col := range requiredColumns {
		if _, ok := values[col]; !ok {
			return col
		}
	}
	return ""
}
