package parsers

import (
	"fmt"
	"strings"
)

func GetParser(format string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv", "":
		return NewCSVParser(), nil
	case "json":
		return NewJSONParser(), nil
	default:
		return nil, fmt.Errorf("no parser available for format: %s", format)
	}
}

// FormatFromFilename guesses the corpus format from a file extension.
func FormatFromFilename(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		return "json"
	}
	return "csv"
}
