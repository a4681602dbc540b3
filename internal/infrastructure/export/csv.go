package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"LeadersScraper/internal/domain"
	"LeadersScraper/internal/ports"
)

// CSVWriter flattens the dataset to one row per leader with a leading country
// column. The header is the union of all fields seen across all countries, in
// first-seen order; missing values are written empty.
type CSVWriter struct{}

var _ ports.DatasetWriter = CSVWriter{}

// Write renders the dataset as CSV and writes it atomically to path.
func (CSVWriter) Write(dataset *domain.Dataset, path string) error {
	header := buildHeader(dataset)

	return writeAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write(header); err != nil {
			return err
		}

		for _, country := range dataset.Countries() {
			for _, record := range dataset.Leaders(country) {
				row := make([]string, 0, len(header))
				row = append(row, country)
				for _, field := range header[1:] {
					value, ok := record.Get(field)
					if !ok {
						row = append(row, "")
						continue
					}
					row = append(row, cellValue(value))
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}

		cw.Flush()
		return cw.Error()
	})
}

func buildHeader(dataset *domain.Dataset) []string {
	header := []string{"country"}
	seen := map[string]bool{"country": true}
	for _, country := range dataset.Countries() {
		for _, record := range dataset.Leaders(country) {
			for _, field := range record.Fields() {
				if !seen[field] {
					seen[field] = true
					header = append(header, field)
				}
			}
		}
	}
	return header
}

func cellValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return flattenNewlines(v)
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(raw)
	}
}

// flattenNewlines keeps multi-line summaries on a single CSV row.
func flattenNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
