package export

import (
	"encoding/json"
	"io"

	"LeadersScraper/internal/domain"
	"LeadersScraper/internal/ports"
)

// JSONWriter serializes the dataset as an indented country -> leaders object.
type JSONWriter struct{}

var _ ports.DatasetWriter = JSONWriter{}

// Write marshals the dataset and writes it atomically to path.
func (JSONWriter) Write(dataset *domain.Dataset, path string) error {
	payload, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return &domain.SerializationError{Path: path, Err: err}
	}
	payload = append(payload, '\n')

	return writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(payload)
		return err
	})
}
