package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// SummaryField is the enrichment field added by the pipeline. It is always
// present on processed records, possibly as an empty string.
const SummaryField = "summary"

// WikipediaURLField holds the article URL used for biography extraction.
const WikipediaURLField = "wikipedia_url"

// Record is a semi-structured leader entry: an ordered mapping of API field
// names to values. The upstream schema drifts, so fields are not modeled as a
// fixed struct; insertion order is preserved through JSON round-trips.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord builds an empty record.
func NewRecord() *Record {
	return &Record{values: map[string]any{}}
}

// Set stores a field value, keeping the original position for existing keys.
func (r *Record) Set(key string, value any) {
	if r.values == nil {
		r.values = map[string]any{}
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Get returns the value for key and whether it is present.
func (r *Record) Get(key string) (any, bool) {
	value, ok := r.values[key]
	return value, ok
}

// GetString returns the field value if it is a string, otherwise "".
func (r *Record) GetString(key string) string {
	if s, ok := r.values[key].(string); ok {
		return s
	}
	return ""
}

// Fields lists field names in insertion order.
func (r *Record) Fields() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// MarshalJSON encodes the record as a JSON object in field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("encode field name %q: %w", key, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(r.values[key])
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", key, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, recording keys in document order.
// Numbers are kept as json.Number so their textual form survives re-export.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("record: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record: expected JSON object, got %v", tok)
	}

	r.keys = nil
	r.values = map[string]any{}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("record: read field name: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("record: unexpected field name token %v", keyTok)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("record: decode field %q: %w", key, err)
		}
		r.Set(key, value)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return nil
}
