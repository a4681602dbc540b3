package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
)

// Dataset accumulates enriched leader records per country. Countries keep
// their insertion order; appends are safe for concurrent enrichment workers.
type Dataset struct {
	mu        sync.Mutex
	order     []string
	byCountry map[string][]*Record
}

// NewDataset builds an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{byCountry: map[string][]*Record{}}
}

// Append adds a record under the country key, creating the list if absent.
func (d *Dataset) Append(country string, record *Record) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.byCountry == nil {
		d.byCountry = map[string][]*Record{}
	}
	if _, ok := d.byCountry[country]; !ok {
		d.order = append(d.order, country)
	}
	d.byCountry[country] = append(d.byCountry[country], record)
}

// Countries lists country keys in insertion order.
func (d *Dataset) Countries() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Leaders returns the records appended under country, in append order.
func (d *Dataset) Leaders(country string) []*Record {
	d.mu.Lock()
	defer d.mu.Unlock()

	records := d.byCountry[country]
	out := make([]*Record, len(records))
	copy(out, records)
	return out
}

// Len returns the total number of records across all countries.
func (d *Dataset) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	total := 0
	for _, records := range d.byCountry {
		total += len(records)
	}
	return total
}

// MarshalJSON encodes the country -> leaders mapping preserving country order.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, country := range d.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(country)
		if err != nil {
			return nil, fmt.Errorf("encode country %q: %w", country, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		records, err := json.Marshal(d.byCountry[country])
		if err != nil {
			return nil, fmt.Errorf("encode leaders for %q: %w", country, err)
		}
		buf.Write(records)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a country -> leaders object in document order.
func (d *Dataset) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dataset: expected JSON object, got %v", tok)
	}

	d.mu.Lock()
	d.order = nil
	d.byCountry = map[string][]*Record{}
	d.mu.Unlock()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("dataset: read country: %w", err)
		}
		country, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("dataset: unexpected country token %v", keyTok)
		}

		var records []*Record
		if err := dec.Decode(&records); err != nil {
			return fmt.Errorf("dataset: decode leaders for %q: %w", country, err)
		}

		d.mu.Lock()
		d.order = append(d.order, country)
		d.byCountry[country] = records
		d.mu.Unlock()
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	return nil
}
