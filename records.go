package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
)

var ErrMissingField = errors.New("missing field")

// Record is one survey response keyed by question code.
type Record map[string]string

// Value returns the raw response for field. Exports always carry every
// header column, so an absent field means the wrong question code was asked for.
func (r Record) Value(field string) (string, error) {
	value, ok := r[field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, field)
	}
	return value, nil
}

func loadRecords(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open survey export: %w", err)
	}
	defer file.Close()

	return readRecords(file)
}

// readRecords decodes ISO-8859-1 input; free-text answers in the export are
// not valid UTF-8.
func readRecords(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("unable to read header: %w", err)
	}

	records := []Record{}
	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("unable to read CSV: %w", err)
		}

		record := make(Record, len(headers))
		for idx, header := range headers {
			record[header] = row[idx]
		}
		records = append(records, record)
	}
	return records, nil
}
