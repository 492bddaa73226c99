package main

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var ErrMissingBucket = errors.New("missing bucket")

type condition struct {
	Field string
	Value string
}

// Buckets groups records by the option codes they selected for one field.
// A record appears in every bucket it selected.
type Buckets map[string][]Record

func (b Buckets) Get(code string) ([]Record, error) {
	entries, ok := b[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingBucket, code)
	}
	return entries, nil
}

// Count is Get for callers that only need the bucket size.
func (b Buckets) Count(code string) (int, error) {
	entries, err := b.Get(code)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (b Buckets) Codes() []string {
	codes := make([]string, 0, len(b))
	for code := range b {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// selectRecords keeps the records matching every condition exactly.
func selectRecords(records []Record, conditions ...condition) ([]Record, error) {
	if len(conditions) == 0 {
		return records, nil
	}
	result := make([]Record, 0, len(records))
	for _, record := range records {
		matched := true
		for _, cond := range conditions {
			value, err := record.Value(cond.Field)
			if err != nil {
				return nil, err
			}
			if value != cond.Value {
				matched = false
			}
		}
		if matched {
			result = append(result, record)
		}
	}
	return result, nil
}

// partitionRecords buckets records by the comma-separated option codes in
// field. A blank answer lands in the "" bucket.
func partitionRecords(records []Record, field string) (Buckets, error) {
	buckets := Buckets{}
	for _, record := range records {
		value, err := record.Value(field)
		if err != nil {
			return nil, err
		}
		seen := map[string]bool{}
		for _, choice := range strings.Split(value, ",") {
			if seen[choice] {
				continue
			}
			seen[choice] = true
			buckets[choice] = append(buckets[choice], record)
		}
	}
	return buckets, nil
}

func meanField(records []Record, field string) (float64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	sum := 0.0
	for _, record := range records {
		value, err := record.Value(field)
		if err != nil {
			return 0, err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value: %w", field, err)
		}
		sum += parsed
	}
	return sum / float64(len(records)), nil
}
