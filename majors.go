package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

type majorCount struct {
	Major string
	Count int
}

// countMajors tallies the raw values of field and prints them lowercased,
// sorted case-insensitively. Output goes to dest when set, otherwise stdout.
func countMajors(records []Record, field string, dest string, stdout io.Writer) (map[string]int, error) {
	counts := map[string]int{}
	order := []string{}
	for _, record := range records {
		major, err := record.Value(field)
		if err != nil {
			return nil, err
		}
		if _, exists := counts[major]; !exists {
			order = append(order, major)
		}
		counts[major]++
	}

	sorted := make([]majorCount, 0, len(order))
	for _, major := range order {
		sorted = append(sorted, majorCount{Major: major, Count: counts[major]})
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return strings.ToLower(sorted[i].Major) < strings.ToLower(sorted[j].Major)
	})

	if dest == "" {
		if err := writeMajors(stdout, sorted); err != nil {
			return nil, err
		}
		return counts, nil
	}
	if err := writeMajorsFile(dest, sorted); err != nil {
		return nil, err
	}
	return counts, nil
}

func writeMajorsFile(path string, majors []majorCount) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	return writeMajors(file, majors)
}

func writeMajors(w io.Writer, majors []majorCount) error {
	for _, entry := range majors {
		if _, err := fmt.Fprintf(w, "%2d: %s\n", entry.Count, strings.ToLower(entry.Major)); err != nil {
			return err
		}
	}
	return nil
}
