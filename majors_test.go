package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func majorRecords() []Record {
	return []Record{
		{"Q4": "Biology"},
		{"Q4": "biology"},
		{"Q4": "Math"},
		{"Q4": "Math"},
	}
}

func TestCountMajorsStdout(t *testing.T) {
	var stdout bytes.Buffer

	counts, err := countMajors(majorRecords(), "Q4", "", &stdout)
	if err != nil {
		t.Fatalf("count majors: %v", err)
	}

	want := map[string]int{"Biology": 1, "biology": 1, "Math": 2}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Fatalf("counts mismatch (-want +got):\n%s", diff)
	}
	expected := " 1: biology\n 1: biology\n 2: math\n"
	if stdout.String() != expected {
		t.Fatalf("unexpected output:\n%s", stdout.String())
	}
}

func TestCountMajorsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "majors.txt")
	if err := os.WriteFile(path, []byte("stale contents that are longer than the report\n"), 0644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	var stdout bytes.Buffer
	if _, err := countMajors(majorRecords(), "Q4", path, &stdout); err != nil {
		t.Fatalf("count majors: %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected nothing on stdout, got %q", stdout.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read majors: %v", err)
	}
	if string(data) != " 1: biology\n 1: biology\n 2: math\n" {
		t.Fatalf("unexpected majors file:\n%s", data)
	}

	// The handle is closed, so the file can be removed straight away.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove majors: %v", err)
	}
}

func TestCountMajorsUnwritableDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "majors.txt")

	var stdout bytes.Buffer
	if _, err := countMajors(majorRecords(), "Q4", path, &stdout); err == nil {
		t.Fatal("expected error for unwritable destination")
	}
}

func TestCountMajorsSumsToDatasetSize(t *testing.T) {
	records := append(majorRecords(), Record{"Q4": "History"}, Record{"Q4": ""})

	var stdout bytes.Buffer
	counts, err := countMajors(records, "Q4", "", &stdout)
	if err != nil {
		t.Fatalf("count majors: %v", err)
	}
	total := 0
	for _, count := range counts {
		total += count
	}
	if total != len(records) {
		t.Fatalf("expected %d, got %d", len(records), total)
	}
}
