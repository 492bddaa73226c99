package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestReadRecordsDecodesLatin1(t *testing.T) {
	// 0xE9 is "é" in ISO-8859-1 and an invalid byte in UTF-8.
	raw := "Q4,Q30\nBiology,caf\xe9 hours\n"

	records, err := readRecords(strings.NewReader(raw))
	require.NoError(t, err)

	want := []Record{{"Q4": "Biology", "Q30": "café hours"}}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRecordsFieldCountMismatch(t *testing.T) {
	raw := "Q4,Q17\nBiology,1\nMath\n"

	_, err := readRecords(strings.NewReader(raw))
	require.ErrorIs(t, err, csv.ErrFieldCount)
}

func TestReadRecordsEmptyInput(t *testing.T) {
	records, err := readRecords(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestLoadRecordsMissingFile(t *testing.T) {
	_, err := loadRecords(filepath.Join(t.TempDir(), "arc_aac_data.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRecordValueMissingField(t *testing.T) {
	record := Record{"Q4": "Math"}

	_, err := record.Value("Q17")
	require.ErrorIs(t, err, ErrMissingField)

	value, err := record.Value("Q4")
	require.NoError(t, err)
	require.Equal(t, "Math", value)
}
