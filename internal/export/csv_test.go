package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookscrape/internal/scraper"
	"bookscrape/internal/testutil"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter_Export(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "books.csv")
	w := NewWriter(zerolog.Nop())

	ok := w.Export(testutil.Records(15), dest)
	require.True(t, ok)

	rows := readCSV(t, dest)
	require.Len(t, rows, 16)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "Book 001", rows[1][0])
	assert.Equal(t, "11.00", rows[1][1])
	assert.Equal(t, "In stock (22 available)", rows[1][3])
}

func TestWriter_ExportEmpty(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "books.csv")
	w := NewWriter(zerolog.Nop())

	assert.False(t, w.Export(nil, dest))
	_, err := os.Stat(dest)
	assert.True(t, os.IsNotExist(err))
}

func TestWriter_CreatesNestedDirectories(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "a", "b", "books.csv")
	w := NewWriter(zerolog.Nop())

	require.True(t, w.Export(testutil.Records(1), dest))
	rows := readCSV(t, dest)
	assert.Len(t, rows, 2)
}

func TestWriter_OverwritesPreviousArtifact(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "books.csv")
	w := NewWriter(zerolog.Nop())

	require.True(t, w.Export(testutil.Records(10), dest))
	require.True(t, w.Export(testutil.Records(2), dest))

	rows := readCSV(t, dest)
	assert.Len(t, rows, 3)
}

func TestWriter_PriceFormatting(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "books.csv")
	w := NewWriter(zerolog.Nop())

	records := []scraper.Record{{Title: "Round", Price: 20, Rating: 1, Availability: "In stock", Category: "Fiction"}}
	require.True(t, w.Export(records, dest))

	rows := readCSV(t, dest)
	assert.Equal(t, "20.00", rows[1][1])
	assert.Equal(t, "", rows[1][5])
}
