package dataset

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = []string{"id", "value"}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestAppendWritesHeaderOnCreate(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out", "things.csv")

	require.NoError(t, Append(path, testColumns, [][]string{{"a", "1"}, {"b", "2"}}))

	records := readAll(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, testColumns, records[0])
	assert.Equal(t, []string{"a", "1"}, records[1])
	assert.Equal(t, []string{"b", "2"}, records[2])
}

func TestAppendSkipsHeaderOnExisting(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "things.csv")

	require.NoError(t, Append(path, testColumns, [][]string{{"a", "1"}}))
	require.NoError(t, Append(path, testColumns, [][]string{{"b", "2"}}))

	records := readAll(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, testColumns, records[0])
}

func TestAppendZeroRowsStillCreatesDataset(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "things.csv")

	require.NoError(t, Append(path, testColumns, nil))

	// A phase with zero candidates leaves a valid, header-only dataset.
	records := readAll(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, testColumns, records[0])
}

func TestAppendWritesHeaderToEmptyFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "things.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	require.NoError(t, Append(path, testColumns, [][]string{{"a", "1"}}))

	records := readAll(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, testColumns, records[0])
}
