package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// IDSet is the set of primary ids a dataset already holds.
type IDSet map[string]struct{}

// Has reports whether id is already persisted.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// LoadIDs reads the dataset at path once and returns the set of values in
// the named column. A missing or empty dataset yields an empty set: a run
// against a fresh output directory simply has nothing to skip.
func LoadIDs(path, column string) (IDSet, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return IDSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return IDSet{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	col := -1
	for i, name := range header {
		if name == column {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("dataset %s has no %q column", path, column)
	}

	ids := IDSet{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			return ids, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read row of %s: %w", path, err)
		}
		ids[row[col]] = struct{}{}
	}
}
