// Package dataset implements the append-only CSV sink and the resume store
// that tracks which primary ids a dataset already holds.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Append writes rows to the dataset at path, creating it with a header row
// when the file is absent or zero-length. Rows from prior invocations are
// never rewritten. Append trusts its caller to have filtered out ids the
// dataset already holds; appending unfiltered rows is the one way
// duplicates can appear.
func Append(path string, header []string, rows [][]string) error {
	needHeader, err := isNewDataset(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create dataset dir for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(header); err != nil {
			f.Close()
			return fmt.Errorf("write header to %s: %w", path, err)
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("append row to %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush dataset %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close dataset %s: %w", path, err)
	}
	return nil
}

// isNewDataset reports whether path needs a header row: the file is absent
// or exists but holds no bytes.
func isNewDataset(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat dataset %s: %w", path, err)
	}
	return info.Size() == 0, nil
}
