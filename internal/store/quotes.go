// Package store persists quote sets and validation artifacts as JSON
// documents. Sets are read and rewritten wholesale per run; there is no
// incremental update path.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/7urk3r/quotevet/internal/model"
)

// LoadQuoteSet reads a quote set from path. A missing file yields an
// empty set, not an error: first runs start from nothing.
func LoadQuoteSet(path string) (*model.QuoteSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &model.QuoteSet{}, nil
		}
		return nil, fmt.Errorf("read quote set: %w", err)
	}

	var set model.QuoteSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse quote set %s: %w", path, err)
	}
	return &set, nil
}

// SaveQuoteSet writes a quote set to path via a temp file in the same
// directory followed by a rename, so a crash mid-write never leaves a
// truncated set behind.
func SaveQuoteSet(path string, set *model.QuoteSet) error {
	if set.Quotes == nil {
		set.Quotes = []model.QuoteRecord{}
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal quote set: %w", err)
	}
	return writeAtomic(path, append(data, '\n'))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
