package db

import (
	"archive/zip"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ImportFile replaces the collection with the JSON array in path and records
// the import. path is either a .json file or a .zip archive holding one.
func ImportFile(ctx context.Context, db *sql.DB, path string) (Import, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Import{}, err
	}
	docs, err := ReadDocuments(path)
	if err != nil {
		return Import{}, err
	}

	now := time.Now()
	if err := ReplaceRecords(ctx, db, docs, now); err != nil {
		return Import{}, fmt.Errorf("replacing records: %w", err)
	}
	imp := Import{File: path, ModTime: info.ModTime(), Count: len(docs), Time: now}
	if err := SaveImport(ctx, db, imp); err != nil {
		return Import{}, fmt.Errorf("saving import: %w", err)
	}
	return imp, nil
}

// ReadDocuments reads the JSON array of record documents stored in path.
func ReadDocuments(path string) ([]json.RawMessage, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return readZip(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeDocuments(f)
}

func readZip(path string) ([]json.RawMessage, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	for _, f := range r.File {
		// Skip macOS metadata files
		if strings.HasPrefix(f.Name, "__MACOSX") || f.FileInfo().IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(f.Name), ".json") {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return decodeDocuments(rc)
		}
	}
	return nil, fmt.Errorf("no .json file found in %s", path)
}

func decodeDocuments(r io.Reader) ([]json.RawMessage, error) {
	var docs []json.RawMessage
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decoding dataset: %w", err)
	}
	for i, doc := range docs {
		if len(doc) == 0 || doc[0] != '{' {
			return nil, fmt.Errorf("decoding dataset: element %d is not an object", i)
		}
	}
	return docs, nil
}
