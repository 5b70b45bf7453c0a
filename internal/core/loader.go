package core

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JonMunkholm/charitydb/internal/logging"
)

// ErrSourceNotFound is returned by LoadCSV when the cleaned CSV is missing.
var ErrSourceNotFound = errors.New("source not found")

// ErrEmptyFile is returned by LoadCSV when the CSV has no header row.
var ErrEmptyFile = errors.New("empty file")

// LoadCSV reads the cleaned charities CSV at path into memory. All values are
// kept as text. A missing file yields ErrSourceNotFound.
func LoadCSV(ctx context.Context, path string) (*Dataset, error) {
	logger := logging.WithFields(ctx, "stage", "load")

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: cleaned CSV not found at %s; run the cleaning step first", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("source %s is a directory, not a CSV file", path)
	}

	logger.Info("loading cleaned CSV", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	reader, counter := WrapForStreaming(f)
	ds, err := readDataset(reader)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	ds.Path = path

	if missing := MissingColumns(MakeHeaderIndex(ds.Header)); len(missing) > 0 {
		logger.Warn("columns missing from source; values treated as NULL", "columns", missing)
	}

	logger.Info("loaded rows", "rows", ds.Len(), "bytes", counter.BytesRead)
	return ds, nil
}

// readDataset parses the header and all records from r.
func readDataset(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // Short and long rows are tolerated
	cr.LazyQuotes = true    // Stray quotes in names are kept as text

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("invalid csv header: %w", err)
	}

	ds := &Dataset{Header: header}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid csv: %w", err)
		}
		ds.Records = append(ds.Records, record)
	}
	return ds, nil
}
