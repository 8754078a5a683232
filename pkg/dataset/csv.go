package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/glyco-ml/glyco/pkg/utils/cmp"
)

var (
	// ErrMissingPath is returned when the data directory does not exist.
	ErrMissingPath = errors.New("cannot use non-existent path provided")

	// ErrNoData is returned when the data directory has no CSV file.
	ErrNoData = errors.New("no CSV files found in provided data")

	// ErrSchemaMismatch is returned when CSV files in one directory
	// disagree on their header.
	ErrSchemaMismatch = errors.New("CSV files have mismatched columns")
)

// LoadDir reads every *.csv file directly inside dir into one Table.
//
// Files are read in lexicographic order and their rows concatenated,
// preserving row order within each file. All files must share the
// exact same header.
//
// # Errors
//
// - ErrMissingPath: dir does not exist (or is not a directory).
//
// - ErrNoData: dir exists but contains no *.csv file.
//
// - ErrSchemaMismatch: files disagree on the header.
func LoadDir(dir string) (Table, error) {
	stat, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Table{}, fmt.Errorf("%w: %s", ErrMissingPath, dir)
		}
		return Table{}, err
	}
	if !stat.IsDir() {
		return Table{}, fmt.Errorf("%w: %s is not a directory", ErrMissingPath, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Table{}, err
	}

	table := Table{}
	found := false
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		shard, err := loadFile(path)
		if err != nil {
			return Table{}, err
		}

		if !found {
			table.Columns = shard.Columns
			found = true
		} else if !cmp.SliceEq(table.Columns, shard.Columns) {
			return Table{}, fmt.Errorf(
				"%w: %s has columns %v, expected %v",
				ErrSchemaMismatch, path, shard.Columns, table.Columns,
			)
		}
		table.Rows = append(table.Rows, shard.Rows...)
	}

	if !found {
		return Table{}, fmt.Errorf("%w: %s", ErrNoData, dir)
	}
	return table, nil
}

// LoadFile reads one CSV file into a Table.
//
// # Errors
//
// - ErrMissingPath: path does not exist.
func LoadFile(path string) (Table, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Table{}, fmt.Errorf("%w: %s", ErrMissingPath, path)
		}
		return Table{}, err
	}
	return loadFile(path)
}

func loadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(records) == 0 {
		return Table{}, fmt.Errorf("%s: missing header row", path)
	}

	columns := make([]string, len(records[0]))
	for i, c := range records[0] {
		columns[i] = strings.TrimSpace(c)
	}

	rows := make([][]float64, 0, len(records)-1)
	for lineno, record := range records[1:] {
		row := make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return Table{}, fmt.Errorf(
					"%s: line %d: column %s is not numeric: %w",
					path, lineno+2, columns[i], err,
				)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}, nil
}
