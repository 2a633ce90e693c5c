// Package csvio loads and saves tables as CSV with a typed header.
//
// Each header cell is either a bare column name, which is read as STRING, or
// "name:KIND" where KIND is any name accepted by types.ParseType:
//
//	id:INTEGER,name,joined:LOCAL_DATE
//	1,ann,2024-03-01
//	2,,2024-03-02
//
// Cells are trimmed of surrounding white space, and an empty cell, quoted or
// not, is a missing value. CSV cannot tell an empty STRING or TEXT value from
// a missing one, so an empty string written by Write reads back as missing.
package csvio

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"joinframe/pkg/logging"
	"joinframe/pkg/table"
	"joinframe/pkg/types"
	"joinframe/pkg/utils/functools"
)

const kindSeparator = ":"

// Read parses a CSV document into a table called name.
func Read(r io.Reader, name string) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Newf("table %q: missing header row", name)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "table %q: reading header", name)
	}

	cols, err := columnsFor(header)
	if err != nil {
		return nil, errors.Wrapf(err, "table %q", name)
	}
	// The reader enforces the header's field count on every record.
	cr.FieldsPerRecord = len(cols)

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "table %q", name)
		}
		for i, cell := range record {
			if err := cols[i].AppendText(strings.TrimSpace(cell)); err != nil {
				return nil, errors.Wrapf(err, "table %q", name)
			}
		}
	}

	t, err := table.New(name, cols...)
	if err != nil {
		return nil, err
	}
	logging.WithTable(name).Debug("table loaded", "rows", t.RowCount(), "columns", t.ColumnCount())
	return t, nil
}

// ReadFile reads the CSV file at path. The table is named after the file
// without its extension.
func ReadFile(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	base := filepath.Base(path)
	return Read(f, strings.TrimSuffix(base, filepath.Ext(base)))
}

// Write renders t as CSV, header first. Missing cells are written empty, as
// are empty strings; both read back as missing.
func Write(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)

	header := functools.Map(t.Columns(), func(c table.Column) string {
		return c.Name() + kindSeparator + c.Type().String()
	})
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write header")
	}

	record := make([]string, t.ColumnCount())
	row := t.Row()
	for row.HasNext() {
		row.Next()
		for c := range record {
			record[c] = row.Format(c)
		}
		if err := cw.Write(record); err != nil {
			return errors.Wrapf(err, "write row %d", row.Position())
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush csv")
}

// WriteFile writes t to path, replacing any existing file.
func WriteFile(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := Write(f, t); err != nil {
		_ = f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

func columnsFor(header []string) ([]table.Column, error) {
	cols := make([]table.Column, len(header))
	for i, cell := range header {
		name, kindName, typed := strings.Cut(strings.TrimSpace(cell), kindSeparator)
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, errors.Newf("header column %d has no name", i+1)
		}

		typ := types.StringType
		if typed {
			t, err := types.ParseType(kindName)
			if err != nil {
				return nil, errors.Wrapf(err, "header column %q", name)
			}
			typ = t
		}

		c, err := table.NewColumn(name, typ)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return cols, nil
}
