package table

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/yanun0323/errors"
)

// ReadCSV parses a CSV stream into a table. The first record is the
// header; every following record becomes one row. Records with a cell
// count different from the header fail the whole read, the input is
// not tabular.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.Wrap(ErrNoColumns, "read csv header")
		}
		return nil, errors.Wrap(err, "read csv header")
	}

	t, err := New(header)
	if err != nil {
		return nil, err
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "read csv record")
		}
		if err := t.Append(record); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// ReadCSVFile parses a CSV file into a table.
func ReadCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open csv").With("path", path)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, errors.Wrap(err, "parse csv").With("path", path)
	}
	return t, nil
}

// WriteCSV writes the table back out, header first, rows in order.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	cols := t.Columns()
	if err := cw.Write(cols); err != nil {
		return errors.Wrap(err, "write csv header")
	}
	cells := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		for j, c := range cols {
			cells[j] = row.Get(c)
		}
		if err := cw.Write(cells); err != nil {
			return errors.Wrap(err, "write csv record")
		}
	}
	cw.Flush()
	return cw.Error()
}
