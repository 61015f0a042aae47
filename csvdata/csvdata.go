// Package csvdata reads consolidated data files into a datatune.Dataset.
//
// A data file has one record per line: a date (yyyy, yyyy-mm or
// yyyy-mm-dd) followed by (source, coverage, value) triples, one per
// stream. Blank lines and lines starting with '#' are skipped. Records may
// have different numbers of fields.
package csvdata

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/datatune/datatune"
	"github.com/pkg/errors"
)

// Read parses all records from r.
func Read(r io.Reader) (datatune.Dataset, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	var rows []datatune.Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return datatune.Dataset{}, errors.Wrapf(datatune.ErrFormat, "%v", err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		row, err := datatune.NewRow(rec...)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return datatune.Dataset{}, errors.Wrapf(datatune.ErrFormat, "line %d: %v", line, err)
		}
		rows = append(rows, row)
	}
	return datatune.NewDataset(rows...), nil
}

// ReadFile reads a data file from disk.
func ReadFile(path string) (datatune.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return datatune.Dataset{}, errors.Wrapf(err, "opening %v", path)
	}
	defer f.Close()
	d, err := Read(f)
	if err != nil {
		return datatune.Dataset{}, errors.Wrapf(err, "reading %v", path)
	}
	return d, nil
}
