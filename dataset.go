package datatune

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type (
	// Row is one consolidated data record: a date string followed by
	// (source, coverage, value) triples, one triple per stream. A Row is
	// immutable; the zero Row is not valid data, use PaddingRow to fill a
	// slot that has no data on purpose.
	Row struct {
		fields  []string
		padding bool
	}

	// Dataset is an ordered, possibly empty, sequence of rows. It may hold
	// padding rows.
	Dataset struct {
		rows []Row
	}

	// Datum is the value of one stream in one row. Each part is optional;
	// the Has* methods tell which ones are present.
	Datum struct {
		source      string
		coverage    float64
		value       float64
		hasCoverage bool
		hasValue    bool
	}
)

// FieldsPerStream is the number of fields each stream occupies in a row.
const FieldsPerStream = 3

// PaddingRow marks a slot in a proto-bar that carries no data.
var PaddingRow = Row{padding: true}

// EmptyDatum has no source, coverage or value.
var EmptyDatum = Datum{}

// NewRow copies fields into a new Row. The first field, the date, must be
// non-empty.
func NewRow(fields ...string) (Row, error) {
	if len(fields) == 0 || fields[0] == "" {
		return Row{}, errors.Wrap(ErrInvalidArgument, "row needs a non-empty date field")
	}
	f := make([]string, len(fields))
	copy(f, fields)
	return Row{fields: f}, nil
}

// ParseRow splits a comma separated line into a Row.
func ParseRow(line string) (Row, error) {
	r, err := NewRow(strings.Split(line, ",")...)
	if err != nil {
		return Row{}, errors.Wrapf(ErrFormat, "row %q: %v", line, err)
	}
	return r, nil
}

func (r Row) IsPadding() bool { return r.padding }

// Len returns the number of fields in the row, 0 for padding.
func (r Row) Len() int { return len(r.fields) }

// Field returns the field at index, or "" if the index is out of range.
func (r Row) Field(index int) string {
	if index < 0 || index >= len(r.fields) {
		return ""
	}
	return r.fields[index]
}

// Date returns the date field; "" for padding.
func (r Row) Date() string { return r.Field(0) }

// Fields returns a copy of the fields of the row.
func (r Row) Fields() []string {
	ret := make([]string, len(r.fields))
	copy(ret, r.fields)
	return ret
}

// String joins the fields back into a comma separated line.
func (r Row) String() string {
	if r.padding {
		return "<pad>"
	}
	return strings.Join(r.fields, ",")
}

// Datum extracts the (source, coverage, value) triple of the 0-based stream.
// Missing, unparseable or non-finite parts are absent; negative coverage is
// absent. A padding row, or a row too short for the stream, yields
// EmptyDatum.
func (r Row) Datum(stream int) Datum {
	if r.padding || stream < 0 {
		return EmptyDatum
	}
	base := 1 + stream*FieldsPerStream
	if base >= len(r.fields) {
		return EmptyDatum
	}
	var d Datum
	d.source = strings.TrimSpace(r.Field(base))
	if c, ok := parseFinite(r.Field(base + 1)); ok && c >= 0 {
		d.coverage, d.hasCoverage = c, true
	}
	if v, ok := parseFinite(r.Field(base + 2)); ok {
		d.value, d.hasValue = v, true
	}
	return d
}

func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NewDatum builds a Datum from explicit parts. An empty source means no
// source; coverage must be finite and non-negative when present and value
// finite when present.
func NewDatum(source string, coverage float64, hasCoverage bool, value float64, hasValue bool) (Datum, error) {
	if hasCoverage && (coverage < 0 || math.IsNaN(coverage) || math.IsInf(coverage, 0)) {
		return Datum{}, errors.Wrapf(ErrInvalidArgument, "coverage %v must be finite and >= 0", coverage)
	}
	if hasValue && (math.IsNaN(value) || math.IsInf(value, 0)) {
		return Datum{}, errors.Wrapf(ErrInvalidArgument, "value %v must be finite", value)
	}
	d := Datum{source: source, hasCoverage: hasCoverage, hasValue: hasValue}
	if hasCoverage {
		d.coverage = coverage
	}
	if hasValue {
		d.value = value
	}
	return d, nil
}

// Source returns the source name and whether one is present.
func (d Datum) Source() (string, bool) { return d.source, d.source != "" }

// Coverage returns the coverage and whether it is present.
func (d Datum) Coverage() (float64, bool) { return d.coverage, d.hasCoverage }

// Value returns the value and whether it is present.
func (d Datum) Value() (float64, bool) { return d.value, d.hasValue }

// IsEmpty reports whether no part of the datum is present.
func (d Datum) IsEmpty() bool { return d == EmptyDatum }

// NewDataset copies rows into a new Dataset.
func NewDataset(rows ...Row) Dataset {
	r := make([]Row, len(rows))
	copy(r, rows)
	return Dataset{rows: r}
}

// ParseDataset parses one Row per non-blank line.
func ParseDataset(lines ...string) (Dataset, error) {
	rows := make([]Row, 0, len(lines))
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		r, err := ParseRow(l)
		if err != nil {
			return Dataset{}, errors.Wrapf(err, "line %d", i+1)
		}
		rows = append(rows, r)
	}
	return Dataset{rows: rows}, nil
}

func (d Dataset) Len() int { return len(d.rows) }

// Row returns the row at index, or PaddingRow if the index is out of range.
func (d Dataset) Row(index int) Row {
	if index < 0 || index >= len(d.rows) {
		return PaddingRow
	}
	return d.rows[index]
}

// Rows iterates the rows in order.
func (d Dataset) Rows(yield func(int, Row) bool) {
	for i, r := range d.rows {
		if !yield(i, r) {
			return
		}
	}
}

// First returns the first non-padding row.
func (d Dataset) First() (Row, bool) {
	for _, r := range d.rows {
		if !r.padding {
			return r, true
		}
	}
	return Row{}, false
}
