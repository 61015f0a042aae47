package datatune

import (
	"slices"

	"github.com/pkg/errors"
)

// ProtoBar is a fixed-size window of rows destined to become one bar of
// music. Slots without data hold PaddingRow.
type ProtoBar struct {
	rows []Row
}

// NewProtoBar copies rows into a ProtoBar of exactly size slots.
func NewProtoBar(size int, rows ...Row) (ProtoBar, error) {
	if size <= 0 {
		return ProtoBar{}, errors.Wrapf(ErrInvalidArgument, "proto-bar size %d must be > 0", size)
	}
	if len(rows) != size {
		return ProtoBar{}, errors.Wrapf(ErrInvalidArgument, "proto-bar of size %d given %d rows", size, len(rows))
	}
	r := make([]Row, size)
	copy(r, rows)
	return ProtoBar{rows: r}, nil
}

func (p ProtoBar) Len() int { return len(p.rows) }

// Row returns the row in the slot, PaddingRow if out of range.
func (p ProtoBar) Row(index int) Row {
	if index < 0 || index >= len(p.rows) {
		return PaddingRow
	}
	return p.rows[index]
}

// Rows iterates the slots in order.
func (p ProtoBar) Rows(yield func(int, Row) bool) {
	for i, r := range p.rows {
		if !yield(i, r) {
			return
		}
	}
}

// Filled returns the number of slots where the 0-based stream has a value.
func (p ProtoBar) Filled(stream int) int {
	n := 0
	for _, r := range p.rows {
		if _, ok := r.Datum(stream).Value(); ok {
			n++
		}
	}
	return n
}

// Chop splits the dataset into proto-bars of c.NotesPerBar() rows, keeping
// every row in its original order. The last bar is right-padded. When align
// is set, the first bar is also left-padded so that bar boundaries fall on
// the cadence's cycle boundaries, e.g. every monthly bar starts in January.
func Chop(c Cadence, data Dataset, align bool) ([]ProtoBar, error) {
	size := c.NotesPerBar()
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown cadence %v", c)
	}
	if data.Len() == 0 {
		return nil, nil
	}
	lead := 0
	if align {
		if !c.CanAlign() {
			return nil, errors.Wrapf(ErrInvalidArgument, "%v data cannot be aligned", c)
		}
		index := slices.IndexFunc(data.rows, func(r Row) bool { return !r.padding })
		if index < 0 {
			return nil, errors.Wrap(ErrFormat, "dataset holds only padding")
		}
		pos, err := c.position(data.rows[index].Date())
		if err != nil {
			return nil, err
		}
		// leading padding rows keep their slots before the first dated row
		lead = ((pos-index)%size + size) % size
	}
	total := lead + data.Len()
	numBars := (total + size - 1) / size
	slots := make([]Row, numBars*size)
	for i := range slots {
		slots[i] = PaddingRow
	}
	copy(slots[lead:], data.rows)
	bars := make([]ProtoBar, numBars)
	for i := range bars {
		bars[i], slots = ProtoBar{rows: slots[:size:size]}, slots[size:]
	}
	return bars, nil
}
