package datatune

import (
	"strconv"

	"github.com/pkg/errors"
)

// Cadence is the sampling period of the data. Each cadence carries the
// number of data points that make one bar, and the length of the calendar
// cycle that bars can be aligned to (0 if bars cannot be aligned).
type Cadence int

const (
	Yearly Cadence = iota
	Monthly
	Daily
)

var cadenceInfo = [...]struct {
	name        string
	dateLength  int
	notesPerBar int
	cycle       int
}{
	Yearly:  {"yearly", len("2020"), 4, 0},
	Monthly: {"monthly", len("2020-05"), 12, 12},
	Daily:   {"daily", len("2020-05-01"), 32, 32},
}

func (c Cadence) valid() bool { return c >= 0 && int(c) < len(cadenceInfo) }

func (c Cadence) String() string {
	if !c.valid() {
		return "Cadence(" + strconv.Itoa(int(c)) + ")"
	}
	return cadenceInfo[c].name
}

// NotesPerBar returns the default number of data points in one bar.
func (c Cadence) NotesPerBar() int {
	if !c.valid() {
		return 0
	}
	return cadenceInfo[c].notesPerBar
}

// AlignmentCycle returns the cycle length bars can be aligned to, or 0 when
// the cadence has no meaningful cycle.
func (c Cadence) AlignmentCycle() int {
	if !c.valid() {
		return 0
	}
	return cadenceInfo[c].cycle
}

// CanAlign reports whether bars of this cadence can be calendar aligned.
func (c Cadence) CanAlign() bool { return c.AlignmentCycle() > 0 }

// position returns where date falls in the alignment cycle: month-of-year
// for Monthly, day-of-month for Daily, both 0-based.
func (c Cadence) position(date string) (int, error) {
	var field string
	switch c {
	case Monthly:
		if len(date) != cadenceInfo[Monthly].dateLength {
			return 0, errors.Wrapf(ErrFormat, "%q is not a monthly date", date)
		}
		field = date[5:7]
	case Daily:
		if len(date) != cadenceInfo[Daily].dateLength {
			return 0, errors.Wrapf(ErrFormat, "%q is not a daily date", date)
		}
		field = date[8:10]
	default:
		return 0, errors.Wrapf(ErrInvalidArgument, "%v data has no alignment cycle", c)
	}
	n, err := strconv.Atoi(field)
	if err != nil || n < 1 || n > c.AlignmentCycle() {
		return 0, errors.Wrapf(ErrFormat, "bad calendar position in %q", date)
	}
	return n - 1, nil
}

// DetectCadence looks at the length of the date in the first row: 4 is
// yearly, 7 monthly and 10 daily. An empty dataset is reported as Yearly.
func DetectCadence(data Dataset) (Cadence, error) {
	first, ok := data.First()
	if !ok {
		return Yearly, nil
	}
	date := first.Date()
	for c := range cadenceInfo {
		if cadenceInfo[c].dateLength == len(date) {
			return Cadence(c), nil
		}
	}
	return Yearly, errors.Wrapf(ErrFormat, "cannot detect cadence from date %q", date)
}

// ShouldAlign is the alignment policy: yearly data is never aligned, monthly
// and daily data are aligned whenever the tune is produced at all.
func ShouldAlign(c Cadence, level ProductionLevel) bool {
	return c.CanAlign() && level > NoProduce
}
