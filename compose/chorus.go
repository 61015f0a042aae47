package compose

import (
	"strconv"

	"github.com/datatune/datatune"
	"github.com/pkg/errors"
)

// ChorusPolicy selects the proto-bar a chorus repeats as its hook. The set
// is closed; only some policies have an algorithm behind them.
type ChorusPolicy int

const (
	// FirstDataBar takes the first bar with any data in the stream.
	FirstDataBar ChorusPolicy = iota
	// FirstFullDataBar takes the first bar with data in every slot, or the
	// first bar with any data if no bar is full.
	FirstFullDataBar
	// FirstFullestDataBar takes the bar with the most data, the earliest on
	// ties.
	FirstFullestDataBar
	// SyntheticRepresentativeBar would build a bar from per-slot means or
	// percentiles. Not implemented.
	SyntheticRepresentativeBar
	// SyntheticRepresentativeBarWithCounterpoint would add a second voice to
	// SyntheticRepresentativeBar. Not implemented.
	SyntheticRepresentativeBarWithCounterpoint
)

// ImplementedChorusPolicies are the policies RepresentativeBar can run.
var ImplementedChorusPolicies = []ChorusPolicy{FirstDataBar, FirstFullDataBar, FirstFullestDataBar}

var chorusPolicyNames = [...]string{
	"first-data-bar",
	"first-full-data-bar",
	"first-fullest-data-bar",
	"synthetic-representative-bar",
	"synthetic-representative-bar-with-counterpoint",
}

func (c ChorusPolicy) String() string {
	if c < 0 || int(c) >= len(chorusPolicyNames) {
		return "ChorusPolicy(" + strconv.Itoa(int(c)) + ")"
	}
	return chorusPolicyNames[c]
}

// RepresentativeBar returns the index of the proto-bar the policy picks for
// the 0-based stream. When the stream has no data at all it returns bar 0.
func RepresentativeBar(policy ChorusPolicy, bars []datatune.ProtoBar, stream int) (int, error) {
	if len(bars) == 0 {
		return 0, errors.Wrap(datatune.ErrInvalidArgument, "no proto-bars to choose a chorus from")
	}
	switch policy {
	case FirstDataBar:
		return max(0, firstWith(bars, stream, func(p datatune.ProtoBar, n int) bool { return n > 0 })), nil
	case FirstFullDataBar:
		if i := firstWith(bars, stream, func(p datatune.ProtoBar, n int) bool { return n == p.Len() }); i >= 0 {
			return i, nil
		}
		return max(0, firstWith(bars, stream, func(p datatune.ProtoBar, n int) bool { return n > 0 })), nil
	case FirstFullestDataBar:
		best, bestN := 0, 0
		for i, b := range bars {
			if n := b.Filled(stream); n > bestN {
				best, bestN = i, n
			}
		}
		return best, nil
	case SyntheticRepresentativeBar, SyntheticRepresentativeBarWithCounterpoint:
		return 0, errors.Wrapf(datatune.ErrUnimplemented, "chorus policy %v", policy)
	}
	return 0, errors.Wrapf(datatune.ErrInvalidArgument, "unknown chorus policy %d", int(policy))
}

// firstWith returns the first bar index where ok holds, -1 for none.
func firstWith(bars []datatune.ProtoBar, stream int, ok func(datatune.ProtoBar, int) bool) int {
	for i, b := range bars {
		if ok(b, b.Filled(stream)) {
			return i
		}
	}
	return -1
}
