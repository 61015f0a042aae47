package datatune

import (
	"slices"
	"time"

	"github.com/pkg/errors"
)

// Tune is a complete piece: melody tracks (one per data stream), support
// tracks and, optionally, the section plan the tracks were built from.
type Tune struct {
	Name    string
	melody  []MelodyTrack
	support []SupportTrack
	plan    TuneSectionPlan
}

// NewTune assembles a tune and validates it with ValidateTune. Pass a zero
// TuneSectionPlan when the tune has no plan.
func NewTune(name string, plan TuneSectionPlan, melody []MelodyTrack, support []SupportTrack) (Tune, error) {
	t := Tune{
		Name:    name,
		melody:  slices.Clone(melody),
		support: slices.Clone(support),
		plan:    plan,
	}
	if err := ValidateTune(t); err != nil {
		return Tune{}, err
	}
	return t, nil
}

// Plan returns the section plan and whether the tune has one.
func (t Tune) Plan() (TuneSectionPlan, bool) { return t.plan, t.plan.Len() > 0 }

func (t Tune) NumMelodyTracks() int  { return len(t.melody) }
func (t Tune) NumSupportTracks() int { return len(t.support) }

// MelodyTrack returns the melody track at index.
func (t Tune) MelodyTrack(index int) MelodyTrack { return t.melody[index] }

// SupportTrack returns the support track at index.
func (t Tune) SupportTrack(index int) SupportTrack { return t.support[index] }

// MelodyTracks iterates the melody tracks in order.
func (t Tune) MelodyTracks(yield func(int, MelodyTrack) bool) {
	for i, m := range t.melody {
		if !yield(i, m) {
			return
		}
	}
}

// SupportTracks iterates the support tracks in order.
func (t Tune) SupportTracks(yield func(int, SupportTrack) bool) {
	for i, s := range t.support {
		if !yield(i, s) {
			return
		}
	}
}

// NumBars returns the length of the tune in bars: the plan's total, or the
// longest track if that is longer.
func (t Tune) NumBars() int {
	n := t.plan.TotalBars()
	for _, m := range t.melody {
		n = max(n, m.NumBars())
	}
	for _, s := range t.support {
		n = max(n, s.NumBars())
	}
	return n
}

// Duration returns the playing time at the default tempo of 120 BPM.
func (t Tune) Duration() time.Duration {
	return time.Duration(t.NumBars()*BeatsPerBar) * 500 * time.Millisecond
}

// ValidateTune checks the structural invariants across tracks: with a plan,
// every melody and support track is exactly as long as the plan; every bar
// of a melody track has the track's number of slots.
func ValidateTune(t Tune) error {
	total := t.plan.TotalBars()
	hasPlan := t.plan.Len() > 0
	for i, m := range t.melody {
		if hasPlan && m.NumBars() != total {
			return errors.Wrapf(ErrStructure, "melody track %d has %d bars, plan has %d", i, m.NumBars(), total)
		}
		for j, b := range m.bars {
			if b.Len() != m.notesPerBar {
				return errors.Wrapf(ErrStructure, "melody track %d bar %d has %d slots, expected %d", i, j, b.Len(), m.notesPerBar)
			}
		}
	}
	for i, s := range t.support {
		if hasPlan && s.NumBars() != total {
			return errors.Wrapf(ErrStructure, "support track %d has %d bars, plan has %d", i, s.NumBars(), total)
		}
	}
	return nil
}
