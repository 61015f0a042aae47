package datatune

import (
	"slices"

	"github.com/pkg/errors"
)

// Timing shared by every track: 480 clocks per quarter note, 4/4 time.
const (
	ClocksPerQuarter = 480
	BeatsPerBar      = 4
	BarClocks        = BeatsPerBar * ClocksPerQuarter
)

// PercussionChannel is the General MIDI drum channel (channel 10, 0-based 9).
const PercussionChannel = 9

type (
	// TrackSetup is how a track is voiced.
	TrackSetup struct {
		Channel    uint8  // 0-15
		Instrument uint8  // General MIDI program, 0-127
		Volume     uint8  // 0-127
		Pan        uint8  // 0-127, 64 is centre
		Name       string `yaml:",omitempty"`
	}

	// Bar is one bar of a melody track: a fixed number of equally long note
	// slots.
	Bar struct {
		slots []Slot
	}

	// Hit is one note of a support bar. Start and Duration are in clocks
	// from the start of the bar.
	Hit struct {
		Start    int
		Note     uint8
		Velocity uint8
		Duration int
	}

	// SupportBar is one bar of a support track: hits ordered by start.
	SupportBar struct {
		hits []Hit
	}

	// MelodyTrack voices one data stream, one slot per data point.
	MelodyTrack struct {
		Setup       TrackSetup
		notesPerBar int
		bars        []Bar
	}

	// SupportTrack carries percussion or bass that is not tied to one
	// stream.
	SupportTrack struct {
		Setup TrackSetup
		bars  []SupportBar
	}
)

// Defaults for TrackSetup.
const (
	DefaultVolume = 100
	CentrePan     = 64
)

// Validate checks that every part of the setup is in MIDI range.
func (s TrackSetup) Validate() error {
	if s.Channel > 15 {
		return errors.Wrapf(ErrInvalidArgument, "channel %d out of range", s.Channel)
	}
	if s.Instrument > 127 || s.Volume > 127 || s.Pan > 127 {
		return errors.Wrapf(ErrInvalidArgument, "setup %+v out of range", s)
	}
	return nil
}

// NewBar copies slots into a bar.
func NewBar(slots ...Slot) (Bar, error) {
	if len(slots) == 0 {
		return Bar{}, errors.Wrap(ErrInvalidArgument, "bar needs at least one slot")
	}
	if BarClocks%len(slots) != 0 {
		return Bar{}, errors.Wrapf(ErrInvalidArgument, "%d slots do not divide a bar of %d clocks", len(slots), BarClocks)
	}
	return Bar{slots: slices.Clone(slots)}, nil
}

// RestBar returns a bar of n rests.
func RestBar(n int) (Bar, error) {
	return NewBar(make([]Slot, n)...)
}

func (b Bar) Len() int { return len(b.slots) }

// Slot returns the slot at index, Rest if out of range.
func (b Bar) Slot(index int) Slot {
	if index < 0 || index >= len(b.slots) {
		return Rest
	}
	return b.slots[index]
}

// Slots iterates the slots in order.
func (b Bar) Slots(yield func(int, Slot) bool) {
	for i, s := range b.slots {
		if !yield(i, s) {
			return
		}
	}
}

// WithSlot returns a copy of the bar with one slot replaced.
func (b Bar) WithSlot(index int, s Slot) (Bar, error) {
	if index < 0 || index >= len(b.slots) {
		return Bar{}, errors.Wrapf(ErrInvalidArgument, "slot %d out of range 0..%d", index, len(b.slots)-1)
	}
	slots := slices.Clone(b.slots)
	slots[index] = s
	return Bar{slots: slots}, nil
}

// Map returns a copy of the bar with f applied to every slot.
func (b Bar) Map(f func(int, Slot) Slot) Bar {
	slots := make([]Slot, len(b.slots))
	for i, s := range b.slots {
		slots[i] = f(i, s)
	}
	return Bar{slots: slots}
}

// Sounding returns the number of slots that are not rests.
func (b Bar) Sounding() int {
	n := 0
	for _, s := range b.slots {
		if !s.IsRest() {
			n++
		}
	}
	return n
}

// MinHitClocks is the shortest hit: the note-off must come after the
// note-on.
const MinHitClocks = 2

// NewSupportBar sorts a copy of hits by start. Every hit must start inside
// the bar, last at least MinHitClocks and have a valid note and velocity.
// Overlaps are allowed.
func NewSupportBar(hits ...Hit) (SupportBar, error) {
	h := slices.Clone(hits)
	for _, hit := range h {
		if hit.Start < 0 || hit.Start >= BarClocks {
			return SupportBar{}, errors.Wrapf(ErrInvalidArgument, "hit start %d outside bar [0,%d)", hit.Start, BarClocks)
		}
		if hit.Duration < MinHitClocks {
			return SupportBar{}, errors.Wrapf(ErrInvalidArgument, "hit duration %d must be >= %d", hit.Duration, MinHitClocks)
		}
		if hit.Note > 127 || hit.Velocity == 0 || hit.Velocity > 127 {
			return SupportBar{}, errors.Wrapf(ErrInvalidArgument, "hit %+v note or velocity out of range", hit)
		}
	}
	slices.SortStableFunc(h, func(a, b Hit) int { return a.Start - b.Start })
	return SupportBar{hits: h}, nil
}

func (b SupportBar) Len() int { return len(b.hits) }

// Hits iterates the hits in start order.
func (b SupportBar) Hits(yield func(int, Hit) bool) {
	for i, h := range b.hits {
		if !yield(i, h) {
			return
		}
	}
}

// NewMelodyTrack builds a melody track; every bar must have notesPerBar
// slots.
func NewMelodyTrack(setup TrackSetup, notesPerBar int, bars ...Bar) (MelodyTrack, error) {
	if err := setup.Validate(); err != nil {
		return MelodyTrack{}, err
	}
	if notesPerBar <= 0 || BarClocks%notesPerBar != 0 {
		return MelodyTrack{}, errors.Wrapf(ErrInvalidArgument, "bad notes per bar %d", notesPerBar)
	}
	for i, b := range bars {
		if b.Len() != notesPerBar {
			return MelodyTrack{}, errors.Wrapf(ErrStructure, "bar %d has %d slots, track has %d", i, b.Len(), notesPerBar)
		}
	}
	return MelodyTrack{Setup: setup, notesPerBar: notesPerBar, bars: slices.Clone(bars)}, nil
}

func (t MelodyTrack) NotesPerBar() int { return t.notesPerBar }

// NumBars returns the number of bars in the track.
func (t MelodyTrack) NumBars() int { return len(t.bars) }

// Bar returns the bar at index.
func (t MelodyTrack) Bar(index int) Bar { return t.bars[index] }

// Bars iterates the bars in order.
func (t MelodyTrack) Bars(yield func(int, Bar) bool) {
	for i, b := range t.bars {
		if !yield(i, b) {
			return
		}
	}
}

// SlotClocks returns the length of one slot in clocks.
func (t MelodyTrack) SlotClocks() int {
	if t.notesPerBar == 0 {
		return 0
	}
	return BarClocks / t.notesPerBar
}

// NewSupportTrack builds a support track.
func NewSupportTrack(setup TrackSetup, bars ...SupportBar) (SupportTrack, error) {
	if err := setup.Validate(); err != nil {
		return SupportTrack{}, err
	}
	return SupportTrack{Setup: setup, bars: slices.Clone(bars)}, nil
}

// NumBars returns the number of bars in the track.
func (t SupportTrack) NumBars() int { return len(t.bars) }

// Bar returns the bar at index.
func (t SupportTrack) Bar(index int) SupportBar { return t.bars[index] }

// Bars iterates the bars in order.
func (t SupportTrack) Bars(yield func(int, SupportBar) bool) {
	for i, b := range t.bars {
		if !yield(i, b) {
			return
		}
	}
}
