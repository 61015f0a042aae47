// Package midicsv renders a tune as a sequence of timed MIDI events, and
// writes that sequence as line oriented midicsv text or as a standard MIDI
// file. Both outputs are built from the same EventSequence, so they always
// agree on timing.
package midicsv

import (
	"slices"

	"github.com/datatune/datatune"
)

// Fixed timing of every rendered tune: 480 clocks per quarter note and 120
// BPM in 4/4.
const (
	ClocksPerQuarter = datatune.ClocksPerQuarter
	MicrosPerQuarter = 500000
)

type (
	// EventKind is the kind of a channel event.
	EventKind int

	// Event is one channel event at an absolute clock. For ProgramChange,
	// Key holds the program and Velocity is unused.
	Event struct {
		Clock    int
		Kind     EventKind
		Channel  uint8
		Key      uint8
		Velocity uint8
	}

	// Track is the events of one tune track, in clock order, and the clock
	// at which the track ends.
	Track struct {
		Setup    datatune.TrackSetup
		Events   []Event
		EndClock int
	}

	// EventSequence is a whole tune as events. The tempo track is implied
	// by ClocksPerQuarter and MicrosPerQuarter and is not part of Tracks.
	EventSequence struct {
		ClocksPerQuarter int
		MicrosPerQuarter int
		Tracks           []Track
	}
)

const (
	ProgramChange EventKind = iota
	NoteOff
	NoteOn
)

// FromTune renders melody tracks first, then support tracks. Each track
// starts with a program change at clock 0. A melody slot of a bar of n
// slots lasts BarClocks/n clocks; its note-off comes one clock before the
// next slot starts so repeated notes never merge. Rests emit nothing.
func FromTune(t datatune.Tune) EventSequence {
	seq := EventSequence{ClocksPerQuarter: ClocksPerQuarter, MicrosPerQuarter: MicrosPerQuarter}
	for _, m := range t.MelodyTracks {
		seq.Tracks = append(seq.Tracks, melodyEvents(m))
	}
	for _, s := range t.SupportTracks {
		seq.Tracks = append(seq.Tracks, supportEvents(s))
	}
	return seq
}

func melodyEvents(m datatune.MelodyTrack) Track {
	ch := m.Setup.Channel
	events := []Event{{Clock: 0, Kind: ProgramChange, Channel: ch, Key: m.Setup.Instrument}}
	slotClocks := m.SlotClocks()
	clock := 0
	for _, bar := range m.Bars {
		for _, slot := range bar.Slots {
			if nv, ok := slot.Note(); ok {
				events = append(events,
					Event{Clock: clock, Kind: NoteOn, Channel: ch, Key: nv.Note, Velocity: nv.Velocity},
					Event{Clock: clock + slotClocks - 1, Kind: NoteOff, Channel: ch, Key: nv.Note})
			}
			clock += slotClocks
		}
	}
	return Track{Setup: m.Setup, Events: events, EndClock: m.NumBars() * datatune.BarClocks}
}

func supportEvents(s datatune.SupportTrack) Track {
	ch := s.Setup.Channel
	events := []Event{{Clock: 0, Kind: ProgramChange, Channel: ch, Key: s.Setup.Instrument}}
	end := s.NumBars() * datatune.BarClocks
	for b, bar := range s.Bars {
		barStart := b * datatune.BarClocks
		for _, h := range bar.Hits {
			on := barStart + h.Start
			off := on + h.Duration - 1
			events = append(events,
				Event{Clock: on, Kind: NoteOn, Channel: ch, Key: h.Note, Velocity: h.Velocity},
				Event{Clock: off, Kind: NoteOff, Channel: ch, Key: h.Note})
			end = max(end, off)
		}
	}
	// at equal clocks: program changes, then note-offs, then note-ons
	slices.SortStableFunc(events, func(a, b Event) int {
		if a.Clock != b.Clock {
			return a.Clock - b.Clock
		}
		return int(a.Kind) - int(b.Kind)
	})
	return Track{Setup: s.Setup, Events: events, EndClock: end}
}

// NumNotes returns the number of note-on events over all tracks.
func (s EventSequence) NumNotes() int {
	n := 0
	for _, t := range s.Tracks {
		for _, e := range t.Events {
			if e.Kind == NoteOn {
				n++
			}
		}
	}
	return n
}

// EndClock returns the end of the longest track.
func (s EventSequence) EndClock() int {
	end := 0
	for _, t := range s.Tracks {
		end = max(end, t.EndClock)
	}
	return end
}
