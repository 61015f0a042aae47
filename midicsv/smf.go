package midicsv

import (
	"io"
	"math"

	"github.com/datatune/datatune"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// General MIDI controllers written at the start of every track.
const (
	volumeController = 7
	panController    = 10
)

// SMF builds a format 1 standard MIDI file: a tempo track followed by one
// track per sequence track. Track names, volume and pan go in at clock 0
// ahead of the program change.
func (s EventSequence) SMF() (*smf.SMF, error) {
	if s.ClocksPerQuarter <= 0 || s.ClocksPerQuarter > math.MaxInt16 || s.MicrosPerQuarter <= 0 {
		return nil, errors.Wrapf(datatune.ErrInvalidArgument, "bad timing %d clocks, %d us per quarter", s.ClocksPerQuarter, s.MicrosPerQuarter)
	}
	out := smf.New()
	out.TimeFormat = smf.MetricTicks(s.ClocksPerQuarter)
	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(60e6/float64(s.MicrosPerQuarter)))
	tempo.Add(0, smf.MetaMeter(4, 4))
	tempo.Close(0)
	if err := out.Add(tempo); err != nil {
		return nil, errors.Wrap(err, "adding tempo track")
	}
	for i, t := range s.Tracks {
		var tr smf.Track
		ch := t.Setup.Channel
		if t.Setup.Name != "" {
			tr.Add(0, smf.MetaTrackSequenceName(t.Setup.Name))
		}
		tr.Add(0, midi.ControlChange(ch, volumeController, t.Setup.Volume))
		tr.Add(0, midi.ControlChange(ch, panController, t.Setup.Pan))
		last := 0
		for _, e := range t.Events {
			if e.Clock < last {
				return nil, errors.Wrapf(datatune.ErrStructure, "track %d: event at %d after %d", i, e.Clock, last)
			}
			delta := uint32(e.Clock - last)
			last = e.Clock
			switch e.Kind {
			case ProgramChange:
				tr.Add(delta, midi.ProgramChange(e.Channel, e.Key))
			case NoteOn:
				tr.Add(delta, midi.NoteOn(e.Channel, e.Key, e.Velocity))
			case NoteOff:
				tr.Add(delta, midi.NoteOff(e.Channel, e.Key))
			default:
				return nil, errors.Wrapf(datatune.ErrInvalidArgument, "track %d: unknown event kind %d", i, e.Kind)
			}
		}
		if t.EndClock < last {
			return nil, errors.Wrapf(datatune.ErrStructure, "track %d ends at %d before its last event at %d", i, t.EndClock, last)
		}
		tr.Close(uint32(t.EndClock - last))
		if err := out.Add(tr); err != nil {
			return nil, errors.Wrapf(err, "adding track %d", i)
		}
	}
	return out, nil
}

// WriteSMF writes the sequence as a standard MIDI file.
func (s EventSequence) WriteSMF(w io.Writer) error {
	f, err := s.SMF()
	if err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing MIDI file")
	}
	return nil
}

// FromSMF reads back a file written by SMF. The first track is taken as the
// tempo track; note and program events of the others become tracks, and
// controller and name events restore the track setup.
func FromSMF(f *smf.SMF) (EventSequence, error) {
	ticks, ok := f.TimeFormat.(smf.MetricTicks)
	if !ok {
		return EventSequence{}, errors.Wrap(datatune.ErrFormat, "MIDI file does not use metric ticks")
	}
	if len(f.Tracks) == 0 {
		return EventSequence{}, errors.Wrap(datatune.ErrFormat, "MIDI file has no tracks")
	}
	seq := EventSequence{ClocksPerQuarter: int(ticks), MicrosPerQuarter: MicrosPerQuarter}
	for _, ev := range f.Tracks[0] {
		var bpm float64
		if ev.Message.GetMetaTempo(&bpm) && bpm > 0 {
			seq.MicrosPerQuarter = int(math.Round(60e6 / bpm))
		}
	}
	for _, tr := range f.Tracks[1:] {
		t := Track{Setup: datatune.TrackSetup{Volume: datatune.DefaultVolume, Pan: datatune.CentrePan}}
		clock := 0
		for _, ev := range tr {
			clock += int(ev.Delta)
			var name string
			if ev.Message.GetMetaTrackName(&name) {
				t.Setup.Name = name
				continue
			}
			var ch, key, vel, ctrl, val, prog uint8
			msg := midi.Message(ev.Message)
			switch {
			case msg.GetNoteOn(&ch, &key, &vel):
				t.Events = append(t.Events, Event{Clock: clock, Kind: NoteOn, Channel: ch, Key: key, Velocity: vel})
			case msg.GetNoteOff(&ch, &key, &vel):
				t.Events = append(t.Events, Event{Clock: clock, Kind: NoteOff, Channel: ch, Key: key})
			case msg.GetProgramChange(&ch, &prog):
				t.Setup.Channel, t.Setup.Instrument = ch, prog
				t.Events = append(t.Events, Event{Clock: clock, Kind: ProgramChange, Channel: ch, Key: prog})
			case msg.GetControlChange(&ch, &ctrl, &val):
				switch ctrl {
				case volumeController:
					t.Setup.Volume = val
				case panController:
					t.Setup.Pan = val
				}
			}
		}
		t.EndClock = clock
		seq.Tracks = append(seq.Tracks, t)
	}
	return seq, nil
}

// ReadSMF parses a standard MIDI file and converts it with FromSMF.
func ReadSMF(r io.Reader) (EventSequence, error) {
	f, err := smf.ReadFrom(r)
	if err != nil {
		return EventSequence{}, errors.Wrapf(datatune.ErrFormat, "reading MIDI file: %v", err)
	}
	return FromSMF(f)
}
