package midicsv

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/datatune/datatune"
	"github.com/pkg/errors"
)

// tempoTrack is the track number of the tempo track; tune tracks follow it.
const tempoTrack = 1

// WriteText writes the sequence in midicsv form: a header, a tempo track,
// one block per track and the end-of-file marker. The output is exact;
// tools downstream parse it line by line.
func (s EventSequence) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "0, 0, Header, 1, %d, %d\n", len(s.Tracks)+1, s.ClocksPerQuarter)
	fmt.Fprintf(bw, "%d, 0, Start_track\n", tempoTrack)
	fmt.Fprintf(bw, "%d, 0, Tempo, %d\n", tempoTrack, s.MicrosPerQuarter)
	fmt.Fprintf(bw, "%d, 0, Time_signature, 4, 2, 24, 8\n", tempoTrack)
	fmt.Fprintf(bw, "%d, 0, End_track\n", tempoTrack)
	for i, t := range s.Tracks {
		n := tempoTrack + 1 + i
		fmt.Fprintf(bw, "%d, 0, Start_track\n", n)
		for _, e := range t.Events {
			switch e.Kind {
			case ProgramChange:
				fmt.Fprintf(bw, "%d, %d, Program_c, %d, %d\n", n, e.Clock, e.Channel, e.Key)
			case NoteOn:
				fmt.Fprintf(bw, "%d, %d, Note_on_c, %d, %d, %d\n", n, e.Clock, e.Channel, e.Key, e.Velocity)
			case NoteOff:
				fmt.Fprintf(bw, "%d, %d, Note_off_c, %d, %d, 0\n", n, e.Clock, e.Channel, e.Key)
			default:
				return errors.Wrapf(datatune.ErrInvalidArgument, "track %d: unknown event kind %d", n, e.Kind)
			}
		}
		fmt.Fprintf(bw, "%d, %d, End_track\n", n, t.EndClock)
	}
	fmt.Fprint(bw, "0, 0, End_of_file\n")
	return bw.Flush()
}

// Text returns the sequence as midicsv text.
func (s EventSequence) Text() (string, error) {
	var b strings.Builder
	if err := s.WriteText(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Text renders a tune straight to midicsv text.
func Text(t datatune.Tune) (string, error) {
	return FromTune(t).Text()
}

// ParseText reads midicsv text as written by WriteText back into an
// EventSequence. Lines of other record types are rejected.
func ParseText(r io.Reader) (EventSequence, error) {
	var (
		seq     EventSequence
		current *Track
		number  int
		tracks  int // track count declared by the header
		header  bool
		eof     bool
	)
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		if eof {
			return EventSequence{}, errors.Wrapf(datatune.ErrFormat, "line %d: data after End_of_file", line)
		}
		fields := strings.Split(text, ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if len(fields) < 3 {
			return EventSequence{}, errors.Wrapf(datatune.ErrFormat, "line %d: %q has too few fields", line, text)
		}
		nums, err := atois(fields[:2], fields[3:])
		if err != nil {
			return EventSequence{}, errors.Wrapf(datatune.ErrFormat, "line %d: %v", line, err)
		}
		track, clock, args := nums[0], nums[1], nums[2:]
		bad := func(why string) error {
			return errors.Wrapf(datatune.ErrFormat, "line %d: %s in %q", line, why, text)
		}
		kind := fields[2]
		switch kind {
		case "Header":
			if header || len(args) != 3 {
				return EventSequence{}, bad("unexpected header")
			}
			header = true
			tracks, seq.ClocksPerQuarter = args[1], args[2]
			continue
		case "End_of_file":
			eof = true
			continue
		}
		if !header {
			return EventSequence{}, bad("missing header")
		}
		if track == tempoTrack {
			switch kind {
			case "Tempo":
				if len(args) != 1 {
					return EventSequence{}, bad("bad tempo")
				}
				seq.MicrosPerQuarter = args[0]
			case "Start_track", "End_track", "Time_signature":
			default:
				return EventSequence{}, bad("unexpected tempo track record")
			}
			continue
		}
		if kind == "Start_track" {
			if current != nil || track != tempoTrack+1+len(seq.Tracks) {
				return EventSequence{}, bad("unexpected track start")
			}
			number = track
			current = &Track{Setup: datatune.TrackSetup{Volume: datatune.DefaultVolume, Pan: datatune.CentrePan}}
			continue
		}
		if current == nil || track != number {
			return EventSequence{}, bad("record outside its track")
		}
		if n := len(current.Events); n > 0 && clock < current.Events[n-1].Clock {
			return EventSequence{}, bad("clock goes backwards")
		}
		switch kind {
		case "End_track":
			current.EndClock = clock
			seq.Tracks = append(seq.Tracks, *current)
			current = nil
		case "Program_c":
			if len(args) != 2 || !midiRange(args, 15, 127) {
				return EventSequence{}, bad("bad program change")
			}
			current.Setup.Channel, current.Setup.Instrument = uint8(args[0]), uint8(args[1])
			current.Events = append(current.Events, Event{Clock: clock, Kind: ProgramChange, Channel: uint8(args[0]), Key: uint8(args[1])})
		case "Note_on_c", "Note_off_c":
			if len(args) != 3 || !midiRange(args, 15, 127, 127) {
				return EventSequence{}, bad("bad note")
			}
			e := Event{Clock: clock, Kind: NoteOn, Channel: uint8(args[0]), Key: uint8(args[1]), Velocity: uint8(args[2])}
			if kind == "Note_off_c" {
				e.Kind, e.Velocity = NoteOff, 0
			}
			current.Events = append(current.Events, e)
		default:
			return EventSequence{}, bad("unsupported record " + kind)
		}
	}
	if err := sc.Err(); err != nil {
		return EventSequence{}, err
	}
	if !eof || current != nil {
		return EventSequence{}, errors.Wrap(datatune.ErrFormat, "truncated midicsv text")
	}
	if tracks != len(seq.Tracks)+1 {
		return EventSequence{}, errors.Wrapf(datatune.ErrFormat, "header declares %d tracks, text has %d", tracks, len(seq.Tracks)+1)
	}
	return seq, nil
}

func atois(parts ...[]string) ([]int, error) {
	var ret []int
	for _, p := range parts {
		for _, f := range p {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, err
			}
			ret = append(ret, n)
		}
	}
	return ret, nil
}

func midiRange(values []int, limits ...int) bool {
	for i, v := range values {
		if v < 0 || v > limits[i] {
			return false
		}
	}
	return true
}
