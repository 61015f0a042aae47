package datatune

import "math"

// RootNote is the MIDI note a scale position of 0 maps to at octave 0
// (middle C).
const RootNote = 60

// Velocity limits for generated notes.
const (
	MinVelocity     = 40
	MaxVelocity     = 100
	DefaultVelocity = 80
)

type (
	// NoteAndVelocity is a MIDI note number and velocity, each in [0,127].
	NoteAndVelocity struct {
		Note     uint8
		Velocity uint8
	}

	// Slot is one note position of a melody bar: a sounding note or a rest.
	// The zero Slot is a rest.
	Slot struct {
		nv       NoteAndVelocity
		sounding bool
	}
)

// Rest is the silent slot.
var Rest = Slot{}

// Sounding returns a slot playing nv. A zero velocity is a rest.
func Sounding(nv NoteAndVelocity) Slot {
	if nv.Note > 127 || nv.Velocity > 127 || nv.Velocity == 0 {
		return Rest
	}
	return Slot{nv: nv, sounding: true}
}

// Note returns the note and whether the slot sounds at all.
func (s Slot) Note() (NoteAndVelocity, bool) { return s.nv, s.sounding }

func (s Slot) IsRest() bool { return !s.sounding }

// WithVelocity returns a copy of the slot with the velocity scaled by
// factor, never dropping below 1. Rests stay rests.
func (s Slot) WithVelocity(factor float64) Slot {
	if !s.sounding {
		return s
	}
	v := int(math.Round(float64(s.nv.Velocity) * factor))
	return Sounding(NoteAndVelocity{Note: s.nv.Note, Velocity: uint8(max(1, min(v, 127)))})
}

// ScalingFactor converts a raw data value into a scale position so that
// maxVal lands on the top of a range spanning octaves octaves of s. It is 0
// when there is no positive data.
func ScalingFactor(maxVal float64, s Scale, octaves int) float64 {
	if maxVal <= 0 || math.IsNaN(maxVal) || math.IsInf(maxVal, 0) || octaves <= 0 {
		return 0
	}
	return float64(octaves*s.Len()) / maxVal
}

// ToNote maps a datum to a note. position is the real-valued number of scale
// steps above the root, normally the value times ScalingFactor; it is rounded
// to the nearest step. The note is RootNote + 12*octave + the semitones of
// that step. Missing and negative values are rests, as are notes that land
// outside [0,127]. Velocity follows coverage when known; secondary streams
// play a little softer than the primary one.
func ToNote(d Datum, primary bool, s Scale, octave int, position float64) Slot {
	v, ok := d.Value()
	if !ok || v < 0 || s.Len() == 0 {
		return Rest
	}
	if math.IsNaN(position) || position < 0 || position > math.MaxInt32 {
		return Rest
	}
	note := RootNote + 12*octave + s.Semitones(int(math.Round(position)))
	if note < 0 || note > 127 {
		return Rest
	}
	vel := DefaultVelocity
	if c, ok := d.Coverage(); ok {
		vel = MinVelocity + int(math.Round(float64(MaxVelocity-MinVelocity)*min(c, 1)))
	}
	if !primary {
		vel = vel * 3 / 4
	}
	return Sounding(NoteAndVelocity{Note: uint8(note), Velocity: uint8(max(1, min(vel, 127)))})
}
