package datatune_test

import (
	"testing"

	"github.com/datatune/datatune"
)

func datum(t *testing.T, line string) datatune.Datum {
	t.Helper()
	r, err := datatune.ParseRow(line)
	if err != nil {
		t.Fatalf("could not parse row: %v", err)
	}
	return r.Datum(0)
}

func TestToNote(t *testing.T) {
	cases := []struct {
		name     string
		line     string
		primary  bool
		position float64
		note     uint8
		velocity uint8
		rest     bool
	}{
		{"root", "2005,a,1,0", true, 0, 48, 100, false},
		{"third", "2005,a,1,2", true, 2, 52, 100, false},
		{"rounds to nearest step", "2005,a,1,2", true, 2.4, 52, 100, false},
		{"next octave", "2005,a,1,7", true, 7, 60, 100, false},
		{"half coverage", "2005,a,0.5,7", true, 7, 60, 70, false},
		{"no coverage", "2005,a,,5", true, 5, 57, 80, false},
		{"coverage above one", "2005,a,3,0", true, 0, 48, 100, false},
		{"secondary is softer", "2005,a,1,0", false, 0, 48, 75, false},
		{"missing value", "2005,a,1,", true, 0, 0, 0, true},
		{"unparseable value", "2005,a,1,lots", true, 0, 0, 0, true},
		{"negative value", "2005,a,1,-1", true, 0, 0, 0, true},
		{"above MIDI range", "2005,a,1,200", true, 200, 0, 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			slot := datatune.ToNote(datum(t, c.line), c.primary, datatune.Major, -1, c.position)
			nv, ok := slot.Note()
			if ok == c.rest {
				t.Fatalf("wrong rest status. got: %v expected: %v", !ok, c.rest)
			}
			if c.rest {
				return
			}
			expected := datatune.NoteAndVelocity{Note: c.note, Velocity: c.velocity}
			if nv != expected {
				t.Fatalf("wrong note. got: %+v expected: %+v", nv, expected)
			}
		})
	}
}

func TestToNoteIsDeterministic(t *testing.T) {
	d := datum(t, "2005,a,0.3,9")
	first := datatune.ToNote(d, false, datatune.MinorPentatonic, 0, 9*0.77)
	for range 10 {
		if got := datatune.ToNote(d, false, datatune.MinorPentatonic, 0, 9*0.77); got != first {
			t.Fatalf("ToNote is not deterministic. got: %v expected: %v", got, first)
		}
	}
}

func TestScalingFactor(t *testing.T) {
	if f := datatune.ScalingFactor(14, datatune.Major, 2); f != 1 {
		t.Fatalf("wrong factor. got: %v expected: %v", f, 1)
	}
	if f := datatune.ScalingFactor(0, datatune.Major, 2); f != 0 {
		t.Fatalf("no positive data should give factor 0, got: %v", f)
	}
}

func TestWithVelocity(t *testing.T) {
	s := datatune.Sounding(datatune.NoteAndVelocity{Note: 60, Velocity: 100})
	nv, _ := s.WithVelocity(0.5).Note()
	if nv.Velocity != 50 {
		t.Fatalf("wrong velocity. got: %v expected: %v", nv.Velocity, 50)
	}
	nv, _ = s.WithVelocity(0.001).Note()
	if nv.Velocity != 1 {
		t.Fatalf("velocity should not drop below 1, got: %v", nv.Velocity)
	}
	if !datatune.Rest.WithVelocity(2).IsRest() {
		t.Fatal("a rest should stay a rest")
	}
	if !datatune.Sounding(datatune.NoteAndVelocity{Note: 60}).IsRest() {
		t.Fatal("zero velocity should be a rest")
	}
}
