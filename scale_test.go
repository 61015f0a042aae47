package datatune_test

import (
	"testing"

	"github.com/datatune/datatune"
	"github.com/pkg/errors"
)

func TestSemitones(t *testing.T) {
	cases := []struct {
		scale    datatune.Scale
		step     int
		expected int
	}{
		{datatune.Major, 0, 0},
		{datatune.Major, 2, 4},
		{datatune.Major, 6, 11},
		{datatune.Major, 7, 12},
		{datatune.Major, 12, 21},
		{datatune.Major, -1, -1},
		{datatune.MinorPentatonic, 5, 12},
		{datatune.MinorPentatonic, 1, 3},
		{datatune.NaturalMinor, 2, 3},
	}
	for _, c := range cases {
		if got := c.scale.Semitones(c.step); got != c.expected {
			t.Fatalf("%v step %d. got: %v expected: %v", c.scale, c.step, got, c.expected)
		}
	}
}

func TestNewScale(t *testing.T) {
	for _, steps := range [][]int{nil, {2, 2}, {0, 12}, {13, -1}} {
		if _, err := datatune.NewScale("bad", steps...); !errors.Is(err, datatune.ErrInvalidArgument) {
			t.Fatalf("steps %v should be rejected, got: %v", steps, err)
		}
	}
	s, err := datatune.NewScale("whole", 2, 2, 2, 2, 2, 2)
	if err != nil {
		t.Fatalf("whole tone scale rejected: %v", err)
	}
	if s.Len() != 6 || s.Name() != "whole" {
		t.Fatalf("wrong scale %v", s)
	}
	steps := s.Steps()
	steps[0] = 5
	if s.Steps()[0] != 2 {
		t.Fatal("Steps should return a copy")
	}
}
