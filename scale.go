package datatune

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Scale is an ordered list of semitone steps that add up to one octave. It
// defines which pitches a scale position can land on.
type Scale struct {
	name  string
	steps []int
}

var (
	Major           = mustScale("major", 2, 2, 1, 2, 2, 2, 1)
	NaturalMinor    = mustScale("minor", 2, 1, 2, 2, 1, 2, 2)
	MajorPentatonic = mustScale("major-pentatonic", 2, 2, 3, 2, 3)
	MinorPentatonic = mustScale("minor-pentatonic", 3, 2, 2, 3, 2)
)

// NewScale validates and copies the steps: every step must be > 0 and the
// steps must add up to 12.
func NewScale(name string, steps ...int) (Scale, error) {
	if len(steps) == 0 {
		return Scale{}, errors.Wrap(ErrInvalidArgument, "scale needs at least one step")
	}
	sum := 0
	for _, s := range steps {
		if s <= 0 {
			return Scale{}, errors.Wrapf(ErrInvalidArgument, "scale step %d must be > 0", s)
		}
		sum += s
	}
	if sum != 12 {
		return Scale{}, errors.Wrapf(ErrInvalidArgument, "scale steps add up to %d, not 12", sum)
	}
	st := make([]int, len(steps))
	copy(st, steps)
	return Scale{name: name, steps: st}, nil
}

func mustScale(name string, steps ...int) Scale {
	s, err := NewScale(name, steps...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Scale) Name() string { return s.name }

// Len returns the number of steps in one octave.
func (s Scale) Len() int { return len(s.steps) }

// Steps returns a copy of the step sizes.
func (s Scale) Steps() []int {
	ret := make([]int, len(s.steps))
	copy(ret, s.steps)
	return ret
}

// Semitones returns the semitone offset from the root of the 0-based scale
// step n, which may span several octaves. Negative n counts down.
func (s Scale) Semitones(n int) int {
	l := len(s.steps)
	if l == 0 {
		return 0
	}
	octave := n / l
	i := n % l
	if i < 0 {
		i += l
		octave--
	}
	semis := 12 * octave
	for _, st := range s.steps[:i] {
		semis += st
	}
	return semis
}

func (s Scale) String() string {
	parts := make([]string, len(s.steps))
	for i, st := range s.steps {
		parts[i] = strconv.Itoa(st)
	}
	return s.name + "[" + strings.Join(parts, " ") + "]"
}
