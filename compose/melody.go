package compose

import (
	"github.com/datatune/datatune"
	"github.com/pkg/errors"
)

// melodist generates the melody bars of every stream, section by section.
type melodist struct {
	bars        []datatune.ProtoBar
	bounds      datatune.DataBounds
	scale       datatune.Scale
	factors     []float64 // scaling factor of each stream
	notesPerBar int
	chorusBar   int // index into bars of the chorus hook
}

func (m *melodist) octave(stream int) int {
	if m.bounds.IsPrimary(stream) {
		return primaryOctave
	}
	return secondaryOctave
}

// dataBar maps every row of the proto-bar to a note, one slot per row.
func (m *melodist) dataBar(pb datatune.ProtoBar, stream int) (datatune.Bar, error) {
	primary := m.bounds.IsPrimary(stream)
	slots := make([]datatune.Slot, pb.Len())
	for i, r := range pb.Rows {
		d := r.Datum(stream)
		v, _ := d.Value()
		slots[i] = datatune.ToNote(d, primary, m.scale, m.octave(stream), v*m.factors[stream])
	}
	return datatune.NewBar(slots...)
}

func (m *melodist) generate(section datatune.TuneSection, index, stream int) ([]datatune.Bar, error) {
	if stream < 0 || stream >= len(m.factors) {
		return nil, errors.Wrapf(datatune.ErrInvalidArgument, "no stream %d", stream)
	}
	switch section.Kind {
	case datatune.Intro:
		rest, err := datatune.RestBar(m.notesPerBar)
		if err != nil {
			return nil, err
		}
		return repeat(rest, section.Bars), nil
	case datatune.Verse:
		if section.Bars != len(m.bars) {
			return nil, errors.Wrapf(datatune.ErrStructure, "verse of %d bars for %d bars of data", section.Bars, len(m.bars))
		}
		ret := make([]datatune.Bar, len(m.bars))
		for i, pb := range m.bars {
			b, err := m.dataBar(pb, stream)
			if err != nil {
				return nil, errors.Wrapf(err, "data bar %d", i)
			}
			ret[i] = b
		}
		return ret, nil
	case datatune.Chorus, datatune.Drop:
		hook, err := m.hook(stream)
		if err != nil {
			return nil, err
		}
		if section.Kind == datatune.Drop {
			hook = hook.Map(func(_ int, s datatune.Slot) datatune.Slot { return s.WithVelocity(1.15) })
		}
		return repeat(hook, section.Bars), nil
	case datatune.Breakdown:
		if !m.bounds.IsPrimary(stream) {
			rest, err := datatune.RestBar(m.notesPerBar)
			if err != nil {
				return nil, err
			}
			return repeat(rest, section.Bars), nil
		}
		hook, err := m.hook(stream)
		if err != nil {
			return nil, err
		}
		sparse := hook.Map(func(i int, s datatune.Slot) datatune.Slot {
			if i%2 == 1 {
				return datatune.Rest
			}
			return s
		})
		return repeat(sparse, section.Bars), nil
	case datatune.Outro:
		if len(m.bars) == 0 {
			return nil, errors.Wrap(datatune.ErrInvalidArgument, "outro needs data")
		}
		last, err := m.dataBar(m.bars[len(m.bars)-1], stream)
		if err != nil {
			return nil, err
		}
		ret := make([]datatune.Bar, section.Bars)
		for k := range ret {
			factor := 0.5 / float64(k+1)
			ret[k] = last.Map(func(_ int, s datatune.Slot) datatune.Slot { return s.WithVelocity(factor) })
		}
		return ret, nil
	}
	return nil, errors.Wrapf(datatune.ErrInvalidArgument, "unknown section kind %v", section.Kind)
}

func (m *melodist) hook(stream int) (datatune.Bar, error) {
	if m.chorusBar < 0 || m.chorusBar >= len(m.bars) {
		return datatune.Bar{}, errors.Wrapf(datatune.ErrInvalidArgument, "chorus bar %d of %d", m.chorusBar, len(m.bars))
	}
	return m.dataBar(m.bars[m.chorusBar], stream)
}

func repeat[T any](b T, n int) []T {
	ret := make([]T, n)
	for i := range ret {
		ret[i] = b
	}
	return ret
}
