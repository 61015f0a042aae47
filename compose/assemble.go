// Package compose turns a dataset into a Tune: it plans the sections of the
// tune, generates a melody track per data stream and support tracks for
// percussion and bass, and checks that everything lines up.
package compose

import (
	"github.com/datatune/datatune"
	"github.com/pkg/errors"
)

type (
	// MelodyGenerator returns exactly section.Bars bars for one 0-based
	// stream of the section at index in the plan.
	MelodyGenerator func(section datatune.TuneSection, index, stream int) ([]datatune.Bar, error)

	// SupportGenerator returns exactly section.Bars bars for the section at
	// index in the plan. It depends on the section only, never on a stream.
	SupportGenerator func(section datatune.TuneSection, index int) ([]datatune.SupportBar, error)

	// MelodyVoice is one melody track to assemble: which stream it voices
	// and how.
	MelodyVoice struct {
		Stream int
		Setup  datatune.TrackSetup
	}

	// SupportVoice is one support track to assemble.
	SupportVoice struct {
		Setup     datatune.TrackSetup
		Generator SupportGenerator
	}
)

// Assemble walks the plan in order, asking melody for the bars of every
// (section, voice) pair and every support voice for the bars of every
// section, and concatenates them into tracks. A generator returning the
// wrong number of bars fails the whole assembly.
func Assemble(plan datatune.TuneSectionPlan, notesPerBar int, voices []MelodyVoice, melody MelodyGenerator, support []SupportVoice) ([]datatune.MelodyTrack, []datatune.SupportTrack, error) {
	if plan.Len() == 0 {
		return nil, nil, errors.Wrap(datatune.ErrInvalidArgument, "cannot assemble without a section plan")
	}
	melodyBars := make([][]datatune.Bar, len(voices))
	supportBars := make([][]datatune.SupportBar, len(support))
	for i, section := range plan.Sections {
		for v, voice := range voices {
			bars, err := melody(section, i, voice.Stream)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "%v section %d, stream %d", section.Kind, i, voice.Stream)
			}
			if len(bars) != section.Bars {
				return nil, nil, errors.Wrapf(datatune.ErrStructure, "%v section %d, stream %d: generated %d bars, expected %d", section.Kind, i, voice.Stream, len(bars), section.Bars)
			}
			melodyBars[v] = append(melodyBars[v], bars...)
		}
		for s, voice := range support {
			bars, err := voice.Generator(section, i)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "%v section %d, %s", section.Kind, i, voice.Setup.Name)
			}
			if len(bars) != section.Bars {
				return nil, nil, errors.Wrapf(datatune.ErrStructure, "%v section %d, %s: generated %d bars, expected %d", section.Kind, i, voice.Setup.Name, len(bars), section.Bars)
			}
			supportBars[s] = append(supportBars[s], bars...)
		}
	}
	melodyTracks := make([]datatune.MelodyTrack, len(voices))
	for v, voice := range voices {
		t, err := datatune.NewMelodyTrack(voice.Setup, notesPerBar, melodyBars[v]...)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "melody track for stream %d", voice.Stream)
		}
		melodyTracks[v] = t
	}
	supportTracks := make([]datatune.SupportTrack, len(support))
	for s, voice := range support {
		t, err := datatune.NewSupportTrack(voice.Setup, supportBars[s]...)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "support track %s", voice.Setup.Name)
		}
		supportTracks[s] = t
	}
	return melodyTracks, supportTracks, nil
}
