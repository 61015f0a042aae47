package main

import (
	"github.com/datatune/datatune"
	"github.com/datatune/datatune/compose"
)

type (
	tuneDoc struct {
		Name     string                 `yaml:"name"`
		Params   datatune.Params        `yaml:"params"`
		Cadence  string                 `yaml:"cadence"`
		Aligned  bool                   `yaml:"aligned,omitempty"`
		Chorus   string                 `yaml:"chorus"`
		Scale    string                 `yaml:"scale"`
		Sections []datatune.TuneSection `yaml:"sections"`
		Melody   []melodyDoc            `yaml:"melody"`
		Support  []supportDoc           `yaml:"support,omitempty"`
	}

	// melodyDoc lists the note of every slot, -1 for rests.
	melodyDoc struct {
		Setup datatune.TrackSetup `yaml:",inline"`
		Bars  [][]int             `yaml:"bars,flow"`
	}

	supportDoc struct {
		Setup datatune.TrackSetup `yaml:",inline"`
		Bars  [][]datatune.Hit    `yaml:"bars"`
	}
)

func dumpTune(c compose.Composition) tuneDoc {
	doc := tuneDoc{
		Name:    c.Tune.Name,
		Params:  c.Params,
		Cadence: c.Cadence.String(),
		Aligned: c.Aligned,
		Chorus:  c.ChorusPolicy.String(),
		Scale:   c.Scale.String(),
	}
	if plan, ok := c.Tune.Plan(); ok {
		for _, s := range plan.Sections {
			doc.Sections = append(doc.Sections, s)
		}
	}
	for _, m := range c.Tune.MelodyTracks {
		md := melodyDoc{Setup: m.Setup}
		for _, b := range m.Bars {
			notes := make([]int, 0, b.Len())
			for _, s := range b.Slots {
				if nv, ok := s.Note(); ok {
					notes = append(notes, int(nv.Note))
				} else {
					notes = append(notes, -1)
				}
			}
			md.Bars = append(md.Bars, notes)
		}
		doc.Melody = append(doc.Melody, md)
	}
	for _, t := range c.Tune.SupportTracks {
		sd := supportDoc{Setup: t.Setup}
		for _, b := range t.Bars {
			var hits []datatune.Hit
			for _, h := range b.Hits {
				hits = append(hits, h)
			}
			sd.Bars = append(sd.Bars, hits)
		}
		doc.Support = append(doc.Support, sd)
	}
	return doc
}
