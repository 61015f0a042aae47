package compose

import (
	"github.com/datatune/datatune"
	"github.com/datatune/datatune/progression"
)

const (
	quarter   = datatune.ClocksPerQuarter
	eighth    = quarter / 2
	sixteenth = quarter / 4
)

// drummer generates the percussion track. Patterns depend only on the
// section kind and the production level.
type drummer struct {
	level datatune.ProductionLevel
	seed  int64
}

var (
	fourOnTheFloor = []datatune.Hit{
		{Start: 0, Note: kick, Velocity: 100, Duration: sixteenth},
		{Start: quarter, Note: kick, Velocity: 96, Duration: sixteenth},
		{Start: 2 * quarter, Note: kick, Velocity: 100, Duration: sixteenth},
		{Start: 3 * quarter, Note: kick, Velocity: 96, Duration: sixteenth},
	}
	backbeat = []datatune.Hit{
		{Start: quarter, Note: handClap, Velocity: 90, Duration: eighth},
		{Start: 3 * quarter, Note: handClap, Velocity: 90, Duration: eighth},
	}
	// hatPatterns are the hi-hat patterns to pick from, preferred first.
	hatPatterns = [][]datatune.Hit{
		offbeats(closedHat, 64, sixteenth),
		offbeats(openHat, 56, eighth),
		eighths(closedHat, 60, sixteenth),
	}
)

func offbeats(note, velocity uint8, duration int) []datatune.Hit {
	ret := make([]datatune.Hit, datatune.BeatsPerBar)
	for i := range ret {
		ret[i] = datatune.Hit{Start: i*quarter + eighth, Note: note, Velocity: velocity, Duration: duration}
	}
	return ret
}

func eighths(note, velocity uint8, duration int) []datatune.Hit {
	ret := make([]datatune.Hit, 2*datatune.BeatsPerBar)
	for i := range ret {
		ret[i] = datatune.Hit{Start: i * eighth, Note: note, Velocity: velocity, Duration: duration}
	}
	return ret
}

// fill replaces the last beat of a bar with four sixteenth snares.
func fill(hits []datatune.Hit) []datatune.Hit {
	var ret []datatune.Hit
	for _, h := range hits {
		if h.Start < 3*quarter {
			ret = append(ret, h)
		}
	}
	for i := range 4 {
		ret = append(ret, datatune.Hit{Start: 3*quarter + i*sixteenth, Note: snare, Velocity: uint8(70 + 10*i), Duration: sixteenth})
	}
	return ret
}

func (d drummer) generate(section datatune.TuneSection, index int) ([]datatune.SupportBar, error) {
	var hits, first []datatune.Hit
	switch d.level {
	case datatune.FullProduce:
		hats, err := progression.PickOne(progression.Group{TuneSeed: d.seed, ID: groupHatPattern}, progression.Favoured, hatPatterns, index)
		if err != nil {
			return nil, err
		}
		switch section.Kind {
		case datatune.Intro:
			hits = fourOnTheFloor
		case datatune.Verse:
			hits = concat(fourOnTheFloor, hats)
		case datatune.Chorus, datatune.Drop:
			hits = concat(fourOnTheFloor, hats, backbeat)
			first = []datatune.Hit{{Start: 0, Note: crash, Velocity: 100, Duration: quarter}}
		case datatune.Breakdown:
			hits = hats
		case datatune.Outro:
			hits = fourOnTheFloor[:1]
		}
	case datatune.GentleProduce:
		switch section.Kind {
		case datatune.Chorus:
			hits = []datatune.Hit{{Start: 0, Note: kick, Velocity: 70, Duration: sixteenth}}
		case datatune.Outro:
			hits = []datatune.Hit{{Start: 0, Note: kick, Velocity: 60, Duration: sixteenth}}
		}
	}
	withFill := d.level == datatune.FullProduce && len(hits) > 0 && section.Kind != datatune.Outro &&
		progression.Chance(progression.Group{TuneSeed: d.seed, ID: groupDrumFill}, 0.5, index)
	ret := make([]datatune.SupportBar, section.Bars)
	for i := range ret {
		h := hits
		if i == 0 {
			h = concat(first, h)
		}
		if withFill && i == section.Bars-1 {
			h = fill(h)
		}
		b, err := datatune.NewSupportBar(h...)
		if err != nil {
			return nil, err
		}
		ret[i] = b
	}
	return ret, nil
}

// bassist plays the root of each bar under the data sections of a fully
// produced tune: the mean of the main stream over the bar, mapped like a
// melody note two octaves below it.
type bassist struct {
	bars      []datatune.ProtoBar
	chorusBar int
	stream    int // 0-based main stream, -1 when there is no data
	scale     datatune.Scale
	factor    float64
	seed      int64
}

const (
	bassOctave   = primaryOctave - 2
	bassVelocity = 90
	bassDuration = eighth - sixteenth/2
)

// bassRhythms are the riffs to play a root with, preferred first.
var bassRhythms = []func(note, velocity uint8, duration int) []datatune.Hit{offbeats, eighths}

// root returns the bass note of a proto-bar, false when the main stream has
// nothing to play in it.
func (b bassist) root(pb datatune.ProtoBar) (uint8, bool) {
	if b.stream < 0 {
		return 0, false
	}
	var sum float64
	n := 0
	for _, r := range pb.Rows {
		if v, ok := r.Datum(b.stream).Value(); ok && v >= 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	mean := sum / float64(n)
	d, err := datatune.NewDatum("", 0, false, mean, true)
	if err != nil {
		return 0, false
	}
	nv, ok := datatune.ToNote(d, true, b.scale, bassOctave, mean*b.factor).Note()
	return nv.Note, ok
}

// source returns the proto-bar under bar i of the section, false for
// sections the bass sits out.
func (b bassist) source(kind datatune.SectionKind, i int) (datatune.ProtoBar, bool) {
	if len(b.bars) == 0 {
		return datatune.ProtoBar{}, false
	}
	switch kind {
	case datatune.Verse:
		if i < len(b.bars) {
			return b.bars[i], true
		}
	case datatune.Chorus, datatune.Drop:
		if b.chorusBar >= 0 && b.chorusBar < len(b.bars) {
			return b.bars[b.chorusBar], true
		}
	case datatune.Outro:
		return b.bars[len(b.bars)-1], true
	}
	return datatune.ProtoBar{}, false
}

func (b bassist) generate(section datatune.TuneSection, index int) ([]datatune.SupportBar, error) {
	rhythm, err := progression.PickOne(progression.Group{TuneSeed: b.seed, ID: groupBassRhythm}, progression.Favoured, bassRhythms, index)
	if err != nil {
		return nil, err
	}
	ret := make([]datatune.SupportBar, section.Bars)
	for i := range ret {
		var hits []datatune.Hit
		if pb, ok := b.source(section.Kind, i); ok {
			if note, ok := b.root(pb); ok {
				hits = rhythm(note, bassVelocity, bassDuration)
			}
		}
		if ret[i], err = datatune.NewSupportBar(hits...); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func concat(parts ...[]datatune.Hit) []datatune.Hit {
	var ret []datatune.Hit
	for _, p := range parts {
		ret = append(ret, p...)
	}
	return ret
}
