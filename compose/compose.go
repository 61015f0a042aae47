package compose

import (
	"github.com/datatune/datatune"
	"github.com/datatune/datatune/progression"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Composition is a generated tune together with the analysis that shaped
// it.
type Composition struct {
	Tune         datatune.Tune
	Params       datatune.Params
	Cadence      datatune.Cadence
	Bounds       datatune.DataBounds
	Aligned      bool
	DataBars     int
	Scale        datatune.Scale
	ChorusPolicy ChorusPolicy
	// Streams lists the 0-based stream of each melody track, in track order.
	Streams []int
}

// Generate composes data into a tune; see Compose.
func Generate(data datatune.Dataset, p datatune.Params) (datatune.Tune, error) {
	c, err := Compose(data, p)
	if err != nil {
		return datatune.Tune{}, err
	}
	return c.Tune, nil
}

// Compose runs the whole pipeline: detect the cadence, bound the data, chop
// it into (possibly aligned) proto-bars, plan the sections, generate every
// track and validate the result. Any failure fails the whole tune.
func Compose(data datatune.Dataset, p datatune.Params) (Composition, error) {
	if err := p.Validate(); err != nil {
		return Composition{}, err
	}
	level, _ := p.Style.Level()
	cadence, err := datatune.DetectCadence(data)
	if err != nil {
		return Composition{}, err
	}
	bounds := datatune.ComputeBounds(data)
	aligned := datatune.ShouldAlign(cadence, level)
	bars, err := datatune.Chop(cadence, data, aligned)
	if err != nil {
		return Composition{}, errors.Wrap(err, "chopping data into bars")
	}
	plan, err := PlanSections(p, len(bars))
	if err != nil {
		return Composition{}, errors.Wrap(err, "planning sections")
	}
	scale := scales[p.Style]
	policy, err := choosePolicy(p, level, len(bars))
	if err != nil {
		return Composition{}, err
	}
	m := &melodist{
		bars:        bars,
		bounds:      bounds,
		scale:       scale,
		factors:     make([]float64, bounds.Streams),
		notesPerBar: cadence.NotesPerBar(),
	}
	for s := range m.factors {
		maxVal := bounds.MaxVal
		if p.HeterogeneousStreams {
			maxVal = datatune.StreamMax(data, s)
		}
		m.factors[s] = datatune.ScalingFactor(maxVal, scale, melodyOctaves)
	}
	if len(bars) > 0 {
		main := max(0, bounds.MainStream-1)
		if m.chorusBar, err = RepresentativeBar(policy, bars, main); err != nil {
			return Composition{}, err
		}
	}
	voices, err := melodyVoices(data, bounds, p)
	if err != nil {
		return Composition{}, err
	}
	bass := bassist{bars: bars, chorusBar: m.chorusBar, stream: bounds.MainStream - 1, scale: scale, seed: p.Seed}
	if bass.stream >= 0 {
		bass.factor = m.factors[bass.stream]
	}
	melody, support, err := Assemble(plan, m.notesPerBar, voices, m.generate, supportVoices(p, level, bass))
	if err != nil {
		return Composition{}, err
	}
	tune, err := datatune.NewTune(p.Name, plan, melody, support)
	if err != nil {
		return Composition{}, err
	}
	streams := make([]int, len(voices))
	for i, v := range voices {
		streams[i] = v.Stream
	}
	return Composition{
		Tune:         tune,
		Params:       p,
		Cadence:      cadence,
		Bounds:       bounds,
		Aligned:      aligned,
		DataBars:     len(bars),
		Scale:        scale,
		ChorusPolicy: policy,
		Streams:      streams,
	}, nil
}

func choosePolicy(p datatune.Params, level datatune.ProductionLevel, dataBars int) (ChorusPolicy, error) {
	switch level {
	case datatune.NoProduce:
		return FirstDataBar, nil
	case datatune.GentleProduce:
		return FirstFullDataBar, nil
	}
	g := progression.Group{TuneSeed: p.Seed, ID: groupChorusPolicy}
	return progression.PickOne(g, progression.Uniform{}, ImplementedChorusPolicies, dataBars)
}

// melodyVoices orders the streams main stream first and gives each one a
// channel, instrument, volume, pan and a name taken from its source.
func melodyVoices(data datatune.Dataset, bounds datatune.DataBounds, p datatune.Params) ([]MelodyVoice, error) {
	order := make([]int, 0, bounds.Streams)
	if bounds.MainStream > 0 {
		order = append(order, bounds.MainStream-1)
	}
	for s := range bounds.Streams {
		if !bounds.IsPrimary(s) {
			order = append(order, s)
		}
	}
	palette := palettes[p.Style]
	title := cases.Title(language.English)
	voices := make([]MelodyVoice, len(order))
	for ch, s := range order {
		instrument := palette[0]
		if p.HeterogeneousStreams {
			rotated := append(append([]uint8{}, palette[ch%len(palette):]...), palette[:ch%len(palette)]...)
			var err error
			instrument, err = progression.PickOne(progression.Group{TuneSeed: p.Seed, ID: groupInstrument}, progression.Favoured, rotated, ch)
			if err != nil {
				return nil, err
			}
		}
		volume := uint8(datatune.DefaultVolume)
		if !bounds.IsPrimary(s) {
			volume = secondaryVolume
		}
		voices[ch] = MelodyVoice{
			Stream: s,
			Setup: datatune.TrackSetup{
				Channel:    uint8(ch),
				Instrument: instrument,
				Volume:     volume,
				Pan:        pans[ch%len(pans)],
				Name:       title.String(sourceName(data, s)),
			},
		}
	}
	return voices, nil
}

// sourceName returns the first source name found for the stream.
func sourceName(data datatune.Dataset, stream int) string {
	for _, r := range data.Rows {
		if name, ok := r.Datum(stream).Source(); ok {
			return name
		}
	}
	return ""
}

func supportVoices(p datatune.Params, level datatune.ProductionLevel, bass bassist) []SupportVoice {
	if level == datatune.NoProduce {
		return nil
	}
	voices := []SupportVoice{{
		Setup: datatune.TrackSetup{
			Channel: datatune.PercussionChannel,
			Volume:  drumsVolume,
			Pan:     datatune.CentrePan,
			Name:    "Drums",
		},
		Generator: drummer{level: level, seed: p.Seed}.generate,
	}}
	if level >= datatune.FullProduce {
		voices = append(voices, SupportVoice{
			Setup: datatune.TrackSetup{
				Channel:    bassChannel,
				Instrument: synthBass1,
				Volume:     bassVolume,
				Pan:        datatune.CentrePan,
				Name:       "Bass",
			},
			Generator: bass.generate,
		})
	}
	return voices
}
