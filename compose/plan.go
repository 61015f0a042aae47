package compose

import (
	"github.com/datatune/datatune"
	"github.com/datatune/datatune/progression"
	"github.com/pkg/errors"
)

// Section lengths to choose from, preferred first.
var (
	chorusBarChoices    = []int{4, 8, 2}
	breakdownBarChoices = []int{2, 4}
	outroBarChoices     = []int{1, 2}
)

// PlanSections lays out the sections of a tune over dataBars bars of data:
// an optional intro, then the verse carrying all the data, then whatever
// the style adds on top. A plain tune is just the data.
func PlanSections(p datatune.Params, dataBars int) (datatune.TuneSectionPlan, error) {
	level, err := p.Style.Level()
	if err != nil {
		return datatune.TuneSectionPlan{}, err
	}
	if dataBars < 0 || p.IntroBars < 0 {
		return datatune.TuneSectionPlan{}, errors.Wrapf(datatune.ErrInvalidArgument, "bad bar counts: %d data, %d intro", dataBars, p.IntroBars)
	}
	var sections []datatune.TuneSection
	add := func(bars int, kind datatune.SectionKind) {
		if bars > 0 {
			sections = append(sections, datatune.TuneSection{Bars: bars, Kind: kind})
		}
	}
	pick := func(group int, choices []int) (int, error) {
		return progression.PickOne(progression.Group{TuneSeed: p.Seed, ID: group}, progression.Favoured, choices, dataBars)
	}
	add(p.IntroBars, datatune.Intro)
	add(dataBars, datatune.Verse)
	if dataBars > 0 && level > datatune.NoProduce {
		chorus, err := pick(groupChorusBars, chorusBarChoices)
		if err != nil {
			return datatune.TuneSectionPlan{}, err
		}
		add(chorus, datatune.Chorus)
		if level >= datatune.FullProduce {
			breakdown, err := pick(groupBreakdownBars, breakdownBarChoices)
			if err != nil {
				return datatune.TuneSectionPlan{}, err
			}
			add(breakdown, datatune.Breakdown)
			add(chorus, datatune.Drop)
		}
		outro, err := pick(groupOutroBars, outroBarChoices)
		if err != nil {
			return datatune.TuneSectionPlan{}, err
		}
		add(outro, datatune.Outro)
	}
	if len(sections) == 0 {
		return datatune.TuneSectionPlan{}, errors.Wrap(datatune.ErrInvalidArgument, "no data and no intro: nothing to play")
	}
	return datatune.NewTuneSectionPlan(sections...)
}
