package datatune

import (
	"strconv"

	"github.com/pkg/errors"
)

type (
	// SectionKind is the musical role of a run of bars.
	SectionKind int

	// TuneSection is a run of Bars bars of one kind.
	TuneSection struct {
		Bars int
		Kind SectionKind
	}

	// TuneSectionPlan is the ordered, non-empty list of sections a tune is
	// built from.
	TuneSectionPlan struct {
		sections []TuneSection
	}
)

const (
	Intro SectionKind = iota
	Verse
	Chorus
	Breakdown
	Drop
	Outro
)

var sectionKindNames = [...]string{"intro", "verse", "chorus", "breakdown", "drop", "outro"}

func (k SectionKind) String() string {
	if k < 0 || int(k) >= len(sectionKindNames) {
		return "SectionKind(" + strconv.Itoa(int(k)) + ")"
	}
	return sectionKindNames[k]
}

// MarshalText makes section kinds readable in YAML dumps.
func (k SectionKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// NewTuneSectionPlan copies sections into a plan. The plan must not be
// empty and every section needs at least one bar.
func NewTuneSectionPlan(sections ...TuneSection) (TuneSectionPlan, error) {
	if len(sections) == 0 {
		return TuneSectionPlan{}, errors.Wrap(ErrInvalidArgument, "section plan is empty")
	}
	s := make([]TuneSection, len(sections))
	for i, sec := range sections {
		if sec.Bars <= 0 {
			return TuneSectionPlan{}, errors.Wrapf(ErrInvalidArgument, "section %d (%v) has %d bars", i, sec.Kind, sec.Bars)
		}
		if sec.Kind < 0 || int(sec.Kind) >= len(sectionKindNames) {
			return TuneSectionPlan{}, errors.Wrapf(ErrInvalidArgument, "section %d has unknown kind %d", i, sec.Kind)
		}
		s[i] = sec
	}
	return TuneSectionPlan{sections: s}, nil
}

// Len returns the number of sections; 0 means there is no plan.
func (p TuneSectionPlan) Len() int { return len(p.sections) }

// Section returns the section at index.
func (p TuneSectionPlan) Section(index int) TuneSection { return p.sections[index] }

// Sections iterates the sections in order.
func (p TuneSectionPlan) Sections(yield func(int, TuneSection) bool) {
	for i, s := range p.sections {
		if !yield(i, s) {
			return
		}
	}
}

// TotalBars returns the sum of the bars of every section.
func (p TuneSectionPlan) TotalBars() int {
	total := 0
	for _, s := range p.sections {
		total += s.Bars
	}
	return total
}

// SectionAt returns the index of the section containing the 0-based bar,
// and the bar's position within that section; -1 if out of range.
func (p TuneSectionPlan) SectionAt(bar int) (section, barInSection int) {
	if bar < 0 {
		return -1, -1
	}
	for i, s := range p.sections {
		if bar < s.Bars {
			return i, bar
		}
		bar -= s.Bars
	}
	return -1, -1
}
