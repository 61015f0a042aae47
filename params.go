package datatune

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	// ProductionLevel orders styles from raw data to fully produced.
	ProductionLevel int

	// Style is the overall treatment of the tune. Each style implies a
	// production level.
	Style string

	// Params are the knobs of one generation run.
	Params struct {
		// Seed 0 means no randomness: every arrangement choice takes its
		// first, preferred option. Any other value gives a reproducible
		// variation.
		Seed  int64 `yaml:"seed"`
		Style Style `yaml:"style"`
		// IntroBars is the number of bars before the data starts.
		IntroBars int `yaml:"introBars"`
		// HeterogeneousStreams scales every stream against its own maximum
		// instead of the global one, for streams measured in different
		// units.
		HeterogeneousStreams bool   `yaml:"heterogeneousStreams"`
		Name                 string `yaml:"name,omitempty"`
	}
)

const (
	NoProduce ProductionLevel = iota
	GentleProduce
	FullProduce
)

const (
	Plain  Style = "plain"
	Gentle Style = "gentle"
	House  Style = "house"
)

// Styles lists the styles in production order.
var Styles = []Style{Plain, Gentle, House}

// ParseStyle accepts a style name in any case.
func ParseStyle(s string) (Style, error) {
	st := Style(strings.ToLower(strings.TrimSpace(s)))
	if _, err := st.Level(); err != nil {
		return "", err
	}
	return st, nil
}

// Level returns the production level of the style.
func (s Style) Level() (ProductionLevel, error) {
	switch s {
	case Plain:
		return NoProduce, nil
	case Gentle:
		return GentleProduce, nil
	case House:
		return FullProduce, nil
	}
	return NoProduce, errors.Wrapf(ErrInvalidArgument, "unknown style %q", string(s))
}

// DefaultParams are used when nothing is configured.
func DefaultParams() Params {
	return Params{Style: Plain}
}

// Validate checks the parameters; an empty style means Plain.
func (p *Params) Validate() error {
	if p.Style == "" {
		p.Style = Plain
	}
	if _, err := p.Style.Level(); err != nil {
		return err
	}
	if p.IntroBars < 0 {
		return errors.Wrapf(ErrInvalidArgument, "intro bars %d must be >= 0", p.IntroBars)
	}
	return nil
}

// NoRandomness reports whether every choice should take its first option.
func (p Params) NoRandomness() bool { return p.Seed == 0 }

// LoadParams reads parameters from a YAML file on top of DefaultParams.
func LoadParams(path string) (Params, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Params{}, errors.Wrapf(err, "could not read params %v", path)
	}
	p := DefaultParams()
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Params{}, errors.Wrapf(ErrFormat, "params %v: %v", path, err)
	}
	if err := p.Validate(); err != nil {
		return Params{}, errors.Wrapf(err, "params %v", path)
	}
	return p, nil
}
