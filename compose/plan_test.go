package compose_test

import (
	"reflect"
	"testing"

	"github.com/datatune/datatune"
	"github.com/datatune/datatune/compose"
	"github.com/pkg/errors"
)

func TestPlanSections(t *testing.T) {
	cases := []struct {
		name     string
		params   datatune.Params
		dataBars int
		expected []datatune.TuneSection
	}{
		{"plain", datatune.Params{Style: datatune.Plain}, 3, []datatune.TuneSection{
			{Bars: 3, Kind: datatune.Verse},
		}},
		{"plain with intro", datatune.Params{Style: datatune.Plain, IntroBars: 2}, 3, []datatune.TuneSection{
			{Bars: 2, Kind: datatune.Intro},
			{Bars: 3, Kind: datatune.Verse},
		}},
		{"gentle", datatune.Params{Style: datatune.Gentle}, 3, []datatune.TuneSection{
			{Bars: 3, Kind: datatune.Verse},
			{Bars: 4, Kind: datatune.Chorus},
			{Bars: 1, Kind: datatune.Outro},
		}},
		{"house", datatune.Params{Style: datatune.House, IntroBars: 1}, 3, []datatune.TuneSection{
			{Bars: 1, Kind: datatune.Intro},
			{Bars: 3, Kind: datatune.Verse},
			{Bars: 4, Kind: datatune.Chorus},
			{Bars: 2, Kind: datatune.Breakdown},
			{Bars: 4, Kind: datatune.Drop},
			{Bars: 1, Kind: datatune.Outro},
		}},
		{"intro only", datatune.Params{Style: datatune.House, IntroBars: 2}, 0, []datatune.TuneSection{
			{Bars: 2, Kind: datatune.Intro},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			plan, err := compose.PlanSections(c.params, c.dataBars)
			if err != nil {
				t.Fatalf("planning failed: %v", err)
			}
			var got []datatune.TuneSection
			for _, s := range plan.Sections {
				got = append(got, s)
			}
			if !reflect.DeepEqual(got, c.expected) {
				t.Fatalf("wrong plan. got: %v expected: %v", got, c.expected)
			}
		})
	}
}

func TestPlanSectionsSeeded(t *testing.T) {
	for seed := range int64(100) {
		p := datatune.Params{Seed: seed + 1, Style: datatune.House}
		plan, err := compose.PlanSections(p, 5)
		if err != nil {
			t.Fatalf("planning failed: %v", err)
		}
		again, err := compose.PlanSections(p, 5)
		if err != nil {
			t.Fatalf("planning failed: %v", err)
		}
		if !reflect.DeepEqual(plan, again) {
			t.Fatalf("seed %d gave different plans", p.Seed)
		}
		chorus, drop := plan.Section(1), plan.Section(3)
		if chorus.Kind != datatune.Chorus || drop.Kind != datatune.Drop || chorus.Bars != drop.Bars {
			t.Fatalf("the drop should be as long as the chorus, got %v and %v", chorus, drop)
		}
	}
}

func TestPlanSectionsNothingToPlay(t *testing.T) {
	if _, err := compose.PlanSections(datatune.Params{Style: datatune.House}, 0); !errors.Is(err, datatune.ErrInvalidArgument) {
		t.Fatalf("no data and no intro should fail with ErrInvalidArgument, got: %v", err)
	}
}
