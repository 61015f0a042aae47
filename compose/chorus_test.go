package compose_test

import (
	"testing"

	"github.com/datatune/datatune"
	"github.com/datatune/datatune/compose"
	"github.com/pkg/errors"
)

func protoBars(t *testing.T, lines ...string) []datatune.ProtoBar {
	t.Helper()
	data, err := datatune.ParseDataset(lines...)
	if err != nil {
		t.Fatalf("could not parse dataset: %v", err)
	}
	bars, err := datatune.Chop(datatune.Yearly, data, false)
	if err != nil {
		t.Fatalf("chop failed: %v", err)
	}
	return bars
}

func TestRepresentativeBar(t *testing.T) {
	bars := protoBars(t,
		"2000,a,1,", "2001,a,1,", "2002,a,1,1", "2003,a,1,",
		"2004,a,1,1", "2005,a,1,1", "2006,a,1,1", "2007,a,1,1",
		"2008,a,1,1", "2009,a,1,1", "2010,a,1,1", "2011,a,1,1",
	)
	cases := []struct {
		policy   compose.ChorusPolicy
		expected int
	}{
		{compose.FirstDataBar, 0},
		{compose.FirstFullDataBar, 1},
		{compose.FirstFullestDataBar, 1},
	}
	for _, c := range cases {
		got, err := compose.RepresentativeBar(c.policy, bars, 0)
		if err != nil {
			t.Fatalf("%v failed: %v", c.policy, err)
		}
		if got != c.expected {
			t.Fatalf("%v picked the wrong bar. got: %v expected: %v", c.policy, got, c.expected)
		}
	}
}

func TestRepresentativeBarFallbacks(t *testing.T) {
	partial := protoBars(t, "2000,a,1,", "2001,a,1,", "2002,a,1,", "2003,a,1,", "2004,a,1,1", "2005,a,1,1", "2006,a,1,")
	got, err := compose.RepresentativeBar(compose.FirstFullDataBar, partial, 0)
	if err != nil || got != 1 {
		t.Fatalf("without a full bar the first bar with data should be used. got: %v, %v expected: 1", got, err)
	}
	empty := protoBars(t, "2000,a,1,", "2001,a,1,")
	for _, p := range compose.ImplementedChorusPolicies {
		got, err := compose.RepresentativeBar(p, empty, 0)
		if err != nil || got != 0 {
			t.Fatalf("%v without data should pick bar 0. got: %v, %v", p, got, err)
		}
	}
}

func TestRepresentativeBarErrors(t *testing.T) {
	bars := protoBars(t, "2000,a,1,1")
	for _, p := range []compose.ChorusPolicy{compose.SyntheticRepresentativeBar, compose.SyntheticRepresentativeBarWithCounterpoint} {
		if _, err := compose.RepresentativeBar(p, bars, 0); !errors.Is(err, datatune.ErrUnimplemented) {
			t.Fatalf("%v should fail with ErrUnimplemented, got: %v", p, err)
		}
	}
	if _, err := compose.RepresentativeBar(compose.FirstDataBar, nil, 0); !errors.Is(err, datatune.ErrInvalidArgument) {
		t.Fatalf("no bars should fail with ErrInvalidArgument, got: %v", err)
	}
}
