package compose_test

import (
	"reflect"
	"testing"

	"github.com/datatune/datatune"
	"github.com/datatune/datatune/compose"
)

type hit struct{ start, note int }

func hits(b datatune.SupportBar) []hit {
	var ret []hit
	for _, h := range b.Hits {
		ret = append(ret, hit{h.Start, int(h.Note)})
	}
	return ret
}

func supportTrack(t *testing.T, tune datatune.Tune, name string) datatune.SupportTrack {
	t.Helper()
	for _, s := range tune.SupportTracks {
		if s.Setup.Name == name {
			return s
		}
	}
	t.Fatalf("tune has no %v track", name)
	return datatune.SupportTrack{}
}

func TestHouseDrums(t *testing.T) {
	c, err := compose.Compose(readData(t, "sample_gen_Y.csv"), datatune.Params{Style: datatune.House})
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	drums := supportTrack(t, c.Tune, "Drums")
	verse := []hit{{0, 36}, {240, 42}, {480, 36}, {720, 42}, {960, 36}, {1200, 42}, {1440, 36}, {1680, 42}}
	if got := hits(drums.Bar(0)); !reflect.DeepEqual(got, verse) {
		t.Fatalf("wrong verse drums. got: %v expected: %v", got, verse)
	}
	verseFill := []hit{{0, 36}, {240, 42}, {480, 36}, {720, 42}, {960, 36}, {1200, 42}, {1440, 38}, {1560, 38}, {1680, 38}, {1800, 38}}
	if got := hits(drums.Bar(3)); !reflect.DeepEqual(got, verseFill) {
		t.Fatalf("the last verse bar should end in a fill. got: %v expected: %v", got, verseFill)
	}
	chorus := []hit{{0, 49}, {0, 36}, {240, 42}, {480, 36}, {480, 39}, {720, 42}, {960, 36}, {1200, 42}, {1440, 36}, {1440, 39}, {1680, 42}}
	for _, i := range []int{4, 10} {
		if got := hits(drums.Bar(i)); !reflect.DeepEqual(got, chorus) {
			t.Fatalf("bar %v should open with a crash. got: %v expected: %v", i, got, chorus)
		}
	}
	if got := hits(drums.Bar(5)); got[0] != (hit{0, 36}) {
		t.Fatalf("only the first bar of a section has a crash. got: %v", got)
	}
	breakdown := []hit{{240, 42}, {720, 42}, {1200, 42}, {1680, 42}}
	if got := hits(drums.Bar(8)); !reflect.DeepEqual(got, breakdown) {
		t.Fatalf("the breakdown keeps only the hats. got: %v expected: %v", got, breakdown)
	}
	if got, expected := hits(drums.Bar(14)), []hit{{0, 36}}; !reflect.DeepEqual(got, expected) {
		t.Fatalf("the outro ends on one kick. got: %v expected: %v", got, expected)
	}
}

func TestGentleDrums(t *testing.T) {
	c, err := compose.Compose(readData(t, "sample_gen_Y.csv"), datatune.Params{Style: datatune.Gentle})
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	drums := supportTrack(t, c.Tune, "Drums")
	for i := range 4 {
		if n := drums.Bar(i).Len(); n != 0 {
			t.Fatalf("a gentle verse has no drums, bar %v has %v hits", i, n)
		}
	}
	for i := 4; i < 8; i++ {
		var got []datatune.Hit
		for _, h := range drums.Bar(i).Hits {
			got = append(got, h)
		}
		expected := []datatune.Hit{{Start: 0, Note: 36, Velocity: 70, Duration: datatune.ClocksPerQuarter / 4}}
		if !reflect.DeepEqual(got, expected) {
			t.Fatalf("a gentle chorus bar is one soft kick on beat 1. got: %+v expected: %+v", got, expected)
		}
	}
	if got, expected := hits(drums.Bar(8)), []hit{{0, 36}}; !reflect.DeepEqual(got, expected) {
		t.Fatalf("wrong outro drums. got: %v expected: %v", got, expected)
	}
}

func TestBassFollowsData(t *testing.T) {
	c, err := compose.Compose(readData(t, "sample_gen_Y.csv"), datatune.Params{Style: datatune.House})
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	bass := supportTrack(t, c.Tune, "Bass")
	if bass.Setup.Channel != 4 || bass.Setup.Instrument != 38 {
		t.Fatalf("wrong bass setup: %+v", bass.Setup)
	}
	// roots of the bar means 3.25, 11.5, 6.25 and 7, two octaves below the melody
	expected := []int{29, 43, 34, 36, 29, 29, 29, 29, rest, rest, 29, 29, 29, 29, 36}
	var got []int
	for i, b := range bass.Bars {
		h := hits(b)
		if len(h) == 0 {
			got = append(got, rest)
			continue
		}
		for _, x := range h {
			if x.note != h[0].note {
				t.Fatalf("bar %v plays more than one root: %v", i, h)
			}
		}
		if starts := []int{h[0].start, h[1].start, h[2].start, h[3].start}; !reflect.DeepEqual(starts, []int{240, 720, 1200, 1680}) {
			t.Fatalf("the bass should play on the off-beats, bar %v got: %v", i, starts)
		}
		got = append(got, h[0].note)
	}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("wrong bass roots. got: %v expected: %v", got, expected)
	}
}

func TestBassRestsOnNegativeData(t *testing.T) {
	data, err := datatune.ParseDataset("2001,a,1,-1", "2002,a,1,-2")
	if err != nil {
		t.Fatalf("could not parse dataset: %v", err)
	}
	c, err := compose.Compose(data, datatune.Params{Style: datatune.House})
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	for i, b := range supportTrack(t, c.Tune, "Bass").Bars {
		if b.Len() != 0 {
			t.Fatalf("negative values have no bass, bar %v got: %v", i, hits(b))
		}
	}
}
