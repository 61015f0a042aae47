package datatune_test

import (
	"testing"
	"time"

	"github.com/datatune/datatune"
	"github.com/pkg/errors"
)

func melodyTrack(t *testing.T, notesPerBar, bars int) datatune.MelodyTrack {
	t.Helper()
	b, err := datatune.RestBar(notesPerBar)
	if err != nil {
		t.Fatalf("could not create bar: %v", err)
	}
	b, err = b.WithSlot(0, datatune.Sounding(datatune.NoteAndVelocity{Note: 60, Velocity: 90}))
	if err != nil {
		t.Fatalf("could not set slot: %v", err)
	}
	bs := make([]datatune.Bar, bars)
	for i := range bs {
		bs[i] = b
	}
	m, err := datatune.NewMelodyTrack(datatune.TrackSetup{Volume: 100, Pan: 64}, notesPerBar, bs...)
	if err != nil {
		t.Fatalf("could not create melody track: %v", err)
	}
	return m
}

func TestNewTune(t *testing.T) {
	plan, err := datatune.NewTuneSectionPlan(
		datatune.TuneSection{Bars: 1, Kind: datatune.Intro},
		datatune.TuneSection{Bars: 2, Kind: datatune.Verse},
	)
	if err != nil {
		t.Fatalf("could not create plan: %v", err)
	}
	tune, err := datatune.NewTune("test", plan, []datatune.MelodyTrack{melodyTrack(t, 4, 3)}, nil)
	if err != nil {
		t.Fatalf("valid tune rejected: %v", err)
	}
	if tune.NumBars() != 3 || tune.NumMelodyTracks() != 1 || tune.NumSupportTracks() != 0 {
		t.Fatalf("wrong tune shape: %v bars, %v melody, %v support", tune.NumBars(), tune.NumMelodyTracks(), tune.NumSupportTracks())
	}
	if d := tune.Duration(); d != 6*time.Second {
		t.Fatalf("wrong duration. got: %v expected: %v", d, 6*time.Second)
	}
	if _, ok := tune.Plan(); !ok {
		t.Fatal("tune should have a plan")
	}
	_, err = datatune.NewTune("test", plan, []datatune.MelodyTrack{melodyTrack(t, 4, 2)}, nil)
	if !errors.Is(err, datatune.ErrStructure) {
		t.Fatalf("a track shorter than the plan should fail with ErrStructure, got: %v", err)
	}
	hit, err := datatune.NewSupportBar(datatune.Hit{Start: 0, Note: 36, Velocity: 100, Duration: 240})
	if err != nil {
		t.Fatalf("could not create support bar: %v", err)
	}
	drums, err := datatune.NewSupportTrack(datatune.TrackSetup{Channel: datatune.PercussionChannel}, hit)
	if err != nil {
		t.Fatalf("could not create support track: %v", err)
	}
	_, err = datatune.NewTune("test", plan, []datatune.MelodyTrack{melodyTrack(t, 4, 3)}, []datatune.SupportTrack{drums})
	if !errors.Is(err, datatune.ErrStructure) {
		t.Fatalf("a support track shorter than the plan should fail with ErrStructure, got: %v", err)
	}
	if _, err := datatune.NewTune("unplanned", datatune.TuneSectionPlan{}, []datatune.MelodyTrack{melodyTrack(t, 4, 2)}, []datatune.SupportTrack{drums}); err != nil {
		t.Fatalf("a tune without a plan may have tracks of any length, got: %v", err)
	}
}

func TestNewMelodyTrackSlotMismatch(t *testing.T) {
	bar, err := datatune.RestBar(3)
	if err != nil {
		t.Fatalf("could not create bar: %v", err)
	}
	if _, err := datatune.NewMelodyTrack(datatune.TrackSetup{}, 4, bar); !errors.Is(err, datatune.ErrStructure) {
		t.Fatalf("a bar of 3 slots in a 4 slot track should fail with ErrStructure, got: %v", err)
	}
	if _, err := datatune.RestBar(7); !errors.Is(err, datatune.ErrInvalidArgument) {
		t.Fatalf("7 slots do not divide a bar, got: %v", err)
	}
}

func TestNewSupportBar(t *testing.T) {
	bar, err := datatune.NewSupportBar(
		datatune.Hit{Start: 960, Note: 38, Velocity: 90, Duration: 100},
		datatune.Hit{Start: 0, Note: 36, Velocity: 100, Duration: 100},
	)
	if err != nil {
		t.Fatalf("valid hits rejected: %v", err)
	}
	var starts []int
	for _, h := range bar.Hits {
		starts = append(starts, h.Start)
	}
	if len(starts) != 2 || starts[0] != 0 || starts[1] != 960 {
		t.Fatalf("hits should be ordered by start, got: %v", starts)
	}
	bad := []datatune.Hit{
		{Start: -1, Note: 36, Velocity: 100, Duration: 100},
		{Start: datatune.BarClocks, Note: 36, Velocity: 100, Duration: 100},
		{Start: 0, Note: 36, Velocity: 100, Duration: 1},
		{Start: 0, Note: 128, Velocity: 100, Duration: 100},
		{Start: 0, Note: 36, Velocity: 0, Duration: 100},
	}
	for _, h := range bad {
		if _, err := datatune.NewSupportBar(h); !errors.Is(err, datatune.ErrInvalidArgument) {
			t.Fatalf("hit %+v should be rejected, got: %v", h, err)
		}
	}
}

func TestSectionPlan(t *testing.T) {
	if _, err := datatune.NewTuneSectionPlan(); !errors.Is(err, datatune.ErrInvalidArgument) {
		t.Fatalf("an empty plan should be rejected, got: %v", err)
	}
	if _, err := datatune.NewTuneSectionPlan(datatune.TuneSection{Bars: 0, Kind: datatune.Verse}); !errors.Is(err, datatune.ErrInvalidArgument) {
		t.Fatalf("a section without bars should be rejected, got: %v", err)
	}
	plan, err := datatune.NewTuneSectionPlan(
		datatune.TuneSection{Bars: 2, Kind: datatune.Intro},
		datatune.TuneSection{Bars: 3, Kind: datatune.Verse},
	)
	if err != nil {
		t.Fatalf("valid plan rejected: %v", err)
	}
	if plan.TotalBars() != 5 {
		t.Fatalf("wrong total. got: %v expected: %v", plan.TotalBars(), 5)
	}
	if s, b := plan.SectionAt(3); s != 1 || b != 1 {
		t.Fatalf("wrong section at bar 3. got: %v, %v expected: 1, 1", s, b)
	}
	if s, _ := plan.SectionAt(5); s != -1 {
		t.Fatalf("bar 5 is past the end, got section %v", s)
	}
}
