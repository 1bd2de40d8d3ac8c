package enginedb

import (
	"context"
	"testing"

	"github.com/enginecrate/enginedb/internal/model"
)

func ptr[T any](v T) *T { return &v }

func scenarioSnapshot() model.TrackSnapshot {
	s := model.TrackSnapshot{
		RelativePath: "../01 - Some Artist - Some Song.mp3",
		Duration:     ptr(int64(366000)),
		BPM:          ptr(120.0),
		Sampling:     &model.Sampling{SampleRate: 44100, SampleCount: 16140600},
		DefaultBeatgrid: []model.BeatGridMarker{
			{SampleOffset: -4, BeatNumber: -83316.78},
			{SampleOffset: 812, BeatNumber: 17470734.439},
		},
		DefaultMainCue: ptr(int64(2732)),
	}
	s.HotCues[0] = &model.HotCue{Label: "Cue 1", SampleOffset: 1377924.5, Color: model.Color{A: 255, R: 255}}
	s.Loops[0] = &model.Loop{Label: "Loop 1", Start: 1144.012, End: 345339.134, Color: model.Color{A: 255, G: 255}}
	entries := make([]model.WaveformEntry, 153720)
	for i := range entries {
		entries[i] = model.WaveformEntry{
			Low:  model.WaveformBand{Value: 0, Opacity: 255},
			Mid:  model.WaveformBand{Value: 42, Opacity: 255},
			High: model.WaveformBand{Value: 255, Opacity: 255},
		}
	}
	s.Waveform = entries
	return s
}

func TestOpenCreatesFreshDatabase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	db, created, err := Open(ctx, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if !created {
		t.Fatal("expected a fresh database to be created")
	}
	if db.UUID() == "" {
		t.Fatal("expected a non-empty UUID")
	}
}

func TestCreateTrackAndHandleLifecycle(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	db, _, err := Open(ctx, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	track, err := db.CreateTrack(ctx, nil, scenarioSnapshot())
	if err != nil {
		t.Fatalf("CreateTrack: %v", err)
	}
	if !track.IsValid(ctx) {
		t.Fatal("freshly created track should be valid")
	}

	snapshot, err := track.Snapshot(ctx, nil)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snapshot.RelativePath != "../01 - Some Artist - Some Song.mp3" {
		t.Fatalf("RelativePath = %q", snapshot.RelativePath)
	}

	if err := track.Remove(ctx, nil); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if track.IsValid(ctx) {
		t.Fatal("removed track should be invalid")
	}
}

func TestCreateRootCrateAndMembership(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	db, _, err := Open(ctx, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	crate, err := db.CreateRootCrate(ctx, nil, "Favorites")
	if err != nil {
		t.Fatalf("CreateRootCrate: %v", err)
	}

	roots, err := db.RootCrates(ctx, nil)
	if err != nil {
		t.Fatalf("RootCrates: %v", err)
	}
	if len(roots) != 1 || roots[0].ID() != crate.ID() {
		t.Fatalf("RootCrates() = %v, want [%d]", roots, crate.ID())
	}

	name, err := crate.Name(ctx, nil)
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if name != "Favorites" {
		t.Fatalf("Name() = %q, want %q", name, "Favorites")
	}

	if _, err := db.CreateRootCrate(ctx, nil, ""); err == nil {
		t.Fatal("expected CrateInvalidNameError for empty name")
	} else if _, ok := err.(*CrateInvalidNameError); !ok {
		t.Fatalf("error = %T, want *CrateInvalidNameError", err)
	}
}
