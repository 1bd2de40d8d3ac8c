package store

import (
	"context"
	"testing"

	"github.com/enginecrate/enginedb/internal/blobcodec"
	"github.com/enginecrate/enginedb/internal/schema"
)

func setupPerformanceDataStore(t *testing.T) (*PerformanceDataStore, int64, func()) {
	t.Helper()
	dir := t.TempDir()
	triple := schema.Triple{EngineVersion: 2, MusicVersion: "2.21.0", PerformanceVersion: "2.21.0"}
	v, err := schema.Lookup(triple)
	if err != nil {
		t.Fatalf("schema.Lookup returned error: %v", err)
	}
	if _, err := schema.Create(dir, v); err != nil {
		t.Fatalf("schema.Create returned error: %v", err)
	}

	db, err := openTestDB(dir, "m.db")
	if err != nil {
		t.Fatalf("openTestDB returned error: %v", err)
	}

	tracks := NewTrackStore(db)
	id, err := tracks.Add(context.Background(), TrackRow{
		Path:               "01 - Some Artist - Some Song.mp3",
		Filename:           "01 - Some Artist - Some Song.mp3",
		AlbumArtID:         NoAlbumArtID,
		OriginDatabaseUUID: "db-uuid",
		IsAvailable:        true,
	})
	if err != nil {
		t.Fatalf("add track returned error: %v", err)
	}

	perf := NewPerformanceDataStore(db)
	if err := perf.Add(context.Background(), PerformanceDataRow{ID: id}); err != nil {
		t.Fatalf("add performance data returned error: %v", err)
	}

	return perf, id, func() { db.Close() }
}

func TestSetHotCueAtReadModifyWrite(t *testing.T) {
	ctx := context.Background()
	perf, id, closeDB := setupPerformanceDataStore(t)
	defer closeDB()

	cue0 := &blobcodec.HotCue{Label: "Intro", SampleOffset: 1024, Color: blobcodec.Color{A: 255, R: 10}}
	if err := perf.SetHotCueAt(ctx, id, 0, cue0); err != nil {
		t.Fatalf("SetHotCueAt(0) returned error: %v", err)
	}

	cue3 := &blobcodec.HotCue{Label: "Drop", SampleOffset: 98765, Color: blobcodec.Color{A: 255, B: 200}}
	if err := perf.SetHotCueAt(ctx, id, 3, cue3); err != nil {
		t.Fatalf("SetHotCueAt(3) returned error: %v", err)
	}

	got0, err := perf.HotCueAt(ctx, id, 0)
	if err != nil {
		t.Fatalf("HotCueAt(0) returned error: %v", err)
	}
	if got0 == nil || got0.Label != "Intro" || got0.SampleOffset != 1024 {
		t.Fatalf("HotCueAt(0) = %+v, want Intro/1024", got0)
	}

	got3, err := perf.HotCueAt(ctx, id, 3)
	if err != nil {
		t.Fatalf("HotCueAt(3) returned error: %v", err)
	}
	if got3 == nil || got3.Label != "Drop" || got3.SampleOffset != 98765 {
		t.Fatalf("HotCueAt(3) = %+v, want Drop/98765, slot 0 write must not clobber slot 3", got3)
	}

	if err := perf.SetHotCueAt(ctx, id, 0, nil); err != nil {
		t.Fatalf("SetHotCueAt(0, nil) returned error: %v", err)
	}
	cleared, err := perf.HotCueAt(ctx, id, 0)
	if err != nil {
		t.Fatalf("HotCueAt(0) after clear returned error: %v", err)
	}
	if cleared != nil {
		t.Fatalf("HotCueAt(0) after clear = %+v, want nil", cleared)
	}

	stillThere, err := perf.HotCueAt(ctx, id, 3)
	if err != nil {
		t.Fatalf("HotCueAt(3) after clearing slot 0 returned error: %v", err)
	}
	if stillThere == nil || stillThere.Label != "Drop" {
		t.Fatalf("HotCueAt(3) after clearing slot 0 = %+v, want Drop preserved", stillThere)
	}
}

func TestSetLoopAtReadModifyWrite(t *testing.T) {
	ctx := context.Background()
	perf, id, closeDB := setupPerformanceDataStore(t)
	defer closeDB()

	loop1 := &blobcodec.Loop{Label: "Build", Start: 512, End: 4096, Color: blobcodec.Color{A: 255, G: 200}}
	if err := perf.SetLoopAt(ctx, id, 1, loop1); err != nil {
		t.Fatalf("SetLoopAt(1) returned error: %v", err)
	}

	got, err := perf.LoopAt(ctx, id, 1)
	if err != nil {
		t.Fatalf("LoopAt(1) returned error: %v", err)
	}
	if got == nil || got.Label != "Build" || got.Start != 512 || got.End != 4096 {
		t.Fatalf("LoopAt(1) = %+v, want Build/512/4096", got)
	}

	empty, err := perf.LoopAt(ctx, id, 2)
	if err != nil {
		t.Fatalf("LoopAt(2) returned error: %v", err)
	}
	if empty != nil {
		t.Fatalf("LoopAt(2) = %+v, want nil for untouched slot", empty)
	}
}

func TestSetHotCueAtRejectsOutOfRangeIndex(t *testing.T) {
	ctx := context.Background()
	perf, id, closeDB := setupPerformanceDataStore(t)
	defer closeDB()

	if err := perf.SetHotCueAt(ctx, id, 8, &blobcodec.HotCue{}); err == nil {
		t.Fatal("expected error for out-of-range hot cue index")
	}
}
