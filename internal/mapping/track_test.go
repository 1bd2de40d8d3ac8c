package mapping

import (
	"testing"

	"github.com/google/go-cmp/cmp"

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
			{SampleOffset: -4, BeatNumber: -83316.78, Unknown1: 1, Unknown2: -7},
			{SampleOffset: 812, BeatNumber: 17470734.439, Unknown1: 0, Unknown2: 42},
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

func TestToRowsFromRowsRoundTrip(t *testing.T) {
	snapshot := scenarioSnapshot()

	track, perf, err := ToRows(snapshot, "db-uuid")
	if err != nil {
		t.Fatalf("ToRows returned error: %v", err)
	}
	track.ID = 1
	track.OriginTrackID = 1
	perf.ID = 1

	got, err := FromRows(track, perf)
	if err != nil {
		t.Fatalf("FromRows returned error: %v", err)
	}

	snapshot.ID = ptr(int64(1))
	snapshot.ImportInfo = &model.ImportInfo{OriginDatabaseUUID: "db-uuid", OriginTrackID: 1}

	if diff := cmp.Diff(snapshot, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

// TestBeatGridMarkerUnknownFieldsRoundTrip pins down that the two
// hardware-reserved fields on a beat grid marker survive a full
// ToRows/FromRows cycle rather than being zeroed, independently of the
// broader scenario round trip above.
func TestBeatGridMarkerUnknownFieldsRoundTrip(t *testing.T) {
	snapshot := model.TrackSnapshot{
		RelativePath: "../track.mp3",
		DefaultBeatgrid: []model.BeatGridMarker{
			{SampleOffset: 100, BeatNumber: 1, Unknown1: 123, Unknown2: -456},
		},
		AdjustedBeatgrid: []model.BeatGridMarker{
			{SampleOffset: 200, BeatNumber: 2, Unknown1: -1, Unknown2: 9999},
		},
	}

	track, perf, err := ToRows(snapshot, "db-uuid")
	if err != nil {
		t.Fatalf("ToRows returned error: %v", err)
	}

	got, err := FromRows(track, perf)
	if err != nil {
		t.Fatalf("FromRows returned error: %v", err)
	}

	if got.DefaultBeatgrid[0].Unknown1 != 123 || got.DefaultBeatgrid[0].Unknown2 != -456 {
		t.Fatalf("default marker unknown fields not preserved: %+v", got.DefaultBeatgrid[0])
	}
	if got.AdjustedBeatgrid[0].Unknown1 != -1 || got.AdjustedBeatgrid[0].Unknown2 != 9999 {
		t.Fatalf("adjusted marker unknown fields not preserved: %+v", got.AdjustedBeatgrid[0])
	}
}

func TestToRowsRejectsEmptyRelativePath(t *testing.T) {
	_, _, err := ToRows(model.TrackSnapshot{}, "db-uuid")
	if err == nil {
		t.Fatal("expected error for empty relative_path")
	}
}

func TestToRowsRejectsMissingExtension(t *testing.T) {
	_, _, err := ToRows(model.TrackSnapshot{RelativePath: "folder/no-extension"}, "db-uuid")
	if err == nil {
		t.Fatal("expected error for missing extension")
	}
}

func TestWriteRatingClamp(t *testing.T) {
	if got := writeRating(ptr(int32(150))); got != 100 {
		t.Fatalf("writeRating(150) = %d, want 100", got)
	}
	if got := writeRating(nil); got != 0 {
		t.Fatalf("writeRating(nil) = %d, want 0", got)
	}
}

func TestReadRatingZeroIsAbsent(t *testing.T) {
	if got := readRating(0); got != nil {
		t.Fatalf("readRating(0) = %v, want nil", got)
	}
	if got := readRating(150); got != nil {
		t.Fatalf("readRating(150) = %v, want nil", got)
	}
	if got := readRating(42); got == nil || *got != 42 {
		t.Fatalf("readRating(42) = %v, want 42", got)
	}
}
