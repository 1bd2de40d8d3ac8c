package blobcodec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestQuickCuesRoundTrip(t *testing.T) {
	var in QuickCues
	in.Cues[0] = &HotCue{Label: "Cue 1", SampleOffset: 1377924.5, Color: Color{A: 255, R: 255, G: 0, B: 0}}
	in.Cues[3] = &HotCue{Label: "", SampleOffset: 0, Color: Color{}}
	in.DefaultMainCue = 2732
	in.IsMainCueAdjusted = true
	in.AdjustedMainCue = 3000

	blob, err := EncodeQuickCues(in)
	if err != nil {
		t.Fatalf("EncodeQuickCues returned error: %v", err)
	}

	out, err := DecodeQuickCues(blob)
	if err != nil {
		t.Fatalf("DecodeQuickCues returned error: %v", err)
	}

	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestQuickCuesAllAbsent(t *testing.T) {
	var in QuickCues
	in.DefaultMainCue = -1
	in.AdjustedMainCue = -1

	blob, err := EncodeQuickCues(in)
	if err != nil {
		t.Fatalf("EncodeQuickCues returned error: %v", err)
	}
	out, err := DecodeQuickCues(blob)
	if err != nil {
		t.Fatalf("DecodeQuickCues returned error: %v", err)
	}
	for i, cue := range out.Cues {
		if cue != nil {
			t.Fatalf("expected cue slot %d to be absent, got %+v", i, cue)
		}
	}
}

func TestDecodeQuickCuesWrongCueCount(t *testing.T) {
	buf := make([]byte, 8)
	PutInt64BE(buf, 0, 3)
	blob, err := Compress(buf)
	if err != nil {
		t.Fatalf("Compress returned error: %v", err)
	}
	if _, err := DecodeQuickCues(blob); err == nil {
		t.Fatalf("expected malformed blob error for wrong cue count")
	}
}
