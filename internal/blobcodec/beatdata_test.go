package blobcodec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBeatDataRoundTrip(t *testing.T) {
	in := BeatData{
		SampleRate:    44100,
		Samples:       16140600,
		IsBeatgridSet: true,
		Default: []BeatGridMarker{
			{SampleOffset: -4, BeatNumber: -83316.78, Unknown1: 1, Unknown2: 2},
			{SampleOffset: 812, BeatNumber: 17470734.439, Unknown1: 0, Unknown2: 0},
		},
		Adjusted: []BeatGridMarker{
			{SampleOffset: 0, BeatNumber: 0, Unknown1: 7, Unknown2: 9},
		},
	}

	blob, err := EncodeBeatData(in)
	if err != nil {
		t.Fatalf("EncodeBeatData returned error: %v", err)
	}

	out, err := DecodeBeatData(blob)
	if err != nil {
		t.Fatalf("DecodeBeatData returned error: %v", err)
	}

	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBeatDataEmptyGrids(t *testing.T) {
	in := BeatData{SampleRate: 44100, Samples: 0, IsBeatgridSet: false}

	blob, err := EncodeBeatData(in)
	if err != nil {
		t.Fatalf("EncodeBeatData returned error: %v", err)
	}
	out, err := DecodeBeatData(blob)
	if err != nil {
		t.Fatalf("DecodeBeatData returned error: %v", err)
	}
	if len(out.Default) != 0 || len(out.Adjusted) != 0 {
		t.Fatalf("expected empty grids, got %+v", out)
	}
}

func TestDecodeBeatDataMalformedTrailingBytes(t *testing.T) {
	// A complete empty record (sample rate, samples, flag, and two zero
	// marker counts: 33 bytes) followed by one extra byte.
	blob, err := Compress(append(make([]byte, 33), 1))
	if err != nil {
		t.Fatalf("Compress returned error: %v", err)
	}
	if _, err := DecodeBeatData(blob); err == nil {
		t.Fatalf("expected malformed blob error for trailing bytes")
	}
}
