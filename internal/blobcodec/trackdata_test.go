package blobcodec

import "testing"

func TestTrackDataRoundTrip(t *testing.T) {
	in := TrackData{
		SampleRate:      44100,
		Samples:         16140600,
		AverageLoudness: 0.85,
		Key:             5,
	}

	blob, err := EncodeTrackData(in)
	if err != nil {
		t.Fatalf("EncodeTrackData returned error: %v", err)
	}

	out, err := DecodeTrackData(blob)
	if err != nil {
		t.Fatalf("DecodeTrackData returned error: %v", err)
	}

	if out != in {
		t.Fatalf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestTrackDataUnknownSamples(t *testing.T) {
	in := TrackData{SampleRate: 48000, Samples: 0, AverageLoudness: 0.5, Key: 0}

	blob, err := EncodeTrackData(in)
	if err != nil {
		t.Fatalf("EncodeTrackData returned error: %v", err)
	}
	out, err := DecodeTrackData(blob)
	if err != nil {
		t.Fatalf("DecodeTrackData returned error: %v", err)
	}
	if out.Samples != 0 {
		t.Fatalf("expected samples 0 (unknown), got %d", out.Samples)
	}
}

func TestDecodeTrackDataMalformed(t *testing.T) {
	blob, err := Compress([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Compress returned error: %v", err)
	}
	if _, err := DecodeTrackData(blob); err == nil {
		t.Fatalf("expected malformed blob error for short payload")
	}
}
