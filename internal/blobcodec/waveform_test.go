package blobcodec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWaveformRoundTrip(t *testing.T) {
	in := Waveform{
		SamplesPerEntry: 105,
		Entries: []WaveformEntry{
			{Low: WaveformBand{0, 255}, Mid: WaveformBand{42, 255}, High: WaveformBand{255, 255}},
			{Low: WaveformBand{10, 20}, Mid: WaveformBand{30, 40}, High: WaveformBand{50, 60}},
		},
	}

	blob, err := EncodeWaveform(in)
	if err != nil {
		t.Fatalf("EncodeWaveform returned error: %v", err)
	}

	out, err := DecodeWaveform(blob)
	if err != nil {
		t.Fatalf("DecodeWaveform returned error: %v", err)
	}

	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestRequiredWaveformSamplesPerEntry(t *testing.T) {
	cases := []struct {
		rate int
		want int64
	}{
		{44100, 105},
		{48000, 115},
		{88200, 210},
	}
	for _, c := range cases {
		if got := RequiredWaveformSamplesPerEntry(c.rate); got != c.want {
			t.Errorf("RequiredWaveformSamplesPerEntry(%d) = %d, want %d", c.rate, got, c.want)
		}
	}
}

func TestRequiredWaveformEntryCount(t *testing.T) {
	const sampleCount = 16140600
	got := RequiredWaveformEntryCount(44100, sampleCount)
	want := int64(153720)
	if got != want {
		t.Fatalf("RequiredWaveformEntryCount = %d, want %d", got, want)
	}
}
