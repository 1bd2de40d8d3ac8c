package blobcodec

// WaveformBand is the value/opacity pair for one frequency band at one
// waveform entry.
type WaveformBand struct {
	Value   uint8
	Opacity uint8
}

// WaveformEntry is one time-window's worth of low/mid/high band data.
type WaveformEntry struct {
	Low, Mid, High WaveformBand
}

// Waveform is the decoded form of the overview_waveform_data blob column.
type Waveform struct {
	SamplesPerEntry int64
	Entries         []WaveformEntry
}

const waveformEntryLen = 6 // 3 bands * (value + opacity)

// EncodeWaveform serialises and zlib-compresses a Waveform record.
func EncodeWaveform(w Waveform) ([]byte, error) {
	size := 8 + 8 + len(w.Entries)*waveformEntryLen
	buf := make([]byte, size)
	off := 0
	off = PutInt64BE(buf, off, int64(len(w.Entries)))
	off = PutInt64BE(buf, off, w.SamplesPerEntry)
	for _, e := range w.Entries {
		off = putBand(buf, off, e.Low)
		off = putBand(buf, off, e.Mid)
		off = putBand(buf, off, e.High)
	}
	if off != size {
		panic("blobcodec: waveform encoder wrote wrong length")
	}
	return Compress(buf)
}

func putBand(buf []byte, off int, b WaveformBand) int {
	off = PutUint8(buf, off, b.Value)
	off = PutUint8(buf, off, b.Opacity)
	return off
}

func getBand(buf []byte, off int) (WaveformBand, int, error) {
	value, off, err := Uint8(buf, off)
	if err != nil {
		return WaveformBand{}, off, err
	}
	opacity, off, err := Uint8(buf, off)
	if err != nil {
		return WaveformBand{}, off, err
	}
	return WaveformBand{Value: value, Opacity: opacity}, off, nil
}

// DecodeWaveform reverses EncodeWaveform. n_entries and samples_per_entry
// are trusted as read, per spec.
func DecodeWaveform(blob []byte) (Waveform, error) {
	buf, err := Uncompress(blob)
	if err != nil {
		return Waveform{}, err
	}

	var w Waveform
	off := 0
	n, off, err := Int64BE(buf, off)
	if err != nil {
		return Waveform{}, err
	}
	if n < 0 {
		return Waveform{}, malformed("negative waveform entry count %d", n)
	}
	w.SamplesPerEntry, off, err = Int64BE(buf, off)
	if err != nil {
		return Waveform{}, err
	}

	w.Entries = make([]WaveformEntry, 0, n)
	for i := int64(0); i < n; i++ {
		var e WaveformEntry
		e.Low, off, err = getBand(buf, off)
		if err != nil {
			return Waveform{}, err
		}
		e.Mid, off, err = getBand(buf, off)
		if err != nil {
			return Waveform{}, err
		}
		e.High, off, err = getBand(buf, off)
		if err != nil {
			return Waveform{}, err
		}
		w.Entries = append(w.Entries, e)
	}
	if off != len(buf) {
		return Waveform{}, malformed("waveform blob has %d trailing bytes", len(buf)-off)
	}
	return w, nil
}

// RequiredWaveformSamplesPerEntry returns the hardware-mandated waveform
// resolution for a given sample rate (spec §6.4): the known rates have
// fixed constants, and any other rate scales from the 44100 Hz constant.
func RequiredWaveformSamplesPerEntry(sampleRate int) int64 {
	switch sampleRate {
	case 44100:
		return 105
	case 48000:
		return 115
	default:
		return ceilDiv(int64(sampleRate)*105, 44100)
	}
}

// RequiredWaveformEntryCount returns ceil(sampleCount / samplesPerEntry),
// the number of waveform entries a writer must produce for sampleCount
// audio samples at the given sample rate.
func RequiredWaveformEntryCount(sampleRate int, sampleCount int64) int64 {
	perEntry := RequiredWaveformSamplesPerEntry(sampleRate)
	return ceilDiv(sampleCount, perEntry)
}

func ceilDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}
