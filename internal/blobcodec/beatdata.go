package blobcodec

// markerLen is sample_offset(8) + beat_number(8) + unknown1(4) + unknown2(4).
const markerLen = 24

// BeatGridMarker is one point in a beat grid: a sample offset mapped to a
// beat number, plus two hardware-defined fields this library never
// interprets but must round-trip bit-exactly.
type BeatGridMarker struct {
	SampleOffset float64
	BeatNumber   float64
	Unknown1     int32
	Unknown2     int32
}

// BeatData is the decoded form of the beat_data blob column.
type BeatData struct {
	SampleRate    float64
	Samples       int64
	IsBeatgridSet bool
	Default       []BeatGridMarker
	Adjusted      []BeatGridMarker
}

func encodedMarkersLen(markers []BeatGridMarker) int {
	return 8 + len(markers)*markerLen
}

// EncodeBeatData serialises and zlib-compresses a BeatData record.
func EncodeBeatData(d BeatData) ([]byte, error) {
	size := 8 + 8 + 1 + encodedMarkersLen(d.Default) + encodedMarkersLen(d.Adjusted)
	buf := make([]byte, size)
	off := 0
	off = PutFloat64BE(buf, off, d.SampleRate)
	off = PutInt64BE(buf, off, d.Samples)
	off = PutUint8(buf, off, boolToU8(d.IsBeatgridSet))
	off = putMarkers(buf, off, d.Default)
	off = putMarkers(buf, off, d.Adjusted)
	if off != size {
		panic("blobcodec: beat data encoder wrote wrong length")
	}
	return Compress(buf)
}

func putMarkers(buf []byte, off int, markers []BeatGridMarker) int {
	off = PutInt64BE(buf, off, int64(len(markers)))
	for _, m := range markers {
		off = PutFloat64BE(buf, off, m.SampleOffset)
		off = PutFloat64BE(buf, off, m.BeatNumber)
		off = PutInt32BE(buf, off, m.Unknown1)
		off = PutInt32BE(buf, off, m.Unknown2)
	}
	return off
}

func getMarkers(buf []byte, off int) ([]BeatGridMarker, int, error) {
	n, off, err := Int64BE(buf, off)
	if err != nil {
		return nil, off, err
	}
	if n < 0 {
		return nil, off, malformed("negative beat marker count %d", n)
	}
	markers := make([]BeatGridMarker, 0, n)
	for i := int64(0); i < n; i++ {
		var m BeatGridMarker
		m.SampleOffset, off, err = Float64BE(buf, off)
		if err != nil {
			return nil, off, err
		}
		m.BeatNumber, off, err = Float64BE(buf, off)
		if err != nil {
			return nil, off, err
		}
		m.Unknown1, off, err = Int32BE(buf, off)
		if err != nil {
			return nil, off, err
		}
		m.Unknown2, off, err = Int32BE(buf, off)
		if err != nil {
			return nil, off, err
		}
		markers = append(markers, m)
	}
	return markers, off, nil
}

// DecodeBeatData reverses EncodeBeatData.
func DecodeBeatData(blob []byte) (BeatData, error) {
	buf, err := Uncompress(blob)
	if err != nil {
		return BeatData{}, err
	}

	var d BeatData
	off := 0
	d.SampleRate, off, err = Float64BE(buf, off)
	if err != nil {
		return BeatData{}, err
	}
	d.Samples, off, err = Int64BE(buf, off)
	if err != nil {
		return BeatData{}, err
	}
	var flag uint8
	flag, off, err = Uint8(buf, off)
	if err != nil {
		return BeatData{}, err
	}
	d.IsBeatgridSet = flag != 0

	d.Default, off, err = getMarkers(buf, off)
	if err != nil {
		return BeatData{}, err
	}
	d.Adjusted, off, err = getMarkers(buf, off)
	if err != nil {
		return BeatData{}, err
	}
	if off != len(buf) {
		return BeatData{}, malformed("beat data blob has %d trailing bytes", len(buf)-off)
	}
	return d, nil
}

func boolToU8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
