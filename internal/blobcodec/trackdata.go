package blobcodec

// trackDataLen is the fixed decompressed size of a track-data blob:
// sample_rate(8) + samples(8) + average_loudness(8) + key(4).
const trackDataLen = 28

// TrackData is the decoded form of the track_data blob column: sampling
// rate/count, loudness, and the musical key, duplicated here from the
// columns the domain layer also tracks so that hardware reading this blob
// in isolation gets a consistent view.
type TrackData struct {
	SampleRate      float64
	Samples         int64 // 0 means unknown
	AverageLoudness float64
	Key             int32 // 0 = none, 1..24 = fixed key ordering
}

// EncodeTrackData serialises and zlib-compresses a TrackData record.
func EncodeTrackData(d TrackData) ([]byte, error) {
	buf := make([]byte, trackDataLen)
	off := 0
	off = PutFloat64BE(buf, off, d.SampleRate)
	off = PutInt64BE(buf, off, d.Samples)
	off = PutFloat64BE(buf, off, d.AverageLoudness)
	off = PutInt32BE(buf, off, d.Key)
	if off != trackDataLen {
		panic("blobcodec: track data encoder wrote wrong length")
	}
	return Compress(buf)
}

// DecodeTrackData reverses EncodeTrackData.
func DecodeTrackData(blob []byte) (TrackData, error) {
	buf, err := Uncompress(blob)
	if err != nil {
		return TrackData{}, err
	}
	if len(buf) != trackDataLen {
		return TrackData{}, malformed("track data blob has length %d, want %d", len(buf), trackDataLen)
	}

	var d TrackData
	off := 0
	d.SampleRate, off, err = Float64BE(buf, off)
	if err != nil {
		return TrackData{}, err
	}
	d.Samples, off, err = Int64BE(buf, off)
	if err != nil {
		return TrackData{}, err
	}
	d.AverageLoudness, off, err = Float64BE(buf, off)
	if err != nil {
		return TrackData{}, err
	}
	d.Key, _, err = Int32BE(buf, off)
	if err != nil {
		return TrackData{}, err
	}
	return d, nil
}
