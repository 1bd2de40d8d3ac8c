package blobcodec

// numHotCueSlots is the fixed number of hot-cue slots encoded in a
// quick_cues blob; an absent slot is encoded with sample_offset = -1, an
// empty label, and a zeroed colour.
const numHotCueSlots = 8

// Color is a hardware ARGB colour value for a hot cue or loop.
type Color struct {
	A, R, G, B uint8
}

// HotCue is one decoded quick-cue slot. A nil pointer in the parent slice
// represents an absent cue.
type HotCue struct {
	Label        string
	SampleOffset float64
	Color        Color
}

// QuickCues is the decoded form of the quick_cues blob column.
type QuickCues struct {
	Cues              [numHotCueSlots]*HotCue
	DefaultMainCue    float64
	IsMainCueAdjusted bool
	AdjustedMainCue   float64
}

func encodedCueLen(cue *HotCue) int {
	labelLen := 0
	if cue != nil {
		labelLen = len(cue.Label)
	}
	return 8 + labelLen + 8 + 4
}

// EncodeQuickCues serialises and zlib-compresses a QuickCues record.
func EncodeQuickCues(q QuickCues) ([]byte, error) {
	size := 8
	for _, c := range q.Cues {
		size += encodedCueLen(c)
	}
	size += 8 + 1 + 8

	buf := make([]byte, size)
	off := 0
	off = PutInt64BE(buf, off, numHotCueSlots)
	for _, c := range q.Cues {
		off = putCue(buf, off, c)
	}
	off = PutFloat64BE(buf, off, q.DefaultMainCue)
	off = PutUint8(buf, off, boolToU8(q.IsMainCueAdjusted))
	off = PutFloat64BE(buf, off, q.AdjustedMainCue)
	if off != size {
		panic("blobcodec: quick cues encoder wrote wrong length")
	}
	return Compress(buf)
}

func putCue(buf []byte, off int, cue *HotCue) int {
	if cue == nil {
		off = PutInt64BE(buf, off, 0)
		off = PutFloat64BE(buf, off, -1)
		off = PutUint8(buf, off, 0)
		off = PutUint8(buf, off, 0)
		off = PutUint8(buf, off, 0)
		off = PutUint8(buf, off, 0)
		return off
	}
	off = PutInt64BE(buf, off, int64(len(cue.Label)))
	off = PutBytes(buf, off, []byte(cue.Label))
	off = PutFloat64BE(buf, off, cue.SampleOffset)
	off = PutUint8(buf, off, cue.Color.A)
	off = PutUint8(buf, off, cue.Color.R)
	off = PutUint8(buf, off, cue.Color.G)
	off = PutUint8(buf, off, cue.Color.B)
	return off
}

func getCue(buf []byte, off int) (*HotCue, int, error) {
	labelLen, off, err := Int64BE(buf, off)
	if err != nil {
		return nil, off, err
	}
	if labelLen < 0 {
		return nil, off, malformed("negative cue label length %d", labelLen)
	}
	labelBytes, off, err := Bytes(buf, off, int(labelLen))
	if err != nil {
		return nil, off, err
	}
	sampleOffset, off, err := Float64BE(buf, off)
	if err != nil {
		return nil, off, err
	}
	a, off, err := Uint8(buf, off)
	if err != nil {
		return nil, off, err
	}
	r, off, err := Uint8(buf, off)
	if err != nil {
		return nil, off, err
	}
	g, off, err := Uint8(buf, off)
	if err != nil {
		return nil, off, err
	}
	b, off, err := Uint8(buf, off)
	if err != nil {
		return nil, off, err
	}

	if sampleOffset < 0 {
		return nil, off, nil
	}
	return &HotCue{
		Label:        string(labelBytes),
		SampleOffset: sampleOffset,
		Color:        Color{A: a, R: r, G: g, B: b},
	}, off, nil
}

// DecodeQuickCues reverses EncodeQuickCues.
func DecodeQuickCues(blob []byte) (QuickCues, error) {
	buf, err := Uncompress(blob)
	if err != nil {
		return QuickCues{}, err
	}

	var q QuickCues
	off := 0
	n, off, err := Int64BE(buf, off)
	if err != nil {
		return QuickCues{}, err
	}
	if n != numHotCueSlots {
		return QuickCues{}, malformed("quick cues blob declares %d cues, want %d", n, numHotCueSlots)
	}
	for i := 0; i < numHotCueSlots; i++ {
		q.Cues[i], off, err = getCue(buf, off)
		if err != nil {
			return QuickCues{}, err
		}
	}
	q.DefaultMainCue, off, err = Float64BE(buf, off)
	if err != nil {
		return QuickCues{}, err
	}
	var flag uint8
	flag, off, err = Uint8(buf, off)
	if err != nil {
		return QuickCues{}, err
	}
	q.IsMainCueAdjusted = flag != 0
	q.AdjustedMainCue, off, err = Float64BE(buf, off)
	if err != nil {
		return QuickCues{}, err
	}
	if off != len(buf) {
		return QuickCues{}, malformed("quick cues blob has %d trailing bytes", len(buf)-off)
	}
	return q, nil
}
