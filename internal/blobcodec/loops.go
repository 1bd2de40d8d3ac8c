package blobcodec

// numLoopSlots is the fixed number of loop slots encoded in a loops blob; a
// loop is absent when both is_start_set and is_end_set are zero.
const numLoopSlots = 8

// Loop is one decoded loop slot. A nil pointer in the parent slice
// represents an absent loop.
type Loop struct {
	Label string
	Start float64
	End   float64
	Color Color
}

// Loops is the decoded form of the loops blob column.
type Loops struct {
	Loops [numLoopSlots]*Loop
}

func encodedLoopLen(l *Loop) int {
	labelLen := 0
	if l != nil {
		labelLen = len(l.Label)
	}
	return 8 + labelLen + 8 + 8 + 1 + 1 + 4
}

// EncodeLoops serialises and zlib-compresses a Loops record.
func EncodeLoops(l Loops) ([]byte, error) {
	size := 8
	for _, loop := range l.Loops {
		size += encodedLoopLen(loop)
	}

	buf := make([]byte, size)
	off := 0
	off = PutInt64BE(buf, off, numLoopSlots)
	for _, loop := range l.Loops {
		off = putLoop(buf, off, loop)
	}
	if off != size {
		panic("blobcodec: loops encoder wrote wrong length")
	}
	return Compress(buf)
}

func putLoop(buf []byte, off int, l *Loop) int {
	if l == nil {
		off = PutInt64BE(buf, off, 0)
		off = PutFloat64BE(buf, off, 0)
		off = PutFloat64BE(buf, off, 0)
		off = PutUint8(buf, off, 0)
		off = PutUint8(buf, off, 0)
		off = PutUint8(buf, off, 0)
		off = PutUint8(buf, off, 0)
		off = PutUint8(buf, off, 0)
		off = PutUint8(buf, off, 0)
		return off
	}
	off = PutInt64BE(buf, off, int64(len(l.Label)))
	off = PutBytes(buf, off, []byte(l.Label))
	off = PutFloat64BE(buf, off, l.Start)
	off = PutFloat64BE(buf, off, l.End)
	off = PutUint8(buf, off, 1)
	off = PutUint8(buf, off, 1)
	off = PutUint8(buf, off, l.Color.A)
	off = PutUint8(buf, off, l.Color.R)
	off = PutUint8(buf, off, l.Color.G)
	off = PutUint8(buf, off, l.Color.B)
	return off
}

func getLoop(buf []byte, off int) (*Loop, int, error) {
	labelLen, off, err := Int64BE(buf, off)
	if err != nil {
		return nil, off, err
	}
	if labelLen < 0 {
		return nil, off, malformed("negative loop label length %d", labelLen)
	}
	labelBytes, off, err := Bytes(buf, off, int(labelLen))
	if err != nil {
		return nil, off, err
	}
	start, off, err := Float64BE(buf, off)
	if err != nil {
		return nil, off, err
	}
	end, off, err := Float64BE(buf, off)
	if err != nil {
		return nil, off, err
	}
	isStartSet, off, err := Uint8(buf, off)
	if err != nil {
		return nil, off, err
	}
	isEndSet, off, err := Uint8(buf, off)
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

	if isStartSet == 0 && isEndSet == 0 {
		return nil, off, nil
	}
	return &Loop{
		Label: string(labelBytes),
		Start: start,
		End:   end,
		Color: Color{A: a, R: r, G: g, B: b},
	}, off, nil
}

// DecodeLoops reverses EncodeLoops.
func DecodeLoops(blob []byte) (Loops, error) {
	buf, err := Uncompress(blob)
	if err != nil {
		return Loops{}, err
	}

	var l Loops
	off := 0
	n, off, err := Int64BE(buf, off)
	if err != nil {
		return Loops{}, err
	}
	if n != numLoopSlots {
		return Loops{}, malformed("loops blob declares %d loops, want %d", n, numLoopSlots)
	}
	for i := 0; i < numLoopSlots; i++ {
		l.Loops[i], off, err = getLoop(buf, off)
		if err != nil {
			return Loops{}, err
		}
	}
	if off != len(buf) {
		return Loops{}, malformed("loops blob has %d trailing bytes", len(buf)-off)
	}
	return l, nil
}
