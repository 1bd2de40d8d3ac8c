// Package model holds the user-facing snapshot types: plain value records
// with no identity, as opposed to the persisted rows in internal/store.
package model

import "fmt"

// MusicalKey is one of the 24 standard musical keys, or KeyNone. Its
// integer value is the wire representation used by track_data.key and the
// Track.key column (0 = none, 1..24 = keys in this fixed order).
type MusicalKey int32

const (
	KeyNone MusicalKey = iota
	KeyAMajor
	KeyAMinor
	KeyBFlatMajor
	KeyBFlatMinor
	KeyBMajor
	KeyBMinor
	KeyCMajor
	KeyCMinor
	KeyDFlatMajor
	KeyDFlatMinor
	KeyDMajor
	KeyDMinor
	KeyEFlatMajor
	KeyEFlatMinor
	KeyEMajor
	KeyEMinor
	KeyFMajor
	KeyFMinor
	KeyGFlatMajor
	KeyGFlatMinor
	KeyGMajor
	KeyGMinor
	KeyAFlatMajor
	KeyAFlatMinor
)

var keyNames = [...]string{
	KeyNone:       "none",
	KeyAMajor:     "a-major",
	KeyAMinor:     "a-minor",
	KeyBFlatMajor: "b-flat-major",
	KeyBFlatMinor: "b-flat-minor",
	KeyBMajor:     "b-major",
	KeyBMinor:     "b-minor",
	KeyCMajor:     "c-major",
	KeyCMinor:     "c-minor",
	KeyDFlatMajor: "d-flat-major",
	KeyDFlatMinor: "d-flat-minor",
	KeyDMajor:     "d-major",
	KeyDMinor:     "d-minor",
	KeyEFlatMajor: "e-flat-major",
	KeyEFlatMinor: "e-flat-minor",
	KeyEMajor:     "e-major",
	KeyEMinor:     "e-minor",
	KeyFMajor:     "f-major",
	KeyFMinor:     "f-minor",
	KeyGFlatMajor: "g-flat-major",
	KeyGFlatMinor: "g-flat-minor",
	KeyGMajor:     "g-major",
	KeyGMinor:     "g-minor",
	KeyAFlatMajor: "a-flat-major",
	KeyAFlatMinor: "a-flat-minor",
}

// String returns the canonical lower-kebab-case name of the key.
func (k MusicalKey) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return fmt.Sprintf("key(%d)", int(k))
	}
	return keyNames[k]
}

// Valid reports whether k is one of the 25 known values (KeyNone plus the
// 24 musical keys).
func (k MusicalKey) Valid() bool {
	return k >= KeyNone && int(k) < len(keyNames)
}

// ParseMusicalKey looks up a MusicalKey by its String() form.
func ParseMusicalKey(s string) (MusicalKey, error) {
	for i, name := range keyNames {
		if name == s {
			return MusicalKey(i), nil
		}
	}
	return KeyNone, fmt.Errorf("model: unknown musical key %q", s)
}
