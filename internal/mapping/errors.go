package mapping

import "fmt"

// InvalidTrackSnapshotError is returned when a snapshot cannot be mapped
// to a persisted row: an empty relative path, a file name with no
// extension, or (on update) a snapshot whose id disagrees with the row
// being replaced.
type InvalidTrackSnapshotError struct {
	Msg string
}

func (e *InvalidTrackSnapshotError) Error() string {
	return fmt.Sprintf("mapping: invalid track snapshot: %s", e.Msg)
}
