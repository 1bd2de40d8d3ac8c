package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Triple identifies a concrete on-disk schema: the physical engine layout
// plus the independent version of each logical database that layout
// carries. Engine version 1 keeps the music and performance schemas in
// separate files with independent version numbers; engine version 2
// collapses them into one file and versions them together.
type Triple struct {
	EngineVersion      int
	MusicVersion       string
	PerformanceVersion string
}

func (t Triple) String() string {
	return fmt.Sprintf("engine %d (music %s, performance %s)", t.EngineVersion, t.MusicVersion, t.PerformanceVersion)
}

func parseSemver(s string) (major, minor, patch int, err error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("schema: malformed version %q", s)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(p)
		if convErr != nil {
			return 0, 0, 0, fmt.Errorf("schema: malformed version %q: %w", s, convErr)
		}
		nums[i] = n
	}
	return nums[0], nums[1], nums[2], nil
}
