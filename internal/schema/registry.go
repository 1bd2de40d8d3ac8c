// Package schema is the version registry for enginedb's on-disk formats.
// It knows every schema the library can open or create, the migration
// steps that move a database between them, and how to verify that a
// database file actually matches the version it claims.
package schema

import (
	"embed"
	"fmt"

	sqlfiles "github.com/enginecrate/enginedb/internal/schema/sql"
)

// Layout is the physical arrangement of tables across database files.
type Layout int

const (
	// LayoutTwoFile keeps the music and performance schemas in separate
	// files (engine version 1): m.db and p.db.
	LayoutTwoFile Layout = iota
	// LayoutSingleFile merges both schemas into one file (engine
	// version 2): m.db alone.
	LayoutSingleFile
)

// FileRole names one physical file a Version needs, and how to bring it
// up to that version's schema.
type FileRole struct {
	Name             string // "music", "performance", or "combined"
	FileName         string // base file name within the database directory
	MigrationsFS     embed.FS
	MigrationsSubdir string
	TargetStep       uint
	Expected         ExpectedSchema
	versionField     func(t Triple) string
}

// Version is one complete, nameable schema this library can create,
// open, or migrate to.
type Version struct {
	Triple      Triple
	Layout      Layout
	CrateIsView bool
	Files       []FileRole
}

func musicVersionOf(t Triple) string      { return t.MusicVersion }
func performanceVersionOf(t Triple) string { return t.PerformanceVersion }

// Registry lists every schema version in ascending order. Adjacent
// versions sharing a Layout and FileRole name are linked by the
// migration steps in that FileRole: upgrading means stepping each
// file's TargetStep forward.
var Registry = []Version{
	{
		Triple:      Triple{EngineVersion: 1, MusicVersion: "1.6.0", PerformanceVersion: "1.4.0"},
		Layout:      LayoutTwoFile,
		CrateIsView: false,
		Files: []FileRole{
			{
				Name: "music", FileName: "m.db",
				MigrationsFS: sqlfiles.MusicFiles, MigrationsSubdir: "v1/music",
				TargetStep: 1, Expected: musicV1_6_0, versionField: musicVersionOf,
			},
			{
				Name: "performance", FileName: "p.db",
				MigrationsFS: sqlfiles.PerformanceFiles, MigrationsSubdir: "v1/performance",
				TargetStep: 1, Expected: performanceV1_4_0, versionField: performanceVersionOf,
			},
		},
	},
	{
		Triple:      Triple{EngineVersion: 1, MusicVersion: "1.9.1", PerformanceVersion: "1.7.0"},
		Layout:      LayoutTwoFile,
		CrateIsView: true,
		Files: []FileRole{
			{
				Name: "music", FileName: "m.db",
				MigrationsFS: sqlfiles.MusicFiles, MigrationsSubdir: "v1/music",
				TargetStep: 2, Expected: musicV1_9_1, versionField: musicVersionOf,
			},
			{
				Name: "performance", FileName: "p.db",
				MigrationsFS: sqlfiles.PerformanceFiles, MigrationsSubdir: "v1/performance",
				TargetStep: 2, Expected: performanceV1_7_0, versionField: performanceVersionOf,
			},
		},
	},
	{
		Triple:      Triple{EngineVersion: 2, MusicVersion: "2.21.0", PerformanceVersion: "2.21.0"},
		Layout:      LayoutSingleFile,
		CrateIsView: true,
		Files: []FileRole{
			{
				Name: "combined", FileName: "m.db",
				MigrationsFS: sqlfiles.CombinedFiles, MigrationsSubdir: "v2",
				TargetStep: 1, Expected: combinedV2_21_0, versionField: musicVersionOf,
			},
		},
	},
}

// ErrUnknownVersion is returned by Lookup when no registered version
// matches the requested triple.
type ErrUnknownVersion struct {
	Triple Triple
}

func (e *ErrUnknownVersion) Error() string {
	return fmt.Sprintf("schema: unknown version %s", e.Triple)
}

// ResolveLatest returns the newest registered version.
func ResolveLatest() Version {
	return Registry[len(Registry)-1]
}

// Lookup finds the registered version exactly matching triple.
func Lookup(triple Triple) (Version, error) {
	for _, v := range Registry {
		if v.Triple == triple {
			return v, nil
		}
	}
	return Version{}, &ErrUnknownVersion{Triple: triple}
}

// indexOf returns the position of a version in Registry, or -1.
func indexOf(triple Triple) int {
	for i, v := range Registry {
		if v.Triple == triple {
			return i
		}
	}
	return -1
}

// UpgradePath returns the sequence of versions to pass through to move
// from current towards a later version, not including current itself.
// It only ever walks forward within the same Layout family: a version
// in a different Layout ends the walk, so a path that would need to
// cross from LayoutTwoFile to LayoutSingleFile stops short of its
// target. This library has no in-place conversion between layouts;
// UpgradeTo surfaces that as an error rather than silently stopping.
func UpgradePath(current Triple) ([]Version, error) {
	i := indexOf(current)
	if i < 0 {
		return nil, &ErrUnknownVersion{Triple: current}
	}
	var path []Version
	for j := i + 1; j < len(Registry); j++ {
		if Registry[j].Layout != Registry[i].Layout {
			break
		}
		path = append(path, Registry[j])
	}
	return path, nil
}
