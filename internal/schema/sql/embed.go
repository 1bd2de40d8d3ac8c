// Package sql contains the embedded migration scripts for each physical
// database layout enginedb knows how to create or open.
package sql

import "embed"

// MusicFiles holds the music-database migration steps used by engine
// version 1 (the two-file layout).
//
//go:embed v1/music/*.sql
var MusicFiles embed.FS

// PerformanceFiles holds the performance-database migration steps used by
// engine version 1.
//
//go:embed v1/performance/*.sql
var PerformanceFiles embed.FS

// CombinedFiles holds the single-database migration steps used by engine
// version 2.
//
//go:embed v2/*.sql
var CombinedFiles embed.FS
