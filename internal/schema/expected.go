package schema

// ExpectedSchema names the tables, views and columns Verify checks for in
// one physical database file. Index and trigger names are checked too, but
// only by name: Verify confirms the engine's own objects are present, not
// that a third party hasn't added extras.
type ExpectedSchema struct {
	Tables   map[string][]string // table name -> column names
	Views    map[string][]string // view name -> column names
	Indexes  []string
	Triggers []string
}

var musicV1_6_0 = ExpectedSchema{
	Tables: map[string][]string{
		"Information": {"id", "uuid", "schemaVersionMajor", "schemaVersionMinor", "schemaVersionPatch"},
		"AlbumArt":    {"id", "hash", "imageData"},
		"Track": {
			"id", "playOrder", "length", "bpm", "bpmAnalyzed", "year", "path", "filename",
			"bitrate", "trackType", "isAnalyzed", "isMetadataOfPackedTrackChanged",
			"dateCreated", "dateAdded", "isAvailable", "fileBytes",
			"title", "artist", "album", "genre", "comment", "label", "composer", "key",
			"rating", "albumArtId", "timeLastPlayed", "originDatabaseUuid", "originTrackId",
		},
		"Crate":           {"id", "name"},
		"CrateParentList": {"crateOriginId", "crateParentId"},
		"CrateTrackList":  {"crateId", "trackId", "position"},
	},
	Indexes: []string{"Track_path_idx"},
}

var musicV1_9_1 = ExpectedSchema{
	Tables: map[string][]string{
		"Information":     musicV1_6_0.Tables["Information"],
		"AlbumArt":        musicV1_6_0.Tables["AlbumArt"],
		"Track":           musicV1_6_0.Tables["Track"],
		"List":            {"id", "type", "name"},
		"CrateParentList": {"crateOriginId", "crateParentId"},
		"CrateTrackList":  {"crateId", "trackId", "position"},
	},
	Views: map[string][]string{
		"Crate": {"id", "name"},
	},
	Indexes:  []string{"Track_path_idx"},
	Triggers: []string{"Crate_insert", "Crate_update", "Crate_delete"},
}

var performanceV1_4_0 = ExpectedSchema{
	Tables: map[string][]string{
		"Information": {"id", "uuid", "schemaVersionMajor", "schemaVersionMinor", "schemaVersionPatch"},
		"PerformanceData": {
			"id", "isAnalyzed", "hasWaveform", "trackData", "overviewWaveFormData",
			"beatData", "quickCues", "loops",
		},
	},
}

var performanceV1_7_0 = ExpectedSchema{
	Tables:  performanceV1_4_0.Tables,
	Indexes: []string{"PerformanceData_hasWaveform_idx"},
}

var combinedV2_21_0 = ExpectedSchema{
	Tables: map[string][]string{
		"Information":     musicV1_6_0.Tables["Information"],
		"AlbumArt":        musicV1_6_0.Tables["AlbumArt"],
		"Track":           musicV1_6_0.Tables["Track"],
		"PerformanceData": performanceV1_4_0.Tables["PerformanceData"],
		"List":            {"id", "type", "name"},
		"CrateParentList": {"crateOriginId", "crateParentId"},
		"CrateTrackList":  {"crateId", "trackId", "position"},
	},
	Views: map[string][]string{
		"Crate": {"id", "name"},
	},
	Indexes:  []string{"Track_path_idx", "PerformanceData_hasWaveform_idx"},
	Triggers: []string{"Crate_insert", "Crate_update", "Crate_delete"},
}
