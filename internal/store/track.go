package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// TrackRow is the Track table row: the scalar-metadata half of a track,
// kept in the music database. The blob-bearing half lives in
// PerformanceDataRow, keyed by the same id in the performance database.
type TrackRow struct {
	ID                             int64
	PlayOrder                      *int32
	Length                         *int64
	BPM                            *int32
	BPMAnalyzed                    *float64
	Year                           *int32
	Path                           string
	Filename                       string
	Bitrate                        *int32
	TrackType                      *int32
	IsAnalyzed                     bool
	IsMetadataOfPackedTrackChanged bool
	DateCreated                    *int64
	DateAdded                      *int64
	IsAvailable                    bool
	FileBytes                      *int64
	Title                          *string
	Artist                         *string
	Album                          *string
	Genre                          *string
	Comment                        *string
	Label                          *string
	Composer                       *string
	Key                            int32
	Rating                         int32
	AlbumArtID                     int64
	TimeLastPlayed                 *int64
	OriginDatabaseUUID             string
	OriginTrackID                  int64
}

// TrackStore is the row store for Track.
type TrackStore struct {
	db DBTX
}

// NewTrackStore builds a TrackStore over db.
func NewTrackStore(db DBTX) *TrackStore {
	return &TrackStore{db: db}
}

const trackColumns = `id, playOrder, length, bpm, bpmAnalyzed, year, path, filename, bitrate,
	trackType, isAnalyzed, isMetadataOfPackedTrackChanged, dateCreated, dateAdded, isAvailable,
	fileBytes, title, artist, album, genre, comment, label, composer, key, rating, albumArtId,
	timeLastPlayed, originDatabaseUuid, originTrackId`

func scanTrack(row interface{ Scan(dest ...any) error }) (TrackRow, error) {
	var (
		t                              TrackRow
		playOrder, length, bitrate     sql.NullInt64
		year, trackType                sql.NullInt64
		bpm                            sql.NullInt64
		bpmAnalyzed                    sql.NullFloat64
		dateCreated, dateAdded         sql.NullInt64
		fileBytes, timeLastPlayed      sql.NullInt64
		title, artist, album, genre    sql.NullString
		comment, label, composer       sql.NullString
		isAnalyzed, isAvailable        int64
		isMetadataOfPackedTrackChanged int64
	)
	err := row.Scan(
		&t.ID, &playOrder, &length, &bpm, &bpmAnalyzed, &year, &t.Path, &t.Filename, &bitrate,
		&trackType, &isAnalyzed, &isMetadataOfPackedTrackChanged, &dateCreated, &dateAdded, &isAvailable,
		&fileBytes, &title, &artist, &album, &genre, &comment, &label, &composer, &t.Key, &t.Rating,
		&t.AlbumArtID, &timeLastPlayed, &t.OriginDatabaseUUID, &t.OriginTrackID,
	)
	if err != nil {
		return TrackRow{}, err
	}
	t.PlayOrder = optionalInt32(playOrder)
	t.Length = optionalInt64(length)
	t.BPM = optionalInt32(bpm)
	t.BPMAnalyzed = optionalFloat64(bpmAnalyzed)
	t.Year = optionalInt32(year)
	t.Bitrate = optionalInt32(bitrate)
	t.TrackType = optionalInt32(trackType)
	t.IsAnalyzed = isAnalyzed != 0
	t.IsMetadataOfPackedTrackChanged = isMetadataOfPackedTrackChanged != 0
	t.DateCreated = optionalInt64(dateCreated)
	t.DateAdded = optionalInt64(dateAdded)
	t.IsAvailable = isAvailable != 0
	t.FileBytes = optionalInt64(fileBytes)
	t.Title = optionalString(title)
	t.Artist = optionalString(artist)
	t.Album = optionalString(album)
	t.Genre = optionalString(genre)
	t.Comment = optionalString(comment)
	t.Label = optionalString(label)
	t.Composer = optionalString(composer)
	return t, nil
}

// Exists reports whether id names a Track row.
func (s *TrackStore) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM Track WHERE id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("store: track exists: %w", err)
	}
	return count > 0, nil
}

// Get returns the Track row for id.
func (s *TrackStore) Get(ctx context.Context, id int64) (TrackRow, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+trackColumns+` FROM Track WHERE id = ?`, id)
	t, err := scanTrack(row)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackRow{}, ErrNotFound
	}
	if err != nil {
		return TrackRow{}, fmt.Errorf("store: get track %d: %w", id, err)
	}
	return t, nil
}

// AllIDs returns every Track id.
func (s *TrackStore) AllIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM Track ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: list track ids: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan track id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ByRelativePath returns the ids of tracks whose path column matches
// relativePath.
func (s *TrackStore) ByRelativePath(ctx context.Context, relativePath string) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM Track WHERE path = ? ORDER BY id`, relativePath)
	if err != nil {
		return nil, fmt.Errorf("store: tracks by relative path: %w", err)
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan track id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Add inserts a new Track row, ignoring row.ID, and returns the
// assigned id.
func (s *TrackStore) Add(ctx context.Context, t TrackRow) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO Track (
		playOrder, length, bpm, bpmAnalyzed, year, path, filename, bitrate, trackType,
		isAnalyzed, isMetadataOfPackedTrackChanged, dateCreated, dateAdded, isAvailable,
		fileBytes, title, artist, album, genre, comment, label, composer, key, rating,
		albumArtId, timeLastPlayed, originDatabaseUuid, originTrackId
	) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		nullInt64FromPtr(i64(t.PlayOrder)), nullInt64FromPtr(t.Length), nullInt64FromPtr(i64(t.BPM)), nullFloat64FromPtr(t.BPMAnalyzed),
		nullInt64FromPtr(i64(t.Year)), t.Path, t.Filename, nullInt64FromPtr(i64(t.Bitrate)), nullInt64FromPtr(i64(t.TrackType)),
		boolToInt64(t.IsAnalyzed), boolToInt64(t.IsMetadataOfPackedTrackChanged), nullInt64FromPtr(t.DateCreated), nullInt64FromPtr(t.DateAdded),
		boolToInt64(t.IsAvailable), nullInt64FromPtr(t.FileBytes), nullString(t.Title), nullString(t.Artist), nullString(t.Album),
		nullString(t.Genre), nullString(t.Comment), nullString(t.Label), nullString(t.Composer), t.Key, t.Rating,
		t.AlbumArtID, nullInt64FromPtr(t.TimeLastPlayed), t.OriginDatabaseUUID, t.OriginTrackID,
	)
	if err != nil {
		return 0, fmt.Errorf("store: add track: %w", err)
	}
	return res.LastInsertId()
}

// Update replaces every column of the Track row identified by t.ID.
func (s *TrackStore) Update(ctx context.Context, t TrackRow) error {
	res, err := s.db.ExecContext(ctx, `UPDATE Track SET
		playOrder=?, length=?, bpm=?, bpmAnalyzed=?, year=?, path=?, filename=?, bitrate=?, trackType=?,
		isAnalyzed=?, isMetadataOfPackedTrackChanged=?, dateCreated=?, dateAdded=?, isAvailable=?,
		fileBytes=?, title=?, artist=?, album=?, genre=?, comment=?, label=?, composer=?, key=?, rating=?,
		albumArtId=?, timeLastPlayed=?, originDatabaseUuid=?, originTrackId=?
		WHERE id=?`,
		nullInt64FromPtr(i64(t.PlayOrder)), nullInt64FromPtr(t.Length), nullInt64FromPtr(i64(t.BPM)), nullFloat64FromPtr(t.BPMAnalyzed),
		nullInt64FromPtr(i64(t.Year)), t.Path, t.Filename, nullInt64FromPtr(i64(t.Bitrate)), nullInt64FromPtr(i64(t.TrackType)),
		boolToInt64(t.IsAnalyzed), boolToInt64(t.IsMetadataOfPackedTrackChanged), nullInt64FromPtr(t.DateCreated), nullInt64FromPtr(t.DateAdded),
		boolToInt64(t.IsAvailable), nullInt64FromPtr(t.FileBytes), nullString(t.Title), nullString(t.Artist), nullString(t.Album),
		nullString(t.Genre), nullString(t.Comment), nullString(t.Label), nullString(t.Composer), t.Key, t.Rating,
		t.AlbumArtID, nullInt64FromPtr(t.TimeLastPlayed), t.OriginDatabaseUUID, t.OriginTrackID,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("store: update track %d: %w", t.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the Track row for id. Cascades to CrateTrackList are the
// schema's responsibility; the caller must separately delete the
// matching PerformanceData row in the performance database (see
// internal/store.Coordinator).
func (s *TrackStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM Track WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete track %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetTitle is a hot setter for the title column.
func (s *TrackStore) SetTitle(ctx context.Context, id int64, title *string) error {
	return s.setColumn(ctx, id, "title", nullString(title))
}

// SetBPM sets both bpm and bpmAnalyzed together, matching the domain
// mapping rule that the two always agree.
func (s *TrackStore) SetBPM(ctx context.Context, id int64, bpm *float64) error {
	var intVal sql.NullInt64
	var floatVal sql.NullFloat64
	if bpm != nil {
		intVal = sql.NullInt64{Int64: int64(round(*bpm)), Valid: true}
		floatVal = sql.NullFloat64{Float64: *bpm, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `UPDATE Track SET bpm = ?, bpmAnalyzed = ? WHERE id = ?`, intVal, floatVal, id)
	if err != nil {
		return fmt.Errorf("store: set bpm on track %d: %w", id, err)
	}
	return nil
}

// SetRating sets the rating column, clamped to 0..100.
func (s *TrackStore) SetRating(ctx context.Context, id int64, rating int32) error {
	if rating < 0 {
		rating = 0
	}
	if rating > 100 {
		rating = 100
	}
	return s.setColumn(ctx, id, "rating", rating)
}

func (s *TrackStore) setColumn(ctx context.Context, id int64, column string, value any) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`UPDATE Track SET %s = ? WHERE id = ?`, column), value, id)
	if err != nil {
		return fmt.Errorf("store: set %s on track %d: %w", column, id, err)
	}
	return nil
}

func i64(v *int32) *int64 {
	if v == nil {
		return nil
	}
	x := int64(*v)
	return &x
}

func round(v float64) int64 {
	if v < 0 {
		return int64(v - 0.5)
	}
	return int64(v + 0.5)
}
