package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/enginecrate/enginedb/internal/blobcodec"
)

// PerformanceDataRow is the PerformanceData table row: the blob-bearing
// half of a track, kept in the performance database and keyed by the
// same id as the matching Track row.
type PerformanceDataRow struct {
	ID                   int64
	IsAnalyzed           bool
	HasWaveform          bool
	TrackData            []byte
	OverviewWaveFormData []byte
	BeatData             []byte
	QuickCues            []byte
	Loops                []byte
}

// PerformanceDataStore is the row store for PerformanceData.
type PerformanceDataStore struct {
	db DBTX
}

// NewPerformanceDataStore builds a PerformanceDataStore over db.
func NewPerformanceDataStore(db DBTX) *PerformanceDataStore {
	return &PerformanceDataStore{db: db}
}

const performanceDataColumns = `id, isAnalyzed, hasWaveform, trackData, overviewWaveFormData, beatData, quickCues, loops`

// Exists reports whether id names a PerformanceData row.
func (s *PerformanceDataStore) Exists(ctx context.Context, id int64) (bool, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM PerformanceData WHERE id = ?`, id).Scan(&count); err != nil {
		return false, fmt.Errorf("store: performance data exists: %w", err)
	}
	return count > 0, nil
}

// Get returns the PerformanceData row for id.
func (s *PerformanceDataStore) Get(ctx context.Context, id int64) (PerformanceDataRow, error) {
	var (
		row                    PerformanceDataRow
		isAnalyzed, hasWaveform int64
	)
	err := s.db.QueryRowContext(ctx, `SELECT `+performanceDataColumns+` FROM PerformanceData WHERE id = ?`, id).Scan(
		&row.ID, &isAnalyzed, &hasWaveform, &row.TrackData, &row.OverviewWaveFormData, &row.BeatData, &row.QuickCues, &row.Loops,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return PerformanceDataRow{}, ErrNotFound
	}
	if err != nil {
		return PerformanceDataRow{}, fmt.Errorf("store: get performance data %d: %w", id, err)
	}
	row.IsAnalyzed = isAnalyzed != 0
	row.HasWaveform = hasWaveform != 0
	return row, nil
}

// Add inserts a new PerformanceData row with the given id (the
// performance and music databases share track identity, so this is not
// an auto-increment insert: the id comes from the matching Track row).
func (s *PerformanceDataStore) Add(ctx context.Context, row PerformanceDataRow) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO PerformanceData (id, isAnalyzed, hasWaveform, trackData, overviewWaveFormData, beatData, quickCues, loops)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		row.ID, boolToInt64(row.IsAnalyzed), boolToInt64(row.HasWaveform),
		row.TrackData, row.OverviewWaveFormData, row.BeatData, row.QuickCues, row.Loops,
	)
	if err != nil {
		return fmt.Errorf("store: add performance data %d: %w", row.ID, err)
	}
	return nil
}

// Update replaces every column of the PerformanceData row identified by
// row.ID.
func (s *PerformanceDataStore) Update(ctx context.Context, row PerformanceDataRow) error {
	res, err := s.db.ExecContext(ctx, `UPDATE PerformanceData SET
		isAnalyzed=?, hasWaveform=?, trackData=?, overviewWaveFormData=?, beatData=?, quickCues=?, loops=?
		WHERE id=?`,
		boolToInt64(row.IsAnalyzed), boolToInt64(row.HasWaveform),
		row.TrackData, row.OverviewWaveFormData, row.BeatData, row.QuickCues, row.Loops,
		row.ID,
	)
	if err != nil {
		return fmt.Errorf("store: update performance data %d: %w", row.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the PerformanceData row for id.
func (s *PerformanceDataStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM PerformanceData WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store: delete performance data %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetBeatData is a hot setter for the beatData blob column.
func (s *PerformanceDataStore) SetBeatData(ctx context.Context, id int64, blob []byte) error {
	return s.setColumn(ctx, id, "beatData", blob)
}

// SetQuickCues is a hot setter for the quickCues blob column.
func (s *PerformanceDataStore) SetQuickCues(ctx context.Context, id int64, blob []byte) error {
	return s.setColumn(ctx, id, "quickCues", blob)
}

// SetLoops is a hot setter for the loops blob column.
func (s *PerformanceDataStore) SetLoops(ctx context.Context, id int64, blob []byte) error {
	return s.setColumn(ctx, id, "loops", blob)
}

// HotCueAt returns the hot cue at slot index on track id, or nil if
// that slot is empty. index must be within [0, numHotCueSlots).
func (s *PerformanceDataStore) HotCueAt(ctx context.Context, id int64, index int) (*blobcodec.HotCue, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	cues, err := decodeQuickCues(row.QuickCues)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(cues.Cues) {
		return nil, fmt.Errorf("store: hot cue index %d out of range", index)
	}
	return cues.Cues[index], nil
}

// SetHotCueAt reads the current quickCues blob for id, replaces slot
// index with cue (nil clears the slot), and writes the re-encoded blob
// back. This is a read-modify-write of a single slot, not a whole-blob
// overwrite.
func (s *PerformanceDataStore) SetHotCueAt(ctx context.Context, id int64, index int, cue *blobcodec.HotCue) error {
	row, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	cues, err := decodeQuickCues(row.QuickCues)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(cues.Cues) {
		return fmt.Errorf("store: hot cue index %d out of range", index)
	}
	cues.Cues[index] = cue
	blob, err := blobcodec.EncodeQuickCues(cues)
	if err != nil {
		return fmt.Errorf("store: encode quick cues: %w", err)
	}
	return s.SetQuickCues(ctx, id, blob)
}

// LoopAt returns the loop at slot index on track id, or nil if that
// slot is empty. index must be within [0, numLoopSlots).
func (s *PerformanceDataStore) LoopAt(ctx context.Context, id int64, index int) (*blobcodec.Loop, error) {
	row, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	loops, err := decodeLoops(row.Loops)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(loops.Loops) {
		return nil, fmt.Errorf("store: loop index %d out of range", index)
	}
	return loops.Loops[index], nil
}

// SetLoopAt reads the current loops blob for id, replaces slot index
// with l (nil clears the slot), and writes the re-encoded blob back.
func (s *PerformanceDataStore) SetLoopAt(ctx context.Context, id int64, index int, l *blobcodec.Loop) error {
	row, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	loops, err := decodeLoops(row.Loops)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(loops.Loops) {
		return fmt.Errorf("store: loop index %d out of range", index)
	}
	loops.Loops[index] = l
	blob, err := blobcodec.EncodeLoops(loops)
	if err != nil {
		return fmt.Errorf("store: encode loops: %w", err)
	}
	return s.SetLoops(ctx, id, blob)
}

// decodeQuickCues decodes an empty blob (a track with no performance
// data analyzed yet) as a zero-value QuickCues rather than erroring.
func decodeQuickCues(blob []byte) (blobcodec.QuickCues, error) {
	if len(blob) == 0 {
		return blobcodec.QuickCues{}, nil
	}
	cues, err := blobcodec.DecodeQuickCues(blob)
	if err != nil {
		return blobcodec.QuickCues{}, fmt.Errorf("store: decode quick cues: %w", err)
	}
	return cues, nil
}

// decodeLoops decodes an empty blob as a zero-value Loops rather than
// erroring.
func decodeLoops(blob []byte) (blobcodec.Loops, error) {
	if len(blob) == 0 {
		return blobcodec.Loops{}, nil
	}
	loops, err := blobcodec.DecodeLoops(blob)
	if err != nil {
		return blobcodec.Loops{}, fmt.Errorf("store: decode loops: %w", err)
	}
	return loops, nil
}

func (s *PerformanceDataStore) setColumn(ctx context.Context, id int64, column string, value []byte) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`UPDATE PerformanceData SET %s = ? WHERE id = ?`, column), value, id)
	if err != nil {
		return fmt.Errorf("store: set %s on performance data %d: %w", column, id, err)
	}
	return nil
}
