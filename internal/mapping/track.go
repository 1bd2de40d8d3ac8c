// Package mapping converts between internal/model's identity-free
// snapshots and internal/store's persisted rows, per the rules in
// spec.md §4.5: rating clamping, the bpm/bpm_analyzed pair, key
// duplication into the track_data blob, sampling fan-out, and
// beatgrid/main-cue "adjusted" flag derivation.
package mapping

import (
	"fmt"

	"github.com/enginecrate/enginedb/internal/blobcodec"
	"github.com/enginecrate/enginedb/internal/model"
	"github.com/enginecrate/enginedb/internal/store"
)

// ToRows builds the Track and PerformanceData rows for snapshot, bound
// to a database whose uuid is databaseUUID. When snapshot.ImportInfo is
// nil, the returned TrackRow.OriginTrackID is left zero: the caller must
// set it to the row's own assigned id after insertion, which is how a
// locally created track ends up self-referencing ("this database, this
// id"). Re-encoding an existing track during an update passes the row's
// already-known id through unchanged instead.
func ToRows(snapshot model.TrackSnapshot, databaseUUID string) (store.TrackRow, store.PerformanceDataRow, error) {
	filename, extension := splitRelativePath(snapshot.RelativePath)
	if snapshot.RelativePath == "" {
		return store.TrackRow{}, store.PerformanceDataRow{}, &InvalidTrackSnapshotError{Msg: "relative_path is empty"}
	}
	if filename == "" {
		return store.TrackRow{}, store.PerformanceDataRow{}, &InvalidTrackSnapshotError{Msg: "relative_path has no file name component"}
	}
	if extension == "" {
		return store.TrackRow{}, store.PerformanceDataRow{}, &InvalidTrackSnapshotError{Msg: "file name has no extension"}
	}

	track := store.TrackRow{
		Path:        snapshot.RelativePath,
		Filename:    filename,
		AlbumArtID:  store.NoAlbumArtID,
		IsAvailable: true,
		Key:         int32(snapshot.Key),
		Rating:      writeRating(snapshot.Rating),
	}
	track.PlayOrder = snapshot.TrackNumber
	track.Length = snapshot.Duration
	track.Year = snapshot.Year
	track.Bitrate = snapshot.Bitrate
	track.FileBytes = snapshot.FileBytes
	track.Title = snapshot.Title
	track.Artist = snapshot.Artist
	track.Album = snapshot.Album
	track.Genre = snapshot.Genre
	track.Comment = snapshot.Comment
	track.Label = snapshot.Publisher
	track.Composer = snapshot.Composer
	track.TimeLastPlayed = snapshot.LastPlayedAt

	if snapshot.BPM != nil {
		analyzed := *snapshot.BPM
		rounded := int32(roundHalfAwayFromZero(analyzed))
		track.BPMAnalyzed = &analyzed
		track.BPM = &rounded
	}

	if snapshot.ImportInfo != nil {
		track.OriginDatabaseUUID = snapshot.ImportInfo.OriginDatabaseUUID
		track.OriginTrackID = snapshot.ImportInfo.OriginTrackID
	} else {
		track.OriginDatabaseUUID = databaseUUID
		track.OriginTrackID = 0 // filled in by the caller once the row's own id is known
	}

	sampleRate, sampleCount := 0.0, int64(0)
	if snapshot.Sampling != nil {
		sampleRate = snapshot.Sampling.SampleRate
		sampleCount = snapshot.Sampling.SampleCount
	}

	averageLoudness := 0.0
	if snapshot.AverageLoudness != nil {
		averageLoudness = *snapshot.AverageLoudness
	}
	trackDataBlob, err := blobcodec.EncodeTrackData(blobcodec.TrackData{
		SampleRate:      sampleRate,
		Samples:         sampleCount,
		AverageLoudness: averageLoudness,
		Key:             int32(snapshot.Key),
	})
	if err != nil {
		return store.TrackRow{}, store.PerformanceDataRow{}, fmt.Errorf("mapping: encode track data: %w", err)
	}

	isBeatgridSet := len(snapshot.DefaultBeatgrid) > 0 || len(snapshot.AdjustedBeatgrid) > 0 ||
		!beatgridsEqual(snapshot.DefaultBeatgrid, snapshot.AdjustedBeatgrid)
	beatDataBlob, err := blobcodec.EncodeBeatData(blobcodec.BeatData{
		SampleRate:    sampleRate,
		Samples:       sampleCount,
		IsBeatgridSet: isBeatgridSet,
		Default:       toBlobMarkers(snapshot.DefaultBeatgrid),
		Adjusted:      toBlobMarkers(snapshot.AdjustedBeatgrid),
	})
	if err != nil {
		return store.TrackRow{}, store.PerformanceDataRow{}, fmt.Errorf("mapping: encode beat data: %w", err)
	}

	defaultMainCue, adjustedMainCue := int64(0), int64(0)
	if snapshot.DefaultMainCue != nil {
		defaultMainCue = *snapshot.DefaultMainCue
	}
	isMainCueAdjusted := false
	if snapshot.AdjustedMainCue != nil {
		adjustedMainCue = *snapshot.AdjustedMainCue
		isMainCueAdjusted = adjustedMainCue != defaultMainCue
	}
	quickCues := blobcodec.QuickCues{
		DefaultMainCue:    float64(defaultMainCue),
		IsMainCueAdjusted: isMainCueAdjusted,
		AdjustedMainCue:   float64(adjustedMainCue),
	}
	for i, cue := range snapshot.HotCues {
		if cue == nil {
			continue
		}
		quickCues.Cues[i] = &blobcodec.HotCue{
			Label:        cue.Label,
			SampleOffset: cue.SampleOffset,
			Color:        blobcodec.Color(cue.Color),
		}
	}
	quickCuesBlob, err := blobcodec.EncodeQuickCues(quickCues)
	if err != nil {
		return store.TrackRow{}, store.PerformanceDataRow{}, fmt.Errorf("mapping: encode quick cues: %w", err)
	}

	var loops blobcodec.Loops
	for i, loop := range snapshot.Loops {
		if loop == nil {
			continue
		}
		loops.Loops[i] = &blobcodec.Loop{
			Label: loop.Label,
			Start: loop.Start,
			End:   loop.End,
			Color: blobcodec.Color(loop.Color),
		}
	}
	loopsBlob, err := blobcodec.EncodeLoops(loops)
	if err != nil {
		return store.TrackRow{}, store.PerformanceDataRow{}, fmt.Errorf("mapping: encode loops: %w", err)
	}

	samplesPerEntry := blobcodec.RequiredWaveformSamplesPerEntry(int(sampleRate))
	waveformEntries := make([]blobcodec.WaveformEntry, len(snapshot.Waveform))
	for i, e := range snapshot.Waveform {
		waveformEntries[i] = blobcodec.WaveformEntry{
			Low:  blobcodec.WaveformBand(e.Low),
			Mid:  blobcodec.WaveformBand(e.Mid),
			High: blobcodec.WaveformBand(e.High),
		}
	}
	waveformBlob, err := blobcodec.EncodeWaveform(blobcodec.Waveform{
		SamplesPerEntry: samplesPerEntry,
		Entries:         waveformEntries,
	})
	if err != nil {
		return store.TrackRow{}, store.PerformanceDataRow{}, fmt.Errorf("mapping: encode waveform: %w", err)
	}

	perf := store.PerformanceDataRow{
		IsAnalyzed:           snapshot.Sampling != nil,
		HasWaveform:          len(snapshot.Waveform) > 0,
		TrackData:            trackDataBlob,
		OverviewWaveFormData: waveformBlob,
		BeatData:             beatDataBlob,
		QuickCues:            quickCuesBlob,
		Loops:                loopsBlob,
	}

	if snapshot.ID != nil {
		track.ID = *snapshot.ID
		perf.ID = *snapshot.ID
	}

	return track, perf, nil
}

// FromRows reassembles a TrackSnapshot from a Track row and its
// matching PerformanceData row.
func FromRows(track store.TrackRow, perf store.PerformanceDataRow) (model.TrackSnapshot, error) {
	id := track.ID
	snapshot := model.TrackSnapshot{
		ID:              &id,
		TrackNumber:     track.PlayOrder,
		Duration:        track.Length,
		Year:            track.Year,
		Bitrate:         track.Bitrate,
		FileBytes:       track.FileBytes,
		Title:           track.Title,
		Artist:          track.Artist,
		Album:           track.Album,
		Genre:           track.Genre,
		Comment:         track.Comment,
		Publisher:       track.Label,
		Composer:        track.Composer,
		RelativePath:    track.Path,
		Key:             model.MusicalKey(track.Key),
		Rating:          readRating(track.Rating),
		LastPlayedAt:    track.TimeLastPlayed,
		DefaultMainCue:  nil,
		AdjustedMainCue: nil,
	}

	if track.OriginDatabaseUUID != "" {
		snapshot.ImportInfo = &model.ImportInfo{
			OriginDatabaseUUID: track.OriginDatabaseUUID,
			OriginTrackID:      track.OriginTrackID,
		}
	}

	if track.BPMAnalyzed != nil {
		snapshot.BPM = track.BPMAnalyzed
	} else if track.BPM != nil {
		v := float64(*track.BPM)
		snapshot.BPM = &v
	}

	if len(perf.TrackData) > 0 {
		trackData, err := blobcodec.DecodeTrackData(perf.TrackData)
		if err != nil {
			return model.TrackSnapshot{}, fmt.Errorf("mapping: decode track data: %w", err)
		}
		if trackData.SampleRate > 0 {
			snapshot.Sampling = &model.Sampling{SampleRate: trackData.SampleRate, SampleCount: trackData.Samples}
		}
		if trackData.AverageLoudness > 0 {
			v := trackData.AverageLoudness
			snapshot.AverageLoudness = &v
		}
	}

	if len(perf.BeatData) > 0 {
		beatData, err := blobcodec.DecodeBeatData(perf.BeatData)
		if err != nil {
			return model.TrackSnapshot{}, fmt.Errorf("mapping: decode beat data: %w", err)
		}
		snapshot.DefaultBeatgrid = fromBlobMarkers(beatData.Default)
		snapshot.AdjustedBeatgrid = fromBlobMarkers(beatData.Adjusted)
	}

	if len(perf.QuickCues) > 0 {
		quickCues, err := blobcodec.DecodeQuickCues(perf.QuickCues)
		if err != nil {
			return model.TrackSnapshot{}, fmt.Errorf("mapping: decode quick cues: %w", err)
		}
		defaultCue := int64(quickCues.DefaultMainCue)
		snapshot.DefaultMainCue = &defaultCue
		if quickCues.IsMainCueAdjusted {
			adjustedCue := int64(quickCues.AdjustedMainCue)
			snapshot.AdjustedMainCue = &adjustedCue
		}
		for i, cue := range quickCues.Cues {
			if cue == nil {
				continue
			}
			snapshot.HotCues[i] = &model.HotCue{
				Label:        cue.Label,
				SampleOffset: cue.SampleOffset,
				Color:        model.Color(cue.Color),
			}
		}
	}

	if len(perf.Loops) > 0 {
		loops, err := blobcodec.DecodeLoops(perf.Loops)
		if err != nil {
			return model.TrackSnapshot{}, fmt.Errorf("mapping: decode loops: %w", err)
		}
		for i, loop := range loops.Loops {
			if loop == nil {
				continue
			}
			snapshot.Loops[i] = &model.Loop{
				Label: loop.Label,
				Start: loop.Start,
				End:   loop.End,
				Color: model.Color(loop.Color),
			}
		}
	}

	if len(perf.OverviewWaveFormData) > 0 {
		waveform, err := blobcodec.DecodeWaveform(perf.OverviewWaveFormData)
		if err != nil {
			return model.TrackSnapshot{}, fmt.Errorf("mapping: decode waveform: %w", err)
		}
		entries := make([]model.WaveformEntry, len(waveform.Entries))
		for i, e := range waveform.Entries {
			entries[i] = model.WaveformEntry{
				Low:  model.WaveformBand(e.Low),
				Mid:  model.WaveformBand(e.Mid),
				High: model.WaveformBand(e.High),
			}
		}
		snapshot.Waveform = entries
	}

	return snapshot, nil
}

func writeRating(rating *int32) int32 {
	if rating == nil {
		return 0
	}
	v := *rating
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func readRating(row int32) *int32 {
	if row <= 0 || row > 100 {
		return nil
	}
	v := row
	return &v
}

func roundHalfAwayFromZero(v float64) int64 {
	if v < 0 {
		return int64(v - 0.5)
	}
	return int64(v + 0.5)
}

func toBlobMarkers(markers []model.BeatGridMarker) []blobcodec.BeatGridMarker {
	if len(markers) == 0 {
		return nil
	}
	out := make([]blobcodec.BeatGridMarker, len(markers))
	for i, m := range markers {
		out[i] = blobcodec.BeatGridMarker{
			SampleOffset: float64(m.SampleOffset),
			BeatNumber:   m.BeatNumber,
			Unknown1:     m.Unknown1,
			Unknown2:     m.Unknown2,
		}
	}
	return out
}

func fromBlobMarkers(markers []blobcodec.BeatGridMarker) []model.BeatGridMarker {
	if len(markers) == 0 {
		return nil
	}
	out := make([]model.BeatGridMarker, len(markers))
	for i, m := range markers {
		out[i] = model.BeatGridMarker{
			SampleOffset: roundHalfAwayFromZero(m.SampleOffset),
			BeatNumber:   m.BeatNumber,
			Unknown1:     m.Unknown1,
			Unknown2:     m.Unknown2,
		}
	}
	return out
}

func beatgridsEqual(a, b []model.BeatGridMarker) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
