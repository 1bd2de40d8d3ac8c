package store

import (
	"context"
	"testing"

	"github.com/enginecrate/enginedb/internal/schema"
)

func setupMusicDB(t *testing.T, triple schema.Triple) (*TrackStore, func()) {
	t.Helper()
	dir := t.TempDir()
	v, err := schema.Lookup(triple)
	if err != nil {
		t.Fatalf("schema.Lookup returned error: %v", err)
	}
	if _, err := schema.Create(dir, v); err != nil {
		t.Fatalf("schema.Create returned error: %v", err)
	}

	db, err := openTestDB(dir, "m.db")
	if err != nil {
		t.Fatalf("openTestDB returned error: %v", err)
	}
	return NewTrackStore(db), func() { db.Close() }
}

func TestTrackAddGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	store, closeDB := setupMusicDB(t, schema.Triple{EngineVersion: 2, MusicVersion: "2.21.0", PerformanceVersion: "2.21.0"})
	defer closeDB()

	title := "Some Song"
	row := TrackRow{
		Path:                "01 - Some Artist - Some Song.mp3",
		Filename:            "01 - Some Artist - Some Song.mp3",
		Title:               &title,
		AlbumArtID:          NoAlbumArtID,
		OriginDatabaseUUID:  "db-uuid",
		OriginTrackID:       1,
		IsAvailable:         true,
	}

	id, err := store.Add(ctx, row)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if id == 0 {
		t.Fatal("Add returned zero id")
	}

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Title == nil || *got.Title != title {
		t.Fatalf("Get title = %v, want %q", got.Title, title)
	}

	got.Title = nil
	if err := store.Update(ctx, got); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got2, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get after update returned error: %v", err)
	}
	if got2.Title != nil {
		t.Fatalf("Get title after clearing = %v, want nil", got2.Title)
	}

	if err := store.Delete(ctx, id); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := store.Get(ctx, id); err != ErrNotFound {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestTrackSetRatingClamps(t *testing.T) {
	ctx := context.Background()
	store, closeDB := setupMusicDB(t, schema.Triple{EngineVersion: 2, MusicVersion: "2.21.0", PerformanceVersion: "2.21.0"})
	defer closeDB()

	row := TrackRow{
		Path: "a.mp3", Filename: "a.mp3", AlbumArtID: NoAlbumArtID,
		OriginDatabaseUUID: "db-uuid", OriginTrackID: 1, IsAvailable: true,
	}
	id, err := store.Add(ctx, row)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if err := store.SetRating(ctx, id, 150); err != nil {
		t.Fatalf("SetRating returned error: %v", err)
	}
	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Rating != 100 {
		t.Fatalf("Rating = %d, want 100", got.Rating)
	}
}
