package store

import (
	"context"
	"testing"

	"github.com/enginecrate/enginedb/internal/schema"
)

func TestCrateAddLegacyTable(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	v, err := schema.Lookup(schema.Triple{EngineVersion: 1, MusicVersion: "1.6.0", PerformanceVersion: "1.4.0"})
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
	defer db.Close()

	crates := NewCrateStore(db, false)
	id, err := crates.Add(ctx, CrateRow{Name: "Favourites"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	got, err := crates.Get(ctx, id)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "Favourites" {
		t.Fatalf("Name = %q, want %q", got.Name, "Favourites")
	}
}

func TestCrateAddListBacked(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	v, err := schema.Lookup(schema.Triple{EngineVersion: 1, MusicVersion: "1.9.1", PerformanceVersion: "1.7.0"})
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
	defer db.Close()

	crates := NewCrateStore(db, true)
	first, err := crates.Add(ctx, CrateRow{Name: "A"})
	if err != nil {
		t.Fatalf("Add first crate returned error: %v", err)
	}
	second, err := crates.Add(ctx, CrateRow{Name: "B"})
	if err != nil {
		t.Fatalf("Add second crate returned error: %v", err)
	}
	if second <= first {
		t.Fatalf("second id %d should be greater than first id %d", second, first)
	}

	got, err := crates.Get(ctx, second)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Name != "B" {
		t.Fatalf("Name = %q, want %q", got.Name, "B")
	}

	parents := NewCrateParentListStore(db)
	if err := parents.SetParent(ctx, first, first); err != nil {
		t.Fatalf("SetParent returned error: %v", err)
	}
	roots, err := parents.RootIDs(ctx)
	if err != nil {
		t.Fatalf("RootIDs returned error: %v", err)
	}
	if len(roots) != 1 || roots[0] != first {
		t.Fatalf("RootIDs = %v, want [%d]", roots, first)
	}
}
