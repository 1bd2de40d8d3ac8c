package schema

import (
	"path/filepath"
	"testing"
)

func TestResolveLatestIsEngineV2(t *testing.T) {
	latest := ResolveLatest()
	if latest.Triple.EngineVersion != 2 {
		t.Fatalf("ResolveLatest().Triple.EngineVersion = %d, want 2", latest.Triple.EngineVersion)
	}
	if latest.Layout != LayoutSingleFile {
		t.Fatalf("ResolveLatest().Layout = %v, want LayoutSingleFile", latest.Layout)
	}
}

func TestLookupKnownTriple(t *testing.T) {
	triple := Triple{EngineVersion: 1, MusicVersion: "1.6.0", PerformanceVersion: "1.4.0"}
	v, err := Lookup(triple)
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if v.CrateIsView {
		t.Fatalf("v1.6.0 should not have Crate as a view")
	}
}

func TestLookupUnknownTriple(t *testing.T) {
	_, err := Lookup(Triple{EngineVersion: 9, MusicVersion: "9.9.9", PerformanceVersion: "9.9.9"})
	if err == nil {
		t.Fatal("expected error for unknown triple")
	}
}

func TestUpgradePathStopsAtLayoutBoundary(t *testing.T) {
	path, err := UpgradePath(Triple{EngineVersion: 1, MusicVersion: "1.6.0", PerformanceVersion: "1.4.0"})
	if err != nil {
		t.Fatalf("UpgradePath returned error: %v", err)
	}
	if len(path) != 1 {
		t.Fatalf("UpgradePath len = %d, want 1 (only the 1.9.1 fork, not the v2 layout change)", len(path))
	}
	if path[0].Triple.MusicVersion != "1.9.1" {
		t.Fatalf("UpgradePath[0] = %s, want music 1.9.1", path[0].Triple)
	}
}

func TestCreateAndVerifyTwoFile(t *testing.T) {
	dir := t.TempDir()
	v, err := Lookup(Triple{EngineVersion: 1, MusicVersion: "1.6.0", PerformanceVersion: "1.4.0"})
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}

	dbUUID, err := Create(dir, v)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if dbUUID == "" {
		t.Fatal("Create returned empty uuid")
	}

	if err := Verify(dir, v); err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
}

func TestCreateAndVerifySingleFile(t *testing.T) {
	dir := t.TempDir()
	v := ResolveLatest()

	if _, err := Create(dir, v); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := Verify(dir, v); err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
}

func TestUpgradeInPlaceToForkedVersion(t *testing.T) {
	dir := t.TempDir()
	from, err := Lookup(Triple{EngineVersion: 1, MusicVersion: "1.6.0", PerformanceVersion: "1.4.0"})
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	to, err := Lookup(Triple{EngineVersion: 1, MusicVersion: "1.9.1", PerformanceVersion: "1.7.0"})
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}

	if _, err := Create(dir, from); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := UpgradeTo(dir, from.Triple, to); err != nil {
		t.Fatalf("UpgradeTo returned error: %v", err)
	}
	if err := Verify(dir, to); err != nil {
		t.Fatalf("Verify after upgrade returned error: %v", err)
	}

	musicDB, err := openFile(dir, "m.db")
	if err != nil {
		t.Fatalf("openFile returned error: %v", err)
	}
	defer musicDB.Close()

	var minor int
	if err := musicDB.QueryRow(`SELECT schemaVersionMinor FROM Information`).Scan(&minor); err != nil {
		t.Fatalf("query schemaVersionMinor returned error: %v", err)
	}
	if minor != 9 {
		t.Fatalf("schemaVersionMinor = %d, want 9", minor)
	}
}

func TestVerifyMissingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "does-not-exist")
	v := ResolveLatest()
	if err := Verify(dir, v); err == nil {
		t.Fatal("expected error verifying a directory with no database files")
	}
}
