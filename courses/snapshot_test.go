package courses

import (
	"os"
	"path/filepath"
	"testing"

	"wayfare/models"
)

func TestFileSnapshotRoundTrip(t *testing.T) {
	snap := NewFileSnapshot(t.TempDir())

	want := []models.Course{
		{ID: "s1", Title: "Jeju", Items: []models.Place{{ContentID: 125266, Day: "Day 1"}}},
	}
	if err := snap.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := snap.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "s1" || len(got[0].Items) != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestFileSnapshotMissingFile(t *testing.T) {
	snap := NewFileSnapshot(t.TempDir())

	got, err := snap.Load()
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil courses, got %+v", got)
	}
}

func TestFileSnapshotCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, SnapshotFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	snap := NewFileSnapshot(dir)
	got, err := snap.Load()
	if err != nil {
		t.Fatalf("corrupt cache should behave as no cache: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil courses, got %+v", got)
	}
}
