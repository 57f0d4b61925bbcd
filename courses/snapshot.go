package courses

import (
	"encoding/json"
	"os"
	"path/filepath"

	"wayfare/models"
)

// SnapshotFile is the fixed storage key the course collection is cached
// under, relative to the snapshot directory.
const SnapshotFile = "courses_snapshot.json"

// FileSnapshot caches the course collection as a JSON file. It stands in for
// the browser client's local-storage write-through and carries the same
// contract: best-effort, tolerant of missing or stale content.
type FileSnapshot struct {
	path string
}

func NewFileSnapshot(dir string) *FileSnapshot {
	return &FileSnapshot{path: filepath.Join(dir, SnapshotFile)}
}

func (f *FileSnapshot) Save(courses []models.Course) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileSnapshot) Load() ([]models.Course, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var courses []models.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		// A corrupt cache is the same as no cache.
		return nil, nil
	}
	return courses, nil
}
