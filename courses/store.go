package courses

import (
	"context"
	"log"
	"sync"

	"wayfare/models"
)

// ScheduleService is the remote schedule backend the store writes through to.
// Production uses the scheduleapi client; tests substitute a fake.
type ScheduleService interface {
	CreateSchedule(ctx context.Context, userID, title, startDate, endDate string) (string, error)
	AddSpot(ctx context.Context, userID, scheduleID string, day int, placeID string, sequence int) error
	FetchSchedules(ctx context.Context, userID string) ([]models.Schedule, error)
}

// Snapshot persists the course collection as a cache. It is not a source of
// truth; Load must tolerate an empty, stale or absent snapshot.
type Snapshot interface {
	Save(courses []models.Course) error
	Load() ([]models.Course, error)
}

// Store holds the authoritative client-side view of a user's courses. All
// mutation goes through its methods; every successful mutation is persisted
// to the snapshot best-effort.
type Store struct {
	mu      sync.Mutex
	svc     ScheduleService
	snap    Snapshot
	courses []models.Course

	// provisional ids (title+startDate) of creates still in flight,
	// guarding against duplicate rapid submission
	pending map[string]bool

	syncGen uint64
}

func NewStore(svc ScheduleService, snap Snapshot) *Store {
	s := &Store{
		svc:     svc,
		snap:    snap,
		pending: make(map[string]bool),
	}
	if snap != nil {
		if cached, err := snap.Load(); err != nil {
			log.Printf("course snapshot load failed: %v", err)
		} else {
			s.courses = cached
		}
	}
	return s
}

// ProvisionalID derives the duplicate-submission guard key for a course that
// has not been confirmed by the server yet. It is never persisted as an
// authoritative id.
func ProvisionalID(title, startDate string) string {
	return title + startDate
}

// AddCourse creates a course remotely and appends it with the server id.
// A second call with the same title and start date while the first is still
// in flight, or after it succeeded, is a no-op. On remote failure the store
// is left unchanged and the error is returned; there is no retry.
func (s *Store) AddCourse(ctx context.Context, title, startDate, endDate, userID string) (models.Course, error) {
	provisional := ProvisionalID(title, startDate)

	s.mu.Lock()
	if s.pending[provisional] {
		s.mu.Unlock()
		return models.Course{}, nil
	}
	for _, c := range s.courses {
		if c.ID == provisional || ProvisionalID(c.Title, c.StartDate) == provisional {
			existing := c
			s.mu.Unlock()
			return existing, nil
		}
	}
	s.pending[provisional] = true
	s.mu.Unlock()

	scheduleID, err := s.svc.CreateSchedule(ctx, userID, title, startDate, endDate)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, provisional)

	if err != nil {
		log.Printf("course create failed: %v", err)
		return models.Course{}, err
	}

	course := models.Course{
		ID:        scheduleID,
		Title:     title,
		StartDate: startDate,
		EndDate:   endDate,
		Items:     []models.Place{},
	}
	s.courses = append(s.courses, course)
	s.persistLocked()
	return course, nil
}

// AddPlaceToCourse appends a place to the named course. Duplicate content ids
// are a no-op, not an error. Local only; remote persistence for this path is
// the caller's add-spot call.
func (s *Store) AddPlaceToCourse(courseID string, place models.Place) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.courses {
		if s.courses[i].ID != courseID {
			continue
		}
		if s.courses[i].HasPlace(place.ContentID) {
			return false
		}
		if place.Day == "" {
			place.Day = models.DefaultDay
		}
		s.courses[i].Items = append(s.courses[i].Items, place)
		s.persistLocked()
		return true
	}
	return false
}

// RemovePlaceFromCourse filters the place out of the course's items. Local only.
func (s *Store) RemovePlaceFromCourse(courseID string, contentID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.courses {
		if s.courses[i].ID != courseID {
			continue
		}
		items := s.courses[i].Items[:0]
		for _, p := range s.courses[i].Items {
			if p.ContentID != contentID {
				items = append(items, p)
			}
		}
		s.courses[i].Items = items
		s.persistLocked()
		return
	}
}

// RemoveCourse filters the course out of the collection. Local only; the
// caller is responsible for any remote deletion.
func (s *Store) RemoveCourse(courseID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.courses[:0]
	removed := false
	for _, c := range s.courses {
		if c.ID == courseID {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	s.courses = kept
	if removed {
		s.persistLocked()
	}
}

// UpdateCourseTitle replaces the title on the matching course. An empty title
// is accepted. Local only.
func (s *Store) UpdateCourseTitle(courseID, newTitle string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.courses {
		if s.courses[i].ID == courseID {
			s.courses[i].Title = newTitle
			s.persistLocked()
			return
		}
	}
}

// SetCoursesFromDB wholesale-replaces the collection, used by the remote sync.
func (s *Store) SetCoursesFromDB(courses []models.Course) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCoursesLocked(courses)
}

func (s *Store) setCoursesLocked(courses []models.Course) {
	s.courses = courses
	s.persistLocked()
}

// Courses returns a copy of the collection.
func (s *Store) Courses() []models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Course, len(s.courses))
	copy(out, s.courses)
	return out
}

// Course returns the course with the given id.
func (s *Store) Course(courseID string) (models.Course, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.courses {
		if c.ID == courseID {
			return c, true
		}
	}
	return models.Course{}, false
}

// persistLocked writes the snapshot. Persistence is best-effort: failure is
// logged and never interrupts the in-memory mutation that triggered it.
func (s *Store) persistLocked() {
	if s.snap == nil {
		return
	}
	if err := s.snap.Save(s.courses); err != nil {
		log.Printf("course snapshot save failed: %v", err)
	}
}
