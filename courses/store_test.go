package courses

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"wayfare/models"
)

// fakeService counts remote calls and can be made to block or fail.
type fakeService struct {
	mu          sync.Mutex
	createCalls int
	failCreate  bool
	schedules   []models.Schedule
	fetchErr    error
}

func (f *fakeService) CreateSchedule(ctx context.Context, userID, title, startDate, endDate string) (string, error) {
	f.mu.Lock()
	f.createCalls++
	n := f.createCalls
	f.mu.Unlock()

	if f.failCreate {
		return "", errors.New("remote create failed")
	}
	return fmt.Sprintf("sched-%d", n), nil
}

func (f *fakeService) AddSpot(ctx context.Context, userID, scheduleID string, day int, placeID string, sequence int) error {
	return nil
}

func (f *fakeService) FetchSchedules(ctx context.Context, userID string) ([]models.Schedule, error) {
	return f.schedules, f.fetchErr
}

// failingSnapshot always errors on save; mutations must survive it.
type failingSnapshot struct{}

func (failingSnapshot) Save([]models.Course) error     { return errors.New("disk full") }
func (failingSnapshot) Load() ([]models.Course, error) { return nil, nil }

func TestAddPlaceDuplicateIsNoOp(t *testing.T) {
	store := NewStore(&fakeService{}, nil)
	store.SetCoursesFromDB([]models.Course{{ID: "c1", Title: "Seoul Trip"}})

	p := models.Place{ContentID: 125266, ContentTypeID: 12, Day: "Day 1"}
	for i := 0; i < 5; i++ {
		store.AddPlaceToCourse("c1", p)
	}

	course, ok := store.Course("c1")
	if !ok {
		t.Fatal("course c1 missing")
	}
	count := 0
	for _, item := range course.Items {
		if item.ContentID == 125266 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one entry for contentID, got %d", count)
	}
}

func TestGroupByDayPartitionsItems(t *testing.T) {
	course := models.Course{ID: "c1", Items: []models.Place{
		{ContentID: 1, Day: "Day 1"},
		{ContentID: 2, Day: "Day 2"},
		{ContentID: 3, Day: "Day 1"},
		{ContentID: 4}, // no label, lands in the default bucket
	}}

	grouped := course.GroupByDay()

	flattened := make(map[int]int)
	total := 0
	for _, bucket := range grouped {
		for _, p := range bucket {
			flattened[p.ContentID]++
			total++
		}
	}

	if total != len(course.Items) {
		t.Fatalf("grouping changed item count: %d != %d", total, len(course.Items))
	}
	for _, p := range course.Items {
		if flattened[p.ContentID] != 1 {
			t.Fatalf("contentID %d appears %d times after grouping", p.ContentID, flattened[p.ContentID])
		}
	}
	if len(grouped[models.DefaultDay]) != 3 {
		t.Fatalf("expected 3 items in default bucket, got %d", len(grouped[models.DefaultDay]))
	}
}

func TestAddCourseDuplicateSubmissionGuard(t *testing.T) {
	svc := &fakeService{}
	store := NewStore(svc, nil)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.AddCourse(context.Background(), "Seoul Trip", "2025-01-01", "2025-01-03", "7")
		}()
	}
	wg.Wait()

	if svc.createCalls > 1 {
		t.Fatalf("expected at most one remote create, got %d", svc.createCalls)
	}
	if got := len(store.Courses()); got != 1 {
		t.Fatalf("expected exactly one course, got %d", got)
	}
}

func TestAddCourseRemoteFailureLeavesStoreUnchanged(t *testing.T) {
	svc := &fakeService{failCreate: true}
	store := NewStore(svc, nil)

	_, err := store.AddCourse(context.Background(), "Busan Trip", "2025-02-01", "2025-02-02", "7")
	if err == nil {
		t.Fatal("expected error from failed remote create")
	}
	if got := len(store.Courses()); got != 0 {
		t.Fatalf("store should be unchanged after failure, has %d courses", got)
	}

	// The failed provisional id must not block a retry.
	svc.failCreate = false
	if _, err := store.AddCourse(context.Background(), "Busan Trip", "2025-02-01", "2025-02-02", "7"); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
	if got := len(store.Courses()); got != 1 {
		t.Fatalf("expected one course after retry, got %d", got)
	}
}

func TestRemoveCourseNonExistent(t *testing.T) {
	store := NewStore(&fakeService{}, nil)
	store.SetCoursesFromDB([]models.Course{{ID: "c1"}, {ID: "c2"}})

	store.RemoveCourse("nope")

	if got := len(store.Courses()); got != 2 {
		t.Fatalf("collection changed by removing non-existent id: %d courses", got)
	}
}

func TestRemovePlaceFromCourse(t *testing.T) {
	store := NewStore(&fakeService{}, nil)
	store.SetCoursesFromDB([]models.Course{{ID: "c1", Items: []models.Place{
		{ContentID: 1}, {ContentID: 2},
	}}})

	store.RemovePlaceFromCourse("c1", 1)

	course, _ := store.Course("c1")
	if len(course.Items) != 1 || course.Items[0].ContentID != 2 {
		t.Fatalf("unexpected items after removal: %+v", course.Items)
	}
}

func TestUpdateCourseTitleAcceptsEmpty(t *testing.T) {
	store := NewStore(&fakeService{}, nil)
	store.SetCoursesFromDB([]models.Course{{ID: "c1", Title: "Old"}})

	store.UpdateCourseTitle("c1", "")

	course, _ := store.Course("c1")
	if course.Title != "" {
		t.Fatalf("expected empty title, got %q", course.Title)
	}
}

func TestSnapshotFailureDoesNotBlockMutation(t *testing.T) {
	store := NewStore(&fakeService{}, failingSnapshot{})
	store.SetCoursesFromDB([]models.Course{{ID: "c1"}})

	if !store.AddPlaceToCourse("c1", models.Place{ContentID: 9}) {
		t.Fatal("mutation rejected because of snapshot failure")
	}
	course, _ := store.Course("c1")
	if len(course.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(course.Items))
	}
}
