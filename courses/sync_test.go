package courses

import (
	"context"
	"errors"
	"testing"

	"wayfare/models"
)

func TestCoursesFromSchedules(t *testing.T) {
	// Two schedules, each one day with two spots of which one has an empty
	// place id.
	schedules := []models.Schedule{
		{
			ScheduleID: "s1",
			Title:      "Jeju",
			StartDate:  "2025-03-01",
			EndDate:    "2025-03-03",
			Courses: []models.ScheduleDay{
				{Day: 1, Spots: []models.ScheduleSpot{
					{PlaceID: "125266", ContentTypeID: 12, Sequence: 0},
					{PlaceID: "", Sequence: 1},
				}},
			},
		},
		{
			ScheduleID: "s2",
			Title:      "Busan",
			StartDate:  "2025-04-01",
			EndDate:    "2025-04-02",
			Courses: []models.ScheduleDay{
				{Day: 1, Spots: []models.ScheduleSpot{
					{PlaceID: "264337", ContentTypeID: 14, Sequence: 0},
					{PlaceID: "", Sequence: 1},
				}},
			},
		},
	}

	courses := CoursesFromSchedules(schedules)

	if len(courses) != 2 {
		t.Fatalf("expected 2 courses, got %d", len(courses))
	}

	first := courses[0]
	if first.ID != "s1" || first.Title != "Jeju" || first.StartDate != "2025-03-01" {
		t.Fatalf("unexpected course header: %+v", first)
	}
	if len(first.Items) != 1 {
		t.Fatalf("empty place id should be dropped, got %d items", len(first.Items))
	}
	if first.Items[0].ContentID != 125266 || first.Items[0].Day != "Day 1" {
		t.Fatalf("unexpected first item: %+v", first.Items[0])
	}

	second := courses[1]
	if second.ID != "s2" || len(second.Items) != 1 || second.Items[0].ContentID != 264337 {
		t.Fatalf("unexpected second course: %+v", second)
	}
}

func TestCoursesFromSchedulesDefaults(t *testing.T) {
	schedules := []models.Schedule{
		{
			ScheduleID: "s1",
			Title:      "Seoul",
			Courses: []models.ScheduleDay{
				{Day: 1, Spots: []models.ScheduleSpot{
					{PlaceID: "not-a-number", ContentTypeID: 39, Sequence: 0},
				}},
				{Day: 2, Spots: []models.ScheduleSpot{
					{PlaceID: "125266", ContentTypeID: 12, Sequence: 0},
				}},
			},
		},
		{ScheduleID: "s2", Title: "Empty"},
	}

	courses := CoursesFromSchedules(schedules)

	items := courses[0].Items
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ContentID != 0 {
		t.Fatalf("unparsable place id should map to 0, got %d", items[0].ContentID)
	}
	if items[0].Day != "Day 1" || items[1].Day != "Day 2" {
		t.Fatalf("unexpected day labels: %q, %q", items[0].Day, items[1].Day)
	}

	if courses[1].Items == nil || len(courses[1].Items) != 0 {
		t.Fatalf("schedule without days should yield empty non-nil items: %+v", courses[1].Items)
	}
}

func TestSyncFromRemoteReplacesCollection(t *testing.T) {
	svc := &fakeService{schedules: []models.Schedule{
		{ScheduleID: "s1", Title: "Remote"},
	}}
	store := NewStore(svc, nil)
	store.SetCoursesFromDB([]models.Course{{ID: "stale"}})

	if err := store.SyncFromRemote(context.Background(), "7"); err != nil {
		t.Fatalf("sync: %v", err)
	}

	got := store.Courses()
	if len(got) != 1 || got[0].ID != "s1" {
		t.Fatalf("collection not replaced by sync: %+v", got)
	}
}

func TestSyncFromRemoteFailureKeepsStaleData(t *testing.T) {
	svc := &fakeService{fetchErr: errors.New("network down")}
	store := NewStore(svc, nil)
	store.SetCoursesFromDB([]models.Course{{ID: "stale", Title: "Keep me"}})

	if err := store.SyncFromRemote(context.Background(), "7"); err == nil {
		t.Fatal("expected sync error")
	}

	got := store.Courses()
	if len(got) != 1 || got[0].ID != "stale" {
		t.Fatalf("stale data should survive a failed sync: %+v", got)
	}
}
