package courses

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync/atomic"

	"wayfare/models"
)

// CoursesFromSchedules converts a full schedule tree into the store's shape.
// Spots with an empty place id are dropped; a place id that fails to parse
// becomes content id 0. Display fields stay empty for the detail fetcher to
// resolve later.
func CoursesFromSchedules(schedules []models.Schedule) []models.Course {
	out := make([]models.Course, 0, len(schedules))
	for _, sched := range schedules {
		course := models.Course{
			ID:        sched.ScheduleID,
			Title:     sched.Title,
			StartDate: sched.StartDate,
			EndDate:   sched.EndDate,
			Items:     []models.Place{},
		}
		for _, day := range sched.Courses {
			for _, spot := range day.Spots {
				if spot.PlaceID == "" {
					continue
				}
				contentID, err := strconv.Atoi(spot.PlaceID)
				if err != nil {
					contentID = 0
				}
				course.Items = append(course.Items, models.Place{
					ContentID:     contentID,
					ContentTypeID: spot.ContentTypeID,
					Sequence:      spot.Sequence,
					Day:           fmt.Sprintf("Day %d", day.Day),
				})
			}
		}
		out = append(out, course)
	}
	return out
}

// SyncFromRemote fetches the user's full schedule tree and replaces the
// collection with it. On fetch failure the store is left untouched, stale
// data being preferred over empty. When syncs overlap only the most recent
// call's outcome is applied.
func (s *Store) SyncFromRemote(ctx context.Context, userID string) error {
	gen := atomic.AddUint64(&s.syncGen, 1)

	schedules, err := s.svc.FetchSchedules(ctx, userID)
	if err != nil {
		log.Printf("schedule sync failed for user %s: %v", userID, err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != atomic.LoadUint64(&s.syncGen) {
		// A later sync has started; let its outcome win.
		return nil
	}
	s.setCoursesLocked(CoursesFromSchedules(schedules))
	return nil
}
