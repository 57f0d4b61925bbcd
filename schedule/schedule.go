package schedule

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"wayfare/db"
	"wayfare/live"
	"wayfare/models"
	"wayfare/mq"
	"wayfare/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// POST /api/schedules
func CreateSchedule(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Title     string `json:"title"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if body.Title == "" || body.StartDate == "" {
		http.Error(w, "Title and start date are required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	sched := models.Schedule{
		ScheduleID: utils.GenerateRandomString(13),
		UserID:     userID,
		Title:      body.Title,
		StartDate:  body.StartDate,
		EndDate:    body.EndDate,
		Courses:    []models.ScheduleDay{},
		CreatedAt:  now,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := db.SchedulesCollection.InsertOne(ctx, sched); err != nil {
		http.Error(w, "Error inserting schedule", http.StatusInternalServerError)
		return
	}

	go mq.Emit(r.Context(), "schedule-created", models.Index{
		EntityType: "course", EntityId: sched.ScheduleID, Method: "POST", ItemType: "title", ItemId: sched.Title,
	})
	live.Notify(userID, live.Event{Action: "created", ScheduleID: sched.ScheduleID})

	utils.RespondWithJSON(w, http.StatusCreated, map[string]any{
		"schedule_id": sched.ScheduleID,
		"created_at":  now.Format(time.RFC3339),
	})
}

// POST /api/schedules/:scheduleid/spots
func AddSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	scheduleID := ps.ByName("scheduleid")

	var body struct {
		Day           int    `json:"day"`
		PlaceID       string `json:"place_id"`
		ContentTypeID int    `json:"contenttypeid"`
		Sequence      int    `json:"sequence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if body.PlaceID == "" {
		http.Error(w, "Place id is required", http.StatusBadRequest)
		return
	}
	if body.Day < 1 {
		body.Day = 1
	}

	spot := models.ScheduleSpot{
		PlaceID:       body.PlaceID,
		ContentTypeID: body.ContentTypeID,
		Sequence:      body.Sequence,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Push into the existing day bucket, or create the bucket if this is the
	// day's first spot.
	res, err := db.SchedulesCollection.UpdateOne(ctx,
		bson.M{"scheduleid": scheduleID, "userid": userID, "courses.day": body.Day},
		bson.M{"$push": bson.M{"courses.$.spots": spot}},
	)
	if err != nil {
		http.Error(w, "Error adding spot", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		res, err = db.SchedulesCollection.UpdateOne(ctx,
			bson.M{"scheduleid": scheduleID, "userid": userID},
			bson.M{"$push": bson.M{"courses": models.ScheduleDay{Day: body.Day, Spots: []models.ScheduleSpot{spot}}}},
		)
		if err != nil {
			http.Error(w, "Error adding spot", http.StatusInternalServerError)
			return
		}
		if res.MatchedCount == 0 {
			http.Error(w, "Schedule not found", http.StatusNotFound)
			return
		}
	}

	live.Notify(userID, live.Event{Action: "spot-added", ScheduleID: scheduleID})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// GET /api/schedules
func GetSchedules(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	schedules, err := utils.FindAndDecode[models.Schedule](ctx, db.SchedulesCollection, bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Error fetching schedules")
		return
	}

	for i := range schedules {
		if schedules[i].Courses == nil {
			schedules[i].Courses = []models.ScheduleDay{}
		} else {
			for j := range schedules[i].Courses {
				if schedules[i].Courses[j].Spots == nil {
					schedules[i].Courses[j].Spots = []models.ScheduleSpot{}
				}
			}
		}
	}

	if schedules == nil {
		schedules = []models.Schedule{}
	}

	utils.RespondWithJSON(w, http.StatusOK, schedules)
}

// DELETE /api/schedules/:scheduleid
func DeleteSchedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	scheduleID := ps.ByName("scheduleid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// The autocomplete index is keyed by title, so fetch it with the delete.
	var sched models.Schedule
	err := db.SchedulesCollection.FindOneAndDelete(ctx, bson.M{"scheduleid": scheduleID, "userid": userID}).Decode(&sched)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Schedule not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error deleting schedule", http.StatusInternalServerError)
		return
	}

	go mq.Emit(r.Context(), "schedule-deleted", models.Index{
		EntityType: "course", EntityId: scheduleID, Method: "DELETE", ItemType: "title", ItemId: sched.Title,
	})
	live.Notify(userID, live.Event{Action: "deleted", ScheduleID: scheduleID})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "message": "Schedule deleted successfully"})
}

// PATCH /api/schedules/:scheduleid
func RenameSchedule(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	scheduleID := ps.ByName("scheduleid")

	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// FindOneAndUpdate returns the pre-update document, giving us the old
	// title to drop from the autocomplete index.
	var prev models.Schedule
	err := db.SchedulesCollection.FindOneAndUpdate(ctx,
		bson.M{"scheduleid": scheduleID, "userid": userID},
		bson.M{"$set": bson.M{"title": body.Title}},
	).Decode(&prev)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Schedule not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error renaming schedule", http.StatusInternalServerError)
		return
	}

	if prev.Title != body.Title {
		go func() {
			mq.Emit(context.Background(), "schedule-renamed", models.Index{
				EntityType: "course", EntityId: scheduleID, Method: "DELETE", ItemType: "title", ItemId: prev.Title,
			})
			mq.Emit(context.Background(), "schedule-renamed", models.Index{
				EntityType: "course", EntityId: scheduleID, Method: "PATCH", ItemType: "title", ItemId: body.Title,
			})
		}()
	}

	live.Notify(userID, live.Event{Action: "renamed", ScheduleID: scheduleID})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true, "message": "Schedule renamed successfully"})
}

// DELETE /api/schedules/:scheduleid/spots/:placeid
func RemoveSpot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	scheduleID := ps.ByName("scheduleid")
	placeID := ps.ByName("placeid")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := db.SchedulesCollection.UpdateOne(ctx,
		bson.M{"scheduleid": scheduleID, "userid": userID},
		bson.M{"$pull": bson.M{"courses.$[].spots": bson.M{"place_id": placeID}}},
	)
	if err != nil {
		http.Error(w, "Error removing spot", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "Schedule not found", http.StatusNotFound)
		return
	}

	live.Notify(userID, live.Event{Action: "spot-removed", ScheduleID: scheduleID})

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"ok": true})
}
