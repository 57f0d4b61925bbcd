package models

import "time"

// Schedule is the persisted itinerary tree, the wire shape returned by the
// full-schedule fetch.
type Schedule struct {
	ScheduleID string        `json:"schedule_id" bson:"scheduleid"`
	UserID     string        `json:"user_id,omitempty" bson:"userid"`
	Title      string        `json:"title" bson:"title"`
	StartDate  string        `json:"start_date" bson:"start_date"`
	EndDate    string        `json:"end_date" bson:"end_date"`
	Courses    []ScheduleDay `json:"courses" bson:"courses"`
	CreatedAt  time.Time     `json:"created_at,omitempty" bson:"created_at"`
}

// ScheduleDay groups the spots of a single day, numbered from 1.
type ScheduleDay struct {
	Day   int            `json:"day" bson:"day"`
	Spots []ScheduleSpot `json:"spots" bson:"spots"`
}

type ScheduleSpot struct {
	PlaceID       string `json:"place_id" bson:"place_id"`
	ContentTypeID int    `json:"contenttypeid" bson:"contenttypeid"`
	Sequence      int    `json:"sequence" bson:"sequence"`
}

// PlaceDetail is the tourism catalog's detail lookup shape; any field may be
// absent in the upstream response.
type PlaceDetail struct {
	ContentID     int     `json:"contentid,omitempty"`
	ContentTypeID int     `json:"contenttypeid,omitempty"`
	Title         string  `json:"title"`
	FirstImage    string  `json:"firstimage"`
	Overview      string  `json:"overview"`
	Addr1         string  `json:"addr1"`
	MapX          float64 `json:"mapx,omitempty"`
	MapY          float64 `json:"mapy,omitempty"`
}
