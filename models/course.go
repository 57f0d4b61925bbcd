package models

// Place is a point-of-interest reference inside a course, identified by the
// tourism catalog content id. Display fields are a cache and may be empty
// until resolved.
type Place struct {
	ContentID     int     `json:"contentid" bson:"contentid"`
	ContentTypeID int     `json:"contenttypeid" bson:"contenttypeid"`
	Title         string  `json:"title,omitempty" bson:"title,omitempty"`
	FirstImage    string  `json:"firstimage,omitempty" bson:"firstimage,omitempty"`
	Address       string  `json:"address,omitempty" bson:"address,omitempty"`
	MapX          float64 `json:"mapx,omitempty" bson:"mapx,omitempty"`
	MapY          float64 `json:"mapy,omitempty" bson:"mapy,omitempty"`
	Day           string  `json:"day" bson:"day"`
	Time          string  `json:"time,omitempty" bson:"time,omitempty"`
	Sequence      int     `json:"sequence" bson:"sequence"`
}

// DefaultDay is the bucket a place falls into when no day label is set.
const DefaultDay = "Day 1"

// Course represents a named travel plan over a date range.
type Course struct {
	ID        string  `json:"id" bson:"id"`
	Title     string  `json:"title" bson:"title"`
	StartDate string  `json:"start_date" bson:"start_date"`
	EndDate   string  `json:"end_date" bson:"end_date"`
	Items     []Place `json:"items" bson:"items"`
}

// GroupByDay buckets the course's items by their day label. Items without a
// label land in DefaultDay. Insertion order is preserved within a bucket.
func (c *Course) GroupByDay() map[string][]Place {
	grouped := make(map[string][]Place)
	for _, p := range c.Items {
		day := p.Day
		if day == "" {
			day = DefaultDay
		}
		grouped[day] = append(grouped[day], p)
	}
	return grouped
}

// HasPlace reports whether the course already references contentID.
func (c *Course) HasPlace(contentID int) bool {
	for _, p := range c.Items {
		if p.ContentID == contentID {
			return true
		}
	}
	return false
}
