package models

import "time"

// Photo is an uploaded image with the vision labels detected for it. Labels
// are stored lowercased; KoreanLabels carry the translated forms used for
// label search against the tourism catalog.
type Photo struct {
	PhotoID      string    `json:"photoid" bson:"photoid"`
	UserID       string    `json:"userid" bson:"userid"`
	Path         string    `json:"path" bson:"path"`
	ThumbPath    string    `json:"thumb_path" bson:"thumb_path"`
	Labels       []string  `json:"labels" bson:"labels"`
	KoreanLabels []string  `json:"korean_labels,omitempty" bson:"korean_labels,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
