package models

import "time"

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	Username      string    `json:"username" bson:"username"`
	Email         string    `json:"email" bson:"email"`
	Password      string    `json:"-" bson:"password,omitempty"`
	OAuthProvider string    `json:"oauth_provider,omitempty" bson:"oauth_provider,omitempty"`
	OAuthID       string    `json:"-" bson:"oauth_id,omitempty"`
	ProfilePic    string    `json:"profile_pic,omitempty" bson:"profile_pic,omitempty"`
	Role          []string  `json:"role" bson:"role"`
	RefreshToken  string    `json:"-" bson:"refresh_token,omitempty"`
	RefreshExpiry time.Time `json:"-" bson:"refresh_expiry,omitempty"`
	LastLogin     time.Time `json:"last_login,omitempty" bson:"last_login,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
}
