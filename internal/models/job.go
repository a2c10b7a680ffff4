package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Job struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	JobID  string             `bson:"id" json:"id"` // uuid v4
	UserID string             `bson:"user_id" json:"user_id"`

	Title        string `bson:"title" json:"title"`
	Company      string `bson:"company" json:"company"`
	Description  string `bson:"description" json:"description"`
	Requirements string `bson:"requirements" json:"requirements"`
	Location     string `bson:"location,omitempty" json:"location,omitempty"`
	URL          string `bson:"url,omitempty" json:"url,omitempty"`

	AddedAt time.Time `bson:"added_at" json:"added_at"`
}
