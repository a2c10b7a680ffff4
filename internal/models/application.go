package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusApplied   ApplicationStatus = "applied"
	StatusInterview ApplicationStatus = "interview"
	StatusRejected  ApplicationStatus = "rejected"
	StatusAccepted  ApplicationStatus = "accepted"
)

func ValidStatus(s string) bool {
	switch ApplicationStatus(s) {
	case StatusPending, StatusApplied, StatusInterview, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

type Application struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ApplicationID string             `bson:"id" json:"id"` // uuid v4
	UserID        string             `bson:"user_id" json:"user_id"`
	JobID         string             `bson:"job_id" json:"job_id"`

	// snapshot of the job at apply time
	JobTitle string `bson:"job_title" json:"job_title"`
	Company  string `bson:"company" json:"company"`

	Status ApplicationStatus `bson:"status" json:"status"`

	TailoredResume string `bson:"tailored_resume,omitempty" json:"tailored_resume,omitempty"`
	CoverLetter    string `bson:"cover_letter,omitempty" json:"cover_letter,omitempty"`

	AppliedAt time.Time `bson:"applied_at" json:"applied_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
