package models

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResumeDocument is the parser's output as stored: a free-form mapping.
// The store does not validate its shape.
type ResumeDocument map[string]any

type Resume struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ResumeID string             `bson:"id" json:"id"` // uuid v4
	UserID   string             `bson:"user_id" json:"user_id"`

	FileName   string         `bson:"file_name" json:"file_name"`
	ObjectKey  string         `bson:"object_key,omitempty" json:"object_key,omitempty"`
	ParsedData ResumeDocument `bson:"parsed_data" json:"parsed_data"`

	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
}

// ResumeFields is the explicit optional-field shape for everything the
// generator and profile code actually read. Anything else in the parsed
// document is carried but ignored.
type ResumeFields struct {
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Summary    string            `json:"summary"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Keywords   []string          `json:"keywords"`
}

type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Fields decodes the typed subset out of the free-form document.
// Unexpected shapes degrade to zero values instead of failing: the
// parser output is model-generated and not trusted to keep its schema.
func (d ResumeDocument) Fields() ResumeFields {
	var f ResumeFields
	if len(d) == 0 {
		return f
	}
	b, err := json.Marshal(d)
	if err != nil {
		return f
	}
	_ = json.Unmarshal(b, &f)
	return f
}
