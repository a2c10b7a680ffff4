package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/revand/jobpilot/internal/models"
	"github.com/revand/jobpilot/internal/utils"
)

type ResumeRepository interface {
	Insert(ctx context.Context, r *models.Resume) error
	Latest(ctx context.Context, userID string) (*models.Resume, error)
}

type resumeRepo struct {
	col *mongo.Collection
}

func NewResumeRepo(db *mongo.Database) ResumeRepository {
	return &resumeRepo{col: db.Collection("resumes")}
}

func (r *resumeRepo) Insert(ctx context.Context, doc *models.Resume) error {
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// Latest returns the user's most recent upload. Earlier uploads stay
// around as history.
func (r *resumeRepo) Latest(ctx context.Context, userID string) (*models.Resume, error) {
	var doc models.Resume
	err := r.col.FindOne(ctx,
		bson.M{"user_id": userID},
		options.FindOne().SetSort(bson.D{{Key: "uploaded_at", Value: -1}}),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &doc, err
}
