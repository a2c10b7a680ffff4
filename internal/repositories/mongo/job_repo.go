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

type JobRepository interface {
	Insert(ctx context.Context, j *models.Job) error
	GetByID(ctx context.Context, userID, jobID string) (*models.Job, error)
	ListByUser(ctx context.Context, userID string) ([]models.Job, error)
	Delete(ctx context.Context, userID, jobID string) error
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type jobRepo struct {
	col *mongo.Collection
}

func NewJobRepo(db *mongo.Database) JobRepository {
	return &jobRepo{col: db.Collection("jobs")}
}

func (r *jobRepo) Insert(ctx context.Context, j *models.Job) error {
	if j.AddedAt.IsZero() {
		j.AddedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, j)
	return err
}

func (r *jobRepo) GetByID(ctx context.Context, userID, jobID string) (*models.Job, error) {
	var j models.Job
	err := r.col.FindOne(ctx, bson.M{"id": jobID, "user_id": userID}).Decode(&j)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &j, err
}

func (r *jobRepo) ListByUser(ctx context.Context, userID string) ([]models.Job, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "added_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Job{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete is filtered by owner; a miss on someone else's job looks the
// same as a miss on a nonexistent one.
func (r *jobRepo) Delete(ctx context.Context, userID, jobID string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"id": jobID, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *jobRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"user_id": userID})
}
