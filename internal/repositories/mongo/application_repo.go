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

type ApplicationRepository interface {
	Insert(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, userID, applicationID string) (*models.Application, error)
	GetByJob(ctx context.Context, userID, jobID string) (*models.Application, error)
	ListByUser(ctx context.Context, userID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, userID, applicationID string, status models.ApplicationStatus, updatedAt time.Time) error
	CountByUser(ctx context.Context, userID string) (int64, error)
	CountByStatus(ctx context.Context, userID string) (map[string]int64, error)
}

type applicationRepo struct {
	col *mongo.Collection
}

func NewApplicationRepo(db *mongo.Database) ApplicationRepository {
	return &applicationRepo{col: db.Collection("applications")}
}

func (r *applicationRepo) Insert(ctx context.Context, a *models.Application) error {
	_, err := r.col.InsertOne(ctx, a)
	if mongo.IsDuplicateKeyError(err) {
		// lost the race against a concurrent apply for the same job
		return utils.ErrDuplicate
	}
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, userID, applicationID string) (*models.Application, error) {
	var a models.Application
	err := r.col.FindOne(ctx, bson.M{"id": applicationID, "user_id": userID}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) GetByJob(ctx context.Context, userID, jobID string) (*models.Application, error) {
	var a models.Application
	err := r.col.FindOne(ctx, bson.M{"user_id": userID, "job_id": jobID}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) ListByUser(ctx context.Context, userID string) ([]models.Application, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "applied_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Application{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *applicationRepo) UpdateStatus(ctx context.Context, userID, applicationID string, status models.ApplicationStatus, updatedAt time.Time) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"id": applicationID, "user_id": userID},
		bson.M{"$set": bson.M{
			"status":     status,
			"updated_at": updatedAt.UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *applicationRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"user_id": userID})
}

func (r *applicationRepo) CountByStatus(ctx context.Context, userID string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
