package config

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureMongoIndexes creates the domain indexes. The unique index on
// (user_id, job_id) is what keeps two overlapping apply calls from
// producing duplicate applications.
func EnsureMongoIndexes(client *mongo.Client, dbName string) error {
	if client == nil {
		return errors.New("mongo client is nil; call NewMongo first")
	}
	db := client.Database(dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resumes := db.Collection("resumes")
	_, err := resumes.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "uploaded_at", Value: -1}},
			Options: options.Index().SetName("by_user_uploaded"),
		},
	})
	if err != nil {
		return err
	}

	jobs := db.Collection("jobs")
	_, err = jobs.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "added_at", Value: -1}},
			Options: options.Index().SetName("by_user_added"),
		},
	})
	if err != nil {
		return err
	}

	applications := db.Collection("applications")
	_, err = applications.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "job_id", Value: 1}},
			Options: options.Index().
				SetName("uniq_user_job").
				SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "applied_at", Value: -1}},
			Options: options.Index().SetName("by_user_applied"),
		},
	})
	return err
}
