package config

import (
	"context"
	"errors"
	"time"

	mongorepo "github.com/yoockh/huffaz-portal/internal/repositories/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureMongoIndexes creates the assessment history indexes. It is idempotent.
func EnsureMongoIndexes(dbName string) error {
	if MongoClient == nil {
		return errors.New("MongoClient is nil; call InitMongo() first")
	}
	db := MongoClient.Database(dbName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	assessments := db.Collection(mongorepo.AssessmentCollection)
	_, err := assessments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		// history per user, newest first
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "submitted_at", Value: -1}},
			Options: options.Index().SetName("by_user_submitted"),
		},
		{
			Keys:    bson.D{{Key: "mbti_type", Value: 1}},
			Options: options.Index().SetName("by_mbti_type"),
		},
	})
	return err
}
