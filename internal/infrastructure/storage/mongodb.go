package storage

import (
	"context"
	"fmt"

	"arena-server/internal/domain"
	"arena-server/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const matchCollection = "matches"

// MongoRecorder кладёт каждый матч документом в коллекцию matches
type MongoRecorder struct {
	Collection *mongo.Collection
}

// ConnectMongo подключается к MongoDB и проверяет соединение.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Log.WithField("component", "match_store").Info("Successfully connected to MongoDB")
	return client, nil
}

func NewMongoRecorder(client *mongo.Client, database string) *MongoRecorder {
	return &MongoRecorder{Collection: client.Database(database).Collection(matchCollection)}
}

func (r *MongoRecorder) Record(ctx context.Context, rec domain.MatchRecord) error {
	if _, err := r.Collection.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert match %s: %w", rec.SessionID, err)
	}
	return nil
}

// Recent - последние матчи по времени окончания
func (r *MongoRecorder) Recent(ctx context.Context, limit int) ([]domain.MatchRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "ended_at", Value: -1}}).SetLimit(int64(limit))
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}
	defer cursor.Close(ctx)

	out := []domain.MatchRecord{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	return out, nil
}
