package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig holds connection settings for a MongoDB chart store.
type MongoConfig struct {
	// URI is the MongoDB connection string.
	URI string

	// Database is the database name. Defaults to "legenda".
	Database string
}

// MongoStore persists charts in a MongoDB collection. It is the backend
// for deployments where charts must survive restarts and be visible to
// every server replica.
type MongoStore struct {
	client *mongo.Client
	charts *mongo.Collection
}

// mongoChart is the stored representation. The chart ID doubles as the
// document key, so lookups need no secondary index.
type mongoChart struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Source    []byte    `bson:"source"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "legenda"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoStore{
		client: client,
		charts: client.Database(cfg.Database).Collection("charts"),
	}, nil
}

// Get retrieves a chart by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Chart, error) {
	var rec mongoChart
	err := s.charts.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find chart: %w", err)
	}
	return rec.chart(), nil
}

// List returns all charts ordered by creation time, oldest first.
// Ties break on ID so the order is stable.
func (s *MongoStore) List(ctx context.Context) ([]*Chart, error) {
	sort := bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}
	cur, err := s.charts.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("list charts: %w", err)
	}
	var recs []mongoChart
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("decode charts: %w", err)
	}
	charts := make([]*Chart, len(recs))
	for i := range recs {
		charts[i] = recs[i].chart()
	}
	return charts, nil
}

// Create stores a new chart.
func (s *MongoStore) Create(ctx context.Context, ch *Chart) error {
	prepareCreate(ch)
	if _, err := s.charts.InsertOne(ctx, newMongoChart(ch)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrExists
		}
		return fmt.Errorf("insert chart: %w", err)
	}
	return nil
}

// Update replaces a stored chart. Only name and source change; the
// creation time is kept, and both timestamps are written back to ch.
func (s *MongoStore) Update(ctx context.Context, ch *Chart) error {
	update := bson.M{"$set": bson.M{
		"name":       ch.Name,
		"source":     ch.Source,
		"updated_at": nowUTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var rec mongoChart
	err := s.charts.FindOneAndUpdate(ctx, bson.M{"_id": ch.ID}, update, opts).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return fmt.Errorf("update chart: %w", err)
	}
	ch.CreatedAt = rec.CreatedAt.UTC()
	ch.UpdatedAt = rec.UpdatedAt.UTC()
	return nil
}

// Delete removes a chart.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.charts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete chart: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func newMongoChart(ch *Chart) mongoChart {
	return mongoChart{
		ID:        ch.ID,
		Name:      ch.Name,
		Source:    ch.Source,
		CreatedAt: ch.CreatedAt,
		UpdatedAt: ch.UpdatedAt,
	}
}

// chart converts the stored record back to the API type. BSON datetimes
// come back in the local zone at millisecond precision, so timestamps
// are normalized to UTC.
func (r mongoChart) chart() *Chart {
	return &Chart{
		ID:        r.ID,
		Name:      r.Name,
		Source:    r.Source,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

var _ Store = (*MongoStore)(nil)
