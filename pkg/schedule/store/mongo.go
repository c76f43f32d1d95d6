package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/signupboard/pkg/cache"
	"github.com/matzehuels/signupboard/pkg/errors"
	"github.com/matzehuels/signupboard/pkg/schedule"
)

const (
	// DefaultMongoDatabase is used when no database name is configured.
	DefaultMongoDatabase = "signupboard"

	eventsCollection = "events"
	connectTimeout   = 10 * time.Second
)

// Mongo stores one document per event, keyed by the event id.
type Mongo struct {
	client *mongo.Client
	events *mongo.Collection
	logger *log.Logger
}

// NewMongo connects to the MongoDB deployment at uri and pings it.
// Transient connection failures are retried with backoff.
func NewMongo(ctx context.Context, uri, database string, logger *log.Logger) (*Mongo, error) {
	if uri == "" {
		return nil, errors.New(errors.ErrCodeConfiguration, "mongo store requires a connection URI")
	}
	if database == "" {
		database = DefaultMongoDatabase
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetConnectTimeout(connectTimeout).
		SetAppName("signupboard"))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "connect to mongo")
	}

	err = cache.RetryWithBackoff(ctx, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
			logger.Debug("mongo ping failed", "err", err)
			return cache.Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "ping mongo")
	}

	logger.Debug("connected to mongo", "database", database)
	return &Mongo{
		client: client,
		events: client.Database(database).Collection(eventsCollection),
		logger: logger,
	}, nil
}

func (m *Mongo) Get(ctx context.Context, id string) (*schedule.Event, error) {
	var ev schedule.Event
	err := m.events.FindOne(ctx, byID(id)).Decode(&ev)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find event %s: %w", id, err)
	}
	return &ev, nil
}

func (m *Mongo) List(ctx context.Context) ([]Summary, error) {
	cur, err := m.events.Find(ctx, bson.D{}, options.Find().
		SetProjection(summaryProjection()).
		SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var ev schedule.Event
		if err := cur.Decode(&ev); err != nil {
			m.logger.Warn("skipping undecodable event", "err", err)
			continue
		}
		out = append(out, Summarize(&ev))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}

func (m *Mongo) Put(ctx context.Context, ev *schedule.Event) error {
	if err := prepare(ev); err != nil {
		return err
	}
	_, err := m.events.ReplaceOne(ctx, byID(ev.ID), ev, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("store event %s: %w", ev.ID, err)
	}
	m.logger.Debug("stored event", "id", ev.ID)
	return nil
}

func (m *Mongo) Delete(ctx context.Context, id string) error {
	res, err := m.events.DeleteOne(ctx, byID(id))
	if err != nil {
		return fmt.Errorf("delete event %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Close disconnects the client.
func (m *Mongo) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return m.client.Disconnect(ctx)
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

// summaryProjection loads only the fields Summarize reads.
func summaryProjection() bson.D {
	return bson.D{
		{Key: "name", Value: 1},
		{Key: "days.id", Value: 1},
		{Key: "tables.id", Value: 1},
		{Key: "games.id", Value: 1},
		{Key: "games.deleted", Value: 1},
	}
}

var _ Store = (*Mongo)(nil)
