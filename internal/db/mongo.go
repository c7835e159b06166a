package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OutboxStatusPending marks an entry not yet picked up by the relay.
const OutboxStatusPending = "pending"

// ConnectMongo connects to MongoDB at uri and pings it.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	// Ping to verify connection
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return client, nil
}

// OutboxEntry is one notification waiting to be relayed.
type OutboxEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Key       string             `bson:"key"`
	Payload   string             `bson:"payload"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

// MongoCollection wraps a MongoDB collection for outbox operations.
type MongoCollection struct {
	Collection *mongo.Collection
}

// InsertOutboxEntry inserts an outbox entry into the collection.
func (c *MongoCollection) InsertOutboxEntry(ctx context.Context, entry OutboxEntry) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, entry)
	return err
}

// CountPending returns the number of entries not yet relayed.
func (c *MongoCollection) CountPending(ctx context.Context) (int64, error) {
	if c.Collection == nil {
		return 0, fmt.Errorf("mongo collection is nil")
	}
	return c.Collection.CountDocuments(ctx, bson.M{"status": OutboxStatusPending})
}

// MongoOutbox publishes notifications by writing them to an outbox
// collection. It satisfies notify.Publisher.
type MongoOutbox struct {
	coll OutboxCollection
	now  func() time.Time
}

func NewMongoOutbox(coll OutboxCollection) *MongoOutbox {
	return &MongoOutbox{coll: coll, now: time.Now}
}

// Publish stores payload under key as a pending entry.
func (o *MongoOutbox) Publish(ctx context.Context, key string, payload []byte) error {
	entry := OutboxEntry{
		ID:        primitive.NewObjectID(),
		Key:       key,
		Payload:   string(payload),
		Status:    OutboxStatusPending,
		CreatedAt: o.now().UTC(),
	}
	if err := o.coll.InsertOutboxEntry(ctx, entry); err != nil {
		return fmt.Errorf("insert outbox entry %s: %w", entry.ID.Hex(), err)
	}
	return nil
}
