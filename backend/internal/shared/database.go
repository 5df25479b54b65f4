// ============================================================================
// backend/internal/shared/database.go
// MongoDB connection helpers
// ============================================================================

package shared

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoConfig holds MongoDB connection configuration
type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64
	MaxIdleTime    time.Duration
}

// DefaultMongoConfig returns default MongoDB configuration
func DefaultMongoConfig(uri, database string) *MongoConfig {
	return &MongoConfig{
		URI:            uri,
		Database:       database,
		ConnectTimeout: 20 * time.Second,
		MaxPoolSize:    50,
		MinPoolSize:    10,
		MaxIdleTime:    30 * time.Second,
	}
}

// ConnectMongoDB establishes a MongoDB connection with pooling configured.
func ConnectMongoDB(config *MongoConfig) (*mongo.Client, *mongo.Database, error) {
	if config == nil {
		return nil, nil, fmt.Errorf("mongo config cannot be nil")
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(config.URI).
		SetMaxPoolSize(config.MaxPoolSize).
		SetMinPoolSize(config.MinPoolSize).
		SetMaxConnIdleTime(config.MaxIdleTime).
		SetServerSelectionTimeout(10 * time.Second).
		SetConnectTimeout(config.ConnectTimeout).
		SetSocketTimeout(30 * time.Second).
		SetHeartbeatInterval(10 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Printf("Successfully connected to MongoDB (Database: %s)", config.Database)

	db := client.Database(config.Database)
	return client, db, nil
}

// DisconnectMongoDB gracefully closes the MongoDB connection.
func DisconnectMongoDB(client *mongo.Client) error {
	if client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	log.Println("Successfully disconnected from MongoDB")
	return nil
}
