package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicehub/config"
	"servicehub/utils"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// MongoClient is shared by every repository.
var MongoClient *mongo.Client

// ErrNotFound is returned by repositories when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

const connectAttempts = 5

// InitDB connects to DATABASE_URL, retrying the first ping with exponential backoff.
func InitDB() {
	logger := utils.GetLogger()
	client, err := connect(context.Background(), config.AppConfig.DatabaseURL)
	if err != nil {
		logger.Fatal("MongoDB unavailable", zap.Error(err))
	}
	MongoClient = client
	logger.Info("Connected to MongoDB", zap.String("database", config.AppConfig.DatabaseName))
}

func connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(5*time.Second))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	ping := func() error {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Ping(pctx, readpref.Primary())
	}
	notify := func(err error, wait time.Duration) {
		utils.GetLogger().Warn("MongoDB ping failed, retrying", zap.Duration("in", wait), zap.Error(err))
	}
	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), connectAttempts-1)
	if err := backoff.RetryNotify(ping, backoff.WithContext(b, ctx), notify); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

// GetDatabase returns the configured application database.
func GetDatabase() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}

// CloseDB disconnects the shared client.
func CloseDB(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}

// NewContext derives a bounded context for a single repository call.
func NewContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}
