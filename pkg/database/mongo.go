package database

import (
	"context"
	"fmt"
	"time"

	"github.com/arcians/profile-registry/pkg/logger"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// OpenMongo connects to uri and verifies the deployment answers a ping.
// The caller owns the client and must Disconnect it on shutdown.
func OpenMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMonitor(commandFailureMonitor()).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	err = defaultBackoff.retry(ctx, func() error {
		ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return client.Ping(ctxPing, readpref.Primary())
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, nil
}

func commandFailureMonitor() *event.CommandMonitor {
	return &event.CommandMonitor{
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			logger.L().Error("mongo command failed",
				zap.String("command", evt.CommandName),
				zap.Int64("request_id", evt.RequestID),
				zap.Duration("duration", evt.Duration),
				zap.String("failure", evt.Failure),
			)
		},
	}
}
