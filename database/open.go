package database

import (
	"context"
	"fmt"

	"salestrack/config"

	"go.uber.org/zap"
)

// Open builds the DocumentStore selected by cfg.StoreDriver.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (DocumentStore, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	case config.DriverFirestore:
		store, err := NewFirestoreStore(ctx, cfg.FirestoreProjectID)
		if err != nil {
			return nil, err
		}
		logger.Info("connected to Firestore", zap.String("project", cfg.FirestoreProjectID))
		return store, nil
	case config.DriverMemory:
		logger.Warn("using in-memory document store, data is lost on exit")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
