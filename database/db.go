package database

import (
	"context"
	"fmt"
	"time"

	"agendamento/config"
	"agendamento/database/repository"
	memoryRepo "agendamento/database/repository/memory"
	mongoRepo "agendamento/database/repository/mongo"
	postgresRepo "agendamento/database/repository/postgres"
	supabaseRepo "agendamento/database/repository/supabase"
	"agendamento/utils/supabase"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Store bundles the selected record store with whatever must be closed on shutdown.
type Store struct {
	repository.RecordStore
	closeFn func(ctx context.Context) error
}

// Close releases the underlying connection, if any.
func (s *Store) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// SupabaseClient builds the platform client shared by the record store and the identity provider.
func SupabaseClient(cfg config.Config) *supabase.Client {
	return supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.StoreTimeout)
}

// Open connects the record store selected by STORE_DRIVER.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Store, error) {
	switch cfg.StoreDriver {
	case "supabase":
		if cfg.SupabaseURL == "" || cfg.SupabaseServiceRoleKey == "" {
			return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required for the supabase store")
		}
		logger.Info("Using supabase record store", zap.String("url", cfg.SupabaseURL))
		return &Store{RecordStore: supabaseRepo.NewSupabaseStore(SupabaseClient(cfg))}, nil

	case "mongo":
		client, err := connectMongo(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store, err := mongoRepo.NewMongoStore(client.Database(cfg.MongoDB), cfg.StoreTimeout)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		logger.Info("Connected to MongoDB successfully!", zap.String("database", cfg.MongoDB))
		return &Store{RecordStore: store, closeFn: client.Disconnect}, nil

	case "postgres":
		db, err := postgresRepo.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to ping postgres: %w", err)
		}
		logger.Info("Connected to Postgres successfully!")
		return &Store{
			RecordStore: postgresRepo.NewPostgresStore(db, cfg.StoreTimeout),
			closeFn:     func(context.Context) error { return db.Close() },
		}, nil

	case "memory":
		logger.Warn("Using in-memory record store; data is lost on restart")
		return &Store{RecordStore: memoryRepo.NewMemoryStore()}, nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func connectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}
