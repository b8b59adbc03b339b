package cmd

import (
	"context"
	"fmt"

	"order-manager/core/config"
	"order-manager/core/database"
	"order-manager/core/events"
	"order-manager/core/logger"
	"order-manager/core/storage"
	"order-manager/core/store"
	"order-manager/feature/health"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles the dependencies every command needs.
type runtime struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     store.Store
	db        *gorm.DB
	storage   storage.Client
	publisher events.Publisher
}

// bootstrap loads configuration, builds the logger and opens the configured
// store. withEvents also connects the event publisher.
func bootstrap(ctx context.Context, withEvents bool) (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: l, publisher: events.Nop{}}
	if err := rt.openStore(ctx); err != nil {
		return nil, err
	}

	if withEvents {
		publisher, err := events.New(cfg.Events, l)
		if err != nil {
			_ = rt.store.Close()
			return nil, fmt.Errorf("failed to connect to event broker: %w", err)
		}
		rt.publisher = publisher
	}

	l.Info("Store ready", zap.String("backend", cfg.Store.Backend))
	return rt, nil
}

func (rt *runtime) openStore(ctx context.Context) error {
	cfg := rt.cfg
	switch cfg.Store.Backend {
	case store.BackendSQL:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		sqlStore := store.NewSQL(db)
		if cfg.Store.AutoMigrate {
			if err := sqlStore.Migrate(ctx); err != nil {
				_ = sqlStore.Close()
				return fmt.Errorf("failed to migrate database: %w", err)
			}
		}
		rt.db = db
		rt.store = sqlStore
	case store.BackendFile:
		rt.store = store.NewDocument(store.NewFSBlob(afero.NewOsFs(), cfg.Store.Dir), rt.logger)
	case store.BackendBucket:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return err
		}
		rt.storage = client
		rt.store = store.NewDocument(store.NewBucketBlob(client, cfg.Storage.Bucket, cfg.Store.Prefix), rt.logger)
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
	return nil
}

func (rt *runtime) healthDeps() health.Deps {
	return health.Deps{
		Store:     rt.store,
		DB:        rt.db,
		Storage:   rt.storage,
		Bucket:    rt.cfg.Storage.Bucket,
		Publisher: rt.publisher,
	}
}

func (rt *runtime) close() {
	if err := rt.publisher.Close(); err != nil {
		rt.logger.Warn("Failed to close event publisher", zap.Error(err))
	}
	if err := rt.store.Close(); err != nil {
		rt.logger.Warn("Failed to close store", zap.Error(err))
	}
	_ = rt.logger.Sync()
}
