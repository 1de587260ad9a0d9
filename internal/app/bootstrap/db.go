// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"github.com/jawahirullah/portal/internal/app/store/admins"
	"github.com/jawahirullah/portal/internal/app/store/authsessions"
	"github.com/jawahirullah/portal/internal/app/store/content"
	"github.com/jawahirullah/portal/internal/app/system/docstore"
	"github.com/jawahirullah/portal/internal/app/system/docstore/memstore"
	"github.com/jawahirullah/portal/internal/app/system/indexes"
	"github.com/jawahirullah/portal/internal/app/system/timeouts"
	"github.com/jawahirullah/portal/internal/app/system/validators"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the selected document store and builds the stores on it.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	timeouts.ConfigureFromEnv()
	clock := docstore.NewClock(nil)

	if !appCfg.usesMongo() {
		return DBDeps{
			Backend:  backendMemory,
			Stores:   content.NewMemory(memstore.New(clock)),
			Admins:   admins.NewMemStore(),
			Sessions: authsessions.NewMemStore(),
			rt:       &runtime{},
		}, nil
	}

	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(appCfg.MongoDatabase)
	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		Backend:       backendMongo,
		MongoClient:   client,
		MongoDatabase: db,
		Stores:        content.NewMongo(db, clock),
		Admins:        admins.New(db),
		Sessions:      authsessions.New(db),
		rt:            &runtime{},
	}, nil
}

// EnsureSchema creates collection validators and indexes. Both are
// idempotent; the memory backend enforces its unique fields itself.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		return nil
	}
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure validators failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("ensure indexes failed", zap.Error(err))
		return err
	}
	return nil
}
