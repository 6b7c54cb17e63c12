package model

import (
	"fmt"

	"github.com/username/salarypredictor/src/config"
	"github.com/username/salarypredictor/src/database"
)

// OpenStore builds the artifact store selected by cfg.ModelStore.
func OpenStore(cfg *config.AppConfig) (ArtifactStore, error) {
	switch cfg.ModelStore {
	case config.StoreSQLite:
		return OpenSQLStore(database.DriverSQLite, cfg.DatabasePath)
	case config.StorePostgres:
		return OpenSQLStore(database.DriverPostgres, cfg.DatabaseURL)
	case config.StoreFile:
		return NewFileStore(cfg.ModelPath), nil
	case config.StoreRedis:
		return NewRedisStore(cfg.RedisAddr, cfg.RedisKey), nil
	default:
		return nil, fmt.Errorf("unsupported model store: %s", cfg.ModelStore)
	}
}
