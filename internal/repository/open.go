package repository

import (
	"context"
	"fmt"

	"github.com/d60-Lab/board-api/config"
	"github.com/d60-Lab/board-api/pkg/database"
)

// Open 按 store.driver 选择后端
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case config.StoreMemory, "":
		return NewMemoryStore(), nil
	case config.StoreSQLite:
		db, err := database.InitDB(cfg)
		if err != nil {
			return nil, err
		}
		return NewGormStore(ctx, db)
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", cfg.Store.Driver)
	}
}
