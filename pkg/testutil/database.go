package testutil

import (
	"context"
	"fmt"

	"github.com/quantex-lab/relayer/internal/entity"
	"github.com/quantex-lab/relayer/pkg/logger"
	"github.com/quantex-lab/relayer/pkg/xcontext"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// MockContext returns a context carrying a silent logger and an in-memory
// sqlite database with the schema migrated.
func MockContext() context.Context {
	ctx := context.Background()
	ctx = xcontext.WithLogger(ctx, logger.NewSilentLogger())

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(&entity.Transaction{}); err != nil {
		panic(err)
	}

	return xcontext.WithDB(ctx, db)
}

// MockContextWithoutDB is for tests that never touch the repository.
func MockContextWithoutDB() context.Context {
	return xcontext.WithLogger(context.Background(), logger.NewSilentLogger())
}
