// Package testutil 测试用的内存数据库
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-shop-admin/internal/core/database"
	"go-shop-admin/internal/domain"
)

var seq atomic.Int64

// NewDB 每个测试一个独立的 sqlite 内存库，已建好全部表
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:test%d?mode=memory&cache=shared&_foreign_keys=on", seq.Add(1))
	db, err := database.NewGorm(database.Opts{Driver: "sqlite", DSN: dsn, LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, domain.Models()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
