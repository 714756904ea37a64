package testutils

import (
	"testing"

	"github.com/nsxzhou1114/blog-core/internal/config"
	"github.com/nsxzhou1114/blog-core/internal/database"
	"github.com/nsxzhou1114/blog-core/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupTestDB 创建独立的内存 SQLite 数据库并迁移所有表，测试结束时关闭
// 外键开关已打开，级联删除与线上数据库行为一致
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(&config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Database: ":memory:",
		LogLevel: "silent",
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}

	if err := model.InitTables(db); err != nil {
		t.Fatalf("迁移测试数据库失败: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// TestLogger 返回不输出的日志实例
func TestLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
