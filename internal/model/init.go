package model

import (
	"fmt"

	"gorm.io/gorm"
)

// 需要自动迁移的模型列表，顺序即外键依赖顺序
var models = []interface{}{
	&User{},
	&Article{},
	&Tag{},
	&ArticleTag{},
}

// InitTables 初始化数据库表，同时创建外键(ON DELETE CASCADE)与索引
func InitTables(db *gorm.DB) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("自动迁移数据库表失败: %w", err)
	}
	return nil
}

// TableNames 返回所有业务表名
func TableNames() []string {
	return []string{
		User{}.TableName(),
		Article{}.TableName(),
		Tag{}.TableName(),
		ArticleTag{}.TableName(),
	}
}
