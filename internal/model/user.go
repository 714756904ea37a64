package model

import (
	"time"
)

// User 文章作者，由外部认证系统维护，这里只保留身份信息
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"type:varchar(150);not null;uniqueIndex" json:"username" validate:"required,max=150"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

func (u User) String() string {
	return u.Username
}
