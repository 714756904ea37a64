package model

import (
	"time"

	"gorm.io/gorm"
)

// Article 文章模型
type Article struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	AuthorID    uint           `gorm:"not null;index:idx_article_author_created,priority:1" json:"author_id" validate:"required"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	Slug        string         `gorm:"type:varchar(220);not null;uniqueIndex:uq_article_slug" json:"slug" validate:"required,max=220"`
	Content     string         `gorm:"type:text;not null" json:"content" validate:"required"`
	Status      Status         `gorm:"type:varchar(20);not null;default:'draft';index:idx_article_status;index:idx_article_status_published,priority:1" json:"status" validate:"oneof=draft published archived"`
	PublishedAt *time.Time     `gorm:"index:idx_article_published;index:idx_article_status_published,priority:2" json:"published_at"`
	CreatedAt   time.Time      `gorm:"index:idx_article_author_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index:idx_article_deleted" json:"deleted_at" validate:"-"`

	// 关联
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty" validate:"-"`
}

// TableName 指定表名
func (Article) TableName() string {
	return "blog_article"
}

func (a Article) String() string {
	return a.Title
}
