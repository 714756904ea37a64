package model

import (
	"strconv"
	"time"
)

// Tag 标签模型
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(64);not null;index:idx_tag_name" json:"name" validate:"max=64"`
	Slug      string    `gorm:"type:varchar(80);not null;uniqueIndex:uq_tag_slug" json:"slug" validate:"required,max=80"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (Tag) TableName() string {
	return "blog_tag"
}

func (t Tag) String() string {
	return t.Name
}

// ArticleTag 文章-标签关联模型，同一对 (文章, 标签) 只能出现一次
type ArticleTag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;uniqueIndex:uq_article_tag,priority:1;index:idx_article_tag_article" json:"article_id"`
	TagID     uint      `gorm:"not null;uniqueIndex:uq_article_tag,priority:2;index:idx_article_tag_tag" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`

	// 关联，任一端删除时级联删除
	Article Article `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
	Tag     Tag     `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName 指定表名
func (ArticleTag) TableName() string {
	return "blog_article_tag"
}

func (at ArticleTag) String() string {
	return strconv.FormatUint(uint64(at.ArticleID), 10) + " - " + strconv.FormatUint(uint64(at.TagID), 10)
}
