package dto

import "github.com/nsxzhou1114/blog-core/internal/model"

// ArticleQuery 文章列表查询条件
type ArticleQuery struct {
	AuthorID uint   // 作者ID
	TagID    uint   // 标签ID
	Status   string `validate:"omitempty,oneof=draft published archived"` // 状态
	Keyword  string `validate:"omitempty,max=200"`                         // 标题关键词
	Page     int    `validate:"omitempty,min=1"`
	PageSize int    `validate:"omitempty,min=1,max=100"`
}

// ArticleListResult 文章列表结果，按创建时间倒序
type ArticleListResult struct {
	Total int64
	List  []model.Article
}

// StatusCount 各状态的文章数量
type StatusCount struct {
	Status model.Status
	Count  int64
}
