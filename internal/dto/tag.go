package dto

import "github.com/nsxzhou1114/blog-core/internal/model"

// TagQuery 标签列表查询条件
type TagQuery struct {
	Keyword  string `validate:"omitempty,max=64"`
	Page     int    `validate:"omitempty,min=1"`
	PageSize int    `validate:"omitempty,min=1,max=100"`
}

// TagListResult 标签列表结果
type TagListResult struct {
	Total int64
	List  []model.Tag
}
