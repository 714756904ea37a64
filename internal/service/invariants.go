package service

import (
	"context"
	"time"

	"github.com/nsxzhou1114/blog-core/internal/model"
	"github.com/nsxzhou1114/blog-core/internal/slug"
)

// SlugView 写入前检查文章slug占用情况的只读视图
type SlugView interface {
	// ArticleSlugTaken 除 excludeID 之外是否已有文章使用该 slug
	ArticleSlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error)
}

// DeriveArticle 在写入前推导并校验文章的不变量，返回可直接落库的副本：
//   - slug 为空时由标题生成，并在 view 范围内去重
//   - 状态为 published 且未设置发布时间时，发布时间取 now
//   - 状态不是 published 时清空发布时间
//   - 最后执行完整的字段校验，调用方自带的 slug 还要校验唯一性
func DeriveArticle(ctx context.Context, candidate model.Article, view SlugView, now time.Time) (model.Article, error) {
	supplied := candidate.Slug != ""
	if !supplied {
		base := slug.Base(candidate.Title, slug.ArticleBaseLen, slug.ArticleFallback)
		s, err := slug.Unique(ctx, base, slug.ArticleMaxLen, func(ctx context.Context, s string) (bool, error) {
			return view.ArticleSlugTaken(ctx, s, candidate.ID)
		})
		if err != nil {
			return model.Article{}, err
		}
		candidate.Slug = s
	}

	applyPublishState(&candidate, now)

	if err := validateEntity("article", candidate); err != nil {
		return model.Article{}, err
	}

	if supplied {
		taken, err := view.ArticleSlugTaken(ctx, candidate.Slug, candidate.ID)
		if err != nil {
			return model.Article{}, err
		}
		if taken {
			return model.Article{}, &ValidationError{
				Entity: "article",
				Fields: []FieldError{{Field: "Slug", Rule: "unique"}},
			}
		}
	}
	return candidate, nil
}

// applyPublishState 保证 status == published 当且仅当 published_at 非空
func applyPublishState(a *model.Article, now time.Time) {
	if !a.Status.IsPublished() {
		// 离开发布状态会丢弃原发布时间，再次发布时重新取值
		a.PublishedAt = nil
		return
	}
	if a.PublishedAt == nil {
		t := now
		a.PublishedAt = &t
	}
}

// DeriveTag 推导标签slug并校验，slug 只生成一次，不做冲突重试
func DeriveTag(candidate model.Tag) (model.Tag, error) {
	if candidate.Slug == "" {
		candidate.Slug = slug.Base(candidate.Name, slug.TagMaxLen, slug.TagFallback)
	}
	if err := validateEntity("tag", candidate); err != nil {
		return model.Tag{}, err
	}
	return candidate, nil
}
