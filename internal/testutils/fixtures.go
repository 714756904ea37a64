package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/blog-core/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateTestUser 创建用户名唯一的测试作者
func CreateTestUser(db *gorm.DB, opts ...UserOption) *model.User {
	user := &model.User{
		Username: fmt.Sprintf("author_%s", uuid.NewString()[:8]),
	}
	for _, opt := range opts {
		opt(user)
	}
	if err := db.Create(user).Error; err != nil {
		panic(fmt.Sprintf("创建测试作者失败: %v", err))
	}
	return user
}

// UserOption 配置测试作者
type UserOption func(*model.User)

// WithUsername 指定用户名
func WithUsername(username string) UserOption {
	return func(u *model.User) {
		u.Username = username
	}
}

// CreateTestArticle 直接写库创建测试文章，绕过推导逻辑，slug 默认唯一
func CreateTestArticle(db *gorm.DB, authorID uint, opts ...ArticleOption) *model.Article {
	id := uuid.NewString()
	article := &model.Article{
		AuthorID: authorID,
		Title:    "Test Article " + id[:8],
		Slug:     "test-article-" + id,
		Content:  "content",
		Status:   model.StatusDraft,
	}
	for _, opt := range opts {
		opt(article)
	}
	if err := db.Omit(clause.Associations).Create(article).Error; err != nil {
		panic(fmt.Sprintf("创建测试文章失败: %v", err))
	}
	return article
}

// ArticleOption 配置测试文章
type ArticleOption func(*model.Article)

// WithTitle 指定标题
func WithTitle(title string) ArticleOption {
	return func(a *model.Article) {
		a.Title = title
	}
}

// WithSlug 指定 slug
func WithSlug(slug string) ArticleOption {
	return func(a *model.Article) {
		a.Slug = slug
	}
}

// WithPublished 以指定时间发布
func WithPublished(at time.Time) ArticleOption {
	return func(a *model.Article) {
		a.Status = model.StatusPublished
		a.PublishedAt = &at
	}
}

// WithCreatedAt 指定创建时间
func WithCreatedAt(at time.Time) ArticleOption {
	return func(a *model.Article) {
		a.CreatedAt = at
	}
}

// CreateTestTag 直接写库创建测试标签
func CreateTestTag(db *gorm.DB, name string) *model.Tag {
	tag := &model.Tag{
		Name: name,
		Slug: fmt.Sprintf("tag-%s", uuid.NewString()[:8]),
	}
	if err := db.Create(tag).Error; err != nil {
		panic(fmt.Sprintf("创建测试标签失败: %v", err))
	}
	return tag
}

// AttachTestTag 直接写库创建文章标签关联
func AttachTestTag(db *gorm.DB, articleID, tagID uint) *model.ArticleTag {
	link := &model.ArticleTag{ArticleID: articleID, TagID: tagID}
	if err := db.Omit(clause.Associations).Create(link).Error; err != nil {
		panic(fmt.Sprintf("创建测试文章标签失败: %v", err))
	}
	return link
}
