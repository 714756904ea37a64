package service

import (
	"context"
	"sync"

	"github.com/nsxzhou1114/blog-core/internal/database"
	"github.com/nsxzhou1114/blog-core/internal/dto"
	"github.com/nsxzhou1114/blog-core/internal/logger"
	"github.com/nsxzhou1114/blog-core/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	tagService     *TagService
	tagServiceOnce sync.Once
)

// TagService 标签服务
type TagService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewTagService 创建标签服务实例
func NewTagService() *TagService {
	tagServiceOnce.Do(func() {
		tagService = NewTagServiceWith(database.GetDB(), logger.GetSugaredLogger())
	})
	return tagService
}

// NewTagServiceWith 使用指定依赖创建标签服务
func NewTagServiceWith(db *gorm.DB, log *zap.SugaredLogger) *TagService {
	return &TagService{db: db, log: log}
}

// Save 按主键插入或更新标签。
// slug 为空时由名称生成一次，与已有标签冲突时返回唯一约束错误。
func (s *TagService) Save(ctx context.Context, tag *model.Tag) error {
	derived, err := DeriveTag(*tag)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Save(&derived).Error; err != nil {
		return database.ClassifyError(err)
	}
	*tag = derived
	return nil
}

// Get 根据ID获取标签
func (s *TagService) Get(ctx context.Context, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, notFound("标签", id, err)
	}
	return &tag, nil
}

// GetBySlug 根据slug获取标签
func (s *TagService) GetBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	var tag model.Tag
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, notFound("标签", slug, err)
	}
	return &tag, nil
}

// List 获取标签列表，按名称排序
func (s *TagService) List(ctx context.Context, q *dto.TagQuery) (*dto.TagListResult, error) {
	if err := validateEntity("tag query", q); err != nil {
		return nil, err
	}
	page, pageSize := normalizePage(q.Page, q.PageSize)

	query := s.db.WithContext(ctx).Model(&model.Tag{})
	if q.Keyword != "" {
		query = query.Where("name LIKE ? ESCAPE '!'", containsPattern(q.Keyword))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var tags []model.Tag
	if err := query.Order("name, id").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&tags).Error; err != nil {
		return nil, err
	}

	return &dto.TagListResult{Total: total, List: tags}, nil
}

// Delete 删除标签，数据库级联删除其文章关联
func (s *TagService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Tag{}, id)
	if result.Error != nil {
		return database.ClassifyError(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("标签", id, gorm.ErrRecordNotFound)
	}
	s.log.Infow("标签已删除", "id", id)
	return nil
}

// Articles 获取标签下未删除的文章，按创建时间倒序
func (s *TagService) Articles(ctx context.Context, tagID uint) ([]model.Article, error) {
	var articles []model.Article
	if err := s.db.WithContext(ctx).
		Select("blog_article.*").
		Joins("JOIN blog_article_tag ON blog_article_tag.article_id = blog_article.id").
		Where("blog_article_tag.tag_id = ?", tagID).
		Order("blog_article.created_at DESC, blog_article.id DESC").
		Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// Attach 为文章添加标签。
// 重复关联返回唯一约束错误，文章或标签不存在时返回外键约束错误。
func (s *TagService) Attach(ctx context.Context, articleID, tagID uint) (*model.ArticleTag, error) {
	link := &model.ArticleTag{ArticleID: articleID, TagID: tagID}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error; err != nil {
		return nil, database.ClassifyError(err)
	}
	return link, nil
}

// Detach 移除文章的标签
func (s *TagService) Detach(ctx context.Context, articleID, tagID uint) error {
	result := s.db.WithContext(ctx).
		Where("article_id = ? AND tag_id = ?", articleID, tagID).
		Delete(&model.ArticleTag{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("文章标签", model.ArticleTag{ArticleID: articleID, TagID: tagID}, gorm.ErrRecordNotFound)
	}
	return nil
}
