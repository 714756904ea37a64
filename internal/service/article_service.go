package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/nsxzhou1114/blog-core/internal/config"
	"github.com/nsxzhou1114/blog-core/internal/database"
	"github.com/nsxzhou1114/blog-core/internal/dto"
	"github.com/nsxzhou1114/blog-core/internal/logger"
	"github.com/nsxzhou1114/blog-core/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	articleService     *ArticleService
	articleServiceOnce sync.Once
)

// ArticleService 文章服务
type ArticleService struct {
	db   *gorm.DB
	log  *zap.SugaredLogger
	cfg  config.SlugConfig
	now  func() time.Time
	view func(tx *gorm.DB) SlugView
}

// NewArticleService 创建文章服务实例
func NewArticleService() *ArticleService {
	articleServiceOnce.Do(func() {
		articleService = NewArticleServiceWith(database.GetDB(), logger.GetSugaredLogger(), config.GetConfig().Slug)
	})
	return articleService
}

// NewArticleServiceWith 使用指定依赖创建文章服务
func NewArticleServiceWith(db *gorm.DB, log *zap.SugaredLogger, cfg config.SlugConfig) *ArticleService {
	if cfg.RetryAttempts < 1 {
		cfg.RetryAttempts = 1
	}
	return &ArticleService{
		db:  db,
		log: log,
		cfg: cfg,
		now: time.Now,
		view: func(tx *gorm.DB) SlugView {
			return articleSlugView{tx: tx}
		},
	}
}

// articleSlugView 基于事务的slug占用查询，软删除的文章仍占用唯一索引，因此不过滤
type articleSlugView struct {
	tx *gorm.DB
}

func (v articleSlugView) ArticleSlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	query := v.tx.WithContext(ctx).Unscoped().Model(&model.Article{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save 按主键插入或更新文章。
// slug 为空时由标题生成；若生成的 slug 在写入时被并发请求抢占，整个推导+写入过程按配置重试。
// 调用方自带的 slug 冲突不重试，直接返回约束错误。
func (s *ArticleService) Save(ctx context.Context, article *model.Article) error {
	derived := article.Slug == ""
	return retry.Do(
		func() error {
			saved, err := s.saveOnce(ctx, *article)
			if err != nil {
				return err
			}
			*article = saved
			return nil
		},
		retry.Attempts(uint(s.cfg.RetryAttempts)),
		retry.Delay(s.cfg.RetryDelay()),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.RetryIf(func(err error) bool {
			return derived && database.IsUniqueViolation(err)
		}),
		retry.OnRetry(func(n uint, err error) {
			s.log.Warnw("文章slug写入冲突，重新生成",
				"attempt", n+1,
				"title", article.Title,
				"error", err)
		}),
	)
}

// saveOnce 在单个事务内完成推导与写入
func (s *ArticleService) saveOnce(ctx context.Context, candidate model.Article) (model.Article, error) {
	var saved model.Article
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		derived, err := DeriveArticle(ctx, candidate, s.view(tx), s.now())
		if err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(&derived).Error; err != nil {
			return database.ClassifyError(err)
		}
		saved = derived
		return nil
	})
	return saved, err
}

// Get 根据ID获取文章
func (s *ArticleService) Get(ctx context.Context, id uint) (*model.Article, error) {
	var article model.Article
	if err := s.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, notFound("文章", id, err)
	}
	return &article, nil
}

// GetBySlug 根据slug获取文章
func (s *ArticleService) GetBySlug(ctx context.Context, slug string) (*model.Article, error) {
	var article model.Article
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&article).Error; err != nil {
		return nil, notFound("文章", slug, err)
	}
	return &article, nil
}

// GetByRef 按ID或slug获取文章。
// 纯数字的 ref 先按ID查找，找不到时再按slug查找，因此数字 slug 同样可达。
func (s *ArticleService) GetByRef(ctx context.Context, ref string) (*model.Article, error) {
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil && id > 0 {
		article, err := s.Get(ctx, uint(id))
		if !errors.Is(err, ErrNotFound) {
			return article, err
		}
	}
	return s.GetBySlug(ctx, ref)
}

// List 获取文章列表，默认按创建时间倒序
func (s *ArticleService) List(ctx context.Context, q *dto.ArticleQuery) (*dto.ArticleListResult, error) {
	if err := validateEntity("article query", q); err != nil {
		return nil, err
	}
	page, pageSize := normalizePage(q.Page, q.PageSize)

	query := s.db.WithContext(ctx).Model(&model.Article{})
	if q.AuthorID > 0 {
		query = query.Where("blog_article.author_id = ?", q.AuthorID)
	}
	if q.Status != "" {
		query = query.Where("blog_article.status = ?", q.Status)
	}
	if q.Keyword != "" {
		query = query.Where("blog_article.title LIKE ? ESCAPE '!'", containsPattern(q.Keyword))
	}
	if q.TagID > 0 {
		query = query.Joins("JOIN blog_article_tag ON blog_article_tag.article_id = blog_article.id").
			Where("blog_article_tag.tag_id = ?", q.TagID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var articles []model.Article
	if err := query.Select("blog_article.*").
		Order("blog_article.created_at DESC, blog_article.id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&articles).Error; err != nil {
		return nil, err
	}

	return &dto.ArticleListResult{Total: total, List: articles}, nil
}

// Publish 发布文章
func (s *ArticleService) Publish(ctx context.Context, id uint) (*model.Article, error) {
	return s.transition(ctx, id, model.StatusPublished)
}

// Unpublish 撤回为草稿，原发布时间被清空
func (s *ArticleService) Unpublish(ctx context.Context, id uint) (*model.Article, error) {
	return s.transition(ctx, id, model.StatusDraft)
}

// Archive 归档文章
func (s *ArticleService) Archive(ctx context.Context, id uint) (*model.Article, error) {
	return s.transition(ctx, id, model.StatusArchived)
}

func (s *ArticleService) transition(ctx context.Context, id uint, status model.Status) (*model.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	article.Status = status
	if err := s.Save(ctx, article); err != nil {
		return nil, err
	}
	s.log.Infow("文章状态变更", "id", id, "status", status.String())
	return article, nil
}

// Delete 软删除文章，标签关联保留
func (s *ArticleService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Article{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("文章", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// Purge 物理删除文章（包括已软删除的），数据库级联删除标签关联
func (s *ArticleService) Purge(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Unscoped().Delete(&model.Article{}, id)
	if result.Error != nil {
		return database.ClassifyError(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("文章", id, gorm.ErrRecordNotFound)
	}
	return nil
}

// Tags 获取文章的标签，按关联创建顺序
func (s *ArticleService) Tags(ctx context.Context, articleID uint) ([]model.Tag, error) {
	var tags []model.Tag
	if err := s.db.WithContext(ctx).
		Select("blog_tag.*").
		Joins("JOIN blog_article_tag ON blog_article_tag.tag_id = blog_tag.id").
		Where("blog_article_tag.article_id = ?", articleID).
		Order("blog_article_tag.created_at, blog_article_tag.id").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// CountByStatus 统计各状态文章数量
func (s *ArticleService) CountByStatus(ctx context.Context) ([]dto.StatusCount, error) {
	var rows []dto.StatusCount
	if err := s.db.WithContext(ctx).Model(&model.Article{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// normalizePage 默认第一页，每页10条
func normalizePage(page, pageSize int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	return page, pageSize
}

// 关键词按字面匹配，! 作转义符在 MySQL、PostgreSQL、SQLite 中含义一致
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern 生成 "包含关键词" 的 LIKE 模式，需配合 ESCAPE '!' 使用
func containsPattern(keyword string) string {
	return "%" + likeEscaper.Replace(keyword) + "%"
}
