package service

import (
	"context"
	"sync"

	"github.com/nsxzhou1114/blog-core/internal/database"
	"github.com/nsxzhou1114/blog-core/internal/logger"
	"github.com/nsxzhou1114/blog-core/internal/model"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	userService     *UserService
	userServiceOnce sync.Once
)

// UserService 作者服务，只维护文章外键所需的身份记录
type UserService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewUserService 创建作者服务实例
func NewUserService() *UserService {
	userServiceOnce.Do(func() {
		userService = NewUserServiceWith(database.GetDB(), logger.GetSugaredLogger())
	})
	return userService
}

// NewUserServiceWith 使用指定依赖创建作者服务
func NewUserServiceWith(db *gorm.DB, log *zap.SugaredLogger) *UserService {
	return &UserService{db: db, log: log}
}

// Create 创建作者，用户名重复时返回唯一约束错误
func (s *UserService) Create(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{Username: username}
	if err := validateEntity("user", user); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, database.ClassifyError(err)
	}
	s.log.Infow("作者已创建", "id", user.ID, "username", user.Username)
	return user, nil
}

// Get 根据ID获取作者
func (s *UserService) Get(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound("作者", id, err)
	}
	return &user, nil
}

// GetByUsername 根据用户名获取作者
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound("作者", username, err)
	}
	return &user, nil
}

// Delete 删除作者，数据库级联删除其全部文章（含已软删除的）及文章标签关联
func (s *UserService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.User{}, id)
	if result.Error != nil {
		return database.ClassifyError(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("作者", id, gorm.ErrRecordNotFound)
	}
	s.log.Infow("作者已删除", "id", id)
	return nil
}
