package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ConstraintKind 约束类型
type ConstraintKind int

const (
	// ConstraintUnique 唯一约束
	ConstraintUnique ConstraintKind = iota + 1
	// ConstraintForeignKey 外键约束
	ConstraintForeignKey
)

func (k ConstraintKind) String() string {
	switch k {
	case ConstraintUnique:
		return "unique"
	case ConstraintForeignKey:
		return "foreign key"
	default:
		return "unknown"
	}
}

// ConstraintError 数据库在写入时拒绝的约束冲突，Err 为驱动返回的原始错误
type ConstraintError struct {
	Kind ConstraintKind
	Err  error
}

func (e *ConstraintError) Error() string {
	return "违反" + e.Kind.String() + "约束: " + e.Err.Error()
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

// MySQL / PostgreSQL 错误码
const (
	mysqlDuplicateEntry   = 1062
	mysqlRowIsReferenced  = 1451
	mysqlNoReferencedRow  = 1452
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ClassifyError 把驱动层的约束错误包装为 *ConstraintError，其他错误原样返回
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return err
	}
	switch {
	case isUnique(err):
		return &ConstraintError{Kind: ConstraintUnique, Err: err}
	case isForeignKey(err):
		return &ConstraintError{Kind: ConstraintForeignKey, Err: err}
	}
	return err
}

// IsUniqueViolation 是否为唯一约束冲突
func IsUniqueViolation(err error) bool {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Kind == ConstraintUnique
	}
	return err != nil && isUnique(err)
}

// IsForeignKeyViolation 是否为外键约束冲突
func IsForeignKeyViolation(err error) bool {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Kind == ConstraintForeignKey
	}
	return err != nil && isForeignKey(err)
}

func isUnique(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// sqlite 驱动只提供错误文本
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlNoReferencedRow || myErr.Number == mysqlRowIsReferenced
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
