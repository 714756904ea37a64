package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ConstraintKind
	}{
		{"gorm duplicated key", gorm.ErrDuplicatedKey, ConstraintUnique},
		{"gorm foreign key", gorm.ErrForeignKeyViolated, ConstraintForeignKey},
		{"mysql 1062", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a' for key 'uq_article_slug'"}, ConstraintUnique},
		{"mysql 1452", &mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}, ConstraintForeignKey},
		{"postgres 23505", &pgconn.PgError{Code: "23505"}, ConstraintUnique},
		{"postgres 23503", &pgconn.PgError{Code: "23503"}, ConstraintForeignKey},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: blog_tag.slug (2067)"), ConstraintUnique},
		{"sqlite foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), ConstraintForeignKey},
		{"wrapped", fmt.Errorf("写入失败: %w", &mysql.MySQLError{Number: 1062}), ConstraintUnique},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ClassifyError(tt.err)
			var ce *ConstraintError
			if assert.ErrorAs(t, err, &ce) {
				assert.Equal(t, tt.kind, ce.Kind)
			}
			// 原始错误保留
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.kind == ConstraintUnique, IsUniqueViolation(err))
			assert.Equal(t, tt.kind == ConstraintForeignKey, IsForeignKeyViolation(err))
		})
	}
}

func TestClassifyError_PassThrough(t *testing.T) {
	assert.NoError(t, ClassifyError(nil))

	other := errors.New("connection refused")
	assert.Same(t, other, ClassifyError(other))
	assert.False(t, IsUniqueViolation(other))
	assert.False(t, IsForeignKeyViolation(nil))

	mysqlOther := &mysql.MySQLError{Number: 1045}
	assert.Equal(t, error(mysqlOther), ClassifyError(mysqlOther))
}

func TestClassifyError_Idempotent(t *testing.T) {
	first := ClassifyError(gorm.ErrDuplicatedKey)
	assert.Same(t, first, ClassifyError(first))
}
