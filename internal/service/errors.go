package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nsxzhou1114/blog-core/internal/model"
	"gorm.io/gorm"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("记录不存在")

// FieldError 单个字段的校验失败
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e FieldError) String() string {
	if e.Param != "" {
		return fmt.Sprintf("%s(%s=%s)", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("%s(%s)", e.Field, e.Rule)
}

// ValidationError 写入前的字段校验错误，调用方需修正输入后重试
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.String())
	}
	return fmt.Sprintf("%s 校验失败: %s", e.Entity, strings.Join(parts, ", "))
}

// Has 是否包含指定字段的校验失败
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Status 以字符串参与 oneof 校验，非法取值得到空串
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if s, ok := field.Interface().(model.Status); ok {
			return s.String()
		}
		return nil
	}, model.Status{})
	return v
}

// validateEntity 执行结构体校验，把 validator 的错误转换为 *ValidationError
func validateEntity(entity string, value interface{}) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{Entity: entity, Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, FieldError{
			Field: fe.Field(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return ve
}

func notFound(entity string, key interface{}, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %v: %w", entity, key, ErrNotFound)
	}
	return err
}
