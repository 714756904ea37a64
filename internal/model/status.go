package model

import (
	"database/sql/driver"
	"fmt"
)

// Status 文章状态，只有 Draft、Published、Archived 三个取值，零值为 Draft
type Status struct {
	v uint8
}

var (
	StatusDraft     = Status{0}
	StatusPublished = Status{1}
	StatusArchived  = Status{2}
)

var statusNames = [...]string{"draft", "published", "archived"}

// Statuses 全部状态，按定义顺序
func Statuses() []Status {
	return []Status{StatusDraft, StatusPublished, StatusArchived}
}

// ParseStatus 解析状态字符串
func ParseStatus(s string) (Status, error) {
	for i, name := range statusNames {
		if name == s {
			return Status{uint8(i)}, nil
		}
	}
	return Status{}, fmt.Errorf("无效的文章状态: %q", s)
}

// Valid 是否为已定义的状态
func (s Status) Valid() bool {
	return int(s.v) < len(statusNames)
}

func (s Status) String() string {
	if !s.Valid() {
		return ""
	}
	return statusNames[s.v]
}

// IsPublished 是否已发布
func (s Status) IsPublished() bool {
	return s == StatusPublished
}

// MarshalText 实现 encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("无效的文章状态: %d", s.v)
	}
	return []byte(s.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Value 实现 driver.Valuer，以字符串落库
func (s Status) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("无效的文章状态: %d", s.v)
	}
	return s.String(), nil
}

// Scan 实现 sql.Scanner
func (s *Status) Scan(value interface{}) error {
	switch v := value.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	case nil:
		*s = StatusDraft
		return nil
	default:
		return fmt.Errorf("无法将 %T 转换为文章状态", value)
	}
}
