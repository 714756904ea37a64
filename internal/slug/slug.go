// Package slug 把标题、名称转换为 URL 安全的小写连字符标识，并在给定范围内去重。
package slug

import (
	"context"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// 文章与标签的 slug 长度限制，与 blog_article.slug / blog_tag.slug 列宽一致
const (
	ArticleMaxLen   = 220
	ArticleBaseLen  = 210
	ArticleFallback = "article"

	TagMaxLen   = 80
	TagFallback = "tag"
)

// TakenFunc 判断候选 slug 是否已被占用
type TakenFunc func(ctx context.Context, candidate string) (bool, error)

// Slugify 生成纯 ASCII 的 slug：去除重音、转小写，非字母数字的连续字符折叠为一个连字符
func Slugify(s string) string {
	// transform.Chain 带状态，不能在协程间共享
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	sep := false
	for _, r := range folded {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			sep = false
			b.WriteRune(r)
			continue
		}
		sep = true
	}
	return b.String()
}

// Truncate 截断到最多 n 字节并去掉末尾的连字符，s 必须是 Slugify 的结果
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) > n {
		s = s[:n]
	}
	return strings.TrimRight(s, "-")
}

// Base 由源字符串得到 slug 基础部分，结果为空时使用 fallback
func Base(source string, maxLen int, fallback string) string {
	if s := Truncate(Slugify(source), maxLen); s != "" {
		return s
	}
	return fallback
}

// Unique 返回 base 或 base-2、base-3 … 中第一个未被占用的值，总长度不超过 maxLen
func Unique(ctx context.Context, base string, maxLen int, taken TakenFunc) (string, error) {
	candidate := Truncate(base, maxLen)
	for i := 2; ; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		suffix := "-" + strconv.Itoa(i)
		candidate = Truncate(base, maxLen-len(suffix)) + suffix
	}
}
