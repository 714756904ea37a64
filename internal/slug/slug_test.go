package slug

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation collapses", "Hello, World!", "hello-world"},
		{"leading and trailing separators trimmed", "  --Go 1.22 released--  ", "go-1-22-released"},
		{"accents folded", "Café Crème Brûlée", "cafe-creme-brulee"},
		{"underscore is a separator", "snake_case_title", "snake-case-title"},
		{"digits kept", "Top 10 Tips", "top-10-tips"},
		{"only symbols", "!!! ??? ...", ""},
		{"non latin dropped", "你好", ""},
		{"mixed scripts", "Go 语言 入门", "go"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello-world", 6))
	assert.Equal(t, "hello-world", Truncate("hello-world", 50))
	assert.Equal(t, "", Truncate("hello", 0))
}

func TestBase_Fallback(t *testing.T) {
	assert.Equal(t, "tag", Base("***", TagMaxLen, TagFallback))
	assert.Equal(t, "article", Base("", ArticleBaseLen, ArticleFallback))
	assert.Equal(t, "hello-world", Base("Hello, World!", TagMaxLen, TagFallback))

	long := strings.Repeat("abc ", 100)
	got := Base(long, TagMaxLen, TagFallback)
	assert.LessOrEqual(t, len(got), TagMaxLen)
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestUnique_NoCollision(t *testing.T) {
	got, err := Unique(context.Background(), "hello", ArticleMaxLen, func(context.Context, string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestUnique_AppendsIncreasingSuffix(t *testing.T) {
	existing := map[string]bool{"hello": true, "hello-2": true, "hello-3": true}
	got, err := Unique(context.Background(), "hello", ArticleMaxLen, func(_ context.Context, s string) (bool, error) {
		return existing[s], nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-4", got)
}

func TestUnique_SuffixRespectsMaxLen(t *testing.T) {
	base := strings.Repeat("a", ArticleBaseLen)
	calls := 0
	got, err := Unique(context.Background(), base, 212, func(_ context.Context, s string) (bool, error) {
		calls++
		return calls < 12, nil
	})
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("a", 212-3)+"-12", got)
	assert.LessOrEqual(t, len(got), 212)
}

func TestUnique_PropagatesLookupError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Unique(context.Background(), "hello", ArticleMaxLen, func(context.Context, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestUnique_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Unique(ctx, "hello", ArticleMaxLen, func(context.Context, string) (bool, error) {
		return true, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
