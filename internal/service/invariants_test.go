package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nsxzhou1114/blog-core/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSlugView slug -> 文章ID
type fakeSlugView map[string]uint

func (v fakeSlugView) ArticleSlugTaken(_ context.Context, slug string, excludeID uint) (bool, error) {
	id, ok := v[slug]
	return ok && id != excludeID, nil
}

type failingSlugView struct{ err error }

func (v failingSlugView) ArticleSlugTaken(context.Context, string, uint) (bool, error) {
	return false, v.err
}

var fixedNow = time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC)

func validArticle() model.Article {
	return model.Article{
		AuthorID: 1,
		Title:    "Hello World",
		Content:  "body",
	}
}

func TestDeriveArticle_Slug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		slug  string
		view  fakeSlugView
		want  string
	}{
		{name: "由标题生成", title: "Hello World!", view: fakeSlugView{}, want: "hello-world"},
		{name: "去除重音", title: "Café Déjà Vu", view: fakeSlugView{}, want: "cafe-deja-vu"},
		{name: "冲突追加后缀", title: "Hello World", view: fakeSlugView{"hello-world": 7}, want: "hello-world-2"},
		{name: "连续冲突", title: "Hello World", view: fakeSlugView{"hello-world": 7, "hello-world-2": 8}, want: "hello-world-3"},
		{name: "标题无可用字符", title: "!!!", view: fakeSlugView{}, want: "article"},
		{name: "兜底值冲突", title: "你好", view: fakeSlugView{"article": 3}, want: "article-2"},
		{name: "保留调用方slug", title: "Hello World", slug: "custom", view: fakeSlugView{}, want: "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validArticle()
			candidate.Title = tt.title
			candidate.Slug = tt.slug

			got, err := DeriveArticle(context.Background(), candidate, tt.view, fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Slug)
		})
	}
}

func TestDeriveArticle_LongTitle(t *testing.T) {
	// ㎒ 经 NFKD 展开为 MHz，200 个字符的标题得到 600 字节的 slug
	candidate := validArticle()
	candidate.Title = strings.Repeat("㎒", 200)

	got, err := DeriveArticle(context.Background(), candidate, fakeSlugView{}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("mhz", 70), got.Slug)

	taken := fakeSlugView{got.Slug: 9}
	got, err = DeriveArticle(context.Background(), candidate, taken, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("mhz", 70)+"-2", got.Slug)
	assert.LessOrEqual(t, len(got.Slug), 220)
}

func TestDeriveArticle_ExcludesSelf(t *testing.T) {
	candidate := validArticle()
	candidate.ID = 7
	candidate.Slug = "hello-world"

	got, err := DeriveArticle(context.Background(), candidate, fakeSlugView{"hello-world": 7}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "hello-world", got.Slug)
}

func TestDeriveArticle_SuppliedSlugTaken(t *testing.T) {
	candidate := validArticle()
	candidate.Slug = "hello-world"

	_, err := DeriveArticle(context.Background(), candidate, fakeSlugView{"hello-world": 3}, fixedNow)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("Slug"))
	assert.Equal(t, "unique", ve.Fields[0].Rule)
}

func TestDeriveArticle_PublishState(t *testing.T) {
	earlier := fixedNow.Add(-48 * time.Hour)

	tests := []struct {
		name        string
		status      model.Status
		publishedAt *time.Time
		want        *time.Time
	}{
		{name: "发布时补齐发布时间", status: model.StatusPublished, want: &fixedNow},
		{name: "已发布保留原时间", status: model.StatusPublished, publishedAt: &earlier, want: &earlier},
		{name: "草稿清空发布时间", status: model.StatusDraft, publishedAt: &earlier},
		{name: "归档清空发布时间", status: model.StatusArchived, publishedAt: &earlier},
		{name: "草稿保持为空", status: model.StatusDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validArticle()
			candidate.Status = tt.status
			candidate.PublishedAt = tt.publishedAt

			got, err := DeriveArticle(context.Background(), candidate, fakeSlugView{}, fixedNow)
			require.NoError(t, err)
			assert.Equal(t, tt.status, got.Status)
			if tt.want == nil {
				assert.Nil(t, got.PublishedAt)
				return
			}
			require.NotNil(t, got.PublishedAt)
			assert.True(t, tt.want.Equal(*got.PublishedAt))
			// status == published 当且仅当 published_at 非空
			assert.Equal(t, got.Status.IsPublished(), got.PublishedAt != nil)
		})
	}
}

func TestDeriveArticle_DoesNotMutateCandidate(t *testing.T) {
	candidate := validArticle()
	candidate.Status = model.StatusPublished

	_, err := DeriveArticle(context.Background(), candidate, fakeSlugView{}, fixedNow)
	require.NoError(t, err)
	assert.Empty(t, candidate.Slug)
	assert.Nil(t, candidate.PublishedAt)
}

func TestDeriveArticle_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(a *model.Article)
		field  string
	}{
		{name: "缺少作者", modify: func(a *model.Article) { a.AuthorID = 0 }, field: "AuthorID"},
		{name: "缺少标题", modify: func(a *model.Article) { a.Title = "" }, field: "Title"},
		{name: "标题过长", modify: func(a *model.Article) { a.Title = strings.Repeat("a", 201) }, field: "Title"},
		{name: "缺少正文", modify: func(a *model.Article) { a.Content = "" }, field: "Content"},
		{name: "slug过长", modify: func(a *model.Article) { a.Slug = strings.Repeat("a", 221) }, field: "Slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validArticle()
			tt.modify(&candidate)

			_, err := DeriveArticle(context.Background(), candidate, fakeSlugView{}, fixedNow)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.True(t, ve.Has(tt.field), ve.Error())
		})
	}
}

func TestDeriveArticle_ViewError(t *testing.T) {
	boom := errors.New("连接已断开")

	_, err := DeriveArticle(context.Background(), validArticle(), failingSlugView{err: boom}, fixedNow)
	assert.ErrorIs(t, err, boom)

	candidate := validArticle()
	candidate.Slug = "custom"
	_, err = DeriveArticle(context.Background(), candidate, failingSlugView{err: boom}, fixedNow)
	assert.ErrorIs(t, err, boom)
}

func TestDeriveArticle_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DeriveArticle(ctx, validArticle(), fakeSlugView{}, fixedNow)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeriveTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     model.Tag
		want    string
		wantErr string
	}{
		{name: "由名称生成", tag: model.Tag{Name: "Go Lang"}, want: "go-lang"},
		{name: "名称无可用字符", tag: model.Tag{Name: "???"}, want: "tag"},
		{name: "空名称", tag: model.Tag{}, want: "tag"},
		{name: "保留调用方slug", tag: model.Tag{Name: "Go", Slug: "golang"}, want: "golang"},
		{name: "长名称截断", tag: model.Tag{Name: strings.Repeat("㎒", 30)}, want: strings.Repeat("mhz", 26) + "mh"},
		{name: "名称过长", tag: model.Tag{Name: strings.Repeat("a", 65)}, wantErr: "Name"},
		{name: "slug过长", tag: model.Tag{Name: "Go", Slug: strings.Repeat("a", 81)}, wantErr: "Slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveTag(tt.tag)
			if tt.wantErr != "" {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.True(t, ve.Has(tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Slug)
			assert.LessOrEqual(t, len(got.Slug), 80)
		})
	}
}
