package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_ZeroValueIsDraft(t *testing.T) {
	var s Status
	assert.Equal(t, StatusDraft, s)
	assert.Equal(t, "draft", s.String())
	assert.False(t, s.IsPublished())
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses() {
		parsed, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStatus("deleted")
	assert.Error(t, err)
	_, err = ParseStatus("Published")
	assert.Error(t, err, "状态区分大小写")
}

func TestStatus_ScanAndValue(t *testing.T) {
	var s Status
	require.NoError(t, s.Scan([]byte("archived")))
	assert.Equal(t, StatusArchived, s)

	require.NoError(t, s.Scan("published"))
	assert.True(t, s.IsPublished())

	v, err := s.Value()
	require.NoError(t, err)
	assert.Equal(t, "published", v)

	assert.Error(t, s.Scan("unknown"))
	assert.Error(t, s.Scan(42))
}

func TestStatus_InvalidValueRejected(t *testing.T) {
	bad := Status{v: 9}
	assert.False(t, bad.Valid())
	assert.Equal(t, "", bad.String())
	_, err := bad.Value()
	assert.Error(t, err)
}

func TestStatus_JSON(t *testing.T) {
	a := Article{Title: "t", Status: StatusPublished}
	data, err := json.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"published"`)

	var decoded Article
	require.NoError(t, json.Unmarshal([]byte(`{"status":"archived"}`), &decoded))
	assert.Equal(t, StatusArchived, decoded.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"status":"gone"}`), &decoded))
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "Hello", Article{Title: "Hello"}.String())
	assert.Equal(t, "go", Tag{Name: "go"}.String())
	assert.Equal(t, "3 - 7", ArticleTag{ArticleID: 3, TagID: 7}.String())
}
