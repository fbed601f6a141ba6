package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsItemDecodesServerShape(t *testing.T) {
	raw := `{
		"id": 7,
		"title": "标题",
		"tags": "[\"科技\",\"AI\"]",
		"published_at": "2024-03-01T10:00:00Z",
		"belonged_event_id": 3,
		"belonged_event": {"id": 3, "title": "发布会"},
		"hotness_score": 8.5
	}`
	var n NewsItem
	require.NoError(t, json.Unmarshal([]byte(raw), &n))

	assert.Equal(t, uint(7), n.ID)
	assert.Equal(t, StringList{"科技", "AI"}, n.Tags)
	assert.Equal(t, uint(3), n.EventID())
	assert.Equal(t, "发布会", n.BelongedEvent.Title)
	assert.Equal(t, 2024, n.PublishedAt.Year())
}

func TestEventRefAcceptsScalarKeys(t *testing.T) {
	var byNumber, byString, byName EventRef
	require.NoError(t, json.Unmarshal([]byte(`12`), &byNumber))
	require.NoError(t, json.Unmarshal([]byte(`"15"`), &byString))
	require.NoError(t, json.Unmarshal([]byte(`"某事件"`), &byName))

	assert.Equal(t, uint(12), byNumber.ID)
	assert.Equal(t, uint(15), byString.ID)
	assert.Equal(t, EventRef{Title: "某事件"}, byName)
}

func TestNewsExcerptFallsBack(t *testing.T) {
	assert.Equal(t, "摘要", NewsItem{Summary: "摘要", Description: "描述"}.Excerpt())
	assert.Equal(t, "描述", NewsItem{Description: "描述", Content: "正文"}.Excerpt())
	assert.Equal(t, "正文", NewsItem{Content: "正文"}.Excerpt())
	assert.Zero(t, NewsItem{}.EventID())
}

func TestMessageRelatedURL(t *testing.T) {
	assert.Equal(t, "/news/9", Message{RelatedType: "news", RelatedID: 9}.RelatedURL())
	assert.Equal(t, "/events/2", Message{RelatedType: "event", RelatedID: 2}.RelatedURL())
	assert.Empty(t, Message{RelatedType: "comment", RelatedID: 2}.RelatedURL())
	assert.Empty(t, Message{RelatedType: "news"}.RelatedURL())
	assert.Equal(t, "新闻更新", MessageTypeNewsUpdate.Label())
}
