package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// NewsItem 新闻（服务端 NewsResponse 的展示子集）
type NewsItem struct {
	ID              uint       `json:"id"`
	Title           string     `json:"title"`
	Summary         string     `json:"summary"`
	Description     string     `json:"description"`
	Content         string     `json:"content"`
	Source          string     `json:"source"`
	Category        string     `json:"category"`
	Author          string     `json:"author"`
	Link            string     `json:"link"`
	ImageURL        string     `json:"image_url"`
	Tags            StringList `json:"tags"`
	Language        string     `json:"language"`
	Status          string     `json:"status"`
	IsActive        bool       `json:"is_active"`
	PublishedAt     time.Time  `json:"published_at"`
	CreatedAt       time.Time  `json:"created_at"`
	BelongedEventID *uint      `json:"belonged_event_id,omitempty"`
	BelongedEvent   *EventRef  `json:"belonged_event,omitempty"`

	ViewCount    int64   `json:"view_count"`
	LikeCount    int64   `json:"like_count"`
	CommentCount int64   `json:"comment_count"`
	ShareCount   int64   `json:"share_count"`
	HotnessScore float64 `json:"hotness_score"`
}

// Excerpt 列表卡片使用的摘要，优先 AI 摘要
func (n NewsItem) Excerpt() string {
	switch {
	case n.Summary != "":
		return n.Summary
	case n.Description != "":
		return n.Description
	}
	return n.Content
}

// EventID 关联事件的 ID，没有关联时返回 0
func (n NewsItem) EventID() uint {
	if n.BelongedEventID != nil {
		return *n.BelongedEventID
	}
	if n.BelongedEvent != nil {
		return n.BelongedEvent.ID
	}
	return 0
}

// EventRef 新闻所属事件的引用；服务端可能给 ID、字符串或整个事件对象
// 引用的事件不保证存在
type EventRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func (r *EventRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '{':
		type plain EventRef
		var p plain
		if err := json.Unmarshal(data, &p); err == nil {
			*r = EventRef(p)
		}
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			if id, err := strconv.ParseUint(s, 10, 64); err == nil {
				r.ID = uint(id)
			} else {
				r.Title = s
			}
		}
	default:
		if id, err := strconv.ParseUint(string(data), 10, 64); err == nil {
			r.ID = uint(id)
		}
	}
	return nil
}

// NewsInput 管理后台创建/更新新闻
type NewsInput struct {
	Title           string    `json:"title"`
	Summary         string    `json:"summary,omitempty"`
	Description     string    `json:"description,omitempty"`
	Content         string    `json:"content"`
	Source          string    `json:"source,omitempty"`
	Category        string    `json:"category,omitempty"`
	Author          string    `json:"author,omitempty"`
	Link            string    `json:"link,omitempty"`
	ImageURL        string    `json:"image_url,omitempty"`
	Tags            []string  `json:"tags"`
	PublishedAt     time.Time `json:"published_at"`
	BelongedEventID *uint     `json:"belonged_event_id,omitempty"`
	IsActive        bool      `json:"is_active"`
}
