package models

import "time"

// RSSSource 管理后台的 RSS 源
type RSSSource struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Category    string     `json:"category"`
	Language    string     `json:"language"`
	Description string     `json:"description"`
	Tags        StringList `json:"tags"`
	Priority    int        `json:"priority"`
	UpdateFreq  int        `json:"update_freq"` // 分钟
	IsActive    bool       `json:"is_active"`
	LastFetched *time.Time `json:"last_fetched,omitempty"`
	FetchCount  int64      `json:"fetch_count"`
	ErrorCount  int64      `json:"error_count"`
	CreatedAt   time.Time  `json:"created_at"`
}

type RSSSourceInput struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Category    string   `json:"category"`
	Language    string   `json:"language,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	Priority    int      `json:"priority,omitempty"`
	UpdateFreq  int      `json:"update_freq,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// FetchResult 手动抓取的统计
type FetchResult struct {
	SourceName string `json:"source_name"`
	NewItems   int    `json:"new_items"`
	Updated    int    `json:"updated"`
	Errors     int    `json:"errors"`
	Total      int    `json:"total"`
}

// FeedPreview 添加 RSS 源前的预览
type FeedPreview struct {
	Title       string
	Description string
	Link        string
	Language    string
	Items       []FeedPreviewItem
}

type FeedPreviewItem struct {
	Title       string
	Link        string
	Author      string
	PublishedAt *time.Time
}
