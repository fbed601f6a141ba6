package models

import "time"

// 事件状态，服务端原样使用中文
const (
	EventStatusOngoing = "进行中"
	EventStatusEnded   = "已结束"
)

// EventSorts 事件列表可用的排序字段
var EventSorts = []string{"time", "hotness", "views"}

type EventItem struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Content      string     `json:"content"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	Location     string     `json:"location"`
	Image        string     `json:"image"`
	Source       string     `json:"source"`
	Author       string     `json:"author"`
	Tags         StringList `json:"tags"`
	RelatedLinks StringList `json:"related_links"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	CreatedAt    time.Time  `json:"created_at"`
	NewsCount    int64      `json:"news_count"`

	ViewCount    int64   `json:"view_count"`
	LikeCount    int64   `json:"like_count"`
	CommentCount int64   `json:"comment_count"`
	ShareCount   int64   `json:"share_count"`
	HotnessScore float64 `json:"hotness_score"`
}

func (e EventItem) IsOngoing() bool {
	return e.Status == EventStatusOngoing
}

// Category 事件分类，/events/categories 可能返回字符串数组或对象数组
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// EventInput 管理后台创建/更新事件
type EventInput struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Content      string    `json:"content"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Location     string    `json:"location"`
	Status       string    `json:"status,omitempty"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags"`
	Source       string    `json:"source,omitempty"`
	Author       string    `json:"author,omitempty"`
	RelatedLinks []string  `json:"related_links"`
	Image        string    `json:"image,omitempty"`
}
