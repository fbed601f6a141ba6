package models

import "time"

// Follow 用户关注的事件
type Follow struct {
	ID        uint       `json:"id"`
	UserID    uint       `json:"user_id"`
	EventID   uint       `json:"event_id"`
	Event     *EventItem `json:"event,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// Title 关注列表展示的事件标题
func (f Follow) Title() string {
	if f.Event != nil && f.Event.Title != "" {
		return f.Event.Title
	}
	return ""
}

// FollowStatus /follows/check 的返回
type FollowStatus struct {
	IsFollowing bool `json:"is_following"`
}
