package models

import (
	"fmt"
	"time"
)

type MessageType string

const (
	MessageTypeSystem      MessageType = "system"
	MessageTypeLike        MessageType = "like"
	MessageTypeComment     MessageType = "comment"
	MessageTypeFollow      MessageType = "follow"
	MessageTypeNewsUpdate  MessageType = "news_update"
	MessageTypeEventUpdate MessageType = "event_update"
)

// MessageTypes 消息筛选下拉框的顺序
var MessageTypes = []MessageType{
	MessageTypeSystem, MessageTypeLike, MessageTypeComment,
	MessageTypeFollow, MessageTypeNewsUpdate, MessageTypeEventUpdate,
}

func (t MessageType) Label() string {
	switch t {
	case MessageTypeSystem:
		return "系统通知"
	case MessageTypeLike:
		return "点赞"
	case MessageTypeComment:
		return "评论"
	case MessageTypeFollow:
		return "关注"
	case MessageTypeNewsUpdate:
		return "新闻更新"
	case MessageTypeEventUpdate:
		return "事件更新"
	}
	return string(t)
}

// Message 站内消息
type Message struct {
	ID          uint        `json:"id"`
	Type        MessageType `json:"type"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	IsRead      bool        `json:"is_read"`
	RelatedType string      `json:"related_type"`
	RelatedID   uint        `json:"related_id"`
	SenderID    *uint       `json:"sender_id,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// RelatedURL 消息关联内容的站内链接
func (m Message) RelatedURL() string {
	if m.RelatedID == 0 {
		return ""
	}
	switch m.RelatedType {
	case "news":
		return fmt.Sprintf("/news/%d", m.RelatedID)
	case "event":
		return fmt.Sprintf("/events/%d", m.RelatedID)
	}
	return ""
}
