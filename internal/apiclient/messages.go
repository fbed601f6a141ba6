package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"peekweb/internal/models"
)

type MessageQuery struct {
	Page   int
	Limit  int
	Type   string
	Unread bool
}

func (q MessageQuery) values() url.Values {
	v := pageQuery(q.Page, q.Limit)
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	if q.Unread {
		v.Set("unread", "true")
	}
	return v
}

func (c *Client) ListMessages(ctx context.Context, q MessageQuery) (List[models.Message], error) {
	return fetchList[models.Message](ctx, c, "/messages", q.values(), "messages")
}

// UnreadCount 兼容 data 为数字或 {count}/{unread_count}
func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/messages/unread-count", nil, &raw); err != nil {
		return 0, err
	}
	if isNull(raw) {
		return 0, nil
	}

	var n int64
	if json.Unmarshal(raw, &n) == nil {
		return n, nil
	}
	var obj struct {
		Count       *int64 `json:"count"`
		UnreadCount *int64 `json:"unread_count"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return 0, &APIError{Kind: KindDecode, Msg: "未读数解析失败", Err: err}
	}
	switch {
	case obj.UnreadCount != nil:
		return *obj.UnreadCount, nil
	case obj.Count != nil:
		return *obj.Count, nil
	}
	return 0, nil
}

func (c *Client) MarkMessageRead(ctx context.Context, id uint) error {
	return c.post(ctx, fmt.Sprintf("/messages/%d/read", id), nil, nil)
}

func (c *Client) MarkAllMessagesRead(ctx context.Context) error {
	return c.post(ctx, "/messages/read-all", nil, nil)
}

func (c *Client) DeleteMessage(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/messages/%d", id))
}
