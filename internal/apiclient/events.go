package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"peekweb/internal/models"
)

// EventQuery /events 列表参数
type EventQuery struct {
	Page     int
	Limit    int
	Status   string
	Category string
	Search   string
	SortBy   string
}

func (q EventQuery) values() url.Values {
	v := pageQuery(q.Page, q.Limit)
	for key, val := range map[string]string{
		"status":   q.Status,
		"category": q.Category,
		"search":   q.Search,
		"sort_by":  q.SortBy,
	} {
		if val != "" {
			v.Set(key, val)
		}
	}
	return v
}

func (c *Client) ListEvents(ctx context.Context, q EventQuery) (List[models.EventItem], error) {
	return fetchList[models.EventItem](ctx, c, "/events", q.values(), "events")
}

func (c *Client) HotEvents(ctx context.Context, limit int) (List[models.EventItem], error) {
	return fetchList[models.EventItem](ctx, c, "/events/hot", pageQuery(0, limit), "events")
}

func (c *Client) GetEvent(ctx context.Context, id uint) (*models.EventItem, error) {
	var e models.EventItem
	if err := c.get(ctx, fmt.Sprintf("/events/%d", id), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) EventNews(ctx context.Context, id uint, page, limit int) (List[models.NewsItem], error) {
	return fetchList[models.NewsItem](ctx, c, fmt.Sprintf("/events/%d/news", id), pageQuery(page, limit), "news")
}

// EventCategories 兼容字符串数组和 {name,count} 对象数组
func (c *Client) EventCategories(ctx context.Context) ([]models.Category, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/events/categories", nil, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return []models.Category{}, nil
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err == nil {
		out := make([]models.Category, 0, len(names))
		for _, n := range names {
			if n != "" {
				out = append(out, models.Category{Name: n})
			}
		}
		return out, nil
	}
	list, err := decodeList[models.Category](raw, "categories")
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}
