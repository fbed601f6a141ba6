package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"peekweb/internal/models"
)

// AdminQuery 后台列表的通用参数
type AdminQuery struct {
	Page     int
	Limit    int
	Search   string
	Status   string
	Role     string
	Category string
}

func (q AdminQuery) values() url.Values {
	v := pageQuery(q.Page, q.Limit)
	for key, val := range map[string]string{
		"search":   q.Search,
		"status":   q.Status,
		"role":     q.Role,
		"category": q.Category,
	} {
		if val != "" {
			v.Set(key, val)
		}
	}
	return v
}

func (c *Client) AdminStats(ctx context.Context) (*models.AdminStats, error) {
	var st models.AdminStats
	if err := c.get(ctx, "/admin/stats", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// 用户

func (c *Client) AdminListUsers(ctx context.Context, q AdminQuery) (List[models.User], error) {
	return fetchList[models.User](ctx, c, "/admin/users", q.values(), "users")
}

func (c *Client) AdminUpdateUser(ctx context.Context, id uint, in models.UserAdminInput) error {
	return c.put(ctx, fmt.Sprintf("/admin/users/%d", id), in, nil)
}

func (c *Client) AdminDeleteUser(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/admin/users/%d", id))
}

// 事件

func (c *Client) AdminListEvents(ctx context.Context, q AdminQuery) (List[models.EventItem], error) {
	return fetchList[models.EventItem](ctx, c, "/admin/events", q.values(), "events")
}

func (c *Client) AdminCreateEvent(ctx context.Context, in models.EventInput) (*models.EventItem, error) {
	var e models.EventItem
	if err := c.post(ctx, "/admin/events", in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *Client) AdminUpdateEvent(ctx context.Context, id uint, in models.EventInput) error {
	return c.put(ctx, fmt.Sprintf("/admin/events/%d", id), in, nil)
}

func (c *Client) AdminDeleteEvent(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/admin/events/%d", id))
}

// 新闻

func (c *Client) AdminListNews(ctx context.Context, q AdminQuery) (List[models.NewsItem], error) {
	return fetchList[models.NewsItem](ctx, c, "/admin/news", q.values(), "news")
}

func (c *Client) AdminCreateNews(ctx context.Context, in models.NewsInput) (*models.NewsItem, error) {
	var n models.NewsItem
	if err := c.post(ctx, "/admin/news", in, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) AdminUpdateNews(ctx context.Context, id uint, in models.NewsInput) error {
	return c.put(ctx, fmt.Sprintf("/admin/news/%d", id), in, nil)
}

func (c *Client) AdminDeleteNews(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/admin/news/%d", id))
}

// RSS 源

func (c *Client) AdminListRSSSources(ctx context.Context, q AdminQuery) (List[models.RSSSource], error) {
	return fetchList[models.RSSSource](ctx, c, "/admin/rss-sources", q.values(), "sources", "rss_sources")
}

func (c *Client) AdminCreateRSSSource(ctx context.Context, in models.RSSSourceInput) (*models.RSSSource, error) {
	var s models.RSSSource
	if err := c.post(ctx, "/admin/rss-sources", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) AdminUpdateRSSSource(ctx context.Context, id uint, in models.RSSSourceInput) error {
	return c.put(ctx, fmt.Sprintf("/admin/rss-sources/%d", id), in, nil)
}

func (c *Client) AdminDeleteRSSSource(ctx context.Context, id uint) error {
	return c.delete(ctx, fmt.Sprintf("/admin/rss-sources/%d", id))
}

// AdminFetchRSSSource 立即抓取一个源
func (c *Client) AdminFetchRSSSource(ctx context.Context, id uint) (*models.FetchResult, error) {
	var r models.FetchResult
	if err := c.post(ctx, fmt.Sprintf("/admin/rss-sources/%d/fetch", id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// AdminFetchAllRSS 抓取全部启用的源
func (c *Client) AdminFetchAllRSS(ctx context.Context) error {
	return c.post(ctx, "/admin/rss-sources/fetch-all", nil, nil)
}
