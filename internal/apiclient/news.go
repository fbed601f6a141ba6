package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"peekweb/internal/models"
)

// NewsQuery /news 列表参数
type NewsQuery struct {
	Page     int
	Limit    int
	Category string
	SortBy   string
}

func (q NewsQuery) values() url.Values {
	v := pageQuery(q.Page, q.Limit)
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.SortBy != "" {
		v.Set("sort_by", q.SortBy)
	}
	return v
}

func (c *Client) ListNews(ctx context.Context, q NewsQuery) (List[models.NewsItem], error) {
	return fetchList[models.NewsItem](ctx, c, "/news", q.values(), "news")
}

func (c *Client) HotNews(ctx context.Context, limit int) (List[models.NewsItem], error) {
	return fetchList[models.NewsItem](ctx, c, "/news/hot", pageQuery(0, limit), "news")
}

func (c *Client) LatestNews(ctx context.Context, limit int) (List[models.NewsItem], error) {
	return fetchList[models.NewsItem](ctx, c, "/news/latest", pageQuery(0, limit), "news")
}

func (c *Client) NewsByCategory(ctx context.Context, category string, page, limit int) (List[models.NewsItem], error) {
	return fetchList[models.NewsItem](ctx, c, "/news/category/"+url.PathEscape(category), pageQuery(page, limit), "news")
}

func (c *Client) GetNews(ctx context.Context, id uint) (*models.NewsItem, error) {
	var n models.NewsItem
	if err := c.get(ctx, fmt.Sprintf("/news/%d", id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (c *Client) SearchNews(ctx context.Context, keyword string, page, limit int) (List[models.NewsItem], error) {
	q := pageQuery(page, limit)
	q.Set("q", keyword)
	return fetchList[models.NewsItem](ctx, c, "/news/search", q, "news")
}

// RecommendNews 推荐接口不存在时退回热门新闻
func (c *Client) RecommendNews(ctx context.Context, limit int) (List[models.NewsItem], error) {
	list, err := fetchList[models.NewsItem](ctx, c, "/recommend/news", pageQuery(0, limit), "news", "recommendations")
	if errors.Is(err, ErrNotFound) {
		return c.HotNews(ctx, limit)
	}
	return list, err
}
