package apiclient

import (
	"context"
	"strconv"

	"peekweb/internal/listview"
	"peekweb/internal/models"
)

// 把列表接口适配成 listview.Source，筛选键和查询参数同名

func toPage[T any](l List[T], err error) (listview.Page[T], error) {
	if err != nil {
		return listview.Page[T]{}, err
	}
	return listview.Page[T]{Items: l.Items, Total: l.Total}, nil
}

// NewsSource 有 category 时走分类接口
func NewsSource(c *Client) listview.Source[models.NewsItem] {
	return listview.SourceFunc[models.NewsItem](func(ctx context.Context, q listview.Query) (listview.Page[models.NewsItem], error) {
		if cat := q.Filters.Get("category"); cat != "" {
			return toPage[models.NewsItem](c.NewsByCategory(ctx, cat, q.Page, q.PageSize))
		}
		return toPage[models.NewsItem](c.ListNews(ctx, NewsQuery{Page: q.Page, Limit: q.PageSize, SortBy: q.Filters.Get("sort_by")}))
	})
}

func NewsSearchSource(c *Client) listview.Source[models.NewsItem] {
	return listview.SourceFunc[models.NewsItem](func(ctx context.Context, q listview.Query) (listview.Page[models.NewsItem], error) {
		return toPage[models.NewsItem](c.SearchNews(ctx, q.Filters.Get("q"), q.Page, q.PageSize))
	})
}

func EventSource(c *Client) listview.Source[models.EventItem] {
	return listview.SourceFunc[models.EventItem](func(ctx context.Context, q listview.Query) (listview.Page[models.EventItem], error) {
		return toPage[models.EventItem](c.ListEvents(ctx, EventQuery{
			Page:     q.Page,
			Limit:    q.PageSize,
			Status:   q.Filters.Get("status"),
			Category: q.Filters.Get("category"),
			Search:   q.Filters.Get("search"),
			SortBy:   q.Filters.Get("sort_by"),
		}))
	})
}

func MessageSource(c *Client) listview.Source[models.Message] {
	return listview.SourceFunc[models.Message](func(ctx context.Context, q listview.Query) (listview.Page[models.Message], error) {
		unread, _ := strconv.ParseBool(q.Filters.Get("unread"))
		return toPage[models.Message](c.ListMessages(ctx, MessageQuery{Page: q.Page, Limit: q.PageSize, Type: q.Filters.Get("type"), Unread: unread}))
	})
}

func FollowSource(c *Client) listview.Source[models.Follow] {
	return listview.SourceFunc[models.Follow](func(ctx context.Context, q listview.Query) (listview.Page[models.Follow], error) {
		return toPage[models.Follow](c.ListFollows(ctx, q.Page, q.PageSize))
	})
}

func adminQuery(q listview.Query) AdminQuery {
	return AdminQuery{
		Page:     q.Page,
		Limit:    q.PageSize,
		Search:   q.Filters.Get("search"),
		Status:   q.Filters.Get("status"),
		Role:     q.Filters.Get("role"),
		Category: q.Filters.Get("category"),
	}
}

func AdminUserSource(c *Client) listview.Source[models.User] {
	return listview.SourceFunc[models.User](func(ctx context.Context, q listview.Query) (listview.Page[models.User], error) {
		return toPage[models.User](c.AdminListUsers(ctx, adminQuery(q)))
	})
}

func AdminEventSource(c *Client) listview.Source[models.EventItem] {
	return listview.SourceFunc[models.EventItem](func(ctx context.Context, q listview.Query) (listview.Page[models.EventItem], error) {
		return toPage[models.EventItem](c.AdminListEvents(ctx, adminQuery(q)))
	})
}

func AdminNewsSource(c *Client) listview.Source[models.NewsItem] {
	return listview.SourceFunc[models.NewsItem](func(ctx context.Context, q listview.Query) (listview.Page[models.NewsItem], error) {
		return toPage[models.NewsItem](c.AdminListNews(ctx, adminQuery(q)))
	})
}

func AdminRSSSource(c *Client) listview.Source[models.RSSSource] {
	return listview.SourceFunc[models.RSSSource](func(ctx context.Context, q listview.Query) (listview.Page[models.RSSSource], error) {
		return toPage[models.RSSSource](c.AdminListRSSSources(ctx, adminQuery(q)))
	})
}

// EventSearchSource 搜索页用 q 作为事件关键词
func EventSearchSource(c *Client) listview.Source[models.EventItem] {
	return listview.SourceFunc[models.EventItem](func(ctx context.Context, q listview.Query) (listview.Page[models.EventItem], error) {
		return toPage[models.EventItem](c.ListEvents(ctx, EventQuery{Page: q.Page, Limit: q.PageSize, Search: q.Filters.Get("q")}))
	})
}
