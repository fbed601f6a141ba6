package handlers

import (
	"net/http"
	"strings"

	"peekweb/internal/apiclient"
	"peekweb/internal/listview"
	"peekweb/internal/models"
	"peekweb/internal/session"
	"peekweb/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	recommendNewsLimit   = 20
	recommendEventsLimit = 10
)

type SearchHandler struct {
	api      *apiclient.Client
	lister   *Lister
	pageSize int
}

func NewSearchHandler(api *apiclient.Client, lister *Lister, pageSize int) *SearchHandler {
	return &SearchHandler{api: api, lister: lister, pageSize: pageSize}
}

// Search 关键词搜索，type=events 时搜事件，默认搜新闻
func (h *SearchHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	kind := c.DefaultQuery("type", "news")
	if kind != "events" {
		kind = "news"
	}

	extra := gin.H{"Title": "搜索", "Query": q, "Type": kind}
	if q == "" {
		Render(c, http.StatusOK, "search.html", merge(extra, gin.H{"Items": nil, "Pager": listview.Pager{}}))
		return
	}
	if len(q) > 200 {
		RenderError(c, http.StatusBadRequest, "搜索词过长")
		return
	}

	api := userAPI(c, h.api)
	limit := utils.ParseLimit(c.Query("limit"), h.pageSize, maxPageSize)

	filters := listview.Filters{"q": q, "type": kind}
	if kind == "events" {
		ctrl := listview.New(apiclient.EventSearchSource(api), limit, nil)
		err := runList(h.lister, c, "search", ctrl, filters)
		renderList(c, session.User, "search.html", ctrl, err, extra)
		return
	}

	ctrl := listview.New(apiclient.NewsSearchSource(api), limit, nil)
	err := runList(h.lister, c, "search", ctrl, filters)
	renderList(c, session.User, "search.html", ctrl, err, extra)
}

// Recommend 推荐新闻和热门事件
func (h *SearchHandler) Recommend(c *gin.Context) {
	api := userAPI(c, h.api)
	var g fetchGroup
	ctx := c.Request.Context()

	var news []models.NewsItem
	var events []models.EventItem
	g.Go(func() error {
		l, err := api.RecommendNews(ctx, recommendNewsLimit)
		news = l.Items
		return err
	})
	g.Go(func() error {
		l, err := api.HotEvents(ctx, recommendEventsLimit)
		events = l.Items
		return err
	})

	if err := g.Wait(); err != nil {
		handleAPIError(c, session.User, err)
		return
	}

	Render(c, http.StatusOK, "recommend.html", gin.H{
		"Title":  "为你推荐",
		"News":   news,
		"Events": events,
	})
}
