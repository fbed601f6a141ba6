package handlers

import (
	"net/http"

	"peekweb/internal/apiclient"
	"peekweb/internal/listview"
	"peekweb/internal/session"
	"peekweb/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 50

type NewsHandler struct {
	api      *apiclient.Client
	lister   *Lister
	catalog  *Catalog
	pageSize int
}

func NewNewsHandler(api *apiclient.Client, lister *Lister, catalog *Catalog, pageSize int) *NewsHandler {
	return &NewsHandler{api: api, lister: lister, catalog: catalog, pageSize: pageSize}
}

// List 新闻列表，可按分类筛选
func (h *NewsHandler) List(c *gin.Context) {
	limit := utils.ParseLimit(c.Query("limit"), h.pageSize, maxPageSize)
	ctrl := listview.New(apiclient.NewsSource(userAPI(c, h.api)), limit, nil)

	err := runList(h.lister, c, "news", ctrl, queryFilters(c, nil, "category"))
	renderList(c, session.User, "news/list.html", ctrl, err, gin.H{
		"Title":      "新闻",
		"Categories": h.catalog.Categories(c.Request.Context()),
		"Category":   ctrl.Filters().Get("category"),
	})
}

// Show 新闻详情，正文按 HTML 或 Markdown 渲染
func (h *NewsHandler) Show(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		RenderError(c, http.StatusNotFound, "新闻不存在")
		return
	}

	news, err := userAPI(c, h.api).GetNews(c.Request.Context(), id)
	if err != nil {
		handleAPIError(c, session.User, err)
		return
	}

	body := news.Content
	if body == "" {
		body = news.Description
	}

	Render(c, http.StatusOK, "news/detail.html", gin.H{
		"Title":       news.Title,
		"Description": utils.Truncate(utils.StripHTML(news.Excerpt()), 120),
		"News":        news,
		"Content":     utils.RenderContent(body),
		"EventID":     news.EventID(),
		"AIKind":      "news",
		"AIID":        news.ID,
	})
}
