package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"peekweb/internal/apiclient"
	"peekweb/internal/listview"
	"peekweb/internal/logger"
	"peekweb/internal/models"
	"peekweb/internal/services"
	"peekweb/internal/session"
	"peekweb/internal/utils"

	"github.com/gin-gonic/gin"
)

const rssSourcesPath = "/admin/rss-sources"

// RSSHandler 后台 RSS 源管理
type RSSHandler struct {
	api      *apiclient.Client
	lister   *Lister
	preview  *services.FeedPreviewer
	pageSize int
}

func NewRSSHandler(api *apiclient.Client, lister *Lister, preview *services.FeedPreviewer, pageSize int) *RSSHandler {
	return &RSSHandler{api: api, lister: lister, preview: preview, pageSize: pageSize}
}

func (h *RSSHandler) List(c *gin.Context) {
	limit := utils.ParseLimit(c.Query("limit"), h.pageSize, maxPageSize)
	ctrl := listview.New(apiclient.AdminRSSSource(adminAPI(c, h.api)), limit, nil)

	err := runList(h.lister, c, "admin:rss", ctrl, queryFilters(c, nil, "search", "category", "status"))
	renderList(c, session.Admin, "admin/rss_sources.html", ctrl, err, gin.H{
		"Title":  "RSS 源管理",
		"Active": "rss",
	})
}

func (h *RSSHandler) New(c *gin.Context) {
	active := true
	h.form(c, http.StatusOK, 0, models.RSSSourceInput{IsActive: &active, UpdateFreq: 60}, "")
}

// Edit 接口没有单条查询，从列表里按 ID 找
func (h *RSSHandler) Edit(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	list, err := adminAPI(c, h.api).AdminListRSSSources(c.Request.Context(), apiclient.AdminQuery{Page: 1, Limit: 200})
	if err != nil {
		handleAPIError(c, session.Admin, err)
		return
	}
	for _, s := range list.Items {
		if s.ID != id {
			continue
		}
		active := s.IsActive
		h.form(c, http.StatusOK, id, models.RSSSourceInput{
			Name:        s.Name,
			URL:         s.URL,
			Category:    s.Category,
			Language:    s.Language,
			Description: s.Description,
			Tags:        s.Tags,
			Priority:    s.Priority,
			UpdateFreq:  s.UpdateFreq,
			IsActive:    &active,
		}, "")
		return
	}
	RenderError(c, http.StatusNotFound, "RSS 源不存在")
}

func (h *RSSHandler) form(c *gin.Context, code int, id uint, in models.RSSSourceInput, msg string) {
	Render(c, code, "admin/rss_form.html", gin.H{
		"Title":  "编辑 RSS 源",
		"Active": "rss",
		"ID":     id,
		"Source": in,
		"Error":  msg,
	})
}

func rssInput(c *gin.Context) models.RSSSourceInput {
	active := c.PostForm("is_active") != ""
	return models.RSSSourceInput{
		Name:        strings.TrimSpace(c.PostForm("name")),
		URL:         strings.TrimSpace(c.PostForm("url")),
		Category:    strings.TrimSpace(c.PostForm("category")),
		Language:    strings.TrimSpace(c.PostForm("language")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Tags:        utils.SplitTags(c.PostForm("tags")),
		Priority:    utils.StringToInt(c.PostForm("priority")),
		UpdateFreq:  utils.StringToInt(c.PostForm("update_freq")),
		IsActive:    &active,
	}
}

// validFeedURL 只接受 http(s) 或 rsshub:// 地址
func validFeedURL(raw string) bool {
	if strings.HasPrefix(raw, "rsshub://") {
		return len(raw) > len("rsshub://")
	}
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (h *RSSHandler) Save(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	in := rssInput(c)
	switch {
	case in.Name == "" || in.Category == "":
		h.form(c, http.StatusBadRequest, id, in, "名称和分类不能为空")
		return
	case !validFeedURL(in.URL):
		h.form(c, http.StatusBadRequest, id, in, "RSS 地址无效")
		return
	}
	in.URL = h.preview.NormalizeURL(in.URL)

	api := adminAPI(c, h.api)
	var err error
	if id == 0 {
		_, err = api.AdminCreateRSSSource(c.Request.Context(), in)
	} else {
		err = api.AdminUpdateRSSSource(c.Request.Context(), id, in)
	}
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			handleAPIError(c, session.Admin, err)
			return
		}
		h.form(c, statusFor(err), id, in, apiclient.MessageOf(err))
		return
	}
	h.done(c, "RSS 源已保存")
}

func (h *RSSHandler) Delete(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if err := adminAPI(c, h.api).AdminDeleteRSSSource(c.Request.Context(), id); err != nil {
		handleAPIError(c, session.Admin, err)
		return
	}
	h.done(c, "RSS 源已删除")
}

// Preview htmx 片段：保存前先解析一次订阅地址
func (h *RSSHandler) Preview(c *gin.Context) {
	raw := strings.TrimSpace(c.PostForm("url"))
	if !validFeedURL(raw) {
		c.HTML(http.StatusOK, "partials/feed_preview.html", gin.H{"Error": "RSS 地址无效"})
		return
	}

	feed, err := h.preview.Preview(c.Request.Context(), raw)
	if err != nil {
		logger.Log.WithError(err).WithField("url", raw).Info("feed preview failed")
		c.HTML(http.StatusOK, "partials/feed_preview.html", gin.H{"Error": err.Error()})
		return
	}
	c.HTML(http.StatusOK, "partials/feed_preview.html", gin.H{"Feed": feed})
}

// Fetch 立即抓取单个源
func (h *RSSHandler) Fetch(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	res, err := adminAPI(c, h.api).AdminFetchRSSSource(c.Request.Context(), id)
	if err != nil {
		handleAPIError(c, session.Admin, err)
		return
	}
	h.done(c, fmt.Sprintf("抓取完成：新增 %d 条，更新 %d 条，失败 %d 条", res.NewItems, res.Updated, res.Errors))
}

func (h *RSSHandler) FetchAll(c *gin.Context) {
	if err := adminAPI(c, h.api).AdminFetchAllRSS(c.Request.Context()); err != nil {
		handleAPIError(c, session.Admin, err)
		return
	}
	h.done(c, "已开始抓取全部启用的源")
}

// done 抓取会带来新闻，新闻列表的总数也一起失效
func (h *RSSHandler) done(c *gin.Context, flash string) {
	for _, scope := range []string{"admin:rss", "admin:news", "news", "search"} {
		h.lister.Forget(scope)
	}
	session.AddFlash(c, flash)
	c.Redirect(http.StatusFound, rssSourcesPath)
}
