package handlers

import (
	"net/http"
	"strings"
	"time"

	"peekweb/internal/apiclient"
	"peekweb/internal/listview"
	"peekweb/internal/logger"
	"peekweb/internal/models"
	"peekweb/internal/services"
	"peekweb/internal/session"
	"peekweb/internal/utils"

	"github.com/gin-gonic/gin"
)

// datetime-local 输入框的格式
const formTimeLayout = "2006-01-02T15:04"

type AdminHandler struct {
	api      *apiclient.Client
	lister   *Lister
	catalog  *Catalog
	crawler  *services.CrawlerService
	pageSize int
}

func NewAdminHandler(api *apiclient.Client, lister *Lister, catalog *Catalog, crawler *services.CrawlerService, pageSize int) *AdminHandler {
	return &AdminHandler{api: api, lister: lister, catalog: catalog, crawler: crawler, pageSize: pageSize}
}

// Dashboard 后台首页统计
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := adminAPI(c, h.api).AdminStats(c.Request.Context())
	if err != nil {
		handleAPIError(c, session.Admin, err)
		return
	}
	Render(c, http.StatusOK, "admin/dashboard.html", gin.H{
		"Title":  "管理后台",
		"Stats":  stats,
		"Active": "dashboard",
	})
}

// done 后台写操作成功：清掉该列表的已知总数并回到列表
func (h *AdminHandler) done(c *gin.Context, path, flash string, scopes ...string) {
	for _, scope := range scopes {
		h.lister.Forget(scope)
	}
	session.AddFlash(c, flash)
	c.Redirect(http.StatusFound, path)
}

// ---- 用户 ----

func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit := utils.ParseLimit(c.Query("limit"), h.pageSize, maxPageSize)
	ctrl := listview.New(apiclient.AdminUserSource(adminAPI(c, h.api)), limit, nil)

	err := runList(h.lister, c, "admin:users", ctrl, queryFilters(c, nil, "search", "role", "status"))
	renderList(c, session.Admin, "admin/users.html", ctrl, err, gin.H{
		"Title":  "用户管理",
		"Active": "users",
	})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		RenderError(c, http.StatusBadRequest, "参数错误")
		return
	}
	in := models.UserAdminInput{Role: c.PostForm("role"), Status: c.PostForm("status")}
	if err := adminAPI(c, h.api).AdminUpdateUser(c.Request.Context(), id, in); err != nil {
		handleAPIError(c, session.Admin, err)
		return
	}
	h.done(c, "/admin/users", "用户已更新", "admin:users")
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		RenderError(c, http.StatusBadRequest, "参数错误")
		return
	}
	if err := adminAPI(c, h.api).AdminDeleteUser(c.Request.Context(), id); err != nil {
		handleAPIError(c, session.Admin, err)
		return
	}
	h.done(c, "/admin/users", "用户已删除", "admin:users")
}

// ---- 事件 ----

func (h *AdminHandler) ListEvents(c *gin.Context) {
	limit := utils.ParseLimit(c.Query("limit"), h.pageSize, maxPageSize)
	ctrl := listview.New(apiclient.AdminEventSource(adminAPI(c, h.api)), limit, nil)

	err := runList(h.lister, c, "admin:events", ctrl, queryFilters(c, nil, "search", "status", "category"))
	renderList(c, session.Admin, "admin/events.html", ctrl, err, gin.H{
		"Title":      "事件管理",
		"Active":     "events",
		"Categories": h.catalog.Categories(c.Request.Context()),
	})
}

func (h *AdminHandler) NewEvent(c *gin.Context) {
	h.eventForm(c, http.StatusOK, 0, models.EventInput{Status: models.EventStatusOngoing}, "")
}

func (h *AdminHandler) EditEvent(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	e, err := adminAPI(c, h.api).GetEvent(c.Request.Context(), id)
	if err != nil {
		handleAPIError(c, session.Admin, err)
		return
	}
	h.eventForm(c, http.StatusOK, id, models.EventInput{
		Title:        e.Title,
		Description:  e.Description,
		Content:      e.Content,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Location:     e.Location,
		Status:       e.Status,
		Category:     e.Category,
		Tags:         e.Tags,
		Source:       e.Source,
		Author:       e.Author,
		RelatedLinks: e.RelatedLinks,
		Image:        e.Image,
	}, "")
}

func (h *AdminHandler) eventForm(c *gin.Context, code int, id uint, in models.EventInput, msg string) {
	Render(c, code, "admin/event_form.html", gin.H{
		"Title":      "编辑事件",
		"Active":     "events",
		"ID":         id,
		"Event":      in,
		"Error":      msg,
		"Statuses":   []string{models.EventStatusOngoing, models.EventStatusEnded},
		"Categories": h.catalog.Categories(c.Request.Context()),
	})
}

func eventInput(c *gin.Context) models.EventInput {
	return models.EventInput{
		Title:        strings.TrimSpace(c.PostForm("title")),
		Description:  strings.TrimSpace(c.PostForm("description")),
		Content:      c.PostForm("content"),
		StartTime:    parseFormTime(c.PostForm("start_time")),
		EndTime:      parseFormTime(c.PostForm("end_time")),
		Location:     strings.TrimSpace(c.PostForm("location")),
		Status:       c.PostForm("status"),
		Category:     strings.TrimSpace(c.PostForm("category")),
		Tags:         utils.SplitTags(c.PostForm("tags")),
		Source:       strings.TrimSpace(c.PostForm("source")),
		Author:       strings.TrimSpace(c.PostForm("author")),
		RelatedLinks: utils.SplitTags(c.PostForm("related_links")),
		Image:        strings.TrimSpace(c.PostForm("image")),
	}
}

func validateEvent(in models.EventInput) string {
	switch {
	case in.Title == "":
		return "标题不能为空"
	case in.Category == "":
		return "请选择分类"
	case in.StartTime.IsZero() || in.EndTime.IsZero():
		return "请填写开始和结束时间"
	case in.EndTime.Before(in.StartTime):
		return "结束时间不能早于开始时间"
	}
	return ""
}

// SaveEvent id 为空时创建，否则更新
func (h *AdminHandler) SaveEvent(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	in := eventInput(c)
	if msg := validateEvent(in); msg != "" {
		h.eventForm(c, http.StatusBadRequest, id, in, msg)
		return
	}

	api := adminAPI(c, h.api)
	var err error
	if id == 0 {
		_, err = api.AdminCreateEvent(c.Request.Context(), in)
	} else {
		err = api.AdminUpdateEvent(c.Request.Context(), id, in)
	}
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			handleAPIError(c, session.Admin, err)
			return
		}
		h.eventForm(c, statusFor(err), id, in, apiclient.MessageOf(err))
		return
	}
	h.done(c, "/admin/events", "事件已保存", "admin:events", "events", "search")
}

func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if err := adminAPI(c, h.api).AdminDeleteEvent(c.Request.Context(), id); err != nil {
		handleAPIError(c, session.Admin, err)
		return
	}
	h.done(c, "/admin/events", "事件已删除", "admin:events", "events", "search")
}

// ---- 新闻 ----

func (h *AdminHandler) ListNews(c *gin.Context) {
	limit := utils.ParseLimit(c.Query("limit"), h.pageSize, maxPageSize)
	ctrl := listview.New(apiclient.AdminNewsSource(adminAPI(c, h.api)), limit, nil)

	err := runList(h.lister, c, "admin:news", ctrl, queryFilters(c, nil, "search", "category"))
	renderList(c, session.Admin, "admin/news.html", ctrl, err, gin.H{
		"Title":  "新闻管理",
		"Active": "news",
	})
}

// NewNews 带 import_url 时先抓取网页正文预填表单
func (h *AdminHandler) NewNews(c *gin.Context) {
	in := models.NewsInput{IsActive: true, PublishedAt: time.Now()}
	importURL := strings.TrimSpace(c.Query("import_url"))
	if importURL == "" {
		h.newsForm(c, http.StatusOK, 0, in, "")
		return
	}

	article, err := h.crawler.FetchArticle(c.Request.Context(), importURL)
	if err != nil {
		logger.Log.WithError(err).WithField("url", importURL).Warn("import article failed")
		in.Link = importURL
		h.newsForm(c, http.StatusOK, 0, in, "导入失败: "+err.Error())
		return
	}
	in.Title = article.Title
	in.Summary = article.Excerpt
	in.Content = article.Content
	in.Author = article.Byline
	in.Source = article.SiteName
	in.ImageURL = article.ImageURL
	in.Link = article.Link
	h.newsForm(c, http.StatusOK, 0, in, "")
}

func (h *AdminHandler) EditNews(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	n, err := adminAPI(c, h.api).GetNews(c.Request.Context(), id)
	if err != nil {
		handleAPIError(c, session.Admin, err)
		return
	}
	in := models.NewsInput{
		Title:           n.Title,
		Summary:         n.Summary,
		Description:     n.Description,
		Content:         n.Content,
		Source:          n.Source,
		Category:        n.Category,
		Author:          n.Author,
		Link:            n.Link,
		ImageURL:        n.ImageURL,
		Tags:            n.Tags,
		PublishedAt:     n.PublishedAt,
		BelongedEventID: n.BelongedEventID,
		IsActive:        n.IsActive,
	}
	h.newsForm(c, http.StatusOK, id, in, "")
}

func (h *AdminHandler) newsForm(c *gin.Context, code int, id uint, in models.NewsInput, msg string) {
	Render(c, code, "admin/news_form.html", gin.H{
		"Title":  "编辑新闻",
		"Active": "news",
		"ID":     id,
		"News":   in,
		"Error":  msg,
	})
}

func newsInput(c *gin.Context) models.NewsInput {
	in := models.NewsInput{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Summary:     strings.TrimSpace(c.PostForm("summary")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Content:     c.PostForm("content"),
		Source:      strings.TrimSpace(c.PostForm("source")),
		Category:    strings.TrimSpace(c.PostForm("category")),
		Author:      strings.TrimSpace(c.PostForm("author")),
		Link:        strings.TrimSpace(c.PostForm("link")),
		ImageURL:    strings.TrimSpace(c.PostForm("image_url")),
		Tags:        utils.SplitTags(c.PostForm("tags")),
		PublishedAt: parseFormTime(c.PostForm("published_at")),
		IsActive:    c.PostForm("is_active") != "",
	}
	if eventID := utils.StringToUint(c.PostForm("belonged_event_id")); eventID != 0 {
		in.BelongedEventID = &eventID
	}
	if in.PublishedAt.IsZero() {
		in.PublishedAt = time.Now()
	}
	return in
}

func (h *AdminHandler) SaveNews(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	in := newsInput(c)
	if in.Title == "" || strings.TrimSpace(in.Content) == "" {
		h.newsForm(c, http.StatusBadRequest, id, in, "标题和正文不能为空")
		return
	}

	api := adminAPI(c, h.api)
	var err error
	if id == 0 {
		_, err = api.AdminCreateNews(c.Request.Context(), in)
	} else {
		err = api.AdminUpdateNews(c.Request.Context(), id, in)
	}
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			handleAPIError(c, session.Admin, err)
			return
		}
		h.newsForm(c, statusFor(err), id, in, apiclient.MessageOf(err))
		return
	}
	h.done(c, "/admin/news", "新闻已保存", "admin:news", "news", "search")
}

func (h *AdminHandler) DeleteNews(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if err := adminAPI(c, h.api).AdminDeleteNews(c.Request.Context(), id); err != nil {
		handleAPIError(c, session.Admin, err)
		return
	}
	h.done(c, "/admin/news", "新闻已删除", "admin:news", "news", "search")
}

// parseFormTime 按本地时区解析，空串或格式错误返回零值
func parseFormTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{formTimeLayout, time.RFC3339, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
