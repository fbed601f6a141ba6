package handlers

import (
	"net/http"

	"peekweb/internal/apiclient"
	"peekweb/internal/listview"
	"peekweb/internal/logger"
	"peekweb/internal/middleware"
	"peekweb/internal/models"
	"peekweb/internal/session"
	"peekweb/internal/utils"

	"github.com/gin-gonic/gin"
)

const eventNewsLimit = 20

var (
	eventDefaults   = listview.Filters{"sort_by": "time"}
	eventFilterKeys = []string{"category", "search", "sort_by", "status"}
)

type EventHandler struct {
	api      *apiclient.Client
	lister   *Lister
	catalog  *Catalog
	pageSize int
}

func NewEventHandler(api *apiclient.Client, lister *Lister, catalog *Catalog, pageSize int) *EventHandler {
	return &EventHandler{api: api, lister: lister, catalog: catalog, pageSize: pageSize}
}

// List 事件列表。表单里改的筛选项只有提交 apply 后才生效，reset 恢复默认
func (h *EventHandler) List(c *gin.Context) {
	limit := utils.ParseLimit(c.Query("limit"), h.pageSize, maxPageSize)
	ctrl := listview.New(apiclient.EventSource(userAPI(c, h.api)), limit, eventDefaults)

	err := runList(h.lister, c, "events", ctrl, queryFilters(c, eventDefaults, eventFilterKeys...))
	renderList(c, session.User, "events/list.html", ctrl, err, gin.H{
		"Title":      "事件",
		"Categories": h.catalog.Categories(c.Request.Context()),
		"Sorts":      models.EventSorts,
		"Statuses":   []string{models.EventStatusOngoing, models.EventStatusEnded},
	})
}

// Show 事件详情：事件本身和相关新闻并行获取，登录用户再查关注状态
func (h *EventHandler) Show(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		RenderError(c, http.StatusNotFound, "事件不存在")
		return
	}

	st := session.Tokens(c, session.User)
	api := h.api.WithTokens(st)
	var g fetchGroup
	ctx := c.Request.Context()

	var event *models.EventItem
	var related []models.NewsItem
	following := false

	g.Go(func() error {
		var err error
		event, err = api.GetEvent(ctx, id)
		return err
	})
	g.Go(func() error {
		l, err := api.EventNews(ctx, id, 1, eventNewsLimit)
		if err != nil && !apiclient.IsUnauthorized(err) {
			// 相关新闻缺失不影响详情
			logger.Log.WithError(err).WithField("event_id", id).Warn("load event news failed")
			return nil
		}
		related = l.Items
		return err
	})
	if st.IsLoggedIn() {
		g.Go(func() error {
			ok, err := api.IsFollowing(ctx, id)
			if err != nil && !apiclient.IsUnauthorized(err) {
				logger.Log.WithError(err).WithField("event_id", id).Debug("check follow status failed")
				return nil
			}
			following = ok
			return err
		})
	}

	if err := g.Wait(); err != nil {
		handleAPIError(c, session.User, err)
		return
	}

	_, loggedIn := c.Get(middleware.CheckUserKey)
	Render(c, http.StatusOK, "events/detail.html", gin.H{
		"Title":       event.Title,
		"Description": utils.Truncate(utils.StripHTML(event.Description), 120),
		"Event":       event,
		"Content":     utils.RenderContent(event.Content),
		"Related":     related,
		"IsFollowing": following,
		"CanFollow":   loggedIn,
		"AIKind":      "event",
		"AIID":        event.ID,
	})
}
