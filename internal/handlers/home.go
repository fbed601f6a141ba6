package handlers

import (
	"net/http"

	"peekweb/internal/apiclient"
	"peekweb/internal/logger"
	"peekweb/internal/models"
	"peekweb/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	homeAllLimit    = 12
	homeHotLimit    = 8
	homeLatestLimit = 8
)

type HomeHandler struct {
	api *apiclient.Client
}

func NewHomeHandler(api *apiclient.Client) *HomeHandler {
	return &HomeHandler{api: api}
}

// Index 首页：全部、热门、最新三组新闻并行获取，任意一组失败整页报错，401 优先跳登录
func (h *HomeHandler) Index(c *gin.Context) {
	api := userAPI(c, h.api)
	var g fetchGroup
	ctx := c.Request.Context()

	var all, hot, latest []models.NewsItem
	g.Go(func() error {
		l, err := api.ListNews(ctx, apiclient.NewsQuery{Page: 1, Limit: homeAllLimit})
		all = l.Items
		return err
	})
	g.Go(func() error {
		l, err := api.HotNews(ctx, homeHotLimit)
		hot = l.Items
		return err
	})
	g.Go(func() error {
		l, err := api.LatestNews(ctx, homeLatestLimit)
		latest = l.Items
		return err
	})

	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).Warn("load home page failed")
		handleAPIError(c, session.User, err)
		return
	}

	Render(c, http.StatusOK, "home.html", gin.H{
		"Title":  "首页",
		"All":    all,
		"Hot":    hot,
		"Latest": latest,
	})
}
