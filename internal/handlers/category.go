package handlers

import (
	"context"
	"net/http"
	"time"

	"peekweb/internal/apiclient"
	"peekweb/internal/logger"
	"peekweb/internal/models"
	"peekweb/internal/utils"

	"github.com/gin-gonic/gin"
)

const categoriesCacheKey = "categories:events"

// Catalog 事件分类，公开数据，带 TTL 缓存在本地
type Catalog struct {
	api   *apiclient.Client
	cache *utils.GlobalCache
	ttl   time.Duration
}

func NewCatalog(api *apiclient.Client, cache *utils.GlobalCache, ttl time.Duration) *Catalog {
	return &Catalog{api: api, cache: cache, ttl: ttl}
}

// Categories 取分类失败不影响页面，返回空列表
func (cl *Catalog) Categories(ctx context.Context) []models.Category {
	if cached, ok := cl.cache.Get(categoriesCacheKey).([]models.Category); ok {
		return cached
	}
	cats, err := cl.api.EventCategories(ctx)
	if err != nil {
		logger.Log.WithError(err).Warn("load event categories failed")
		return nil
	}
	cl.cache.Set(categoriesCacheKey, cats, cl.ttl)
	return cats
}

type CategoryHandler struct {
	catalog *Catalog
}

func NewCategoryHandler(catalog *Catalog) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// List 展示所有事件分类
func (h *CategoryHandler) List(c *gin.Context) {
	Render(c, http.StatusOK, "category/list.html", gin.H{
		"Categories": h.catalog.Categories(c.Request.Context()),
		"Title":      "分类",
		"Active":     "categories",
	})
}
