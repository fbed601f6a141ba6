package router

import (
	"io/fs"
	"net/http"
	"time"

	"peekweb/internal/analysis"
	"peekweb/internal/apiclient"
	"peekweb/internal/config"
	"peekweb/internal/handlers"
	"peekweb/internal/middleware"
	"peekweb/internal/services"
	"peekweb/internal/session"
	"peekweb/internal/utils"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Deps 组装路由需要的依赖
type Deps struct {
	Config    *config.Config
	API       *apiclient.Client
	Store     sessions.Store
	Templates fs.FS
	Static    fs.FS
	Cache     *utils.GlobalCache
	Crawler   *services.CrawlerService
	Preview   *services.FeedPreviewer
	Captcha   *services.CaptchaService

	// AnalysisDelay 触发分析后再次读取前的等待，测试里设为 0
	AnalysisDelay *time.Duration
}

// New 创建 gin 引擎并注册全部路由
func New(d Deps) (*gin.Engine, error) {
	if d.Cache == nil {
		d.Cache = utils.GetCache()
	}
	if d.Crawler == nil {
		d.Crawler = services.NewCrawlerService(nil)
	}
	if d.Preview == nil {
		d.Preview = services.NewFeedPreviewer(d.Config.RSSHubInstance, nil)
	}
	if d.Captcha == nil {
		d.Captcha = services.NewCaptchaService()
	}

	r := gin.Default()
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	render, err := LoadTemplates(d.Templates)
	if err != nil {
		return nil, err
	}
	r.HTMLRender = render

	if d.Static != nil {
		r.StaticFS("/static", http.FS(d.Static))
	}

	r.Use(sessions.Sessions(session.CookieName, d.Store))
	r.Use(middleware.SiteInfo(d.Config.SiteName))
	r.Use(middleware.LoadUser(d.API))

	RegisterRoutes(r, d)

	r.NoRoute(func(c *gin.Context) {
		handlers.RenderError(c, http.StatusNotFound, "页面不存在")
	})
	return r, nil
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	lister := handlers.NewLister(d.Cache, cfg.CacheTTL)
	catalog := handlers.NewCatalog(d.API, d.Cache, cfg.CacheTTL)

	delay := analysis.WithDelay(analysis.PollDelay)
	if d.AnalysisDelay != nil {
		delay = analysis.WithDelay(*d.AnalysisDelay)
	}

	// Handlers
	homeHandler := handlers.NewHomeHandler(d.API)
	newsHandler := handlers.NewNewsHandler(d.API, lister, catalog, cfg.NewsPageSize)
	eventHandler := handlers.NewEventHandler(d.API, lister, catalog, cfg.EventPageSize)
	searchHandler := handlers.NewSearchHandler(d.API, lister, cfg.NewsPageSize)
	categoryHandler := handlers.NewCategoryHandler(catalog)
	authHandler := handlers.NewAuthHandler(d.API, d.Captcha)
	userHandler := handlers.NewUserHandler(d.API)
	messageHandler := handlers.NewMessageHandler(d.API, lister, cfg.NewsPageSize)
	followHandler := handlers.NewFollowHandler(d.API, lister, cfg.EventPageSize)
	analysisHandler := handlers.NewAnalysisHandler(d.API, delay)
	adminHandler := handlers.NewAdminHandler(d.API, lister, catalog, d.Crawler, cfg.AdminPageSize)
	rssHandler := handlers.NewRSSHandler(d.API, lister, d.Preview, cfg.AdminPageSize)
	seoHandler := handlers.NewSEOHandler(d.API, d.Cache, cfg.SiteURL)

	// 公共页面
	r.GET("/", homeHandler.Index)                    // 首页
	r.GET("/news", newsHandler.List)                 // 新闻列表
	r.GET("/news/:id", newsHandler.Show)             // 新闻详情
	r.GET("/events", eventHandler.List)              // 事件列表
	r.GET("/events/:id", eventHandler.Show)          // 事件详情
	r.GET("/categories", categoryHandler.List)       // 分类
	r.GET("/search", searchHandler.Search)           // 搜索
	r.GET("/recommend", searchHandler.Recommend)     // 推荐
	r.GET("/robots.txt", seoHandler.RobotsTxt)       // robots
	r.GET("/sitemap.xml", seoHandler.SitemapXML)     // 站点地图
	r.GET("/ai/panel", analysisHandler.Show)         // AI 分析面板
	r.POST("/ai/panel/trigger", analysisHandler.Trigger)

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", authHandler.Logout)
	r.GET("/logout", authHandler.Logout)

	// 关注按钮自己处理未登录
	r.POST("/follows/toggle/:event_id", followHandler.Toggle)

	// 用户页面
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", userHandler.Profile)
		authorized.POST("/me", userHandler.UpdateProfile)
		authorized.GET("/me/password", userHandler.ShowPassword)
		authorized.POST("/me/password", userHandler.ChangePassword)

		authorized.GET("/me/messages", messageHandler.List)
		authorized.POST("/me/messages/read-all", messageHandler.ReadAll)
		authorized.POST("/me/messages/:id/read", messageHandler.Read)
		authorized.DELETE("/me/messages/:id", messageHandler.Delete)
		authorized.POST("/me/messages/:id/delete", messageHandler.Delete)

		authorized.GET("/me/follows", followHandler.List)
		authorized.DELETE("/follows/:event_id", followHandler.Unfollow)
		authorized.POST("/me/follows/:event_id/delete", followHandler.Unfollow)
	}

	// 管理后台
	r.GET("/admin/login", authHandler.ShowAdminLogin)
	r.POST("/admin/login", authHandler.AdminLogin)
	r.POST("/admin/logout", authHandler.AdminLogout)

	admin := r.Group("/admin")
	admin.Use(middleware.AdminRequired())
	{
		admin.GET("", adminHandler.Dashboard)

		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users/:id", adminHandler.UpdateUser)
		admin.POST("/users/:id/delete", adminHandler.DeleteUser)

		admin.GET("/events", adminHandler.ListEvents)
		admin.GET("/events/new", adminHandler.NewEvent)
		admin.POST("/events", adminHandler.SaveEvent)
		admin.GET("/events/:id/edit", adminHandler.EditEvent)
		admin.POST("/events/:id", adminHandler.SaveEvent)
		admin.POST("/events/:id/delete", adminHandler.DeleteEvent)

		admin.GET("/news", adminHandler.ListNews)
		admin.GET("/news/new", adminHandler.NewNews)
		admin.POST("/news", adminHandler.SaveNews)
		admin.GET("/news/:id/edit", adminHandler.EditNews)
		admin.POST("/news/:id", adminHandler.SaveNews)
		admin.POST("/news/:id/delete", adminHandler.DeleteNews)

		admin.GET("/rss-sources", rssHandler.List)
		admin.GET("/rss-sources/new", rssHandler.New)
		admin.POST("/rss-sources", rssHandler.Save)
		admin.POST("/rss-sources/preview", rssHandler.Preview)
		admin.POST("/rss-sources/fetch-all", rssHandler.FetchAll)
		admin.GET("/rss-sources/:id/edit", rssHandler.Edit)
		admin.POST("/rss-sources/:id", rssHandler.Save)
		admin.POST("/rss-sources/:id/delete", rssHandler.Delete)
		admin.POST("/rss-sources/:id/fetch", rssHandler.Fetch)
	}
}
