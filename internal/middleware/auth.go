package middleware

import (
	"net/http"
	"net/url"

	"peekweb/internal/apiclient"
	"peekweb/internal/logger"
	"peekweb/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	CheckUserKey   = "user"
	AdminUserKey   = "admin_user"
	UnreadCountKey = "unread_count"
)

// IsHTMX 请求来自 htmx 局部刷新
func IsHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

// RedirectToLogin 跳转到命名空间对应的登录页；htmx 请求用 HX-Redirect
func RedirectToLogin(c *gin.Context, ns session.Namespace) {
	target := ns.LoginPath()
	if c.Request.Method == http.MethodGet && !IsHTMX(c) {
		target += "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
	}
	if IsHTMX(c) {
		c.Header("HX-Redirect", target)
		c.AbortWithStatus(http.StatusOK)
		return
	}
	c.Redirect(http.StatusFound, target)
	c.Abort()
}

// AuthRequired 用户登录标记缺失时跳转登录页
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.Tokens(c, session.User).IsLoggedIn() {
			RedirectToLogin(c, session.User)
			return
		}
		c.Next()
	}
}

// AdminRequired 管理员令牌缺失时跳转后台登录页
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		st := session.Tokens(c, session.Admin)
		if !st.IsLoggedIn() {
			RedirectToLogin(c, session.Admin)
			return
		}
		if p := st.Profile(); p != nil {
			c.Set(AdminUserKey, p)
		}
		c.Next()
	}
}

// LoadUser 从会话取出用户资料，并拉取未读消息数。
// 未读数接口返回 401 时令牌已被清除，按统一策略跳转登录
func LoadUser(api *apiclient.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := session.Tokens(c, session.User)
		if !st.IsLoggedIn() {
			c.Next()
			return
		}

		if p := st.Profile(); p != nil {
			c.Set(CheckUserKey, p)
		}

		count, err := api.WithTokens(st).UnreadCount(c.Request.Context())
		switch {
		case apiclient.IsUnauthorized(err):
			RedirectToLogin(c, session.User)
			return
		case err != nil:
			logger.Log.WithError(err).Debug("load unread count failed")
		default:
			c.Set(UnreadCountKey, count)
		}
		c.Next()
	}
}

const SiteNameKey = "site_name"

// SiteInfo 把站点名放进上下文，模板统一使用
func SiteInfo(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(SiteNameKey, name)
		c.Next()
	}
}
