package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"peekweb/internal/apiclient"
	"peekweb/internal/middleware"
	"peekweb/internal/session"

	"github.com/gin-gonic/gin"
)

// Render 注入当前用户、未读数、站点名等通用变量
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
		obj["UnreadCount"] = c.GetInt64(middleware.UnreadCountKey)
	}
	if admin, exists := c.Get(middleware.AdminUserKey); exists {
		obj["AdminUser"] = admin
	}
	if _, ok := obj["Flash"]; !ok {
		obj["Flash"] = session.Flash(c)
	}

	obj["SiteName"] = c.GetString(middleware.SiteNameKey)
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// HtmxRedirect 让 htmx 在客户端跳转
func HtmxRedirect(c *gin.Context, path string) {
	c.Header("HX-Redirect", path)
	c.Status(http.StatusOK)
}

// RenderError 错误页；GET 请求附带重试链接
func RenderError(c *gin.Context, code int, message string) {
	obj := gin.H{"Error": message, "Title": "出错了"}
	if c.Request.Method == http.MethodGet {
		obj["RetryURL"] = c.Request.URL.RequestURI()
	}
	Render(c, code, "error.html", obj)
}

// handleAPIError 远端错误的统一出口：401 跳转登录，其余原地展示并可重试
func handleAPIError(c *gin.Context, ns session.Namespace, err error) {
	if apiclient.IsUnauthorized(err) {
		middleware.RedirectToLogin(c, ns)
		return
	}
	status := statusFor(err)
	if middleware.IsHTMX(c) {
		c.String(status, apiclient.MessageOf(err))
		return
	}
	RenderError(c, status, apiclient.MessageOf(err))
}

// statusFor 远端错误映射成本站响应码
func statusFor(err error) int {
	if errors.Is(err, apiclient.ErrNotFound) {
		return http.StatusNotFound
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Kind == apiclient.KindHTTP && apiErr.Status >= 400 && apiErr.Status < 500 {
		return apiErr.Status
	}
	return http.StatusBadGateway
}

// userAPI 绑定用户令牌的客户端
func userAPI(c *gin.Context, api *apiclient.Client) *apiclient.Client {
	return api.WithTokens(session.Tokens(c, session.User))
}

// adminAPI 绑定管理员令牌的客户端
func adminAPI(c *gin.Context, api *apiclient.Client) *apiclient.Client {
	return api.WithTokens(session.Tokens(c, session.Admin))
}

// userScope 按用户区分的缓存范围，避免不同用户的列表总数互相串用
func userScope(c *gin.Context, scope string) string {
	st := session.Tokens(c, session.User)
	if p := st.Profile(); p != nil && p.ID != 0 {
		return fmt.Sprintf("%s@%d", scope, p.ID)
	}
	sum := sha256.Sum256([]byte(st.Token()))
	return scope + "@" + hex.EncodeToString(sum[:6])
}
