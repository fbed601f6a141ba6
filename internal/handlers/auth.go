package handlers

import (
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"peekweb/internal/apiclient"
	"peekweb/internal/logger"
	"peekweb/internal/models"
	"peekweb/internal/services"
	"peekweb/internal/session"
	"peekweb/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const minPasswordLen = 6

type AuthHandler struct {
	api            *apiclient.Client
	captchaService *services.CaptchaService
}

func NewAuthHandler(api *apiclient.Client, captcha *services.CaptchaService) *AuthHandler {
	return &AuthHandler{api: api, captchaService: captcha}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if session.Tokens(c, session.User).IsLoggedIn() {
		c.Redirect(http.StatusFound, escapeNext(c.Query("next")))
		return
	}
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "登录", "Next": c.Query("next")})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := c.PostForm("next")

	fail := func(code int, msg string) {
		Render(c, code, "auth/login.html", gin.H{"Title": "登录", "Error": msg, "Username": username, "Next": next})
	}
	if username == "" || password == "" {
		fail(http.StatusBadRequest, "请输入用户名和密码")
		return
	}

	payload, err := h.api.Login(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, apiclient.ErrInvalidCredentials) {
			fail(http.StatusUnauthorized, apiclient.MessageOf(err))
			return
		}
		logger.Log.WithError(err).WithField("username", username).Warn("login failed")
		fail(statusFor(err), apiclient.MessageOf(err))
		return
	}

	if err := h.startSession(c, session.User, payload); err != nil {
		fail(http.StatusInternalServerError, "登录状态保存失败，请重试")
		return
	}
	c.Redirect(http.StatusFound, escapeNext(next))
}

// startSession 保存令牌；登录响应没带资料时再查一次 /auth/me
func (h *AuthHandler) startSession(c *gin.Context, ns session.Namespace, payload *models.AuthPayload) error {
	st := session.Tokens(c, ns)
	profile := payload.Profile()
	if err := st.Login(payload.Token, profile); err != nil {
		logger.Log.WithError(err).Error("save session failed")
		return err
	}
	if profile != nil || ns != session.User {
		return nil
	}
	me, err := h.api.WithTokens(st).Me(c.Request.Context())
	if err != nil {
		logger.Log.WithError(err).Debug("load profile after login failed")
		return nil
	}
	return st.SetProfile(me)
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	question := h.captchaService.Issue(sessions.Default(c))
	Render(c, http.StatusOK, "auth/register.html", gin.H{"Title": "注册", "Captcha": question})
}

func (h *AuthHandler) Register(c *gin.Context) {
	in := models.RegisterInput{
		Username: strings.TrimSpace(c.PostForm("username")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Password: c.PostForm("password"),
	}
	sess := sessions.Default(c)

	fail := func(code int, msg string) {
		question := h.captchaService.Issue(sess)
		Render(c, code, "auth/register.html", gin.H{
			"Title":    "注册",
			"Error":    msg,
			"Captcha":  question,
			"Username": in.Username,
			"Email":    in.Email,
		})
	}

	if !h.captchaService.Verify(sess, utils.StringToInt(c.PostForm("captcha"))) {
		fail(http.StatusBadRequest, "验证码错误")
		return
	}
	if in.Username == "" {
		fail(http.StatusBadRequest, "请输入用户名")
		return
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		fail(http.StatusBadRequest, "邮箱格式不正确")
		return
	}
	if len(in.Password) < minPasswordLen {
		fail(http.StatusBadRequest, "密码至少6位")
		return
	}
	if in.Password != c.PostForm("confirm_password") {
		fail(http.StatusBadRequest, "两次输入的密码不一致")
		return
	}

	payload, err := h.api.Register(c.Request.Context(), in)
	if err != nil {
		logger.Log.WithError(err).WithField("username", in.Username).Warn("register failed")
		fail(statusFor(err), apiclient.MessageOf(err))
		return
	}

	if payload.Token != "" {
		if err := h.startSession(c, session.User, payload); err == nil {
			session.AddFlash(c, "注册成功，欢迎加入")
			c.Redirect(http.StatusFound, "/")
			return
		}
	}
	session.AddFlash(c, "注册成功，请登录")
	c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := session.Tokens(c, session.User).Logout(); err != nil {
		logger.Log.WithError(err).Warn("logout failed")
	}
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowAdminLogin(c *gin.Context) {
	if session.Tokens(c, session.Admin).IsLoggedIn() {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	Render(c, http.StatusOK, "admin/login.html", gin.H{"Title": "后台登录", "Next": c.Query("next")})
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	next := c.PostForm("next")

	fail := func(code int, msg string) {
		Render(c, code, "admin/login.html", gin.H{"Title": "后台登录", "Error": msg, "Username": username, "Next": next})
	}
	if username == "" || password == "" {
		fail(http.StatusBadRequest, "请输入用户名和密码")
		return
	}

	payload, err := h.api.AdminLogin(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, apiclient.ErrInvalidCredentials) {
			fail(http.StatusUnauthorized, apiclient.MessageOf(err))
			return
		}
		logger.Log.WithError(err).WithField("username", username).Warn("admin login failed")
		fail(statusFor(err), apiclient.MessageOf(err))
		return
	}
	if p := payload.Profile(); p != nil && p.Role != "" && !p.IsAdmin() {
		fail(http.StatusForbidden, "该账号没有后台权限")
		return
	}

	if err := h.startSession(c, session.Admin, payload); err != nil {
		fail(http.StatusInternalServerError, "登录状态保存失败，请重试")
		return
	}

	target := escapeNext(next)
	if target == "/" {
		target = "/admin"
	}
	c.Redirect(http.StatusFound, target)
}

func (h *AuthHandler) AdminLogout(c *gin.Context) {
	if err := session.Tokens(c, session.Admin).Logout(); err != nil {
		logger.Log.WithError(err).Warn("admin logout failed")
	}
	c.Redirect(http.StatusFound, "/admin/login")
}
