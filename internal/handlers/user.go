package handlers

import (
	"net/http"
	"strings"

	"peekweb/internal/apiclient"
	"peekweb/internal/logger"
	"peekweb/internal/models"
	"peekweb/internal/session"

	"github.com/gin-gonic/gin"
)

const profilePath = "/me"

type UserHandler struct {
	api *apiclient.Client
}

func NewUserHandler(api *apiclient.Client) *UserHandler {
	return &UserHandler{api: api}
}

// Profile 个人资料，每次从接口取最新的并刷新会话缓存
func (h *UserHandler) Profile(c *gin.Context) {
	st := session.Tokens(c, session.User)
	user, err := h.api.WithTokens(st).Me(c.Request.Context())
	if err != nil {
		handleAPIError(c, session.User, err)
		return
	}
	if err := st.SetProfile(user); err != nil {
		logger.Log.WithError(err).Warn("refresh session profile failed")
	}

	Render(c, http.StatusOK, "me/profile.html", gin.H{
		"Title":  "个人资料",
		"User":   user,
		"Active": "profile",
	})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	in := models.ProfileInput{
		Username: strings.TrimSpace(c.PostForm("username")),
		Email:    strings.TrimSpace(c.PostForm("email")),
		Phone:    strings.TrimSpace(c.PostForm("phone")),
		Avatar:   strings.TrimSpace(c.PostForm("avatar")),
		Bio:      strings.TrimSpace(c.PostForm("bio")),
		Location: strings.TrimSpace(c.PostForm("location")),
	}
	if len([]rune(in.Bio)) > 500 {
		h.renderForm(c, http.StatusBadRequest, in, "简介不能超过500字")
		return
	}

	st := session.Tokens(c, session.User)
	user, err := h.api.WithTokens(st).UpdateProfile(c.Request.Context(), in)
	if err != nil {
		if apiclient.IsUnauthorized(err) {
			handleAPIError(c, session.User, err)
			return
		}
		h.renderForm(c, statusFor(err), in, apiclient.MessageOf(err))
		return
	}
	// 部分接口更新成功后不回资料
	if user != nil && user.ID != 0 {
		if err := st.SetProfile(user); err != nil {
			logger.Log.WithError(err).Warn("refresh session profile failed")
		}
	}

	session.AddFlash(c, "资料已更新")
	c.Redirect(http.StatusFound, profilePath)
}

// renderForm 提交失败时保留用户填写的内容
func (h *UserHandler) renderForm(c *gin.Context, code int, in models.ProfileInput, msg string) {
	user := models.User{
		Username: in.Username,
		Email:    in.Email,
		Phone:    in.Phone,
		Avatar:   in.Avatar,
		Bio:      in.Bio,
		Location: in.Location,
	}
	Render(c, code, "me/profile.html", gin.H{
		"Title":  "个人资料",
		"User":   &user,
		"Error":  msg,
		"Active": "profile",
	})
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	in := models.PasswordInput{
		OldPassword: c.PostForm("old_password"),
		NewPassword: c.PostForm("new_password"),
	}

	fail := func(code int, msg string) {
		Render(c, code, "me/password.html", gin.H{"Title": "修改密码", "Error": msg, "Active": "password"})
	}
	if in.OldPassword == "" || len(in.NewPassword) < minPasswordLen {
		fail(http.StatusBadRequest, "新密码至少6位")
		return
	}
	if in.NewPassword != c.PostForm("confirm_password") {
		fail(http.StatusBadRequest, "两次输入的密码不一致")
		return
	}

	if err := userAPI(c, h.api).ChangePassword(c.Request.Context(), in); err != nil {
		if apiclient.IsUnauthorized(err) {
			handleAPIError(c, session.User, err)
			return
		}
		fail(statusFor(err), apiclient.MessageOf(err))
		return
	}

	session.AddFlash(c, "密码已修改")
	c.Redirect(http.StatusFound, profilePath)
}

func (h *UserHandler) ShowPassword(c *gin.Context) {
	Render(c, http.StatusOK, "me/password.html", gin.H{"Title": "修改密码", "Active": "password"})
}
