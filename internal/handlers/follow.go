package handlers

import (
	"net/http"

	"peekweb/internal/apiclient"
	"peekweb/internal/listview"
	"peekweb/internal/middleware"
	"peekweb/internal/session"
	"peekweb/internal/utils"

	"github.com/gin-gonic/gin"
)

const followsPath = "/me/follows"

type FollowHandler struct {
	api      *apiclient.Client
	lister   *Lister
	pageSize int
}

func NewFollowHandler(api *apiclient.Client, lister *Lister, pageSize int) *FollowHandler {
	return &FollowHandler{api: api, lister: lister, pageSize: pageSize}
}

// List 我关注的事件
func (h *FollowHandler) List(c *gin.Context) {
	limit := utils.ParseLimit(c.Query("limit"), h.pageSize, maxPageSize)
	ctrl := listview.New(apiclient.FollowSource(userAPI(c, h.api)), limit, nil)

	err := runList(h.lister, c, userScope(c, "follows"), ctrl, nil)
	renderList(c, session.User, "me/follows.html", ctrl, err, gin.H{
		"Title":  "我的关注",
		"Active": "follows",
	})
}

// Toggle 关注/取消关注，返回更新后的按钮片段
func (h *FollowHandler) Toggle(c *gin.Context) {
	if !session.Tokens(c, session.User).IsLoggedIn() {
		middleware.RedirectToLogin(c, session.User)
		return
	}

	eventID := utils.StringToUint(c.Param("event_id"))
	if eventID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	api := userAPI(c, h.api)
	ctx := c.Request.Context()

	following, err := api.IsFollowing(ctx, eventID)
	if err == nil {
		if following {
			err = api.Unfollow(ctx, eventID)
		} else {
			err = api.Follow(ctx, eventID)
		}
	}
	if err != nil {
		handleAPIError(c, session.User, err)
		return
	}
	h.lister.Forget(userScope(c, "follows"))

	c.HTML(http.StatusOK, "partials/follow_button.html", gin.H{
		"EventID":     eventID,
		"IsFollowing": !following,
	})
}

// Unfollow 关注列表里的取消关注
func (h *FollowHandler) Unfollow(c *gin.Context) {
	eventID := utils.StringToUint(c.Param("event_id"))
	if eventID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := userAPI(c, h.api).Unfollow(c.Request.Context(), eventID); err != nil {
		handleAPIError(c, session.User, err)
		return
	}
	h.lister.Forget(userScope(c, "follows"))

	if middleware.IsHTMX(c) {
		c.Status(http.StatusOK)
		return
	}
	session.AddFlash(c, "已取消关注")
	c.Redirect(http.StatusFound, followsPath)
}
