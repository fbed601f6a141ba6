package handlers

import (
	"net/http"

	"peekweb/internal/apiclient"
	"peekweb/internal/listview"
	"peekweb/internal/middleware"
	"peekweb/internal/models"
	"peekweb/internal/session"
	"peekweb/internal/utils"

	"github.com/gin-gonic/gin"
)

const messagesPath = "/me/messages"

type MessageHandler struct {
	api      *apiclient.Client
	lister   *Lister
	pageSize int
}

func NewMessageHandler(api *apiclient.Client, lister *Lister, pageSize int) *MessageHandler {
	return &MessageHandler{api: api, lister: lister, pageSize: pageSize}
}

// List 站内消息，可按类型和未读筛选
func (h *MessageHandler) List(c *gin.Context) {
	limit := utils.ParseLimit(c.Query("limit"), h.pageSize, maxPageSize)
	ctrl := listview.New(apiclient.MessageSource(userAPI(c, h.api)), limit, nil)

	err := runList(h.lister, c, userScope(c, "messages"), ctrl, queryFilters(c, nil, "type", "unread"))
	renderList(c, session.User, "me/messages.html", ctrl, err, gin.H{
		"Title":  "消息",
		"Types":  models.MessageTypes,
		"Active": "messages",
	})
}

// Read 标记单条已读。htmx 请求只回 200，由前端去掉未读样式
func (h *MessageHandler) Read(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := userAPI(c, h.api).MarkMessageRead(c.Request.Context(), id); err != nil {
		handleAPIError(c, session.User, err)
		return
	}
	h.lister.Forget(userScope(c, "messages"))
	h.done(c, "")
}

func (h *MessageHandler) ReadAll(c *gin.Context) {
	if err := userAPI(c, h.api).MarkAllMessagesRead(c.Request.Context()); err != nil {
		handleAPIError(c, session.User, err)
		return
	}
	h.lister.Forget(userScope(c, "messages"))
	h.done(c, "已全部标记为已读")
}

// Delete htmx 返回空内容，前端移除该条
func (h *MessageHandler) Delete(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	if id == 0 {
		c.Status(http.StatusBadRequest)
		return
	}
	if err := userAPI(c, h.api).DeleteMessage(c.Request.Context(), id); err != nil {
		handleAPIError(c, session.User, err)
		return
	}
	h.lister.Forget(userScope(c, "messages"))
	h.done(c, "消息已删除")
}

func (h *MessageHandler) done(c *gin.Context, flash string) {
	if middleware.IsHTMX(c) {
		c.Status(http.StatusOK)
		return
	}
	if flash != "" {
		session.AddFlash(c, flash)
	}
	c.Redirect(http.StatusFound, messagesPath)
}
