package handlers

import (
	"net/http"

	"peekweb/internal/analysis"
	"peekweb/internal/apiclient"
	"peekweb/internal/logger"
	"peekweb/internal/session"
	"peekweb/internal/utils"

	"github.com/gin-gonic/gin"
)

const panelTemplate = "partials/ai_panel.html"

type AnalysisHandler struct {
	api   *apiclient.Client
	delay analysis.PanelOption
}

// NewAnalysisHandler delay 为触发后到再次读取结果的间隔
func NewAnalysisHandler(api *apiclient.Client, delay analysis.PanelOption) *AnalysisHandler {
	if delay == nil {
		delay = analysis.WithDelay(analysis.PollDelay)
	}
	return &AnalysisHandler{api: api, delay: delay}
}

func (h *AnalysisHandler) panel(c *gin.Context, kindParam, idParam string) (*analysis.Panel, bool) {
	kind, ok := analysis.ParseKind(kindParam)
	id := utils.StringToUint(idParam)
	if !ok || id == 0 {
		c.String(http.StatusBadRequest, "参数错误")
		return nil, false
	}
	return analysis.NewPanel(userAPI(c, h.api), kind, id, h.delay), true
}

// Show 读取已有分析结果
func (h *AnalysisHandler) Show(c *gin.Context) {
	p, ok := h.panel(c, c.Query("type"), c.Query("id"))
	if !ok {
		return
	}
	if err := p.Load(c.Request.Context()); err != nil {
		if apiclient.IsUnauthorized(err) {
			handleAPIError(c, session.User, err)
			return
		}
		logger.Log.WithError(err).WithField("target_id", p.TargetID).Warn("load analysis failed")
	}
	h.render(c, p)
}

// Trigger 发起分析并在固定间隔后读取一次结果
func (h *AnalysisHandler) Trigger(c *gin.Context) {
	p, ok := h.panel(c, c.PostForm("type"), c.PostForm("id"))
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := p.Load(ctx); err != nil {
		if apiclient.IsUnauthorized(err) {
			handleAPIError(c, session.User, err)
			return
		}
		// 读不到当前状态时仍是 empty，允许触发
		logger.Log.WithError(err).WithField("target_id", p.TargetID).Debug("load analysis before trigger failed")
	}

	if err := p.Trigger(ctx, parseOptions(c)); err != nil {
		if apiclient.IsUnauthorized(err) {
			handleAPIError(c, session.User, err)
			return
		}
		logger.Log.WithError(err).WithField("kind", p.Kind).WithField("target_id", p.TargetID).Warn("trigger analysis failed")
	}
	h.render(c, p)
}

// parseOptions 表单未带 options 标记时全部启用
func parseOptions(c *gin.Context) analysis.Options {
	if c.PostForm("options") == "" {
		return analysis.DefaultOptions()
	}
	on := func(key string) bool { return c.PostForm(key) != "" }
	return analysis.Options{
		Summary:   on("summary"),
		Keywords:  on("keywords"),
		Sentiment: on("sentiment"),
		Trends:    on("trends"),
		Impact:    on("impact"),
	}
}

func (h *AnalysisHandler) render(c *gin.Context, p *analysis.Panel) {
	data := gin.H{
		"Panel":      p,
		"State":      string(p.State),
		"Message":    p.Message(),
		"CanTrigger": p.CanTrigger(),
		"Forecast":   p.SupportsForecast(),
		"Result":     p.Result,
	}
	if p.Err != nil {
		data["Error"] = apiclient.MessageOf(p.Err)
	}
	c.HTML(http.StatusOK, panelTemplate, data)
}
