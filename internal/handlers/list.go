package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"peekweb/internal/apiclient"
	"peekweb/internal/listview"
	"peekweb/internal/logger"
	"peekweb/internal/middleware"
	"peekweb/internal/session"
	"peekweb/internal/utils"

	"github.com/gin-gonic/gin"
)

// errRedirected 列表流程已经写出了重定向
var errRedirected = errors.New("redirected")

// Lister 列表页公共流程：解析页码、复用已知总数、越界时重定向到最后一页
type Lister struct {
	totals *utils.GlobalCache
	ttl    time.Duration
}

func NewLister(totals *utils.GlobalCache, ttl time.Duration) *Lister {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Lister{totals: totals, ttl: ttl}
}

func (l *Lister) key(scope string, pageSize int, f listview.Filters) string {
	return fmt.Sprintf("total:%s:%d:%s", scope, pageSize, f.Key())
}

// Forget 增删数据后清掉该范围下已知的总数
func (l *Lister) Forget(scope string) {
	l.totals.DeletePrefix("total:" + scope + ":")
}

// runList 驱动 Controller：?reset 恢复默认，?apply 提交筛选，否则按 ?page 翻页
func runList[T any](l *Lister, c *gin.Context, scope string, ctrl *listview.Controller[T], filters listview.Filters) error {
	ctx := c.Request.Context()
	page := utils.ParsePage(c.Query("page"))

	var err error
	switch {
	case c.Query("reset") != "":
		err = ctrl.ResetFilters(ctx)
	case c.Query("apply") != "":
		err = ctrl.ApplyFilters(ctx, filters)
	default:
		total, seeded := l.totals.GetInt(l.key(scope, ctrl.PageSize(), filters))
		if seeded {
			ctrl.Seed(filters, total)
		}
		if seeded && page != 1 {
			_, err = ctrl.ChangePage(ctx, page)
		} else {
			err = ctrl.FetchPage(ctx, page, filters)
		}
	}

	if errors.Is(err, listview.ErrPageOutOfRange) {
		redirectToPage(c, ctrl.Filters(), max(ctrl.TotalPages(), 1))
		return errRedirected
	}
	if err != nil {
		return err
	}

	l.totals.Set(l.key(scope, ctrl.PageSize(), ctrl.Filters()), ctrl.Total(), l.ttl)

	// 首次请求时总数未知，越界页在拿到总数后再纠正
	if tp := ctrl.TotalPages(); tp > 0 && ctrl.Page() > tp {
		redirectToPage(c, ctrl.Filters(), tp)
		return errRedirected
	}
	return nil
}

// pageBaseURL 当前列表的链接前缀，模板里追加 page=N
func pageBaseURL(c *gin.Context, f listview.Filters) string {
	v := f.Values()
	if limit := c.Query("limit"); limit != "" {
		v.Set("limit", limit)
	}
	if len(v) == 0 {
		return c.Request.URL.Path + "?"
	}
	return c.Request.URL.Path + "?" + v.Encode() + "&"
}

func redirectToPage(c *gin.Context, f listview.Filters, page int) {
	target := pageBaseURL(c, f) + "page=" + fmt.Sprint(page) + "#" + listview.ListAnchor
	c.Redirect(http.StatusFound, target)
}

// listData 列表模板的公共字段
func listData[T any](c *gin.Context, ctrl *listview.Controller[T], err error) gin.H {
	data := gin.H{
		"Items":     ctrl.Items(),
		"Total":     ctrl.Total(),
		"Pager":     ctrl.Pager(),
		"Phase":     ctrl.Phase().String(),
		"Filters":   ctrl.Filters(),
		"BaseURL":   pageBaseURL(c, ctrl.Filters()),
		"Anchor":    listview.ListAnchor,
		"ResetURL":  c.Request.URL.Path + "?reset=1",
		"ListError": "",
	}
	if err != nil {
		data["ListError"] = apiclient.MessageOf(err)
		data["RetryURL"] = c.Request.URL.RequestURI()
	}
	return data
}

// listStatus 列表出错时仍渲染页面，只改状态码
func listStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return statusFor(err)
}

// merge 合并模板数据，后者覆盖前者
func merge(base gin.H, extra gin.H) gin.H {
	for k, v := range extra {
		base[k] = v
	}
	return base
}

// queryFilters 从查询参数里取出指定的筛选键
func queryFilters(c *gin.Context, defaults listview.Filters, keys ...string) listview.Filters {
	f := defaults.Clone()
	for _, k := range keys {
		if v, ok := c.GetQuery(k); ok {
			if v == "" {
				delete(f, k)
			} else {
				f[k] = v
			}
		}
	}
	return f
}

// escapeNext 登录后跳回的地址只接受站内路径
func escapeNext(next string) string {
	u, err := url.Parse(next)
	if err != nil || u.IsAbs() || u.Host != "" || len(next) == 0 || next[0] != '/' || (len(next) > 1 && next[1] == '/') {
		return "/"
	}
	return next
}

// renderList 列表页收尾：已重定向的直接返回，401 跳登录，其余错误原地展示
func renderList[T any](c *gin.Context, ns session.Namespace, name string, ctrl *listview.Controller[T], err error, extra gin.H) {
	if errors.Is(err, errRedirected) {
		return
	}
	if apiclient.IsUnauthorized(err) {
		middleware.RedirectToLogin(c, ns)
		return
	}
	if err != nil {
		logger.Log.WithError(err).WithField("path", c.Request.URL.Path).Warn("list fetch failed")
	}
	Render(c, listStatus(err), name, merge(listData(c, ctrl, err), extra))
}
