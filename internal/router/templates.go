package router

import (
	"fmt"
	"html/template"
	"io/fs"
	"math"
	"net/url"
	"path"
	"strings"
	"time"

	"peekweb/internal/models"
	"peekweb/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// FuncMap 模板函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"timeAgo": func(t interface{}) string {
			switch v := t.(type) {
			case time.Time:
				return utils.TimeAgo(v)
			case *time.Time:
				if v != nil {
					return utils.TimeAgo(*v)
				}
			}
			return ""
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02 15:04")
		},
		// formTime datetime-local 输入框的值
		"formTime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02T15:04")
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
		"markdown":  utils.RenderMarkdown,
		"content":   utils.RenderContent,
		"stripHTML": utils.StripHTML,
		"truncate": func(n int, s string) string {
			return utils.Truncate(s, n)
		},
		"excerpt": func(n int, s string) string {
			return utils.Truncate(utils.StripHTML(s), n)
		},
		"hotness": utils.HotnessLabel,
		"avatar":  utils.AvatarOrDefault,
		"isImage": utils.IsImageURL,
		"join": func(items []string) string {
			return models.StringList(items).Join(", ")
		},
		"percent": func(f float64) string {
			if f <= 1 {
				f *= 100
			}
			return fmt.Sprintf("%d%%", int(math.Round(f)))
		},
		"urlquery": func(s string) string {
			return url.QueryEscape(s)
		},
		"derefUint": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
		"derefBool": func(p *bool) bool {
			return p != nil && *p
		},
		// list 模板里写下拉框选项
		"list": func(items ...string) []string {
			return items
		},
	}
}

// LoadTemplates 页面 = 布局 + 组件 + 视图；片段 = 组件 + 片段，供 htmx 局部替换
func LoadTemplates(fsys fs.FS) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()
	funcMap := FuncMap()

	components, err := fs.Glob(fsys, "components/*.html")
	if err != nil {
		return nil, err
	}

	add := func(name, root string, files ...string) error {
		tmpl, err := template.New(root).Funcs(funcMap).ParseFS(fsys, files...)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		r.Add(name, tmpl)
		return nil
	}

	views, err := fs.Glob(fsys, "views/*.html")
	if err != nil {
		return nil, err
	}
	nested, err := fs.Glob(fsys, "views/*/*.html")
	if err != nil {
		return nil, err
	}
	for _, view := range append(views, nested...) {
		name := strings.TrimPrefix(view, "views/")
		layout := "layouts/base.html"
		if strings.HasPrefix(name, "admin/") && name != "admin/login.html" {
			layout = "layouts/admin.html"
		}
		files := append([]string{layout}, components...)
		files = append(files, view)
		if err := add(name, path.Base(layout), files...); err != nil {
			return nil, err
		}
	}

	partials, err := fs.Glob(fsys, "partials/*.html")
	if err != nil {
		return nil, err
	}
	for _, p := range partials {
		files := append(append([]string{}, components...), p)
		if err := add(p, path.Base(p), files...); err != nil {
			return nil, err
		}
	}

	return r, nil
}
