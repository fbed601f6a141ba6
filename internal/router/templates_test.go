package router

import (
	"bytes"
	"html/template"
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"peekweb/web"

	"github.com/gin-contrib/multitemplate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTemplatesRegistersEveryView(t *testing.T) {
	templates, err := fs.Sub(web.Files, "templates")
	require.NoError(t, err)

	r, err := LoadTemplates(templates)
	require.NoError(t, err)
	views, ok := r.(multitemplate.Render)
	require.True(t, ok)

	for _, name := range []string{
		"home.html",
		"search.html",
		"news/list.html",
		"events/detail.html",
		"me/messages.html",
		"auth/login.html",
		"admin/login.html",
		"admin/dashboard.html",
		"admin/rss_form.html",
		"partials/ai_panel.html",
		"partials/follow_button.html",
		"partials/feed_preview.html",
	} {
		assert.Contains(t, views, name)
	}
}

func TestAdminViewsUseAdminLayout(t *testing.T) {
	fsys := fstest.MapFS{
		"layouts/base.html":       {Data: []byte(`base[{{template "content" .}}]`)},
		"layouts/admin.html":      {Data: []byte(`admin[{{template "content" .}}]`)},
		"components/badge.html":   {Data: []byte(`{{define "badge"}}<b>{{.}}</b>{{end}}`)},
		"views/home.html":         {Data: []byte(`{{define "content"}}home {{template "badge" "x"}}{{end}}`)},
		"views/admin/users.html":  {Data: []byte(`{{define "content"}}users{{end}}`)},
		"views/admin/login.html":  {Data: []byte(`{{define "content"}}login{{end}}`)},
		"partials/badge_row.html": {Data: []byte(`row {{template "badge" .}}`)},
	}

	r, err := LoadTemplates(fsys)
	require.NoError(t, err)
	views, ok := r.(multitemplate.Render)
	require.True(t, ok)

	render := func(name string, data any) string {
		var buf bytes.Buffer
		require.NoError(t, views[name].Execute(&buf, data))
		return buf.String()
	}
	assert.Equal(t, "base[home <b>x</b>]", render("home.html", nil))
	assert.Equal(t, "admin[users]", render("admin/users.html", nil))
	assert.Equal(t, "base[login]", render("admin/login.html", nil))
	assert.Equal(t, "row <b>7</b>", render("partials/badge_row.html", 7))
}

func TestLoadTemplatesReportsParseErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"layouts/base.html":  {Data: []byte(`{{template "content" .}}`)},
		"views/broken.html": {Data: []byte(`{{define "content"}}{{if}}{{end}}`)},
	}
	_, err := LoadTemplates(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.html")
}

func TestFuncMap(t *testing.T) {
	fm := FuncMap()

	dict := fm["dict"].(func(...interface{}) (map[string]interface{}, error))
	m, err := dict("EventID", 3, "IsFollowing", true)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"EventID": 3, "IsFollowing": true}, m)
	_, err = dict("odd")
	assert.Error(t, err)
	_, err = dict(1, 2)
	assert.Error(t, err)

	percent := fm["percent"].(func(float64) string)
	assert.Equal(t, "85%", percent(0.85))
	assert.Equal(t, "72%", percent(72))

	formTime := fm["formTime"].(func(time.Time) string)
	assert.Equal(t, "", formTime(time.Time{}))
	assert.Equal(t, "2024-03-01T09:30", formTime(time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)))

	join := fm["join"].(func([]string) string)
	assert.Equal(t, "a, b", join([]string{"a", "b"}))

	derefUint := fm["derefUint"].(func(*uint) uint)
	id := uint(9)
	assert.Equal(t, uint(9), derefUint(&id))
	assert.Equal(t, uint(0), derefUint(nil))

	derefBool := fm["derefBool"].(func(*bool) bool)
	on := true
	assert.True(t, derefBool(&on))
	assert.False(t, derefBool(nil))
}

func TestTruncateArgumentOrderSupportsPipelines(t *testing.T) {
	tmpl := template.Must(template.New("t").Funcs(FuncMap()).Parse(`{{.S | truncate 3}}|{{excerpt 5 .H}}`))
	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, map[string]string{"S": "abcdef", "H": "<p>hello world</p>"}))
	assert.Equal(t, "abc…|hello…", buf.String())
}
