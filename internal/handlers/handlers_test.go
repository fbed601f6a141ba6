package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"peekweb/internal/listview"
	"peekweb/internal/models"
	"peekweb/internal/session"
	"peekweb/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestEscapeNext(t *testing.T) {
	cases := map[string]string{
		"":                     "/",
		"/me/messages?page=2":  "/me/messages?page=2",
		"//evil.example/x":     "/",
		"https://evil.example": "/",
		"relative/path":        "/",
		"/":                    "/",
	}
	for in, want := range cases {
		assert.Equal(t, want, escapeNext(in), in)
	}
}

// testContext gin 会缓存解析过的 query，每个请求用新的 context
func testContext(target string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c
}

func TestQueryFilters(t *testing.T) {
	c := testContext("/events?category=%E7%A7%91%E6%8A%80&sort_by=&page=3&extra=1")
	f := queryFilters(c, eventDefaults, "category", "sort_by", "status")
	assert.Equal(t, listview.Filters{"category": "科技"}, f)
	// 默认值不被修改
	assert.Equal(t, "time", eventDefaults.Get("sort_by"))

	c = testContext("/events")
	assert.Equal(t, listview.Filters{"sort_by": "time"}, queryFilters(c, eventDefaults, "category", "sort_by"))
}

func TestPageBaseURL(t *testing.T) {
	c := testContext("/news?page=2")
	assert.Equal(t, "/news?", pageBaseURL(c, nil))
	assert.Equal(t, "/news?category=%E7%A7%91%E6%8A%80&", pageBaseURL(c, listview.Filters{"category": "科技"}))

	c = testContext("/news?limit=5")
	assert.Equal(t, "/news?limit=5&", pageBaseURL(c, nil))
}

func TestListerForgetOnlyDropsScope(t *testing.T) {
	l := NewLister(utils.NewCache(16), time.Minute)
	f := listview.Filters{"q": "a"}
	l.totals.Set(l.key("events", 10, f), 30, time.Minute)
	l.totals.Set(l.key("admin:events", 10, f), 40, time.Minute)
	l.totals.Set(l.key("news", 10, f), 50, time.Minute)

	l.Forget("events")

	_, ok := l.totals.GetInt(l.key("events", 10, f))
	assert.False(t, ok)
	n, ok := l.totals.GetInt(l.key("admin:events", 10, f))
	assert.True(t, ok)
	assert.Equal(t, 40, n)
	n, ok = l.totals.GetInt(l.key("news", 10, f))
	assert.True(t, ok)
	assert.Equal(t, 50, n)
}

func TestUserScopeSeparatesUsers(t *testing.T) {
	authKey, encKey, err := session.DeriveKeys("scope-test")
	require.NoError(t, err)

	scopes := map[string]string{}
	r := gin.New()
	r.Use(sessions.Sessions(session.CookieName, cookie.NewStore(authKey, encKey)))
	r.GET("/:who", func(c *gin.Context) {
		st := session.Tokens(c, session.User)
		switch c.Param("who") {
		case "alice":
			require.NoError(t, st.Login("tok-a", &models.User{ID: 1}))
		case "bob":
			require.NoError(t, st.Login("tok-b", &models.User{ID: 2}))
		case "anon-token":
			require.NoError(t, st.Login("tok-c", nil))
		}
		scopes[c.Param("who")] = userScope(c, "messages")
		c.Status(http.StatusOK)
	})

	for _, who := range []string{"alice", "bob", "anon-token"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/"+who, nil))
	}
	assert.Equal(t, "messages@1", scopes["alice"])
	assert.Equal(t, "messages@2", scopes["bob"])
	assert.Regexp(t, `^messages@[0-9a-f]{12}$`, scopes["anon-token"])
}

func TestValidFeedURL(t *testing.T) {
	assert.True(t, validFeedURL("https://example.com/feed.xml"))
	assert.True(t, validFeedURL("rsshub://github/issue/golang/go"))
	assert.False(t, validFeedURL("rsshub://"))
	assert.False(t, validFeedURL("ftp://example.com/feed"))
	assert.False(t, validFeedURL("example.com/feed"))
}

func TestValidateEvent(t *testing.T) {
	start := time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)
	ok := models.EventInput{Title: "t", Category: "科技", StartTime: start, EndTime: start.Add(time.Hour)}
	assert.Empty(t, validateEvent(ok))

	bad := ok
	bad.EndTime = start.Add(-time.Hour)
	assert.Equal(t, "结束时间不能早于开始时间", validateEvent(bad))

	bad = ok
	bad.Title = ""
	assert.Equal(t, "标题不能为空", validateEvent(bad))
}

func TestParseFormTime(t *testing.T) {
	got := parseFormTime("2024-05-01T08:30")
	assert.True(t, time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local).Equal(got))
	assert.True(t, parseFormTime("").IsZero())
	assert.True(t, parseFormTime("yesterday").IsZero())
}
