package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"peekweb/internal/apiclient"
	"peekweb/internal/logger"
	"peekweb/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	sitemapCacheKey = "seo:sitemap"
	sitemapLimit    = 100
)

type SEOHandler struct {
	api     *apiclient.Client
	cache   *utils.GlobalCache
	siteURL string
}

func NewSEOHandler(api *apiclient.Client, cache *utils.GlobalCache, siteURL string) *SEOHandler {
	return &SEOHandler{api: api, cache: cache, siteURL: strings.TrimRight(siteURL, "/")}
}

// RobotsTxt 个人页和后台不给爬
func (h *SEOHandler) RobotsTxt(c *gin.Context) {
	content := fmt.Sprintf(`User-agent: *
Allow: /

Disallow: /me/
Disallow: /admin/
Disallow: /login
Disallow: /register
Disallow: /ai/
Disallow: /follows/

Sitemap: %s/sitemap.xml
`, h.siteURL)

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.String(http.StatusOK, content)
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapXML 固定页面加上最新新闻和热门事件，生成结果缓存一小时
func (h *SEOHandler) SitemapXML(c *gin.Context) {
	if cached, ok := h.cache.Get(sitemapCacheKey).([]byte); ok {
		c.Data(http.StatusOK, "application/xml; charset=utf-8", cached)
		return
	}

	g, ctx := errgroup.WithContext(c.Request.Context())
	var news, events []sitemapURL
	g.Go(func() error {
		l, err := h.api.LatestNews(ctx, sitemapLimit)
		for _, n := range l.Items {
			news = append(news, sitemapURL{
				Loc:        fmt.Sprintf("%s/news/%d", h.siteURL, n.ID),
				LastMod:    lastMod(n.PublishedAt),
				ChangeFreq: "weekly",
				Priority:   "0.8",
			})
		}
		return err
	})
	g.Go(func() error {
		l, err := h.api.HotEvents(ctx, sitemapLimit)
		for _, e := range l.Items {
			events = append(events, sitemapURL{
				Loc:        fmt.Sprintf("%s/events/%d", h.siteURL, e.ID),
				LastMod:    lastMod(e.CreatedAt),
				ChangeFreq: "daily",
				Priority:   "0.7",
			})
		}
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Log.WithError(err).Warn("build sitemap failed")
		c.String(statusFor(err), "sitemap unavailable")
		return
	}

	today := time.Now().Format("2006-01-02")
	set := urlset{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range []struct{ path, freq, prio string }{
		{"/", "hourly", "1.0"},
		{"/news", "hourly", "0.9"},
		{"/events", "hourly", "0.9"},
		{"/categories", "daily", "0.6"},
		{"/recommend", "daily", "0.5"},
	} {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.siteURL + p.path, LastMod: today, ChangeFreq: p.freq, Priority: p.prio})
	}
	set.URLs = append(set.URLs, news...)
	set.URLs = append(set.URLs, events...)

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		c.String(http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	out = append([]byte(xml.Header), out...)
	h.cache.Set(sitemapCacheKey, out, time.Hour)
	c.Data(http.StatusOK, "application/xml; charset=utf-8", out)
}

func lastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
