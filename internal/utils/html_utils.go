package utils

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const iframeAttrs = `frameborder="0" allowfullscreen allow="accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"`

// EnhanceHTMLContent 处理已清洗的正文：图片懒加载和防盗链、外链新窗口、独占一段的视频链接换成播放器
func EnhanceHTMLContent(htmlStr string) template.HTML {
	if strings.TrimSpace(htmlStr) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return template.HTML(htmlStr)
	}

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		s.SetAttr("referrerpolicy", "no-referrer")
		s.SetAttr("loading", "lazy")
		s.SetAttr("onerror", "this.onerror=null; this.src='/static/img/imgerr.svg'")
		s.AddClass("rounded-lg")
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			s.SetAttr("target", "_blank")
			s.SetAttr("rel", "noopener noreferrer")
		}
	})

	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if !strings.HasPrefix(text, "http") || strings.ContainsAny(text, " \n") {
			return
		}
		if embed := videoEmbed(text); embed != "" {
			s.ReplaceWithHtml(embed)
		}
	})

	out, _ := doc.Find("body").Html()
	if out == "" {
		out, _ = doc.Html()
	}
	return template.HTML(out)
}

// videoEmbed 支持 Bilibili 和 YouTube，其它链接返回空
func videoEmbed(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")

	var src string
	switch {
	case strings.HasSuffix(host, "bilibili.com") && strings.HasPrefix(u.Path, "/video/"):
		bvid := strings.Trim(strings.TrimPrefix(u.Path, "/video/"), "/")
		if bvid != "" {
			src = "https://player.bilibili.com/player.html?bvid=" + url.QueryEscape(bvid) + "&high_quality=1&autoplay=0"
		}
	case host == "youtube.com" && u.Path == "/watch":
		if id := u.Query().Get("v"); id != "" {
			src = "https://www.youtube.com/embed/" + url.PathEscape(id)
		}
	case host == "youtu.be":
		if id := strings.Trim(u.Path, "/"); id != "" {
			src = "https://www.youtube.com/embed/" + url.PathEscape(id)
		}
	}
	if src == "" {
		return ""
	}
	return `<div class="video-container"><iframe src="` + src + `" ` + iframeAttrs + `></iframe></div>`
}
