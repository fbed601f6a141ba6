package utils

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// RenderMarkdown AI 摘要和后台录入的 markdown 正文
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return EnhanceHTMLContent(policy.Sanitize(buf.String()))
}

// SanitizeHTML RSS 抓来的 HTML 正文
func SanitizeHTML(source string) template.HTML {
	return EnhanceHTMLContent(policy.Sanitize(source))
}

// SanitizeString 只清洗，不做增强
func SanitizeString(source string) string {
	return policy.Sanitize(source)
}

// RenderContent 新闻正文可能是 HTML（RSS）也可能是 markdown（后台录入）
func RenderContent(source string) template.HTML {
	if looksLikeHTML(source) {
		return SanitizeHTML(source)
	}
	return RenderMarkdown(source)
}

func looksLikeHTML(s string) bool {
	s = strings.TrimSpace(s)
	for _, tag := range []string{"<p", "<div", "<br", "<img", "<span", "<h1", "<h2", "<h3", "<ul", "<figure", "<a "} {
		if strings.Contains(s, tag) {
			return true
		}
	}
	return false
}
