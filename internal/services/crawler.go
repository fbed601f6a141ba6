package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// maxPageSize 抓取网页的最大字节数
const maxPageSize = 5 << 20

// ImportedArticle 从网页提取出来、用于预填新闻表单的内容
type ImportedArticle struct {
	Title    string
	Byline   string
	Excerpt  string
	Content  string
	SiteName string
	ImageURL string
	Link     string
}

// CrawlerService 后台“从链接导入新闻”
type CrawlerService struct {
	client    *http.Client
	sanitizer *bluemonday.Policy
}

func NewCrawlerService(client *http.Client) *CrawlerService {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &CrawlerService{
		client:    client,
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// FetchArticle 用 go-readability 提取正文，再用 bluemonday 清洗
func (s *CrawlerService) FetchArticle(ctx context.Context, rawURL string) (*ImportedArticle, error) {
	pageURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return nil, fmt.Errorf("无效的链接: %s", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP 状态码: %d", resp.StatusCode)
	}

	article, err := readability.FromReader(io.LimitReader(resp.Body, maxPageSize), pageURL)
	if err != nil {
		return nil, fmt.Errorf("解析正文失败: %w", err)
	}

	return &ImportedArticle{
		Title:    strings.TrimSpace(article.Title),
		Byline:   strings.TrimSpace(article.Byline),
		Excerpt:  strings.TrimSpace(article.Excerpt),
		Content:  s.sanitizer.Sanitize(article.Content),
		SiteName: article.SiteName,
		ImageURL: article.Image,
		Link:     pageURL.String(),
	}, nil
}
