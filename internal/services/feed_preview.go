package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"peekweb/internal/models"

	"github.com/mmcdole/gofeed"
)

// previewItemLimit 预览里最多展示的条目数
const previewItemLimit = 10

// FeedPreviewer 后台添加 RSS 源之前先抓一次，确认地址可用
type FeedPreviewer struct {
	parser         *gofeed.Parser
	rsshubInstance string
}

func NewFeedPreviewer(rsshubInstance string, client *http.Client) *FeedPreviewer {
	if client == nil {
		client = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: 2,
			},
		}
	}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "peekweb-feed-preview/1.0"

	return &FeedPreviewer{
		parser:         parser,
		rsshubInstance: strings.TrimSuffix(rsshubInstance, "/"),
	}
}

// NormalizeURL rsshub:// 前缀替换成配置的 RSSHub 实例
func (f *FeedPreviewer) NormalizeURL(rssURL string) string {
	rssURL = strings.TrimSpace(rssURL)
	if path, ok := strings.CutPrefix(rssURL, "rsshub://"); ok {
		instance := f.rsshubInstance
		if instance == "" {
			instance = "https://rsshub.app"
		}
		return instance + "/" + path
	}
	return rssURL
}

// Preview 解析订阅源标题和最近条目
func (f *FeedPreviewer) Preview(ctx context.Context, rssURL string) (*models.FeedPreview, error) {
	if strings.TrimSpace(rssURL) == "" {
		return nil, fmt.Errorf("RSS 地址不能为空")
	}

	feed, err := f.parser.ParseURLWithContext(f.NormalizeURL(rssURL), ctx)
	if err != nil {
		return nil, fmt.Errorf("解析 RSS 失败: %w", err)
	}

	preview := &models.FeedPreview{
		Title:       feed.Title,
		Description: feed.Description,
		Link:        feed.Link,
		Language:    feed.Language,
	}
	for i, item := range feed.Items {
		if i >= previewItemLimit {
			break
		}
		p := models.FeedPreviewItem{Title: item.Title, Link: item.Link}
		if len(item.Authors) > 0 && item.Authors[0] != nil {
			p.Author = item.Authors[0].Name
		}
		if item.PublishedParsed != nil {
			p.PublishedAt = item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			p.PublishedAt = item.UpdatedParsed
		}
		preview.Items = append(preview.Items, p)
	}
	return preview, nil
}
