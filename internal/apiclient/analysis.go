package apiclient

import (
	"context"
	"fmt"
	"net/url"

	"peekweb/internal/models"
)

// GetAnalysis 读取分析结果；没有结果时返回 ErrNotFound 或 status=not_found
func (c *Client) GetAnalysis(ctx context.Context, kind string, targetID uint) (*models.AIAnalysisResult, error) {
	q := url.Values{}
	q.Set("type", kind)
	q.Set("target_id", fmt.Sprint(targetID))

	var res models.AIAnalysisResult
	if err := c.get(ctx, "/ai/analysis", q, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Analyze 触发新闻分析
func (c *Client) Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AIAnalysisResult, error) {
	var res models.AIAnalysisResult
	if err := c.post(ctx, "/ai/analyze", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// AnalyzeEvent 触发事件分析，支持趋势和影响评估
func (c *Client) AnalyzeEvent(ctx context.Context, req models.AnalyzeRequest) (*models.AIAnalysisResult, error) {
	var res models.AIAnalysisResult
	if err := c.post(ctx, "/ai/analyze-event", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
