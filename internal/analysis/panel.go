package analysis

import (
	"context"
	"errors"
	"time"

	"peekweb/internal/apiclient"
	"peekweb/internal/logger"
	"peekweb/internal/models"
)

// PollDelay 触发分析后等待多久再读取一次结果
const PollDelay = 3 * time.Second

// Kind 分析对象
type Kind string

const (
	KindNews  Kind = "news"
	KindEvent Kind = "event"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindNews:
		return KindNews, true
	case KindEvent:
		return KindEvent, true
	}
	return "", false
}

// Backend 远端 AI 接口，apiclient.Client 实现了它
type Backend interface {
	GetAnalysis(ctx context.Context, kind string, targetID uint) (*models.AIAnalysisResult, error)
	Analyze(ctx context.Context, req models.AnalyzeRequest) (*models.AIAnalysisResult, error)
	AnalyzeEvent(ctx context.Context, req models.AnalyzeRequest) (*models.AIAnalysisResult, error)
}

// Options 用户勾选的分析项，趋势和影响只对事件有效
type Options struct {
	Summary   bool
	Keywords  bool
	Sentiment bool
	Trends    bool
	Impact    bool
}

func DefaultOptions() Options {
	return Options{Summary: true, Keywords: true, Sentiment: true, Trends: true, Impact: true}
}

// Panel 一个新闻或事件的 AI 分析面板
type Panel struct {
	Kind     Kind
	TargetID uint
	State    models.AnalysisStatus
	Result   *models.AIAnalysisResult
	Err      error

	backend Backend
	delay   time.Duration
	wait    func(ctx context.Context, d time.Duration) error
}

type PanelOption func(*Panel)

// WithDelay 覆盖轮询间隔
func WithDelay(d time.Duration) PanelOption {
	return func(p *Panel) {
		p.delay = d
	}
}

func NewPanel(b Backend, kind Kind, targetID uint, opts ...PanelOption) *Panel {
	p := &Panel{
		Kind:     kind,
		TargetID: targetID,
		State:    models.AnalysisEmpty,
		backend:  b,
		delay:    PollDelay,
		wait:     sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Load 读取已有结果。没有结果时回到 empty
func (p *Panel) Load(ctx context.Context) error {
	res, err := p.backend.GetAnalysis(ctx, string(p.Kind), p.TargetID)
	if errors.Is(err, apiclient.ErrNotFound) {
		p.State, p.Result, p.Err = models.AnalysisEmpty, nil, nil
		return nil
	}
	if err != nil {
		p.Err = err
		return err
	}
	p.apply(res)
	return nil
}

func (p *Panel) apply(res *models.AIAnalysisResult) {
	p.Err = nil
	switch res.Status {
	case "", models.AnalysisNotFound, models.AnalysisEmpty:
		p.State, p.Result = models.AnalysisEmpty, nil
	case models.AnalysisProcessing, models.AnalysisCompleted, models.AnalysisFailed,
		models.AnalysisDemoMode, models.AnalysisServiceUnavailable:
		p.State, p.Result = res.Status, res
	default:
		logger.Log.WithField("status", res.Status).Warn("unknown analysis status")
		p.State, p.Result = models.AnalysisFailed, res
	}
}

// Trigger 发起分析，等待固定间隔后只再读取一次
func (p *Panel) Trigger(ctx context.Context, o Options) error {
	if !p.CanTrigger() {
		return nil
	}

	req := models.AnalyzeRequest{
		Type:     string(p.Kind),
		TargetID: p.TargetID,
		Options: models.AnalyzeOptions{
			EnableSummary:   o.Summary,
			EnableKeywords:  o.Keywords,
			EnableSentiment: o.Sentiment,
		},
	}

	var err error
	if p.Kind == KindEvent {
		req.Options.EnableTrends = o.Trends
		req.Options.EnableImpact = o.Impact
		req.Options.ShowAnalysis = true
		_, err = p.backend.AnalyzeEvent(ctx, req)
	} else {
		_, err = p.backend.Analyze(ctx, req)
	}
	if err != nil {
		p.Err = err
		if !apiclient.IsUnauthorized(err) {
			p.State = models.AnalysisFailed
		}
		return err
	}

	p.State, p.Err = models.AnalysisProcessing, nil
	if err := p.wait(ctx, p.delay); err != nil {
		return err
	}
	return p.Load(ctx)
}

// CanTrigger 只有这些状态下显示“开始分析”/“重试”
func (p *Panel) CanTrigger() bool {
	switch p.State {
	case models.AnalysisEmpty, models.AnalysisFailed, models.AnalysisServiceUnavailable:
		return true
	}
	return false
}

// Message 非 completed 状态下的提示文案
func (p *Panel) Message() string {
	if p.Result != nil && p.Result.Message != "" && p.State != models.AnalysisCompleted {
		return p.Result.Message
	}
	switch p.State {
	case models.AnalysisEmpty:
		return "暂无 AI 分析，点击开始分析"
	case models.AnalysisProcessing:
		return "AI 正在分析中，请稍后刷新"
	case models.AnalysisFailed:
		if p.Err != nil {
			return apiclient.MessageOf(p.Err)
		}
		return "分析失败，请重试"
	case models.AnalysisServiceUnavailable:
		return "AI 服务暂时不可用，请稍后重试"
	case models.AnalysisDemoMode:
		return "当前为演示模式，结果仅供参考"
	}
	return ""
}

// SupportsForecast 趋势预测和影响评估只对事件展示
func (p *Panel) SupportsForecast() bool {
	return p.Kind == KindEvent
}
