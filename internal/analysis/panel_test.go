package analysis

import (
	"context"
	"testing"
	"time"

	"peekweb/internal/apiclient"
	"peekweb/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend 按顺序返回 GetAnalysis 的结果
type fakeBackend struct {
	reads      []*models.AIAnalysisResult
	readErrs   []error
	readCalls  int
	triggerErr error
	newsReqs   []models.AnalyzeRequest
	eventReqs  []models.AnalyzeRequest
}

func (f *fakeBackend) GetAnalysis(_ context.Context, kind string, id uint) (*models.AIAnalysisResult, error) {
	i := f.readCalls
	f.readCalls++
	if i < len(f.readErrs) && f.readErrs[i] != nil {
		return nil, f.readErrs[i]
	}
	if i < len(f.reads) {
		return f.reads[i], nil
	}
	return nil, &apiclient.APIError{Kind: apiclient.KindHTTP, Status: 404, Msg: "not found", Err: apiclient.ErrNotFound}
}

func (f *fakeBackend) Analyze(_ context.Context, req models.AnalyzeRequest) (*models.AIAnalysisResult, error) {
	f.newsReqs = append(f.newsReqs, req)
	return &models.AIAnalysisResult{Status: models.AnalysisProcessing}, f.triggerErr
}

func (f *fakeBackend) AnalyzeEvent(_ context.Context, req models.AnalyzeRequest) (*models.AIAnalysisResult, error) {
	f.eventReqs = append(f.eventReqs, req)
	return nil, f.triggerErr
}

func noWait(p *Panel) {
	p.wait = func(context.Context, time.Duration) error { return nil }
}

func TestLoadNotFoundIsEmpty(t *testing.T) {
	b := &fakeBackend{}
	p := NewPanel(b, KindNews, 1, noWait)

	require.NoError(t, p.Load(context.Background()))
	assert.Equal(t, models.AnalysisEmpty, p.State)
	assert.Nil(t, p.Result)
	assert.True(t, p.CanTrigger())

	b = &fakeBackend{reads: []*models.AIAnalysisResult{{Status: models.AnalysisNotFound}}}
	p = NewPanel(b, KindNews, 1, noWait)
	require.NoError(t, p.Load(context.Background()))
	assert.Equal(t, models.AnalysisEmpty, p.State)
}

func TestTriggerPollsOnceAndCompletes(t *testing.T) {
	b := &fakeBackend{reads: []*models.AIAnalysisResult{
		{Status: models.AnalysisCompleted, Summary: "摘要", Keywords: models.StringList{"芯片"}},
	}}
	var waited []time.Duration
	p := NewPanel(b, KindNews, 42)
	p.wait = func(_ context.Context, d time.Duration) error {
		waited = append(waited, d)
		return nil
	}

	require.NoError(t, p.Trigger(context.Background(), DefaultOptions()))

	assert.Equal(t, []time.Duration{PollDelay}, waited)
	assert.Equal(t, 1, b.readCalls)
	assert.Equal(t, models.AnalysisCompleted, p.State)
	assert.Equal(t, "摘要", p.Result.Summary)
	assert.False(t, p.CanTrigger())

	require.Len(t, b.newsReqs, 1)
	req := b.newsReqs[0]
	assert.Equal(t, "news", req.Type)
	assert.Equal(t, uint(42), req.TargetID)
	assert.False(t, req.Options.EnableTrends, "news analysis never asks for trends")
	assert.False(t, req.Options.EnableImpact)
	assert.Empty(t, b.eventReqs)
}

func TestTriggerFailedExposesRetry(t *testing.T) {
	b := &fakeBackend{reads: []*models.AIAnalysisResult{{Status: models.AnalysisFailed, Message: "模型超时"}}}
	p := NewPanel(b, KindEvent, 7, noWait)

	require.NoError(t, p.Trigger(context.Background(), DefaultOptions()))
	assert.Equal(t, models.AnalysisFailed, p.State)
	assert.True(t, p.CanTrigger())
	assert.Equal(t, "模型超时", p.Message())

	require.Len(t, b.eventReqs, 1)
	assert.True(t, b.eventReqs[0].Options.EnableTrends)
	assert.True(t, b.eventReqs[0].Options.EnableImpact)
}

func TestTriggerStillProcessingDoesNotPollAgain(t *testing.T) {
	b := &fakeBackend{reads: []*models.AIAnalysisResult{{Status: models.AnalysisProcessing}}}
	p := NewPanel(b, KindNews, 3, noWait)

	require.NoError(t, p.Trigger(context.Background(), DefaultOptions()))
	assert.Equal(t, models.AnalysisProcessing, p.State)
	assert.Equal(t, 1, b.readCalls)
	assert.False(t, p.CanTrigger())
}

func TestTriggerSpecialStates(t *testing.T) {
	for _, st := range []models.AnalysisStatus{models.AnalysisDemoMode, models.AnalysisServiceUnavailable} {
		b := &fakeBackend{reads: []*models.AIAnalysisResult{{Status: st}}}
		p := NewPanel(b, KindNews, 3, noWait)
		require.NoError(t, p.Trigger(context.Background(), DefaultOptions()))
		assert.Equal(t, st, p.State)
		assert.NotEmpty(t, p.Message())
	}
}

func TestTriggerUnauthorizedKeepsState(t *testing.T) {
	b := &fakeBackend{triggerErr: &apiclient.APIError{Kind: apiclient.KindAuth, Status: 401, Msg: "登录已过期", Err: apiclient.ErrUnauthorized}}
	p := NewPanel(b, KindNews, 3, noWait)

	err := p.Trigger(context.Background(), DefaultOptions())
	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
	assert.Equal(t, models.AnalysisEmpty, p.State)
	assert.Zero(t, b.readCalls)
}

func TestTriggerErrorMarksFailed(t *testing.T) {
	b := &fakeBackend{triggerErr: &apiclient.APIError{Kind: apiclient.KindHTTP, Status: 503, Msg: "AI 服务繁忙"}}
	p := NewPanel(b, KindNews, 3, noWait)

	err := p.Trigger(context.Background(), DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, models.AnalysisFailed, p.State)
	assert.Equal(t, "AI 服务繁忙", p.Message())
	assert.Zero(t, b.readCalls)
}

func TestWaitHonorsCancellation(t *testing.T) {
	b := &fakeBackend{}
	p := NewPanel(b, KindNews, 3, WithDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Trigger(ctx, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, models.AnalysisProcessing, p.State)
	assert.Zero(t, b.readCalls)
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("event")
	assert.True(t, ok)
	assert.Equal(t, KindEvent, k)
	_, ok = ParseKind("video")
	assert.False(t, ok)
}
