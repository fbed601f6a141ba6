package models

import "time"

// AnalysisStatus 面板状态；empty 只存在于客户端
type AnalysisStatus string

const (
	AnalysisEmpty              AnalysisStatus = "empty"
	AnalysisProcessing         AnalysisStatus = "processing"
	AnalysisCompleted          AnalysisStatus = "completed"
	AnalysisFailed             AnalysisStatus = "failed"
	AnalysisDemoMode           AnalysisStatus = "demo_mode"
	AnalysisServiceUnavailable AnalysisStatus = "service_unavailable"
	AnalysisNotFound           AnalysisStatus = "not_found"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

func (s Sentiment) Label() string {
	switch s {
	case SentimentPositive:
		return "正面"
	case SentimentNegative:
		return "负面"
	case SentimentNeutral:
		return "中性"
	}
	return "未知"
}

type ImpactLevel string

const (
	ImpactHigh   ImpactLevel = "high"
	ImpactMedium ImpactLevel = "medium"
	ImpactLow    ImpactLevel = "low"
)

func (l ImpactLevel) Label() string {
	switch l {
	case ImpactHigh:
		return "高"
	case ImpactMedium:
		return "中"
	case ImpactLow:
		return "低"
	}
	return "未知"
}

type TrendPrediction struct {
	Timeframe   string     `json:"timeframe"`
	Trend       string     `json:"trend"`
	Probability float64    `json:"probability"`
	Factors     StringList `json:"factors"`
}

type AnalysisStep struct {
	Step        int     `json:"step"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Result      string  `json:"result"`
	Confidence  float64 `json:"confidence"`
}

// AIAnalysisResult /ai/analysis 的返回
type AIAnalysisResult struct {
	ID               uint                      `json:"id"`
	Type             string                    `json:"type"`
	TargetID         uint                      `json:"target_id"`
	Status           AnalysisStatus            `json:"status"`
	Summary          string                    `json:"summary"`
	Keywords         StringList                `json:"keywords"`
	Sentiment        Sentiment                 `json:"sentiment"`
	SentimentScore   float64                   `json:"sentiment_score"`
	EventAnalysis    string                    `json:"event_analysis"`
	TrendPredictions JSONList[TrendPrediction] `json:"trend_predictions"`
	ImpactLevel      ImpactLevel               `json:"impact_level"`
	ImpactScore      float64                   `json:"impact_score"`
	ImpactScope      string                    `json:"impact_scope"`
	AnalysisSteps    JSONList[AnalysisStep]    `json:"analysis_steps"`
	Confidence       float64                   `json:"confidence"`
	ModelName        string                    `json:"model_name"`
	ProcessingTime   float64                   `json:"processing_time"`
	Message          string                    `json:"message"`
	CreatedAt        time.Time                 `json:"created_at"`
}

// AnalyzeOptions 触发分析时勾选的项目
type AnalyzeOptions struct {
	EnableSummary   bool `json:"enable_summary"`
	EnableKeywords  bool `json:"enable_keywords"`
	EnableSentiment bool `json:"enable_sentiment"`
	EnableTrends    bool `json:"enable_trends,omitempty"`
	EnableImpact    bool `json:"enable_impact,omitempty"`
	ShowAnalysis    bool `json:"show_analysis_steps,omitempty"`
}

type AnalyzeRequest struct {
	Type     string         `json:"type"`
	TargetID uint           `json:"target_id"`
	Options  AnalyzeOptions `json:"options"`
}
