package models

// AdminStats 管理后台首页统计
type AdminStats struct {
	TotalUsers       int64 `json:"total_users"`
	ActiveUsers      int64 `json:"active_users"`
	TotalEvents      int64 `json:"total_events"`
	OngoingEvents    int64 `json:"ongoing_events"`
	TotalNews        int64 `json:"total_news"`
	TodayNews        int64 `json:"today_news"`
	TotalRSSSources  int64 `json:"total_rss_sources"`
	ActiveRSSSources int64 `json:"active_rss_sources"`
}
