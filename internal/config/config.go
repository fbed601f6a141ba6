package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// 会话存储后端
const (
	SessionStoreCookie = "cookie"
	SessionStoreDB     = "db"
)

type Config struct {
	Port     string
	SiteName string
	SiteURL  string

	// 远端 API
	APIBaseURL string
	APITimeout time.Duration
	APIQPS     float64
	APIBurst   int

	// 会话
	SessionSecret string
	SessionStore  string
	DatabaseURL   string

	// 日志
	LogLevel string
	LogFile  string

	// 列表
	NewsPageSize  int
	EventPageSize int
	AdminPageSize int
	CacheTTL      time.Duration

	// RSS 预览
	RSSHubInstance string
}

// Load 读取 .env（可选）和环境变量
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		// 显式指定的文件必须存在
		return nil, err
	}
	return FromEnv(), nil
}

// FromEnv 只从当前环境变量构建配置
func FromEnv() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		SiteName:       getEnv("SITE_NAME", "易见新闻"),
		SiteURL:        strings.TrimSuffix(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		APIBaseURL:     strings.TrimSuffix(getEnv("API_BASE_URL", "http://localhost:8080/api/v1"), "/"),
		APITimeout:     getDuration("API_TIMEOUT", 0),
		APIQPS:         getFloat("API_QPS", 0),
		APIBurst:       getInt("API_BURST", 10),
		SessionSecret:  getEnv("SESSION_SECRET", "secret_key_change_me"),
		SessionStore:   strings.ToLower(getEnv("SESSION_STORE", SessionStoreCookie)),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		NewsPageSize:   getInt("NEWS_PAGE_SIZE", getInt("PAGE_SIZE", 20)),
		EventPageSize:  getInt("EVENT_PAGE_SIZE", 10),
		AdminPageSize:  getInt("ADMIN_PAGE_SIZE", 20),
		CacheTTL:       getDuration("CACHE_TTL", 5*time.Minute),
		RSSHubInstance: getEnv("RSSHUB_INSTANCE_URL", "https://rsshub.app"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil && v > 0 {
		return v
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil && v >= 0 {
		return v
	}
	return defaultValue
}

// getDuration 接受 "30s" 形式，也接受纯数字（秒）
func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
