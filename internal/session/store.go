package session

import (
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"strings"

	"peekweb/internal/config"
	"peekweb/internal/db"
	"peekweb/internal/logger"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"golang.org/x/crypto/hkdf"
)

// MaxAge 会话有效期，令牌本身不做过期跟踪
const MaxAge = 30 * 24 * 3600

// DeriveKeys 从 SESSION_SECRET 派生签名密钥和 AES-256 加密密钥
func DeriveKeys(secret string) (authKey, encKey []byte, err error) {
	r := hkdf.New(sha256.New, []byte(secret), []byte(CookieName), []byte("session keys v1"))
	authKey = make([]byte, 64)
	encKey = make([]byte, 32)
	if _, err = io.ReadFull(r, authKey); err != nil {
		return nil, nil, fmt.Errorf("derive auth key: %w", err)
	}
	if _, err = io.ReadFull(r, encKey); err != nil {
		return nil, nil, fmt.Errorf("derive encryption key: %w", err)
	}
	return authKey, encKey, nil
}

// NewStore 按配置创建 cookie 或数据库会话存储
func NewStore(cfg *config.Config) (sessions.Store, error) {
	authKey, encKey, err := DeriveKeys(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}

	var store sessions.Store
	switch cfg.SessionStore {
	case config.SessionStoreDB:
		gdb, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open session database: %w", err)
		}
		store = gormsessions.NewStore(gdb, true, authKey, encKey)
		logger.Log.Info("session store: database")
	default:
		store = cookie.NewStore(authKey, encKey)
		logger.Log.Info("session store: cookie")
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   MaxAge,
		HttpOnly: true,
		Secure:   strings.HasPrefix(cfg.SiteURL, "https://"),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}
