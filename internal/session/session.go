package session

import (
	"encoding/json"
	"sync"

	"peekweb/internal/logger"
	"peekweb/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CookieName 会话 cookie 名
const CookieName = "peekweb_session"

// Namespace 用户和管理员的令牌互不影响
type Namespace string

const (
	User  Namespace = "user"
	Admin Namespace = "admin"
)

func (ns Namespace) tokenKey() string   { return string(ns) + "_token" }
func (ns Namespace) flagKey() string    { return string(ns) + "_logged_in" }
func (ns Namespace) profileKey() string { return string(ns) + "_profile" }

// LoginPath 各命名空间的登录页
func (ns Namespace) LoginPath() string {
	if ns == Admin {
		return "/admin/login"
	}
	return "/login"
}

// Store 绑定到当前请求会话的令牌存储，实现 apiclient.TokenStore
// 同一请求里的并发抓取共享一个 Store，所以读写令牌要加锁
type Store struct {
	mu sync.Mutex
	s  sessions.Session
	ns Namespace
}

func Tokens(c *gin.Context, ns Namespace) *Store {
	return &Store{s: sessions.Default(c), ns: ns}
}

func (st *Store) Namespace() Namespace {
	return st.ns
}

func (st *Store) Token() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.token()
}

func (st *Store) token() string {
	token, _ := st.s.Get(st.ns.tokenKey()).(string)
	return token
}

// ClearToken 401 时调用，同时清掉登录标记和资料缓存。已清除时不重复写会话
func (st *Store) ClearToken() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.token() == "" && st.s.Get(st.ns.flagKey()) == nil {
		return
	}
	st.s.Delete(st.ns.tokenKey())
	st.s.Delete(st.ns.flagKey())
	st.s.Delete(st.ns.profileKey())
	if err := st.s.Save(); err != nil {
		logger.Log.WithError(err).WithField("namespace", st.ns).Error("failed to save session after clearing token")
	}
}

// IsLoggedIn 登录标记和令牌都在才算登录
func (st *Store) IsLoggedIn() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	flag, _ := st.s.Get(st.ns.flagKey()).(bool)
	return flag && st.token() != ""
}

// Login 保存令牌和资料
func (st *Store) Login(token string, profile *models.User) error {
	st.s.Set(st.ns.tokenKey(), token)
	st.s.Set(st.ns.flagKey(), true)
	if profile != nil {
		if raw, err := json.Marshal(profile); err == nil {
			st.s.Set(st.ns.profileKey(), string(raw))
		}
	}
	return st.s.Save()
}

// Logout 只清当前命名空间
func (st *Store) Logout() error {
	st.s.Delete(st.ns.tokenKey())
	st.s.Delete(st.ns.flagKey())
	st.s.Delete(st.ns.profileKey())
	return st.s.Save()
}

// Profile 会话里缓存的资料，没有或损坏时返回 nil
func (st *Store) Profile() *models.User {
	raw, _ := st.s.Get(st.ns.profileKey()).(string)
	if raw == "" {
		return nil
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	return &u
}

func (st *Store) SetProfile(profile *models.User) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	st.s.Set(st.ns.profileKey(), string(raw))
	return st.s.Save()
}

// Flash 一次性提示，读取即删除
func Flash(c *gin.Context) string {
	s := sessions.Default(c)
	flashes := s.Flashes()
	if len(flashes) == 0 {
		return ""
	}
	_ = s.Save()
	msg, _ := flashes[0].(string)
	return msg
}

func AddFlash(c *gin.Context, msg string) {
	s := sessions.Default(c)
	s.AddFlash(msg)
	_ = s.Save()
}
