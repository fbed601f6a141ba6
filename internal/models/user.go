package models

import "time"

// User 当前登录用户资料，缓存在会话里
type User struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Avatar    string     `json:"avatar"`
	Bio       string     `json:"bio"`
	Location  string     `json:"location"`
	Role      string     `json:"role"` // user, admin, system
	Status    string     `json:"status"`
	Interests StringList `json:"interests"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && (u.Role == "admin" || u.Role == "system")
}

// AuthPayload 登录/注册接口 data 部分
type AuthPayload struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
	Admin *User  `json:"admin"`
}

// Profile 管理员登录时服务端用 admin 字段
func (p *AuthPayload) Profile() *User {
	if p.User != nil {
		return p.User
	}
	return p.Admin
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileInput struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
}

type PasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// UserAdminInput 管理后台修改用户角色/状态
type UserAdminInput struct {
	Role   string `json:"role,omitempty"`
	Status string `json:"status,omitempty"`
}
