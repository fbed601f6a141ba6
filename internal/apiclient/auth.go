package apiclient

import (
	"context"
	"errors"

	"peekweb/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login 用户登录。用户名或密码错误时返回 ErrInvalidCredentials
func (c *Client) Login(ctx context.Context, username, password string) (*models.AuthPayload, error) {
	return c.login(ctx, "/auth/login", username, password)
}

// AdminLogin 管理员登录，令牌存在独立的命名空间
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*models.AuthPayload, error) {
	return c.login(ctx, "/admin/auth/login", username, password)
}

func (c *Client) login(ctx context.Context, path, username, password string) (*models.AuthPayload, error) {
	var p models.AuthPayload
	if err := c.post(ctx, path, loginRequest{Username: username, Password: password}, &p, WithoutAuthRedirect()); err != nil {
		return nil, err
	}
	if p.Token == "" {
		return nil, &APIError{Kind: KindDecode, Msg: "登录响应缺少令牌", Err: errors.New("empty token")}
	}
	return &p, nil
}

// Register 注册；服务端可能直接返回令牌
func (c *Client) Register(ctx context.Context, in models.RegisterInput) (*models.AuthPayload, error) {
	var p models.AuthPayload
	if err := c.post(ctx, "/auth/register", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Me 当前用户资料
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.get(ctx, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, in models.ProfileInput) (*models.User, error) {
	var u models.User
	if err := c.put(ctx, "/auth/profile", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ChangePassword(ctx context.Context, in models.PasswordInput) error {
	return c.post(ctx, "/auth/change-password", in, nil)
}
