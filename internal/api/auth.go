package api

import (
	"context"
	"net/http"

	"smbsuite/internal/session"
)

// AuthResponse 登录/注册响应；失败时 Token 为空
// AuthResponse is the login/register payload; Token is empty on failure
type AuthResponse struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 调用 POST /auth/login，不附带 token
// Login calls POST /auth/login without the token credential
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.doPublic(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &out)
	return out, err
}

// Register 调用 POST /auth/register，不附带 token
// Register calls POST /auth/register without the token credential
func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.doPublic(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password}, &out)
	return out, err
}
