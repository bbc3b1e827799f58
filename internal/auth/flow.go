// Package auth merges sign-in and sign-up into a single step: try login,
// and only when that fails try to register with the same credentials.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"smbsuite/internal/api"
	"smbsuite/internal/session"
)

// DefaultName 注册时未填写名称的默认值
// DefaultName is used when registering without a display name
const DefaultName = "Admin"

// ErrNoToken 响应中没有 token / ErrNoToken means the response carried no token
var ErrNoToken = errors.New("response carried no token")

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Gateway 认证所需的远端调用
// Gateway is the remote surface the flow needs
type Gateway interface {
	Login(ctx context.Context, email, password string) (api.AuthResponse, error)
	Register(ctx context.Context, name, email, password string) (api.AuthResponse, error)
}

// SessionStore 认证写入的会话存储
// SessionStore is the session the flow writes to
type SessionStore interface {
	Set(token string, user session.User) error
	Get() (session.User, bool)
	Authenticated() bool
	Clear() error
}

type Credentials struct {
	Name     string
	Email    string
	Password string
}

// Result 认证成功的结果；Registered 表示走了注册分支
// Result is a successful authentication; Registered reports the register branch was taken
type Result struct {
	Token      string
	User       session.User
	Registered bool
}

// LoginError 登录被拒绝或未返回 token
// LoginError means login was rejected or yielded no token
type LoginError struct {
	Err error
}

func (e *LoginError) Error() string {
	return "login failed: " + e.Err.Error()
}

func (e *LoginError) Unwrap() error { return e.Err }

// RegisterError 注册被拒绝或未返回 token
// RegisterError means registration was rejected or yielded no token
type RegisterError struct {
	Err error
}

func (e *RegisterError) Error() string {
	return "register failed: " + e.Err.Error()
}

func (e *RegisterError) Unwrap() error { return e.Err }

// FlowError 登录与注册均失败。Error() 只给出笼统消息，
// 两个原因仍可通过 errors.As 分别取得。
//
// FlowError means both login and registration failed. Error() stays generic;
// each cause is still reachable through errors.As.
type FlowError struct {
	Login    *LoginError
	Register *RegisterError
}

func (e *FlowError) Error() string {
	return "authentication failed"
}

func (e *FlowError) Unwrap() []error {
	return []error{e.Login, e.Register}
}

type Flow struct {
	gateway Gateway
	store   SessionStore
	logger  *slog.Logger
}

func NewFlow(gateway Gateway, store SessionStore, logger *slog.Logger) *Flow {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Flow{gateway: gateway, store: store, logger: logger}
}

// TryLogin 登录并在成功时写入会话
// TryLogin logs in and writes the session on success
func (f *Flow) TryLogin(ctx context.Context, email, password string) (Result, error) {
	resp, err := f.gateway.Login(ctx, email, password)
	if err != nil {
		return Result{}, &LoginError{Err: err}
	}
	if strings.TrimSpace(resp.Token) == "" {
		return Result{}, &LoginError{Err: ErrNoToken}
	}
	if err := f.store.Set(resp.Token, resp.User); err != nil {
		return Result{}, fmt.Errorf("store session: %w", err)
	}
	return Result{Token: resp.Token, User: resp.User}, nil
}

// TryRegister 注册并在成功时写入会话
// TryRegister registers and writes the session on success
func (f *Flow) TryRegister(ctx context.Context, name, email, password string) (Result, error) {
	resp, err := f.gateway.Register(ctx, name, email, password)
	if err != nil {
		return Result{}, &RegisterError{Err: err}
	}
	if strings.TrimSpace(resp.Token) == "" {
		return Result{}, &RegisterError{Err: ErrNoToken}
	}
	if err := f.store.Set(resp.Token, resp.User); err != nil {
		return Result{}, fmt.Errorf("store session: %w", err)
	}
	return Result{Token: resp.Token, User: resp.User, Registered: true}, nil
}

// Continue 先登录，仅在登录失败时以同一凭证注册。
// 会话写入失败直接返回，不会触发注册。
//
// Continue logs in and, only when login fails, registers with the same credentials.
// A session write failure is returned as-is and never triggers registration.
func (f *Flow) Continue(ctx context.Context, creds Credentials) (Result, error) {
	res, err := f.TryLogin(ctx, creds.Email, creds.Password)
	if err == nil {
		f.logger.Info("login succeeded", "user", res.User.ID)
		return res, nil
	}
	var loginErr *LoginError
	if !errors.As(err, &loginErr) {
		return Result{}, err
	}

	name := strings.TrimSpace(creds.Name)
	if name == "" {
		name = DefaultName
	}
	f.logger.Debug("login failed, trying register", "err", loginErr.Err)
	res, err = f.TryRegister(ctx, name, creds.Email, creds.Password)
	if err == nil {
		f.logger.Info("register succeeded", "user", res.User.ID)
		return res, nil
	}
	var registerErr *RegisterError
	if !errors.As(err, &registerErr) {
		return Result{}, err
	}
	f.logger.Warn("authentication failed", "login_err", loginErr.Err, "register_err", registerErr.Err)
	return Result{}, &FlowError{Login: loginErr, Register: registerErr}
}

func (f *Flow) State() State {
	if f.store.Authenticated() {
		return Authenticated
	}
	return Unauthenticated
}

// CurrentUser 读取缓存的用户，不访问网络
// CurrentUser reads the cached user without touching the network
func (f *Flow) CurrentUser() (session.User, bool) {
	return f.store.Get()
}

// Logout 清除会话，不调用远端
// Logout clears the session without calling the remote service
func (f *Flow) Logout() error {
	if err := f.store.Clear(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	f.logger.Info("logged out")
	return nil
}
