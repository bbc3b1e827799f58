// Package session holds the authentication token and cached user profile.
// Token and user are always written and cleared together; anything else on
// disk reads as "no session".
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"smbsuite/internal/storage"
)

const (
	keyToken = "token"
	keyUser  = "user"
)

// ErrEmptyToken 拒绝写入空 token / Set refuses an empty token
var ErrEmptyToken = errors.New("session token is empty")

// User 登录用户的缓存资料
// User is the cached profile of the signed-in user
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UnmarshalJSON 同时接受 "id" 与服务端的 "_id"
// UnmarshalJSON accepts both "id" and the server's "_id"
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var aux struct {
		plain
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// Store 会话存储，显式注入而非全局单例
// Store is the session store; it is injected explicitly rather than used as a global
type Store struct {
	kv     storage.KV
	logger *slog.Logger
	mu     sync.RWMutex
}

func New(kv storage.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{kv: kv, logger: logger}
}

// Set 同时持久化 token 与用户
// Set persists token and user together
func (s *Store) Set(token string, user User) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.SetMany(map[string]string{keyToken: token, keyUser: string(raw)}); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.logger.Debug("session stored", "user", user.Email, "role", user.Role)
	return nil
}

// Get 返回缓存用户；无会话或数据损坏时 ok 为 false，不访问网络
// Get returns the cached user; ok is false when there is no session or the data is corrupt. No network access.
func (s *Store) Get() (User, bool) {
	_, user, ok := s.load()
	return user, ok
}

// Token 返回当前 token；无会话时为空串
// Token returns the current token, or "" when there is no session
func (s *Store) Token() string {
	token, _, ok := s.load()
	if !ok {
		return ""
	}
	return token
}

// Authenticated 是否存在有效会话 / Authenticated reports whether a valid session exists
func (s *Store) Authenticated() bool {
	_, _, ok := s.load()
	return ok
}

// Clear 同时删除 token 与用户
// Clear removes token and user together
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(keyToken, keyUser); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Debug("session cleared")
	return nil
}

func (s *Store) load() (string, User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, okToken, err := s.kv.Get(keyToken)
	if err != nil {
		s.logger.Warn("read session token failed", "err", err)
		return "", User{}, false
	}
	rawUser, okUser, err := s.kv.Get(keyUser)
	if err != nil {
		s.logger.Warn("read session user failed", "err", err)
		return "", User{}, false
	}
	if !okToken || !okUser || strings.TrimSpace(token) == "" || strings.TrimSpace(rawUser) == "null" {
		return "", User{}, false
	}

	var user User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		s.logger.Warn("cached session user is corrupt", "err", err)
		return "", User{}, false
	}
	return token, user, true
}
