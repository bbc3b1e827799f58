package api

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

const networkErrorMessage = "network error"

// Error 归一化后的后端错误；Error() 只返回可展示的消息
// Error is a normalised backend failure; Error() yields only the displayable message
type Error struct {
	// Status 为 0 表示请求未到达服务端
	// Status is 0 when the request never reached the server
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorFromResponse 优先使用响应中的 detail 字段，否则为 "Error <status>"
// ErrorFromResponse prefers the response's detail field, falling back to "Error <status>"
func ErrorFromResponse(status int, body []byte) *Error {
	msg := "Error " + strconv.Itoa(status)
	if detail := parseDetail(body); detail != "" {
		msg = detail
	}
	return &Error{Status: status, Message: msg}
}

// StatusOf 返回错误链中 *Error 的状态码，没有则为 0
// StatusOf returns the status of the *Error in err's chain, or 0
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// parseDetail 支持字符串 detail 和 FastAPI 校验错误列表
// parseDetail understands string details and FastAPI validation error lists
func parseDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if m := strings.TrimSpace(item.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
