package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meiyu-dev/salon-manager/backend/internal/config"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(&config.Config{}, nil, nil, nil)
	if err != nil {
		t.Fatalf("创建 Handler 失败: %v", err)
	}
	return h
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	h := newTestHandler(t)

	var body struct {
		Username string `json:"username"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"username":"zhangsan","typo":"x"}`))
	if err := h.readJSON(r, &body); err == nil {
		t.Fatalf("含未知字段的请求体应当被拒绝")
	}
}

func TestReadJSONEmptyBody(t *testing.T) {
	h := newTestHandler(t)

	var body struct{}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	err := h.readJSON(r, &body)
	if err == nil || err.Error() != "请求体不能为空" {
		t.Fatalf("空请求体应返回提示，实际 %v", err)
	}
}

func TestBadRequestTranslatesAllValidationErrors(t *testing.T) {
	h := newTestHandler(t)

	payload := struct {
		Username string `validate:"required"`
		Email    string `validate:"required,email"`
	}{}
	err := h.validate.Struct(payload)
	if err == nil {
		t.Fatalf("校验应当失败")
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	h.badRequest(w, r, err)

	if w.Code != http.StatusOK {
		t.Fatalf("业务失败应返回 200，实际 %d", w.Code)
	}
	var resp Response
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Success {
		t.Fatalf("校验失败时 success 应为 false")
	}
	// 两个字段的错误都要出现在同一条消息里
	if !strings.Contains(resp.Message, "；") {
		t.Fatalf("期望包含多条翻译后的校验错误，实际 %q", resp.Message)
	}
}
