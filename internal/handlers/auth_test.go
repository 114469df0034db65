package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"vidtube/internal/models"
	"vidtube/internal/service"
)

func postJSON(r http.Handler, path, body string, header http.Header) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return m
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLogin_SuccessSetsCookiesAndEnvelope(t *testing.T) {
	auth := &mockAuth{
		loginUser: &models.User{ID: 7, Username: "alice", Email: "a@x.com"},
		loginPair: models.TokenPair{AccessToken: "A1", RefreshToken: "R1"},
	}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, "/auth/login", `{"username":"alice","password":"pw"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}

	m := decodeEnvelope(t, w)
	if m["success"] != true {
		t.Fatalf("expected success=true, got %v", m)
	}
	data := m["data"].(map[string]any)
	if data["access_token"] != "A1" || data["refresh_token"] != "R1" {
		t.Fatalf("tokens missing from body: %v", data)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("response must not mention password: %s", w.Body.String())
	}

	for _, name := range []string{accessCookie, refreshCookie} {
		c := findCookie(w, name)
		if c == nil {
			t.Fatalf("cookie %s not set", name)
		}
		if !c.HttpOnly || !c.Secure {
			t.Fatalf("cookie %s must be HttpOnly and Secure: %+v", name, c)
		}
	}
	if findCookie(w, refreshCookie).Value != "R1" {
		t.Fatalf("refresh cookie carries wrong value")
	}
}

func TestLogin_MissingPassword(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}})

	w := postJSON(r, "/auth/login", `{"username":"alice"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	m := decodeEnvelope(t, w)
	if m["success"] != false {
		t.Fatalf("expected error envelope, got %v", m)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	auth := &mockAuth{loginErr: service.ErrInvalidPassword}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := postJSON(r, "/auth/login", `{"username":"alice","password":"bad"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestRefresh_FromCookie(t *testing.T) {
	tokens := &mockTokens{pair: models.TokenPair{AccessToken: "A2", RefreshToken: "R2"}}
	r := newTestRouter(&service.Service{Tokens: tokens})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: refreshCookie, Value: "R1"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("refresh status=%d, body=%s", w.Code, w.Body.String())
	}
	if tokens.lastRotate != "R1" {
		t.Fatalf("expected rotation of cookie token, got %q", tokens.lastRotate)
	}
	if c := findCookie(w, refreshCookie); c == nil || c.Value != "R2" {
		t.Fatalf("new refresh cookie not set: %+v", c)
	}
}

func TestRefresh_FromBody(t *testing.T) {
	tokens := &mockTokens{pair: models.TokenPair{AccessToken: "A2", RefreshToken: "R2"}}
	r := newTestRouter(&service.Service{Tokens: tokens})

	w := postJSON(r, "/auth/refresh-token", `{"refresh_token":"R1"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status=%d, body=%s", w.Code, w.Body.String())
	}
	if tokens.lastRotate != "R1" {
		t.Fatalf("expected rotation of body token, got %q", tokens.lastRotate)
	}
}

func TestRefresh_ReplayedToken(t *testing.T) {
	tokens := &mockTokens{rotateErr: service.ErrTokenReused}
	r := newTestRouter(&service.Service{Tokens: tokens})

	w := postJSON(r, "/auth/refresh-token", `{"refresh_token":"stale"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for replay, got %d", w.Code)
	}
	m := decodeEnvelope(t, w)
	if m["message"] != "refresh token expired or already used" {
		t.Fatalf("expected the replay signal, got %v", m["message"])
	}
}

func TestRefresh_MissingToken(t *testing.T) {
	r := newTestRouter(&service.Service{Tokens: &mockTokens{}})

	w := postJSON(r, "/auth/refresh-token", `{}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLogout_ClearsCookies(t *testing.T) {
	auth := &mockAuth{}
	tokens := &mockTokens{parseID: 7}
	r := newTestRouter(&service.Service{Authorization: auth, Tokens: tokens})

	w := postJSON(r, "/api/v1/logout", ``, authHeader("tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("logout status=%d, body=%s", w.Code, w.Body.String())
	}
	if len(auth.logoutCalls) != 1 || auth.logoutCalls[0] != 7 {
		t.Fatalf("expected logout for user 7, got %v", auth.logoutCalls)
	}
	for _, name := range []string{accessCookie, refreshCookie} {
		c := findCookie(w, name)
		if c == nil || c.Value != "" || c.MaxAge >= 0 {
			t.Fatalf("cookie %s must be cleared: %+v", name, c)
		}
	}
}

func TestLogout_RequiresAuth(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Tokens: &mockTokens{}})

	w := postJSON(r, "/api/v1/logout", ``, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestChangePassword(t *testing.T) {
	tokens := &mockTokens{parseID: 7}
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Tokens: tokens})

	// missing fields → 400
	w := postJSON(r, "/api/v1/change-password", `{"current_password":"old"}`, authHeader("tok"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing new password, got %d", w.Code)
	}

	// success
	w = postJSON(r, "/api/v1/change-password",
		`{"current_password":"old","new_password":"new"}`, authHeader("tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("change-password status=%d, body=%s", w.Code, w.Body.String())
	}
}
