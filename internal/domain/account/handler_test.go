package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/session"
)

func newTestHandler() (*Handler, *Service, *echo.Echo) {
	svc, _, _ := newTestService()
	h := NewHandler(svc, session.CookieName, false)
	e := echo.New()
	return h, svc, e
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	t.Fatal("expected session cookie on response")
	return nil
}

func TestHandler_Register(t *testing.T) {
	h, _, e := newTestHandler()

	body := `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com",
		"password":"secret123","confirmPassword":"secret123","role":"nurse"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	cookie := sessionCookie(t, rec)
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if payload["email"] != "jane@example.com" {
		t.Errorf("unexpected email: %v", payload["email"])
	}
	if _, leaked := payload["password"]; leaked {
		t.Error("response must not carry the password")
	}
	if _, leaked := payload["passwordHash"]; leaked {
		t.Error("response must not carry the password hash")
	}
}

func TestHandler_Register_ValidationBody(t *testing.T) {
	h, _, e := newTestHandler()

	body := `{"firstName":"","lastName":"Doe","email":"bad","password":"secret123","confirmPassword":"nope"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}

	msg, ok := httpErr.Message.(echo.Map)
	if !ok {
		t.Fatalf("expected echo.Map message, got %T", httpErr.Message)
	}
	if _, ok := msg["errors"]; !ok {
		t.Error("expected per-field errors in response")
	}
}

func TestHandler_Register_DuplicateEmail(t *testing.T) {
	h, svc, e := newTestHandler()

	if _, _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("seed Register() error: %v", err)
	}

	body := `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com",
		"password":"secret123","confirmPassword":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestHandler_Login(t *testing.T) {
	h, svc, e := newTestHandler()

	if _, _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("seed Register() error: %v", err)
	}

	body := `{"email":"jane@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	sessionCookie(t, rec)
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	h, svc, e := newTestHandler()

	if _, _, err := svc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("seed Register() error: %v", err)
	}

	body := `{"email":"jane@example.com","password":"wrongpass1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestHandler_Logout(t *testing.T) {
	h, svc, e := newTestHandler()

	_, sess, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("seed Register() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	ctx := req.Context()
	ctx = withSessionContext(ctx, sess)
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	cookie := sessionCookie(t, rec)
	if cookie.MaxAge >= 0 && cookie.Value != "" {
		t.Error("expected cleared cookie")
	}

	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("account should survive logout: %v", err)
	}
}

func TestHandler_CurrentUser(t *testing.T) {
	h, svc, e := newTestHandler()

	u, sess, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("seed Register() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req = req.WithContext(withSessionContext(req.Context(), sess))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CurrentUser(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if payload["id"] != u.ID.String() {
		t.Errorf("expected user id %s, got %v", u.ID, payload["id"])
	}
}

func TestHandler_CurrentUser_NoSession(t *testing.T) {
	h, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CurrentUser(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

// withSessionContext simulates what the session middleware puts on the
// request context for an authenticated call.
func withSessionContext(ctx context.Context, sess *session.Session) context.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: sess.Token})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/user")

	store := session.NewMemoryStore()
	store.Create(ctx, *sess)

	var out context.Context = ctx
	handler := session.Middleware(store, session.CookieName)(func(c echo.Context) error {
		out = c.Request().Context()
		return nil
	})
	handler(c)
	return out
}
