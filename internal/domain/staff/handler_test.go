package staff

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *Service, *mockRepo, *echo.Echo) {
	svc, repo := newTestService()
	return NewHandler(svc), svc, repo, echo.New()
}

func TestHandler_Create(t *testing.T) {
	h, _, repo, e := newTestHandler()
	u := repo.addUser("doctor")

	body := `{"userId":"` + u.ID.String() + `","department":"Cardiology","phone":"555-0111","hireDate":"2020-01-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/staff", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	user, ok := payload["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected embedded user object, got %v", payload["user"])
	}
	if user["id"] != u.ID.String() {
		t.Errorf("expected joined user id %s, got %v", u.ID, user["id"])
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Error("joined user must not carry the password hash")
	}
}

func TestHandler_Create_UnknownUser(t *testing.T) {
	h, _, _, e := newTestHandler()

	body := `{"userId":"` + uuid.NewString() + `","department":"Cardiology","phone":"555-0111","hireDate":"2020-01-15"}`
	req := httptest.NewRequest(http.MethodPost, "/api/staff", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestHandler_Create_Invalid(t *testing.T) {
	h, _, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/staff", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Create(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_Get(t *testing.T) {
	h, svc, repo, e := newTestHandler()
	u := repo.addUser("nurse")

	created, err := svc.Create(context.Background(), validInput(u.ID))
	if err != nil {
		t.Fatalf("seed Create() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/staff/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(created.ID.String())

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_Get_NotFound(t *testing.T) {
	h, _, _, e := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/staff/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.Get(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_List(t *testing.T) {
	h, svc, repo, e := newTestHandler()
	u := repo.addUser("doctor")
	if _, err := svc.Create(context.Background(), validInput(u.ID)); err != nil {
		t.Fatalf("seed Create() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/staff", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var items []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 staff member, got %d", len(items))
	}
	if _, ok := items[0]["user"]; !ok {
		t.Error("expected embedded user in list items")
	}
}

func TestHandler_Delete(t *testing.T) {
	h, svc, repo, e := newTestHandler()
	u := repo.addUser("doctor")

	created, err := svc.Create(context.Background(), validInput(u.ID))
	if err != nil {
		t.Fatalf("seed Create() error: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/staff/x", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(created.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}
