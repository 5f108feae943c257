package account

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/session"
	"github.com/hms/hms/internal/platform/validate"
)

type Handler struct {
	svc        *Service
	cookieName string
	secure     bool
}

func NewHandler(svc *Service, cookieName string, secureCookies bool) *Handler {
	return &Handler{svc: svc, cookieName: cookieName, secure: secureCookies}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)
	api.GET("/user", h.CurrentUser)
}

func (h *Handler) Register(c echo.Context) error {
	var in RegisterInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	u, sess, err := h.svc.Register(c.Request().Context(), in)
	if verrs := validate.AsErrors(err); verrs != nil {
		return validate.HTTPError(verrs)
	}
	if errors.Is(err, ErrEmailTaken) {
		return echo.NewHTTPError(http.StatusConflict, "email already registered")
	}
	if err != nil {
		return err
	}

	h.setSessionCookie(c, sess.Token, sess.ExpiresAt)
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) Login(c echo.Context) error {
	var in LoginInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	u, sess, err := h.svc.Login(c.Request().Context(), in)
	if verrs := validate.AsErrors(err); verrs != nil {
		return validate.HTTPError(verrs)
	}
	if errors.Is(err, ErrInvalidCredentials) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	}
	if err != nil {
		return err
	}

	h.setSessionCookie(c, sess.Token, sess.ExpiresAt)
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) Logout(c echo.Context) error {
	if token, ok := session.TokenFromContext(c.Request().Context()); ok {
		if err := h.svc.Logout(c.Request().Context(), token); err != nil {
			return err
		}
	}
	h.clearSessionCookie(c)
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

func (h *Handler) CurrentUser(c echo.Context) error {
	id, ok := session.UserIDFromContext(c.Request().Context())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	u, err := h.svc.CurrentUser(c.Request().Context(), id)
	if db.IsNotFound(err) {
		// The account was deleted while its session was still live.
		return echo.NewHTTPError(http.StatusUnauthorized, "account no longer exists")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *Handler) setSessionCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
