package staff

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/domain/account"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/session"
	"github.com/hms/hms/internal/platform/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/staff", h.List)
	api.GET("/staff/:id", h.Get)

	// Creating, changing, and removing staff records is restricted to admins.
	write := api.Group("", session.RequireRole(account.RoleAdmin))
	write.POST("/staff", h.Create)
	write.PUT("/staff/:id", h.Update)
	write.DELETE("/staff/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	d, err := h.svc.Create(c.Request().Context(), in)
	if verrs := validate.AsErrors(err); verrs != nil {
		return validate.HTTPError(verrs)
	}
	if errors.Is(err, ErrUnknownUser) {
		return echo.NewHTTPError(http.StatusConflict, "user does not exist")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	d, err := h.svc.Get(c.Request().Context(), id)
	if db.IsNotFound(err) {
		return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) List(c echo.Context) error {
	items, err := h.svc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	d, err := h.svc.Update(c.Request().Context(), id, in)
	if verrs := validate.AsErrors(err); verrs != nil {
		return validate.HTTPError(verrs)
	}
	if db.IsNotFound(err) {
		return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
	}
	if errors.Is(err, ErrUnknownUser) {
		return echo.NewHTTPError(http.StatusConflict, "user does not exist")
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err = h.svc.Delete(c.Request().Context(), id)
	if db.IsNotFound(err) {
		return echo.NewHTTPError(http.StatusNotFound, "staff member not found")
	}
	if db.IsForeignKeyViolation(err) {
		return echo.NewHTTPError(http.StatusConflict, "staff member has appointments")
	}
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
