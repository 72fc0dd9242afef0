package billing

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/eyecare/clinic/internal/domain/patient"
	"github.com/eyecare/clinic/internal/domain/visit"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/bills/preview", h.PreviewBill)
	api.GET("/visits/:id/bill", h.GetVisitBill)
}

func httpError(err error) error {
	switch {
	case errors.Is(err, visit.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, visit.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	case errors.Is(err, patient.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// respond writes JSON unless ?format=html asks for the printable page.
func respond(c echo.Context, b *Bill) error {
	if c.QueryParam("format") != "html" {
		return c.JSON(http.StatusOK, b)
	}
	page, err := RenderHTML(b)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.HTMLBlob(http.StatusOK, page)
}

func (h *Handler) PreviewBill(c echo.Context) error {
	var v visit.Visit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.Preview(c.Request().Context(), &v)
	if err != nil {
		return httpError(err)
	}
	return respond(c, b)
}

func (h *Handler) GetVisitBill(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	b, err := h.svc.ForVisit(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return respond(c, b)
}
