package visit

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/eyecare/clinic/internal/domain/patient"
	"github.com/eyecare/clinic/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/visits", h.RecordVisit)
	api.GET("/visits/catalog", h.GetCatalog)
	api.POST("/visits/total", h.CalculateTotal)
	api.GET("/visits/:id", h.GetVisit)

	api.GET("/patients/:id/visits", h.ListPatientVisits)
	api.GET("/patients/:id/summary", h.GetPatientSummary)
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "visit not found")
	case errors.Is(err, patient.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "patient not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) RecordVisit(c echo.Context) error {
	var v Visit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.RecordVisit(c.Request().Context(), &v); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *Handler) GetVisit(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	v, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *Handler) GetCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.Catalog())
}

type totalResponse struct {
	Type    Type    `json:"type"`
	Total   float64 `json:"total"`
	Display string  `json:"display"`
}

// CalculateTotal prices an unsaved form. Unparsable money text totals 0 and
// an unknown type totals 0; impossible medicine quantities or prices are 400s.
func (h *Handler) CalculateTotal(c echo.Context) error {
	var v Visit
	if err := c.Bind(&v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	v.Type = Type(strings.ToLower(strings.TrimSpace(string(v.Type))))
	if v.Type == TypeMedicine {
		for i, l := range v.Medicines {
			if err := checkLine(i, l); err != nil {
				return httpError(err)
			}
		}
	}
	total := CalculateTotal(&v)
	return c.JSON(http.StatusOK, totalResponse{
		Type:    v.Type,
		Total:   total,
		Display: fmt.Sprintf("%.2f", total),
	})
}

func (h *Handler) ListPatientVisits(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	pg := pagination.FromContext(c)
	items, err := h.svc.ListByPatient(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	page, total := pagination.Page(items, pg)
	return c.JSON(http.StatusOK, pagination.NewResponse(page, total, pg.Limit, pg.Offset))
}

func (h *Handler) GetPatientSummary(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	sum, err := h.svc.Summary(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sum)
}
