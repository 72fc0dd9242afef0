// Package reporting evaluates the clinic's predefined measures over visit
// and patient records and exports revenue to a spreadsheet.
package reporting

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// PatientRecord is the slice of a patient the measures need.
type PatientRecord struct {
	Status           string
	RegistrationDate time.Time
}

// VisitRecord is the slice of a visit the measures need.
type VisitRecord struct {
	ID          string
	Date        time.Time
	Type        string
	TypeLabel   string
	PatientName string
	Doctor      string
	Amount      float64
}

// Source supplies records. VisitRecords returns visits dated in [from, to).
type Source interface {
	PatientRecords(ctx context.Context) ([]PatientRecord, error)
	VisitRecords(ctx context.Context, from, to time.Time) ([]VisitRecord, error)
}

// MeasureDefinition describes one report.
type MeasureDefinition struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Parameters  []string `json:"parameters"`
}

// MeasureReport holds the results of evaluating a measure.
type MeasureReport struct {
	MeasureID   string                   `json:"measure_id"`
	MeasureName string                   `json:"measure_name"`
	GeneratedAt time.Time                `json:"generated_at"`
	Results     []map[string]interface{} `json:"results"`
	Parameters  map[string]string        `json:"parameters,omitempty"`
}

var rangeParams = []string{"from", "to"}

// PredefinedMeasures is the list of available reporting measures.
var PredefinedMeasures = []MeasureDefinition{
	{
		ID:          "patient-count",
		Name:        "Patient Count",
		Description: "Registered patients, split by status label",
		Parameters:  []string{},
	},
	{
		ID:          "visit-volume-by-type",
		Name:        "Visit Volume by Type",
		Description: "Number of visits per visit type",
		Parameters:  rangeParams,
	},
	{
		ID:          "revenue-by-type",
		Name:        "Revenue by Type",
		Description: "Billed amount per visit type",
		Parameters:  rangeParams,
	},
	{
		ID:          "revenue-by-month",
		Name:        "Revenue by Month",
		Description: "Visits and billed amount per calendar month",
		Parameters:  rangeParams,
	},
}

// FindMeasure looks up a measure by ID.
func FindMeasure(id string) *MeasureDefinition {
	for i := range PredefinedMeasures {
		if PredefinedMeasures[i].ID == id {
			return &PredefinedMeasures[i]
		}
	}
	return nil
}

// Range is a half-open date interval. Zero bounds are open.
type Range struct {
	From time.Time
	To   time.Time
}

var (
	minTime = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)
	maxTime = time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
)

func (r Range) bounds() (time.Time, time.Time) {
	from, to := r.From, r.To
	if from.IsZero() {
		from = minTime
	}
	if to.IsZero() {
		to = maxTime
	}
	return from, to
}

// ParseRange reads YYYY-MM-DD from and to values. to is inclusive, so the
// returned upper bound is the following midnight.
func ParseRange(from, to string) (Range, error) {
	var r Range
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return r, fmt.Errorf("invalid from date %q", from)
		}
		r.From = t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return r, fmt.Errorf("invalid to date %q", to)
		}
		r.To = t.AddDate(0, 0, 1)
	}
	if !r.From.IsZero() && !r.To.IsZero() && !r.From.Before(r.To) {
		return r, fmt.Errorf("from must not be after to")
	}
	return r, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// Evaluator computes measures from a Source.
type Evaluator struct {
	src Source
	now func() time.Time
}

func NewEvaluator(src Source) *Evaluator {
	return &Evaluator{src: src, now: time.Now}
}

// Evaluate runs measure m over r.
func (e *Evaluator) Evaluate(ctx context.Context, m *MeasureDefinition, r Range) ([]map[string]interface{}, error) {
	if m.ID == "patient-count" {
		return e.patientCount(ctx)
	}

	from, to := r.bounds()
	visits, err := e.src.VisitRecords(ctx, from, to)
	if err != nil {
		return nil, err
	}

	switch m.ID {
	case "visit-volume-by-type":
		return groupVisits(visits, func(v VisitRecord) string { return v.Type }, "visit_type", false), nil
	case "revenue-by-type":
		return groupVisits(visits, func(v VisitRecord) string { return v.Type }, "visit_type", true), nil
	case "revenue-by-month":
		rows := groupVisits(visits, func(v VisitRecord) string { return v.Date.Format("2006-01") }, "month", true)
		sort.SliceStable(rows, func(i, j int) bool { return rows[i]["month"].(string) < rows[j]["month"].(string) })
		return rows, nil
	}
	return nil, fmt.Errorf("measure %q has no evaluator", m.ID)
}

func (e *Evaluator) patientCount(ctx context.Context) ([]map[string]interface{}, error) {
	patients, err := e.src.PatientRecords(ctx)
	if err != nil {
		return nil, err
	}
	byStatus := map[string]int{}
	for _, p := range patients {
		byStatus[p.Status]++
	}
	return []map[string]interface{}{{"total": len(patients), "by_status": byStatus}}, nil
}

// groupVisits counts visits per key, largest group first, optionally with
// the summed revenue.
func groupVisits(visits []VisitRecord, key func(VisitRecord) string, keyName string, withRevenue bool) []map[string]interface{} {
	type group struct {
		key     string
		count   int
		revenue float64
	}
	var order []*group
	index := map[string]*group{}
	for _, v := range visits {
		k := key(v)
		g, ok := index[k]
		if !ok {
			g = &group{key: k}
			index[k] = g
			order = append(order, g)
		}
		g.count++
		g.revenue += v.Amount
	}
	sort.SliceStable(order, func(i, j int) bool { return order[i].count > order[j].count })

	results := make([]map[string]interface{}, 0, len(order))
	for _, g := range order {
		row := map[string]interface{}{keyName: g.key, "total": g.count}
		if withRevenue {
			row["revenue"] = round2(g.revenue)
		}
		results = append(results, row)
	}
	return results
}

// Handler provides HTTP handlers for the reporting API.
type Handler struct {
	eval *Evaluator
}

func NewHandler(src Source) *Handler {
	return &Handler{eval: NewEvaluator(src)}
}

// RegisterRoutes registers the reporting API routes.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("/reports")
	g.GET("/measures", h.ListMeasures)
	g.GET("/measures/:id/evaluate", h.EvaluateMeasure)
	g.GET("/revenue.xlsx", h.ExportRevenue)
}

// ListMeasures returns all available measure definitions.
func (h *Handler) ListMeasures(c echo.Context) error {
	return c.JSON(http.StatusOK, PredefinedMeasures)
}

// EvaluateMeasure runs a measure, honouring ?from= and ?to= where the
// measure takes a date range.
func (h *Handler) EvaluateMeasure(c echo.Context) error {
	measure := FindMeasure(c.Param("id"))
	if measure == nil {
		return echo.NewHTTPError(http.StatusNotFound, "measure not found")
	}

	params := map[string]string{}
	for _, p := range measure.Parameters {
		if v := c.QueryParam(p); v != "" {
			params[p] = v
		}
	}
	r, err := ParseRange(params["from"], params["to"])
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	results, err := h.eval.Evaluate(c.Request().Context(), measure, r)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("evaluate measure: %v", err))
	}

	return c.JSON(http.StatusOK, MeasureReport{
		MeasureID:   measure.ID,
		MeasureName: measure.Name,
		GeneratedAt: h.eval.now(),
		Results:     results,
		Parameters:  params,
	})
}
