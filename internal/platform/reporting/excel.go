package reporting

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/labstack/echo/v4"
)

const (
	visitsSheet  = "Visits"
	summarySheet = "Summary"

	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// RevenueWorkbook builds a workbook with one row per visit and a per-type
// summary with a grand total.
func (e *Evaluator) RevenueWorkbook(ctx context.Context, r Range) (*excelize.File, error) {
	from, to := r.bounds()
	visits, err := e.src.VisitRecords(ctx, from, to)
	if err != nil {
		return nil, err
	}

	file := excelize.NewFile()
	file.NewSheet(visitsSheet)
	summary := file.NewSheet(summarySheet)
	file.DeleteSheet("Sheet1")

	headers := []string{"Date", "Visit ID", "Patient", "Type", "Doctor", "Amount"}
	for i, h := range headers {
		file.SetCellValue(visitsSheet, cell(i, 1), h)
	}
	for i, v := range visits {
		row := i + 2
		file.SetCellValue(visitsSheet, cell(0, row), v.Date.Format("2006-01-02"))
		file.SetCellValue(visitsSheet, cell(1, row), v.ID)
		file.SetCellValue(visitsSheet, cell(2, row), v.PatientName)
		file.SetCellValue(visitsSheet, cell(3, row), v.TypeLabel)
		file.SetCellValue(visitsSheet, cell(4, row), v.Doctor)
		file.SetCellValue(visitsSheet, cell(5, row), round2(v.Amount))
	}

	file.SetCellValue(summarySheet, "A1", "Visit Type")
	file.SetCellValue(summarySheet, "B1", "Visits")
	file.SetCellValue(summarySheet, "C1", "Revenue")
	groups := groupVisits(visits, func(v VisitRecord) string { return v.TypeLabel }, "visit_type", true)
	var total float64
	for i, g := range groups {
		row := i + 2
		file.SetCellValue(summarySheet, cell(0, row), g["visit_type"])
		file.SetCellValue(summarySheet, cell(1, row), g["total"])
		file.SetCellValue(summarySheet, cell(2, row), g["revenue"])
		total += g["revenue"].(float64)
	}
	last := len(groups) + 2
	file.SetCellValue(summarySheet, cell(0, last), "Total")
	file.SetCellValue(summarySheet, cell(1, last), len(visits))
	file.SetCellValue(summarySheet, cell(2, last), round2(total))

	file.SetActiveSheet(summary)
	return file, nil
}

// cell converts a zero-based column and one-based row to an A1 reference.
// Columns past Z are never needed here.
func cell(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}

// ExportRevenue streams the revenue workbook for ?from= and ?to=.
func (h *Handler) ExportRevenue(c echo.Context) error {
	r, err := ParseRange(c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	file, err := h.eval.RevenueWorkbook(c.Request().Context(), r)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("build workbook: %v", err))
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("write workbook: %v", err))
	}

	name := fmt.Sprintf("revenue-%s.xlsx", h.eval.now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}
