package patient

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qagen/qagen/internal/apperr"
	"github.com/qagen/qagen/internal/platform/save"
)

const previewLimit = 100

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/patients/xlsx", h.GenerateWorkbook)
	api.POST("/patients/preview", h.PreviewRecords)
}

func (h *Handler) GenerateWorkbook(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Generate(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(apperr.Status(err), apperr.Body(err))
	}
	return save.Response(c).Save(c.Request().Context(), a)
}

// PreviewRecords returns the first rows of the workbook as string cells.
func (h *Handler) PreviewRecords(c echo.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	records, err := h.svc.Records(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(apperr.Status(err), apperr.Body(err))
	}

	schema := SchemaFor(req.PatientOnly)
	n := min(len(records), previewLimit)
	rows := make([][]string, 0, n)
	for _, r := range records[:n] {
		rows = append(rows, schema.Strings(r))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"file_name": h.svc.FileName(req),
		"columns":   schema.Columns,
		"rows":      rows,
		"total":     len(records),
	})
}
