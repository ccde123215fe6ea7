package scenario

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qagen/qagen/internal/apperr"
	"github.com/qagen/qagen/internal/platform/save"
	"github.com/qagen/qagen/pkg/names"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/scenarios/zip", h.GenerateZip)
	api.POST("/scenarios/preview", h.PreviewScripts)
	api.POST("/names/check", h.CheckNames)
}

func (h *Handler) GenerateZip(c echo.Context) error {
	var data ScenarioData
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a, err := h.svc.Generate(c.Request().Context(), data)
	if err != nil {
		return echo.NewHTTPError(apperr.Status(err), apperr.Body(err))
	}
	return save.Response(c).Save(c.Request().Context(), a)
}

type scriptView struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (h *Handler) PreviewScripts(c echo.Context) error {
	var data ScenarioData
	if err := c.Bind(&data); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	b, err := h.svc.Preview(c.Request().Context(), data)
	if err != nil {
		return echo.NewHTTPError(apperr.Status(err), apperr.Body(err))
	}
	out := make([]scriptView, 0, len(b.Scripts))
	for _, s := range b.Scripts {
		out = append(out, scriptView{Path: ScriptRef(s.Folder, s.FileName()), Content: s.Content})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scenario": b.Scenario,
		"scripts":  out,
	})
}

type checkNamesRequest struct {
	Values []string `json:"values"`
}

func (h *Handler) CheckNames(c echo.Context) error {
	var req checkNamesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out := make([]names.Result, 0, len(req.Values))
	for _, v := range req.Values {
		out = append(out, names.Check(v))
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"results": out})
}
