package credential

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/qagen/qagen/internal/apperr"
	"github.com/qagen/qagen/pkg/pagination"
)

const msgInternal = "Internal Server Error"

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the script-facing lookup on api and the list on v1,
// both wrapped in mw.
func (h *Handler) RegisterRoutes(api, v1 *echo.Group, mw ...echo.MiddlewareFunc) {
	api.GET("/GetCernerCredentials", h.GetCredentials, mw...)
	v1.GET("/credentials", h.ListCredentials, mw...)
}

func (h *Handler) GetCredentials(c echo.Context) error {
	cred, err := h.svc.Find(c.Request().Context(), c.QueryParam("user"), c.QueryParam("environment"))
	if err != nil {
		return h.httpError(err)
	}
	return c.JSON(http.StatusOK, cred.Lookup())
}

func (h *Handler) ListCredentials(c echo.Context) error {
	p := pagination.FromContext(c)
	creds, total, err := h.svc.List(c.Request().Context(), c.QueryParam("environment"), p.Limit, p.Offset)
	if err != nil {
		return h.httpError(err)
	}
	items := make([]Summary, 0, len(creds))
	for _, cr := range creds {
		items = append(items, cr.Summary())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p).WithLinks(c.Request().URL))
}

func (h *Handler) httpError(err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Credentials not found")
	case apperr.Is(err, apperr.KindValidation), apperr.Is(err, apperr.KindEnvironment):
		return echo.NewHTTPError(apperr.Status(err), apperr.Body(err))
	}
	h.logger.Error().Err(err).Msg("failed to fetch credentials")
	return echo.NewHTTPError(http.StatusInternalServerError, msgInternal)
}
