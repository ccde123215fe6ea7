package save

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/qagen/qagen/internal/platform/artifact"
)

// Download writes a as an attachment response.
func Download(c echo.Context, a *artifact.Artifact) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", a.FileName))
	return c.Blob(http.StatusOK, a.MIMEType, a.Data)
}

// Response returns a Saver that streams the artifact to the client of c.
func Response(c echo.Context) Saver {
	return SaverFunc(func(_ context.Context, a *artifact.Artifact) error {
		return Download(c, a)
	})
}
