package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"skillport/internal/domain/catalog"
	"skillport/internal/upstream"
)

// FilesHandler proxies the two binary endpoints of the portal API:
// the master export download and the CV upload.
type FilesHandler struct{ gw upstream.Gateway }

func NewFilesHandler(gw upstream.Gateway) *FilesHandler { return &FilesHandler{gw: gw} }

func (h *FilesHandler) MasterFile(c echo.Context) error {
	kind := catalog.Kind(c.QueryParam("type"))
	if !kind.Valid() {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "type", Message: "must be skills or certificates"}},
		})
	}
	rc, name, err := h.gw.MasterFile(c.Request().Context(), kind)
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	defer rc.Close()
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, rc)
}

func (h *FilesHandler) UploadCV(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.FormValue("email")))
	if email == "" {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "email", Message: "is required"}},
		})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "file", Message: "is required"}},
		})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable upload"})
	}
	defer f.Close()
	if err := h.gw.UploadCV(c.Request().Context(), email, fh.Filename, f); err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "uploaded"})
}
