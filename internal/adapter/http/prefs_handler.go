package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"skillport/internal/infrastructure/db"
)

// PrefsHandler serves the per-employee UI preferences that outlive a
// browser reload: theme and the landing-page-seen flag.
type PrefsHandler struct{ store *db.Store }

func NewPrefsHandler(store *db.Store) *PrefsHandler { return &PrefsHandler{store: store} }

func (h *PrefsHandler) Get(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))
	p, err := h.store.GetPrefs(c.Request().Context(), email)
	if err != nil {
		if err == db.ErrPrefsNotFound {
			// First visit: hand back the defaults instead of a 404 so the
			// frontend never needs a special case.
			return c.JSON(http.StatusOK, db.Pref{Email: email, Theme: "light"})
		}
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, p)
}

type putPrefsReq struct {
	Theme       string `json:"theme"       validate:"required,oneof=light dark"`
	LandingSeen bool   `json:"landingSeen"`
}

func (h *PrefsHandler) Put(c echo.Context) error {
	email := strings.ToLower(strings.TrimSpace(c.Param("email")))
	if email == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email path param is required"})
	}
	var req putPrefsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	p := &db.Pref{Email: email, Theme: req.Theme, LandingSeen: req.LandingSeen}
	if err := h.store.SavePrefs(c.Request().Context(), p); err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, p)
}
