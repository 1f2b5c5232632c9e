package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"skillport/internal/domain/catalog"
	"skillport/internal/domain/selection"
	"skillport/internal/usecase/portal"
	"skillport/internal/usecase/tableview"
)

// TableHandler exposes the employee skill/certificate table sessions.
type TableHandler struct{ uc *portal.Usecase }

func NewTableHandler(uc *portal.Usecase) *TableHandler { return &TableHandler{uc: uc} }

type openSessionReq struct {
	Kind  string `json:"kind"  validate:"required,kind"`
	Email string `json:"email" validate:"required,email"`
}

func (h *TableHandler) Open(c echo.Context) error {
	var req openSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	s, err := h.uc.Open(c.Request().Context(), catalog.Kind(req.Kind), req.Email)
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"sessionId": s.ID,
		"kind":      s.Kind,
		"rows":      len(s.Items),
		"view":      s.View(),
	})
}

func (h *TableHandler) View(c echo.Context) error {
	v, err := h.uc.View(c.Request().Context(), c.Param("id"))
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *TableHandler) Reload(c echo.Context) error {
	s, err := h.uc.Reload(c.Request().Context(), c.Param("id"))
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, s.View())
}

func (h *TableHandler) Options(c echo.Context) error {
	col := catalog.Column(c.Param("column"))
	opts, err := h.uc.Options(c.Request().Context(), c.Param("id"), col)
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]any{
		"column":  col,
		"label":   catalog.DisplayName(col),
		"options": opts,
	})
}

type searchReq struct {
	Term string `json:"term"`
}

func (h *TableHandler) Search(c echo.Context) error {
	var req searchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	return h.mutateAndView(c, func(s *tableview.Session) error {
		s.SetSearch(req.Term)
		return nil
	})
}

type toggleFilterReq struct {
	Column string `json:"column" validate:"required"`
	Value  string `json:"value"  validate:"required"`
}

func (h *TableHandler) ToggleFilter(c echo.Context) error {
	var req toggleFilterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return h.mutateAndView(c, func(s *tableview.Session) error {
		return s.ToggleFilter(catalog.Column(req.Column), req.Value)
	})
}

type selectAllFilterReq struct {
	Column string `json:"column" validate:"required"`
}

func (h *TableHandler) SelectAllFilter(c echo.Context) error {
	var req selectAllFilterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return h.mutateAndView(c, func(s *tableview.Session) error {
		return s.SelectAllFilter(catalog.Column(req.Column))
	})
}

type unselectedOnlyReq struct {
	On bool `json:"on"`
}

func (h *TableHandler) UnselectedOnly(c echo.Context) error {
	var req unselectedOnlyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	return h.mutateAndView(c, func(s *tableview.Session) error {
		s.SetUnselectedOnly(req.On)
		return nil
	})
}

type pageReq struct {
	Page     int `json:"page"     validate:"omitempty,gte=1"`
	PageSize int `json:"pageSize" validate:"omitempty,gte=1"`
	Scroll   int `json:"scroll"   validate:"omitempty,gte=0"`
}

func (h *TableHandler) Page(c echo.Context) error {
	var req pageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return h.mutateAndView(c, func(s *tableview.Session) error {
		if req.PageSize != 0 {
			if err := s.SetPageSize(req.PageSize); err != nil {
				return err
			}
		}
		if req.Page != 0 {
			s.SetPage(req.Page)
		}
		s.SetScroll(req.Scroll)
		return nil
	})
}

type setLevelReq struct {
	HashID string `json:"hashId" validate:"required"`
	Level  string `json:"level"  validate:"required,level"`
	Scroll int    `json:"scroll" validate:"omitempty,gte=0"`
}

func (h *TableHandler) SetLevel(c echo.Context) error {
	var req setLevelReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return h.mutateAndView(c, func(s *tableview.Session) error {
		// scroll offset captured before the mutation, echoed back by the
		// view so the client restores it after the next paint
		s.SetScroll(req.Scroll)
		return s.SetLevel(req.HashID, selection.Level(req.Level))
	})
}

type toggleSelectReq struct {
	HashID string `json:"hashId" validate:"required"`
	Scroll int    `json:"scroll" validate:"omitempty,gte=0"`
}

func (h *TableHandler) ToggleSelect(c echo.Context) error {
	var req toggleSelectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return h.mutateAndView(c, func(s *tableview.Session) error {
		s.SetScroll(req.Scroll)
		return s.ToggleCert(req.HashID)
	})
}

func (h *TableHandler) ClearRow(c echo.Context) error {
	hashID := c.Param("hashId")
	if hashID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing hashId path param"})
	}
	return h.mutateAndView(c, func(s *tableview.Session) error {
		return s.ClearRow(hashID)
	})
}

type saveReq struct {
	ManagerEmail string `json:"managerEmail" validate:"omitempty,email"`
}

func (h *TableHandler) Save(c echo.Context) error {
	var req saveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	s, err := h.uc.Save(c.Request().Context(), c.Param("id"), req.ManagerEmail)
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, map[string]any{"saved": true, "view": s.View()})
}

func (h *TableHandler) mutateAndView(c echo.Context, fn func(*tableview.Session) error) error {
	s, err := h.uc.Mutate(c.Request().Context(), c.Param("id"), fn)
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, s.View())
}
