package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"skillport/internal/domain/catalog"
	"skillport/internal/domain/review"
	"skillport/internal/usecase/reviewflow"
)

// ReviewHandler exposes the reviewer workflow sessions.
type ReviewHandler struct{ uc *reviewflow.Usecase }

func NewReviewHandler(uc *reviewflow.Usecase) *ReviewHandler { return &ReviewHandler{uc: uc} }

type openReviewReq struct {
	Kind  string `json:"kind"  validate:"required,kind"`
	Email string `json:"email" validate:"required,email"`
}

func (h *ReviewHandler) Open(c echo.Context) error {
	var req openReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	s, err := h.uc.Open(c.Request().Context(), req.Email, catalog.Kind(req.Kind))
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusCreated, reviewState(s))
}

func (h *ReviewHandler) Get(c echo.Context) error {
	s, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, reviewState(s))
}

func (h *ReviewHandler) Refresh(c echo.Context) error {
	s, err := h.uc.Refresh(c.Request().Context(), c.Param("id"))
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, reviewState(s))
}

type setEmployeeReq struct {
	EmployeeID string `json:"employeeId" validate:"required"`
}

func (h *ReviewHandler) SetEmployee(c echo.Context) error {
	var req setEmployeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	s, err := h.uc.SetEmployee(c.Request().Context(), c.Param("id"), req.EmployeeID)
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, reviewState(s))
}

type selectItemReq struct {
	ItemID string `json:"itemId" validate:"required"`
}

func (h *ReviewHandler) SelectItem(c echo.Context) error {
	var req selectItemReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	s, err := h.uc.SelectItem(c.Request().Context(), c.Param("id"), req.ItemID)
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, reviewState(s))
}

func (h *ReviewHandler) SelectAll(c echo.Context) error {
	s, err := h.uc.SelectAll(c.Request().Context(), c.Param("id"))
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, reviewState(s))
}

type approveReq struct {
	Confirmed bool `json:"confirmed"`
}

// Approve commits the selected items. When the selection covers every
// pending expert item for the employee, the first call answers with
// needsConfirm and commits nothing; the client repeats with
// confirmed=true.
func (h *ReviewHandler) Approve(c echo.Context) error {
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	ctx := c.Request().Context()
	sessionID := c.Param("id")

	if req.Confirmed {
		s, err := h.uc.ConfirmApprove(ctx, sessionID)
		if err != nil {
			code, body := jsonError(err)
			return c.JSON(code, body)
		}
		return c.JSON(http.StatusOK, reviewState(s))
	}

	s, needsConfirm, err := h.uc.Approve(ctx, sessionID)
	if err != nil {
		code, body := jsonError(err)
		return c.JSON(code, body)
	}
	if needsConfirm {
		state := reviewState(s)
		state["needsConfirm"] = true
		return c.JSON(http.StatusOK, state)
	}
	return c.JSON(http.StatusOK, reviewState(s))
}

type rejectReq struct {
	Reason string `json:"reason"`
}

func (h *ReviewHandler) Reject(c echo.Context) error {
	var req rejectReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	s, err := h.uc.Reject(c.Request().Context(), c.Param("id"), req.Reason)
	if err != nil {
		code, body := jsonError(err)
		if errors.Is(err, review.ErrReasonRequired) {
			body.Details = []FieldError{{Field: "reason", Message: "is required"}}
		}
		return c.JSON(code, body)
	}
	return c.JSON(http.StatusOK, reviewState(s))
}

func reviewState(s *reviewflow.Session) map[string]any {
	state := map[string]any{
		"sessionId": s.ID,
		"sidebar":   s.Sidebar(),
		"selected":  s.Selected,
		"dialog":    s.Dialog,
		"dirty":     s.Dirty,
	}
	if g, ok := s.Active(); ok {
		state["employee"] = g
	}
	return state
}
