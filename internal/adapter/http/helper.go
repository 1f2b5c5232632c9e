package http

import (
	"errors"
	"net/http"

	"skillport/internal/domain/review"
	"skillport/internal/domain/selection"
	"skillport/internal/infrastructure/db"
	"skillport/internal/infrastructure/sessionstore"
	"skillport/internal/upstream"
	"skillport/internal/usecase/portal"
	"skillport/internal/usecase/reviewflow"
	"skillport/internal/usecase/tableview"
)

// errStatus maps domain errors to HTTP status codes. Unknown errors are
// internal; upstream failures surface as bad gateway so the client knows
// the session state is last-known-good and a retry is safe.
func errStatus(err error) int {
	switch {
	case errors.Is(err, sessionstore.ErrNotFound),
		errors.Is(err, tableview.ErrUnknownRow),
		errors.Is(err, reviewflow.ErrUnknownEmployee),
		errors.Is(err, review.ErrNotFound),
		errors.Is(err, db.ErrPrefsNotFound):
		return http.StatusNotFound
	case errors.Is(err, upstream.ErrUnavailable),
		errors.Is(err, upstream.ErrRejected):
		return http.StatusBadGateway
	case errors.Is(err, portal.ErrManagerRequired),
		errors.Is(err, portal.ErrOwnManagerEmail),
		errors.Is(err, portal.ErrBadKind),
		errors.Is(err, review.ErrReasonRequired),
		errors.Is(err, reviewflow.ErrNoSelection),
		errors.Is(err, reviewflow.ErrNoEmployee),
		errors.Is(err, tableview.ErrBadPageSize),
		errors.Is(err, tableview.ErrColumnNotOfKind),
		errors.Is(err, selection.ErrInvalidLevel),
		errors.Is(err, selection.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func jsonError(err error) (int, ErrorResponse) {
	return errStatus(err), ErrorResponse{Error: err.Error()}
}
