package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/team-composer/internal/composer"
	"github.com/jonathan/team-composer/internal/membership"
	"github.com/jonathan/team-composer/internal/types"
)

// httpStatus maps domain errors to HTTP status codes. Unknown errors are
// treated as internal failures.
func httpStatus(err error) int {
	var (
		teamMissing     *membership.ErrTeamNotFound
		employeeMissing *membership.ErrEmployeeNotFound
		notMember       *membership.ErrNotMember
		conflict        *membership.ErrMembershipConflict
		validation      *types.ErrValidation
		fieldErrors     validator.ValidationErrors
		composition     *composer.ErrCompositionFailed
	)
	switch {
	case errors.As(err, &teamMissing), errors.As(err, &employeeMissing), errors.As(err, &notMember):
		return http.StatusNotFound
	case errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &validation), errors.As(err, &fieldErrors):
		return http.StatusBadRequest
	case errors.As(err, &composition):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// domainError writes err with its mapped status code.
func (s *Server) domainError(w http.ResponseWriter, err error) {
	s.errorResponse(w, httpStatus(err), err.Error())
}
