package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/team-composer/internal/composer"
	"github.com/jonathan/team-composer/internal/membership"
	"github.com/jonathan/team-composer/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "team not found",
			err:  &membership.ErrTeamNotFound{TeamID: uuid.New()},
			want: http.StatusNotFound,
		},
		{
			name: "employee not found",
			err:  &membership.ErrEmployeeNotFound{EmployeeID: uuid.New()},
			want: http.StatusNotFound,
		},
		{
			name: "not a member",
			err:  &membership.ErrNotMember{TeamID: uuid.New(), EmployeeID: uuid.New()},
			want: http.StatusNotFound,
		},
		{
			name: "membership conflict",
			err:  &membership.ErrMembershipConflict{EmployeeID: uuid.New(), CurrentTeam: uuid.New()},
			want: http.StatusConflict,
		},
		{
			name: "validation",
			err:  &types.ErrValidation{Field: "level", Message: "unknown"},
			want: http.StatusBadRequest,
		},
		{
			name: "composition failed",
			err:  &composer.ErrCompositionFailed{Reason: "empty pool"},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "persistence failure",
			err:  &membership.ErrPersistence{Err: errors.New("connection reset")},
			want: http.StatusInternalServerError,
		},
		{
			name: "wrapped domain error",
			err:  fmt.Errorf("failed to add members: %w", &membership.ErrMembershipConflict{EmployeeID: uuid.New(), CurrentTeam: uuid.New()}),
			want: http.StatusConflict,
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httpStatus(tt.err))
		})
	}
}
