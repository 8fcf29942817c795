package model_test

import (
	"errors"
	"net/http"
	"staysync/internal/domains/booking/model"
	"staysync/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from model.Status
		to   model.Status
		want bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCheckedIn, false},
		{model.StatusConfirmed, model.StatusCheckedIn, true},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusCheckedOut, false},
		{model.StatusCheckedIn, model.StatusCheckedOut, true},
		{model.StatusCheckedIn, model.StatusCancelled, false},
		{model.StatusCheckedOut, model.StatusConfirmed, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
		{model.Status("archived"), model.StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, model.StatusCheckedOut.Terminal())
	assert.True(t, model.StatusCancelled.Terminal())
	assert.False(t, model.StatusConfirmed.Terminal())
	assert.False(t, model.Status("archived").Terminal())
}

func TestInvalidTransitionError(t *testing.T) {
	var err error = &model.InvalidTransitionError{From: model.StatusCancelled, To: model.StatusConfirmed, Reason: "terminal"}

	assert.True(t, errors.Is(err, model.ErrInvalidTransition))
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	assert.Contains(t, err.Error(), "cancelled")
}
