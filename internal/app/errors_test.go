package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInvalidRequestError(t *testing.T) {
	stdErr := errors.New("simple error")
	assert.False(t, IsInvalidRequestError(stdErr))

	irErr := InvalidRequestError("invalid request")
	assert.True(t, IsInvalidRequestError(irErr))

	wrapperErr := fmt.Errorf("wrapping message: %w", irErr)
	assert.True(t, IsInvalidRequestError(wrapperErr))
}

func TestErrorKindsAreDistinct(t *testing.T) {
	tests := []struct {
		name            string
		err             error
		invalid         bool
		notFound        bool
		scheduled       bool
		tooManyRequests bool
	}{
		{
			name: "plain",
			err:  errors.New("x"),
		},
		{
			name:     "not found",
			err:      fmt.Errorf("loading: %w", NotFoundError("session not found")),
			notFound: true,
		},
		{
			name:      "scheduled",
			err:       fmt.Errorf("insights: %w", ScheduledForLaterError("aggregating")),
			scheduled: true,
		},
		{
			name:            "too many requests",
			err:             TooManyRequestsError("slow down"),
			tooManyRequests: true,
		},
		{
			name:    "invalid",
			err:     InvalidRequestError("bad"),
			invalid: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.invalid, IsInvalidRequestError(tt.err))
			assert.Equal(t, tt.notFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.scheduled, IsScheduledForLaterError(tt.err))
			assert.Equal(t, tt.tooManyRequests, IsTooManyRequestsError(tt.err))
		})
	}
}
