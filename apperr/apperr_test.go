package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid", fmt.Errorf("age: %w", ErrInvalidInput), http.StatusBadRequest},
		{"not found", fmt.Errorf("food 7: %w", ErrNotFound), http.StatusNotFound},
		{"conflict", ErrConflict, http.StatusConflict},
		{"unauthorized", fmt.Errorf("wrap: %w", ErrUnauthorized), http.StatusUnauthorized},
		{"other", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, Known(fmt.Errorf("x: %w", ErrNotFound)))
	assert.False(t, Known(errors.New("boom")))
	assert.False(t, Known(nil))
}
