package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewUserError("failed to open database", cause)

	assert.Equal(t, "failed to open database: disk full", err.Error())
	require.ErrorIs(t, err, cause, "cause stays reachable through Unwrap")
}

func TestUserError_NoCause(t *testing.T) {
	err := &UserError{UserMessage: "nothing to import"}

	assert.Equal(t, "nothing to import", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
