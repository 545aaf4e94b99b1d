package webcheck_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/webcheck"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := webcheck.Errorf(webcheck.ENOTFOUND, "page %q not found", "test")

	assert.Equal(t, webcheck.ENOTFOUND, webcheck.ErrorCode(err))
	assert.Equal(t, "page \"test\" not found", webcheck.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webcheck.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, webcheck.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, webcheck.EINTERNAL, webcheck.ErrorCode(err))
	assert.Equal(t, "Internal error", webcheck.ErrorMessage(err))
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	t.Run("keeps cause reachable through errors.Is", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection refused")
		err := webcheck.WrapError(webcheck.EBATCH, cause, "listing pages")

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, webcheck.EBATCH, webcheck.ErrorCode(err))
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("code survives further wrapping", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("outer: %w", webcheck.Errorf(webcheck.ENOTIFY, "smtp down"))

		assert.Equal(t, webcheck.ENOTIFY, webcheck.ErrorCode(err))
		assert.Equal(t, "smtp down", webcheck.ErrorMessage(err))
	})
}
