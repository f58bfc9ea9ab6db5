package locket_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/locket"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := locket.Errorf(locket.ENOTFOUND, "document %q not found", "test")

	assert.Equal(t, locket.ENOTFOUND, locket.ErrorCode(err))
	assert.Equal(t, "document \"test\" not found", locket.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, locket.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, locket.EINTERNAL, locket.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, locket.ErrorMessage(nil))
}
