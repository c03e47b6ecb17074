package docdex_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns empty code", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", docdex.ErrorCode(nil))
	})

	t.Run("application error returns its code", func(t *testing.T) {
		t.Parallel()
		err := docdex.Errorf(docdex.ENOTFOUND, "page not found")
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})

	t.Run("wrapped application error is unwrapped", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("context: %w", docdex.Errorf(docdex.EINVALID, "bad input"))
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("non-application error returns internal", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, docdex.EINTERNAL, docdex.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns empty message", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", docdex.ErrorMessage(nil))
	})

	t.Run("application error returns its message", func(t *testing.T) {
		t.Parallel()
		err := docdex.Errorf(docdex.EUNAVAILABLE, "sitemap fetch failed")
		assert.Equal(t, "sitemap fetch failed", docdex.ErrorMessage(err))
	})

	t.Run("non-application error returns generic message", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", docdex.ErrorMessage(errors.New("boom")))
	})
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	err := docdex.Errorf(docdex.ECONFLICT, "already exists: %s", "x")
	assert.Equal(t, "docdex error: code=conflict message=already exists: x", err.Error())
}
