package lessonfetch_test

import (
	"testing"

	"github.com/lessonfetch/lessonfetch"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := lessonfetch.Errorf(lessonfetch.ENOTFOUND, "site %q not found", "test")

	assert.Equal(t, lessonfetch.ENOTFOUND, lessonfetch.ErrorCode(err))
	assert.Equal(t, "site \"test\" not found", lessonfetch.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lessonfetch.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, lessonfetch.ErrorMessage(nil))
}
