package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapError(t *testing.T) {
	assert.NoError(t, WrapError(nil, "ignored"))

	cause := errors.New("disk full")
	wrapped := WrapError(cause, "open sqlite")
	require.Error(t, wrapped)
	assert.Equal(t, "open sqlite: disk full", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func TestCodeOfAndMessageOf(t *testing.T) {
	ae := NewAppError(CodeOCRFailure, "OCR returned no readable text. Please check image quality.", ErrOCREmpty)
	assert.Equal(t, CodeOCRFailure, CodeOf(ae))
	assert.Equal(t, "OCR returned no readable text. Please check image quality.", MessageOf(ae))
	assert.ErrorIs(t, ae, ErrOCREmpty)

	plain := errors.New("boom")
	assert.Equal(t, CodeInternal, CodeOf(plain))
	assert.Equal(t, "Unexpected error", MessageOf(plain))

	// The code survives wrapping for transport up the stack.
	assert.Equal(t, CodeOCRFailure, CodeOf(WrapError(ae, "stage failed")))
}
