package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Srimathij/lentra/constants"
	"github.com/Srimathij/lentra/internal/common"
)

type stubVision struct {
	out string
	err error
}

func (s stubVision) GenerateVision(context.Context, string, []byte, string) (string, error) {
	return s.out, s.err
}

type stubText struct {
	out string
	err error
}

func (s stubText) GenerateText(context.Context, string, string) (string, error) {
	return s.out, s.err
}

func TestClassifyImageKnownLabels(t *testing.T) {
	for _, label := range constants.KnownLabels() {
		c := New(stubVision{out: label}, nil, nil)
		got, err := c.ClassifyImage(context.Background(), []byte{1}, "image/png")
		require.NoError(t, err)
		assert.Equal(t, constants.DocumentType(label), got)
	}
}

func TestClassifyImageTrimsWhitespace(t *testing.T) {
	c := New(stubVision{out: "\nAadhaar Card\n"}, nil, nil)
	got, err := c.ClassifyImage(context.Background(), []byte{1}, "image/png")
	require.NoError(t, err)
	assert.Equal(t, constants.AadhaarCard, got)
}

func TestClassifyImageUnrecognizedCollapsesToUnknown(t *testing.T) {
	for _, raw := range []string{"Something else", "Voter ID", "aadhaar card", ""} {
		c := New(stubVision{out: raw}, nil, nil)
		got, err := c.ClassifyImage(context.Background(), []byte{1}, "image/png")
		require.NoError(t, err)
		assert.Equal(t, constants.Unknown, got, "raw=%q", raw)
	}
}

func TestClassifyTextPropagatesModelFailure(t *testing.T) {
	cause := common.NewAppError(common.CodeModelCall, "model call failed", errors.New("timeout"))
	c := New(nil, stubText{err: cause}, nil)
	_, err := c.ClassifyText(context.Background(), "some ocr text")
	require.Error(t, err)
	assert.Equal(t, common.CodeModelCall, common.CodeOf(err))
}
