package ocr

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	stdout string
	err    error

	gotName string
	gotArgs []string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.gotName = name
	s.gotArgs = args
	return []byte(s.stdout), nil, s.err
}

// tsvRow builds a tesseract word row. Columns:
// level page block par line word left top width height conf text
func tsvRow(block, par, line int, conf string, text string) string {
	return strings.Join([]string{
		"5", "1",
		itoa(block), itoa(par), itoa(line), "1",
		"0", "0", "10", "10",
		conf, text,
	}, "\t")
}

func itoa(n int) string { return string(rune('0' + n)) }

const tsvHeader = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext"

func newTestExtractor(r Runner) *Extractor {
	e := NewExtractor(Config{}, slog.Default())
	e.runner = r
	return e
}

func TestExtractTextJoinsLinesInDetectorOrder(t *testing.T) {
	stub := &stubRunner{stdout: strings.Join([]string{
		tsvHeader,
		tsvRow(1, 1, 1, "91", "GOVERNMENT"),
		tsvRow(1, 1, 1, "88", "OF"),
		tsvRow(1, 1, 1, "90", "INDIA"),
		tsvRow(1, 1, 2, "85", "1234"),
		tsvRow(1, 1, 2, "87", "5678"),
		tsvRow(1, 1, 2, "83", "9012"),
	}, "\n")}

	res, err := newTestExtractor(stub).ExtractText(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "GOVERNMENT OF INDIA 1234 5678 9012", res.Text)
	require.Len(t, res.Lines, 2)
	assert.InDelta(t, 0.8966, float64(res.Lines[0].Confidence), 0.001)
	assert.Equal(t, "tesseract", stub.gotName)
	assert.Contains(t, stub.gotArgs, "tsv")
	assert.Contains(t, stub.gotArgs, "eng")
}

func TestExtractTextDropsLowConfidenceLines(t *testing.T) {
	stub := &stubRunner{stdout: strings.Join([]string{
		tsvHeader,
		tsvRow(1, 1, 1, "92", "INCOME"),
		tsvRow(1, 1, 1, "94", "TAX"),
		tsvRow(1, 1, 2, "20", "garbled"),
		tsvRow(1, 1, 2, "31", "noise"),
	}, "\n")}

	res, err := newTestExtractor(stub).ExtractText(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "INCOME TAX", res.Text)
	assert.Equal(t, 1, res.Dropped)
}

func TestExtractTextSkipsStructuralRows(t *testing.T) {
	structural := strings.Join([]string{
		"4", "1", "1", "1", "1", "0", "0", "0", "10", "10", "-1", "",
	}, "\t")
	stub := &stubRunner{stdout: strings.Join([]string{
		tsvHeader,
		structural,
		tsvRow(1, 1, 1, "90", "PERMANENT"),
	}, "\n")}

	res, err := newTestExtractor(stub).ExtractText(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "PERMANENT", res.Text)
}

func TestExtractTextEmptyOutput(t *testing.T) {
	stub := &stubRunner{stdout: tsvHeader + "\n"}
	res, err := newTestExtractor(stub).ExtractText(context.Background(), []byte("png"))
	require.NoError(t, err)
	assert.Empty(t, res.Text, "empty OCR is reported to the caller, not an error here")
}

func TestExtractTextCommandFailure(t *testing.T) {
	stub := &stubRunner{err: errors.New("exit status 1")}
	_, err := newTestExtractor(stub).ExtractText(context.Background(), []byte("png"))
	assert.Error(t, err)
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a\n\tb \r\n c  "))
	assert.Equal(t, "", CollapseWhitespace(" \n\t "))
}
