package imaging

import (
	"image"
	"image/color"
	"log/slog"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestNormalizeAngleFolding(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"upright", 0, 0},
		{"small negative", -10, 10},
		{"exactly -45", -45, 45},
		{"below -45 folds toward upright", -80, -10},
		{"near perpendicular", -88, -2},
		{"small positive", 5, -5},
		{"positive convention small", 10, -10},
		{"positive convention above 45 folds", 80, 10},
		{"positive convention near perpendicular", 88, 2},
		{"positive convention axis aligned", 90, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, normalizeAngle(tc.in), 1e-9)
		})
	}
	// Both conventions name the same physical skew 90° apart; folding them
	// must yield the same correction. ±45 is skipped: a perfect diagonal is
	// ambiguous and the two conventions rotate it in opposite directions.
	for a := -89.5; a < -0.5; a += 0.5 {
		if a == -45 {
			continue
		}
		assert.InDelta(t, normalizeAngle(a), normalizeAngle(a+90), 1e-9)
	}
	// Folded output always lands within the 45° band, whichever convention.
	for a := -90.0; a <= 90.0; a += 0.5 {
		got := normalizeAngle(a)
		assert.GreaterOrEqual(t, got, -45.0)
		assert.LessOrEqual(t, got, 45.0)
	}
}

func TestEstimateSkewOnRotatedRectangle(t *testing.T) {
	cases := []struct {
		name  string
		theta float64 // degrees; positive is clockwise on screen
	}{
		{"clockwise skew", 10.0},
		{"counter-clockwise skew", -10.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mask := gocv.NewMatWithSize(400, 400, gocv.MatTypeCV8U)
			defer mask.Close()

			// Filled 240x60 rectangle centered at (200,200), rotated by theta.
			corners := rotatedCorners(200, 200, 240, 60, tc.theta)
			pv := gocv.NewPointsVectorFromPoints([][]image.Point{corners})
			defer pv.Close()
			gocv.FillPoly(&mask, pv, color.RGBA{R: 255, G: 255, B: 255, A: 255})

			angle, ok := estimateSkew(mask)
			require.True(t, ok)
			assert.InDelta(t, -tc.theta, angle, 2.0,
				"correction must be equal and opposite to the applied skew")
		})
	}
}

func TestEstimateSkewTooFewForegroundPixels(t *testing.T) {
	mask := gocv.NewMatWithSize(100, 100, gocv.MatTypeCV8U)
	defer mask.Close()
	for i := 0; i < minForegroundPixels-1; i++ {
		mask.SetUCharAt(10+i, 10, 255)
	}
	_, ok := estimateSkew(mask)
	assert.False(t, ok)
}

func TestNormalizeSwallowsUndecodableInput(t *testing.T) {
	n := NewNormalizer(slog.Default())
	in := []byte("definitely not an image")
	out := n.Normalize(in)
	assert.Equal(t, in, out, "failed preprocessing must return the input unchanged")
}

func rotatedCorners(cx, cy, w, h int, deg float64) []image.Point {
	rad := deg * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	half := []struct{ x, y float64 }{
		{-float64(w) / 2, -float64(h) / 2},
		{float64(w) / 2, -float64(h) / 2},
		{float64(w) / 2, float64(h) / 2},
		{-float64(w) / 2, float64(h) / 2},
	}
	out := make([]image.Point, 0, 4)
	for _, p := range half {
		out = append(out, image.Pt(
			cx+int(math.Round(p.x*cos-p.y*sin)),
			cy+int(math.Round(p.x*sin+p.y*cos)),
		))
	}
	return out
}
