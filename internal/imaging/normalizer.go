package imaging

import (
	"errors"
	"image"
	"image/color"
	"log/slog"

	"gocv.io/x/gocv"
)

// minForegroundPixels is the smallest number of foreground pixels for which
// a minAreaRect skew estimate is considered reliable.
const minForegroundPixels = 10

// Normalizer prepares a photographed document for OCR: grayscale, local
// contrast enhancement, skew correction, edge-preserving denoise,
// binarization and sharpening. The pipeline is fixed and unconfigured.
type Normalizer struct {
	logger *slog.Logger
}

func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize transforms an encoded image into an OCR-friendly PNG. Failure
// at any step returns the input unchanged; OCR accuracy is best-effort, so
// a preprocessing error must never fail the request.
func (n *Normalizer) Normalize(input []byte) []byte {
	out, err := normalize(input)
	if err != nil {
		n.logger.Warn("imaging.normalize.skipped", "error", err)
		return input
	}
	return out
}

func normalize(input []byte) ([]byte, error) {
	src, err := gocv.IMDecode(input, gocv.IMReadColor)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	if src.Empty() {
		return nil, errors.New("decoded image is empty")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	// Tile-wise histogram equalization levels out uneven lighting before
	// any thresholding happens.
	clahe := gocv.NewCLAHEWithParams(2.0, image.Pt(8, 8))
	defer clahe.Close()
	clahe.Apply(gray, &gray)

	// Inverse mean threshold isolates text-like pixels for skew detection
	// only; rotation is applied to the untouched source.
	skewMask := gocv.NewMat()
	defer skewMask.Close()
	gocv.AdaptiveThreshold(gray, &skewMask, 255, gocv.AdaptiveThresholdMean, gocv.ThresholdBinaryInv, 15, 10)

	angle, ok := estimateSkew(skewMask)
	if !ok {
		// Not enough signal to estimate skew; keep the contrast-enhanced
		// image and stop here.
		return encodePNG(gray)
	}

	w, h := src.Cols(), src.Rows()
	rot := gocv.GetRotationMatrix2D(image.Pt(w/2, h/2), angle, 1.0)
	defer rot.Close()
	rotated := gocv.NewMat()
	defer rotated.Close()
	gocv.WarpAffineWithParams(src, &rotated, rot, image.Pt(w, h),
		gocv.InterpolationCubic, gocv.BorderReplicate, color.RGBA{})

	// Bilateral filtering removes sensor noise without blurring stroke
	// edges, which a plain gaussian would.
	filtered := gocv.NewMat()
	defer filtered.Close()
	gocv.BilateralFilter(rotated, &filtered, 9, 75, 75)

	grayFiltered := gocv.NewMat()
	defer grayFiltered.Close()
	gocv.CvtColor(filtered, &grayFiltered, gocv.ColorBGRToGray)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.AdaptiveThreshold(grayFiltered, &binary, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, 11, 3)

	kernel := sharpenKernel()
	defer kernel.Close()
	sharpened := gocv.NewMat()
	defer sharpened.Close()
	gocv.Filter2D(binary, &sharpened, -1, kernel, image.Pt(-1, -1), 0, gocv.BorderDefault)

	return encodePNG(sharpened)
}

// estimateSkew returns the correction angle derived from the minimum-area
// bounding rectangle over foreground pixels, or ok=false when there are too
// few foreground pixels to estimate reliably.
func estimateSkew(mask gocv.Mat) (float64, bool) {
	pts := gocv.NewMat()
	defer pts.Close()
	gocv.FindNonZero(mask, &pts)
	if pts.Rows() < minForegroundPixels {
		return 0, false
	}
	pv := gocv.NewPointVectorFromMat(pts)
	defer pv.Close()
	rect := gocv.MinAreaRect(pv)
	return normalizeAngle(float64(rect.Angle)), true
}

// normalizeAngle folds a minAreaRect angle into (-45°, 45°] so the rotation
// always corrects toward upright rather than toward the perpendicular.
// MinAreaRect reports [-90, 0) on OpenCV before 4.5 and (0, 90] from 4.5 on;
// both conventions fold to the same correction.
func normalizeAngle(angle float64) float64 {
	if angle > 45 {
		angle -= 90
	}
	if angle < -45 {
		angle += 90
	}
	return -angle
}

// sharpenKernel is the fixed 3x3 convolution that crisps stroke edges after
// smoothing: center 5, four-neighbor -1, corners 0.
func sharpenKernel() gocv.Mat {
	k := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	vals := [3][3]float32{
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			k.SetFloatAt(r, c, vals[r][c])
		}
	}
	return k
}

func encodePNG(m gocv.Mat) ([]byte, error) {
	buf, err := gocv.IMEncode(gocv.PNGFileExt, m)
	if err != nil {
		return nil, err
	}
	defer buf.Close()
	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}
