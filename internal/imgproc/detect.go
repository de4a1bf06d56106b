package imgproc

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/inkwash/inkwash/internal/model"
)

// Auto-detection tuning. Candidate contours must cover between 0.1% and
// 20% of the image; anything outside that range is noise or background.
const (
	adaptiveBlockSize = 25
	adaptiveC         = 5
	minAreaRatio      = 0.001
	maxAreaRatio      = 0.2
)

// DetectRegion locates the most likely watermark rectangle. It binarizes
// with an adaptive Gaussian threshold, cleans the result with open/close
// morphology, and scores the surviving contours by solidity weighted
// toward the vertical center of the image. Returns the winning region
// (padded) and its score.
func DetectRegion(img gocv.Mat) (model.Region, float64, error) {
	if img.Empty() {
		return model.Region{}, 0, ErrEmptyImage
	}
	width, height := img.Cols(), img.Rows()

	gray := img
	owned := false
	if img.Channels() > 1 {
		g := gocv.NewMat()
		gocv.CvtColor(img, &g, gocv.ColorBGRToGray)
		gray = g
		owned = true
	}
	if owned {
		defer gray.Close()
	}

	bin := gocv.NewMat()
	defer bin.Close()
	gocv.AdaptiveThreshold(gray, &bin, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinaryInv, adaptiveBlockSize, adaptiveC)

	// Open drops speckle noise, close reconnects broken strokes.
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 3, Y: 3})
	defer kernel.Close()
	gocv.MorphologyEx(bin, &bin, gocv.MorphOpen, kernel)
	gocv.MorphologyEx(bin, &bin, gocv.MorphClose, kernel)

	contours := gocv.FindContours(bin, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	imgArea := float64(width * height)
	minArea := minAreaRatio * imgArea
	maxArea := maxAreaRatio * imgArea

	var (
		bestRect  image.Rectangle
		bestScore float64
		found     bool
	)
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)
		area := gocv.ContourArea(contour)
		if area <= minArea || area >= maxArea {
			continue
		}

		rect := gocv.BoundingRect(contour)
		score := contourScore(area, rect, height)
		if !found || score > bestScore {
			bestRect = rect
			bestScore = score
			found = true
		}
	}
	if !found {
		return model.Region{}, 0, ErrNoWatermark
	}

	region := model.Region{
		X: bestRect.Min.X,
		Y: bestRect.Min.Y,
		W: bestRect.Dx(),
		H: bestRect.Dy(),
	}.Pad(detectPadding, width, height)

	return region, bestScore, nil
}

// contourScore ranks a candidate contour. Solidity (contour area over
// bounding box area) rewards compact shapes; the weight decays as the
// contour moves away from the vertical center, where watermarks rarely
// sit at the extreme edges.
func contourScore(area float64, rect image.Rectangle, imgHeight int) float64 {
	boxArea := rect.Dx() * rect.Dy()
	if boxArea == 0 || imgHeight == 0 {
		return 0
	}
	solidity := area / float64(boxArea)
	centerY := float64(rect.Min.Y) + float64(rect.Dy())/2
	return solidity * (1 - math.Abs(0.5-centerY/float64(imgHeight)))
}
