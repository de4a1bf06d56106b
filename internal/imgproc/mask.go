package imgproc

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/inkwash/inkwash/internal/model"
)

// RegionMask builds a single-channel mask with the region filled white.
func RegionMask(width, height int, r model.Region) gocv.Mat {
	mask := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC1)
	mask.SetTo(gocv.Scalar{})

	roi := mask.Region(r.Rect())
	roi.SetTo(gocv.Scalar{Val1: 255, Val2: 255, Val3: 255, Val4: 255})
	roi.Close()

	return mask
}

// TemplateMask projects a watermark template onto the image plane. The
// template is cropped to the image size and placed at its gravity anchor;
// with ExcludeForeground set, detected foreground text is subtracted so
// document content under the watermark is left alone.
func TemplateMask(img gocv.Mat, tpl Template, thresh float32) (gocv.Mat, error) {
	imgW, imgH := img.Cols(), img.Rows()

	gray := tpl.Mat
	owned := false
	if gray.Channels() > 1 {
		g := gocv.NewMat()
		gocv.CvtColor(tpl.Mat, &g, gocv.ColorBGRToGray)
		gray = g
		owned = true
	}
	if owned {
		defer gray.Close()
	}

	// Crop the template at its anchored corner, then place the crop at
	// the same anchor on the image. Handles templates both larger and
	// smaller than the image.
	sx, sy, w, h, err := gravityOrigin(tpl.Gravity, gray.Cols(), gray.Rows(), imgW, imgH)
	if err != nil {
		return gocv.Mat{}, err
	}
	crop := gray.Region(image.Rect(sx, sy, sx+w, sy+h))
	defer crop.Close()

	mask := gocv.NewMatWithSize(imgH, imgW, gocv.MatTypeCV8UC1)
	mask.SetTo(gocv.Scalar{})

	dx, dy, _, _, err := gravityOrigin(tpl.Gravity, imgW, imgH, w, h)
	if err != nil {
		mask.Close()
		return gocv.Mat{}, err
	}
	roi := mask.Region(image.Rect(dx, dy, dx+w, dy+h))
	crop.CopyTo(&roi)
	roi.Close()

	if tpl.ExcludeForeground {
		fg := foregroundMask(img, thresh)
		defer fg.Close()

		combined := gocv.NewMat()
		gocv.BitwiseAnd(mask, fg, &combined)
		mask.Close()
		mask = combined
	}

	return mask, nil
}

// gravityOrigin returns the top-left corner of a w x h window anchored by
// gravity inside an outerW x outerH frame. The window is clamped to the
// frame; the unspecified axis is centered.
func gravityOrigin(gravity string, outerW, outerH, w, h int) (x, y, cw, ch int, err error) {
	cw, ch = w, h
	if cw > outerW {
		cw = outerW
	}
	if ch > outerH {
		ch = outerH
	}

	switch gravity {
	case "north", "south", "center":
		x = (outerW - cw) / 2
	case "north-west", "west", "south-west":
		x = 0
	case "north-east", "east", "south-east":
		x = outerW - cw
	default:
		return 0, 0, 0, 0, fmt.Errorf("invalid gravity %q", gravity)
	}

	switch gravity {
	case "west", "east", "center":
		y = (outerH - ch) / 2
	case "north-west", "north", "north-east":
		y = 0
	case "south-west", "south", "south-east":
		y = outerH - ch
	}

	return x, y, cw, ch, nil
}

// BinaryThreshold binarizes the image at the given threshold, returning a
// single-channel mask.
func BinaryThreshold(img gocv.Mat, t float32) gocv.Mat {
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
	gocv.Threshold(gray, &bin, t, 255, gocv.ThresholdBinary)
	return bin
}

// foregroundMask binarizes the image and extracts foreground text from it.
// Text pixels come back black so an AND against a watermark mask drops
// them from the repair area.
func foregroundMask(img gocv.Mat, thresh float32) gocv.Mat {
	bin := BinaryThreshold(img, thresh)
	defer bin.Close()
	return ExtractForegroundText(bin)
}

// ExtractForegroundText dilates the binarized image to enhance foreground
// features, then inverts so text is black on a white background.
func ExtractForegroundText(bin gocv.Mat) gocv.Mat {
	// Otsu picks the split; the explicit threshold value is ignored.
	thresholded := gocv.NewMat()
	defer thresholded.Close()
	gocv.Threshold(bin, &thresholded, 0, 255, gocv.ThresholdBinaryInv+gocv.ThresholdOtsu)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: 3, Y: 3})
	defer kernel.Close()

	dilated := gocv.NewMat()
	defer dilated.Close()
	gocv.Dilate(thresholded, &dilated, kernel)

	inverted := gocv.NewMat()
	gocv.BitwiseNot(dilated, &inverted)
	return inverted
}
