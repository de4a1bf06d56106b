package imgproc

import "gocv.io/x/gocv"

// ChannelMetrics summarizes the channel statistics of an image.
// Brightness is the overall average pixel value, Mean the average of the
// channel-wise means (color balance), StdDev the average spread across
// channels (contrast / detail level).
type ChannelMetrics struct {
	Brightness float32
	Mean       float32
	StdDev     float32
}

// ComputeChannelMetrics calculates the mean and standard deviation across
// the color channels of an image.
func ComputeChannelMetrics(img gocv.Mat) ChannelMetrics {
	mean := gocv.NewMat()
	defer mean.Close()
	stdDev := gocv.NewMat()
	defer stdDev.Close()

	gocv.MeanStdDev(img, &mean, &stdDev)

	var m, s float64
	n := mean.Rows()
	for i := 0; i < n; i++ {
		m += mean.GetDoubleAt(i, 0)
		s += stdDev.GetDoubleAt(i, 0)
	}
	if n > 0 {
		m /= float64(n)
		s /= float64(n)
	}

	return ChannelMetrics{
		Brightness: brightness(img),
		Mean:       float32(m),
		StdDev:     float32(s),
	}
}

// brightness is the mean pixel value of the grayscale rendition. Useful
// for spotting dark scans such as carbon copies.
func brightness(img gocv.Mat) float32 {
	if img.Channels() == 1 {
		return float32(img.Mean().Val1)
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	return float32(gray.Mean().Val1)
}

// ThresholdValue picks the binarization threshold from channel metrics.
// Grayscale scans threshold at the spread; color images shift toward the
// channel mean so saturated content does not swallow the watermark.
func ThresholdValue(color bool, m ChannelMetrics) float32 {
	if !color {
		return m.StdDev
	}
	dt := (m.Mean - m.StdDev) / 2
	return m.Mean - dt
}

// IsColor checks if the input image contains color pixels above a certain threshold.
func IsColor(img gocv.Mat) bool {
	if img.Channels() == 1 {
		return false
	}

	// HSV is preferred for color detection.
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(img, &hsv, gocv.ColorBGRToHSV)

	minRange := gocv.Scalar{Val1: 0, Val2: 48, Val3: 48, Val4: 255}
	maxRange := gocv.Scalar{Val1: 255, Val2: 255, Val3: 255, Val4: 255}

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.InRangeWithScalar(hsv, minRange, maxRange, &mask)

	return gocv.CountNonZero(mask) > 0
}

// InvertColors inverts the colors of the input image.
func InvertColors(img gocv.Mat) gocv.Mat {
	inverted := gocv.NewMat()
	gocv.BitwiseNot(img, &inverted)
	return inverted
}

// FlattenColors converts the input image to grayscale, then back to BGR
// so the result keeps three channels without any color information.
func FlattenColors(img gocv.Mat) gocv.Mat {
	if img.Channels() == 1 {
		bgr := gocv.NewMat()
		gocv.CvtColor(img, &bgr, gocv.ColorGrayToBGR)
		return bgr
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	bgr := gocv.NewMat()
	gocv.CvtColor(gray, &bgr, gocv.ColorGrayToBGR)
	return bgr
}
