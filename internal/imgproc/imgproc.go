// Package imgproc removes watermarks from images using OpenCV inpainting.
//
// The watermark location comes from one of three sources, in priority
// order: an explicit region, grayscale mask templates anchored by gravity,
// or automatic detection. Inpainting works best on grayscale input, so
// color images are flattened before repair.
package imgproc

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/inkwash/inkwash/internal/model"
)

// Images with an overall brightness below this are treated as carbon
// copies and inverted before processing.
const carbonCopyThreshold float32 = 96

// detectPadding grows the auto-detected region on every side.
const detectPadding = 5

var (
	// ErrNoWatermark is returned when auto-detection finds no candidate region.
	ErrNoWatermark = errors.New("no watermark region detected")

	// ErrEmptyRegion is returned when a configured region has no overlap
	// with the image.
	ErrEmptyRegion = errors.New("region has no overlap with image")

	// ErrEmptyImage is returned when an image cannot be decoded.
	ErrEmptyImage = errors.New("empty image")
)

// Template is a grayscale watermark mask anchored by gravity. When
// ExcludeForeground is set, detected foreground text is subtracted from
// the template so document content survives inpainting.
type Template struct {
	Mat               gocv.Mat
	Gravity           string
	ExcludeForeground bool
}

// Close releases the template's pixel data.
func (t *Template) Close() {
	t.Mat.Close()
}

// Stats describes what the processor saw and decided for one image.
type Stats struct {
	Metrics   ChannelMetrics
	Color     bool
	Inverted  bool
	Threshold float32
	Region    model.Region // set when a rectangle was used or detected
}

// Processor removes watermarks from single images.
type Processor struct {
	method    gocv.InpaintMethods
	radius    float32
	region    *model.Region
	templates []Template
}

// NewProcessor builds a processor. method is "telea" or "ns". Region and
// templates may both be nil, in which case auto-detection runs per image.
func NewProcessor(method string, radius int, region *model.Region, templates []Template) (*Processor, error) {
	m, err := inpaintMethod(method)
	if err != nil {
		return nil, err
	}
	if radius < 1 {
		return nil, fmt.Errorf("inpaint radius %d: must be >= 1", radius)
	}
	return &Processor{
		method:    m,
		radius:    float32(radius),
		region:    region,
		templates: templates,
	}, nil
}

// Process removes the watermark from src and returns the repaired image.
// The caller owns both src and the returned Mat.
func (p *Processor) Process(src gocv.Mat) (gocv.Mat, Stats, error) {
	if src.Empty() {
		return gocv.Mat{}, Stats{}, ErrEmptyImage
	}

	var stats Stats
	stats.Metrics = ComputeChannelMetrics(src)

	// Carbon copies are mostly dark; invert so the watermark is the
	// light element again.
	work := src.Clone()
	defer work.Close()
	if stats.Metrics.Brightness < carbonCopyThreshold {
		inverted := InvertColors(work)
		work.Close()
		work = inverted
		stats.Inverted = true
	}

	stats.Color = IsColor(work)
	stats.Threshold = ThresholdValue(stats.Color, stats.Metrics)

	// The template path targets document scans, where inpainting works
	// best on grayscale. Region and auto-detect repairs stay in color.
	base := work.Clone()
	if len(p.templates) > 0 {
		base.Close()
		base = FlattenColors(work)
	}
	defer base.Close()

	mask, region, err := p.buildMask(base, stats.Threshold)
	if err != nil {
		return gocv.Mat{}, Stats{}, err
	}
	defer mask.Close()
	stats.Region = region

	out := p.Inpaint(base, mask)
	return out, stats, nil
}

// Inpaint repairs the masked area of src. mask must be a single-channel
// image of the same size where non-zero pixels mark the watermark.
func (p *Processor) Inpaint(src, mask gocv.Mat) gocv.Mat {
	out := gocv.NewMat()
	gocv.Inpaint(src, mask, &out, p.radius, p.method)
	return out
}

// buildMask produces the watermark mask for one image, following the
// source priority: explicit region, templates, auto-detection.
func (p *Processor) buildMask(img gocv.Mat, thresh float32) (gocv.Mat, model.Region, error) {
	width, height := img.Cols(), img.Rows()

	if p.region != nil && !p.region.Empty() {
		r := p.region.Clamp(width, height)
		if r.Empty() {
			return gocv.Mat{}, model.Region{}, ErrEmptyRegion
		}
		return RegionMask(width, height, r), r, nil
	}

	if len(p.templates) > 0 {
		mask, err := p.aggregateTemplates(img, thresh)
		return mask, model.Region{}, err
	}

	r, _, err := DetectRegion(img)
	if err != nil {
		return gocv.Mat{}, model.Region{}, err
	}
	return RegionMask(width, height, r), r, nil
}

// aggregateTemplates ORs all template masks together.
func (p *Processor) aggregateTemplates(img gocv.Mat, thresh float32) (gocv.Mat, error) {
	width, height := img.Cols(), img.Rows()

	mask := gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC1)
	mask.SetTo(gocv.Scalar{})

	for _, tpl := range p.templates {
		m, err := TemplateMask(img, tpl, thresh)
		if err != nil {
			mask.Close()
			return gocv.Mat{}, err
		}
		combined := gocv.NewMat()
		gocv.BitwiseOr(mask, m, &combined)
		m.Close()
		mask.Close()
		mask = combined
	}
	return mask, nil
}

func inpaintMethod(name string) (gocv.InpaintMethods, error) {
	switch name {
	case "telea":
		return gocv.Telea, nil
	case "ns":
		return gocv.NS, nil
	default:
		return 0, fmt.Errorf("inpaint method %q: want telea or ns", name)
	}
}
