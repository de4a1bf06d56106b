package model

import (
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Region is a watermark rectangle in source pixel coordinates.
type Region struct {
	X int `yaml:"x" validate:"gte=0"`
	Y int `yaml:"y" validate:"gte=0"`
	W int `yaml:"w" validate:"gte=0"`
	H int `yaml:"h" validate:"gte=0"`
}

// ParseRegion parses a "x,y,w,h" string as produced by the detect command.
func ParseRegion(s string) (Region, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return Region{}, fmt.Errorf("region %q: want x,y,w,h", s)
	}

	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Region{}, fmt.Errorf("region %q: %w", s, err)
		}
		if v < 0 {
			return Region{}, fmt.Errorf("region %q: negative component", s)
		}
		vals[i] = v
	}

	return Region{X: vals[0], Y: vals[1], W: vals[2], H: vals[3]}, nil
}

// Empty reports whether the region covers no pixels.
func (r Region) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Clamp trims the region to fit inside a width x height image.
// The result may be empty when the region lies fully outside the image.
func (r Region) Clamp(width, height int) Region {
	if r.X < 0 {
		r.W += r.X
		r.X = 0
	}
	if r.Y < 0 {
		r.H += r.Y
		r.Y = 0
	}
	if r.X+r.W > width {
		r.W = width - r.X
	}
	if r.Y+r.H > height {
		r.H = height - r.Y
	}
	if r.X >= width || r.Y >= height || r.W < 0 || r.H < 0 {
		return Region{}
	}
	return r
}

// Pad grows the region by p pixels on every side, clamped to the image.
func (r Region) Pad(p, width, height int) Region {
	r.X -= p
	r.Y -= p
	r.W += 2 * p
	r.H += 2 * p
	return r.Clamp(width, height)
}

// Rect converts the region to an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// String formats the region as "x,y,w,h".
func (r Region) String() string {
	return fmt.Sprintf("%d,%d,%d,%d", r.X, r.Y, r.W, r.H)
}
