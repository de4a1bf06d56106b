package imgproc

import (
	"image"
	"testing"
)

func TestContourScore(t *testing.T) {
	imgHeight := 100

	// A solid contour in the vertical center scores highest.
	center := contourScore(400, image.Rect(10, 40, 30, 60), imgHeight)
	edge := contourScore(400, image.Rect(10, 0, 30, 20), imgHeight)
	if center <= edge {
		t.Errorf("centered contour (%v) should outscore edge contour (%v)", center, edge)
	}

	// Lower solidity lowers the score for the same box.
	sparse := contourScore(100, image.Rect(10, 40, 30, 60), imgHeight)
	if sparse >= center {
		t.Errorf("sparse contour (%v) should score below solid contour (%v)", sparse, center)
	}

	// Degenerate boxes never win.
	if s := contourScore(400, image.Rect(10, 10, 10, 60), imgHeight); s != 0 {
		t.Errorf("zero-width box score = %v, expected 0", s)
	}
	if s := contourScore(400, image.Rect(10, 40, 30, 60), 0); s != 0 {
		t.Errorf("zero-height image score = %v, expected 0", s)
	}
}

func TestContourScore_SolidityBounds(t *testing.T) {
	// A contour filling its bounding box exactly has solidity 1, and a
	// perfectly centered one keeps the full weight.
	score := contourScore(400, image.Rect(0, 40, 20, 60), 100)
	if score != 1.0 {
		t.Errorf("ideal contour score = %v, expected 1.0", score)
	}
}
