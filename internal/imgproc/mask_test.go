package imgproc

import "testing"

func TestGravityOrigin(t *testing.T) {
	// 100x80 frame, 40x20 window.
	tests := []struct {
		gravity    string
		x, y, w, h int
	}{
		{"north-west", 0, 0, 40, 20},
		{"north", 30, 0, 40, 20},
		{"north-east", 60, 0, 40, 20},
		{"west", 0, 30, 40, 20},
		{"center", 30, 30, 40, 20},
		{"east", 60, 30, 40, 20},
		{"south-west", 0, 60, 40, 20},
		{"south", 30, 60, 40, 20},
		{"south-east", 60, 60, 40, 20},
	}

	for _, test := range tests {
		x, y, w, h, err := gravityOrigin(test.gravity, 100, 80, 40, 20)
		if err != nil {
			t.Errorf("gravityOrigin(%s) unexpected error: %v", test.gravity, err)
			continue
		}
		if x != test.x || y != test.y || w != test.w || h != test.h {
			t.Errorf("gravityOrigin(%s) = (%d,%d,%d,%d), expected (%d,%d,%d,%d)",
				test.gravity, x, y, w, h, test.x, test.y, test.w, test.h)
		}
	}
}

func TestGravityOrigin_ClampsWindow(t *testing.T) {
	// Window larger than the frame collapses to the frame.
	x, y, w, h, err := gravityOrigin("south-east", 50, 40, 200, 100)
	if err != nil {
		t.Fatalf("gravityOrigin: %v", err)
	}
	if x != 0 || y != 0 || w != 50 || h != 40 {
		t.Errorf("clamped window = (%d,%d,%d,%d), expected (0,0,50,40)", x, y, w, h)
	}
}

func TestGravityOrigin_Invalid(t *testing.T) {
	if _, _, _, _, err := gravityOrigin("up", 100, 100, 10, 10); err == nil {
		t.Error("expected error for invalid gravity")
	}
}
