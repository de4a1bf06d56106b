package model

import "testing"

func TestParseRegion(t *testing.T) {
	tests := []struct {
		input    string
		expected Region
		wantErr  bool
	}{
		{"10,20,300,400", Region{X: 10, Y: 20, W: 300, H: 400}, false},
		{" 1, 2, 3, 4 ", Region{X: 1, Y: 2, W: 3, H: 4}, false},
		{"0,0,0,0", Region{}, false},
		{"10,20,300", Region{}, true},
		{"10,20,300,400,500", Region{}, true},
		{"a,b,c,d", Region{}, true},
		{"10,20,-5,400", Region{}, true},
		{"", Region{}, true},
	}

	for _, test := range tests {
		result, err := ParseRegion(test.input)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseRegion(%q) expected error, got %+v", test.input, result)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRegion(%q) unexpected error: %v", test.input, err)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseRegion(%q) = %+v, expected %+v", test.input, result, test.expected)
		}
	}
}

func TestRegion_Clamp(t *testing.T) {
	tests := []struct {
		name     string
		region   Region
		width    int
		height   int
		expected Region
	}{
		{"inside", Region{X: 10, Y: 10, W: 50, H: 50}, 100, 100, Region{X: 10, Y: 10, W: 50, H: 50}},
		{"overflow right", Region{X: 80, Y: 10, W: 50, H: 20}, 100, 100, Region{X: 80, Y: 10, W: 20, H: 20}},
		{"overflow bottom", Region{X: 10, Y: 90, W: 20, H: 50}, 100, 100, Region{X: 10, Y: 90, W: 20, H: 10}},
		{"fully outside", Region{X: 200, Y: 200, W: 10, H: 10}, 100, 100, Region{}},
		{"exact fit", Region{X: 0, Y: 0, W: 100, H: 100}, 100, 100, Region{X: 0, Y: 0, W: 100, H: 100}},
	}

	for _, test := range tests {
		result := test.region.Clamp(test.width, test.height)
		if result != test.expected {
			t.Errorf("%s: Clamp() = %+v, expected %+v", test.name, result, test.expected)
		}
	}
}

func TestRegion_Pad(t *testing.T) {
	tests := []struct {
		name     string
		region   Region
		pad      int
		expected Region
	}{
		{"interior", Region{X: 20, Y: 20, W: 10, H: 10}, 5, Region{X: 15, Y: 15, W: 20, H: 20}},
		{"hits origin", Region{X: 2, Y: 3, W: 10, H: 10}, 5, Region{X: 0, Y: 0, W: 17, H: 18}},
		{"hits far edge", Region{X: 85, Y: 85, W: 10, H: 10}, 5, Region{X: 80, Y: 80, W: 20, H: 20}},
	}

	for _, test := range tests {
		result := test.region.Pad(test.pad, 100, 100)
		if result != test.expected {
			t.Errorf("%s: Pad() = %+v, expected %+v", test.name, result, test.expected)
		}
	}
}

func TestRegion_Empty(t *testing.T) {
	if (Region{X: 1, Y: 1, W: 0, H: 5}).Empty() == false {
		t.Error("zero width region should be empty")
	}
	if (Region{X: 1, Y: 1, W: 5, H: 5}).Empty() {
		t.Error("non-zero region should not be empty")
	}
}

func TestRegion_String(t *testing.T) {
	r := Region{X: 1, Y: 2, W: 3, H: 4}
	if r.String() != "1,2,3,4" {
		t.Errorf("Region.String() = %s, expected 1,2,3,4", r.String())
	}
}
