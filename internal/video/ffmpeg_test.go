package video

import (
	"strings"
	"testing"
)

func TestFrameName(t *testing.T) {
	tests := []struct {
		idx      int
		expected string
	}{
		{0, "frame_000000.jpg"},
		{7, "frame_000007.jpg"},
		{123456, "frame_123456.jpg"},
	}

	for _, test := range tests {
		if result := FrameName(test.idx); result != test.expected {
			t.Errorf("FrameName(%d) = %s, expected %s", test.idx, result, test.expected)
		}
	}
}

func TestBuildEncodeArgs(t *testing.T) {
	args := BuildEncodeArgs("/tmp/frames/frame_%06d.jpg", 29.97, "/in/src.mp4", "/out/dst.mp4")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-framerate 29.97",
		"-i /tmp/frames/frame_%06d.jpg",
		"-i /in/src.mp4",
		"-c:v " + VideoCodec,
		"-pix_fmt " + PixelFormat,
		"-preset " + VideoPreset,
		"-crf " + VideoCRF,
		"-c:a copy",
		"-progress pipe:2",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("encode args missing %q: %s", want, joined)
		}
	}

	if args[0] != "-y" {
		t.Errorf("args should start with -y, got %s", args[0])
	}
	if args[len(args)-1] != "/out/dst.mp4" {
		t.Errorf("args should end with output path, got %s", args[len(args)-1])
	}
}

func TestParseProgressLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		duration float64
		expected float64
		ok       bool
	}{
		{"halfway", "out_time_us=5000000", 10, 0.5, true},
		{"with whitespace", "  out_time_us=2500000  ", 10, 0.25, true},
		{"capped at one", "out_time_us=99000000", 10, 1.0, true},
		{"other key", "frame=42", 10, 0, false},
		{"not a number", "out_time_us=abc", 10, 0, false},
		{"negative", "out_time_us=-100", 10, 0, false},
	}

	for _, test := range tests {
		result, ok := ParseProgressLine(test.line, test.duration)
		if ok != test.ok {
			t.Errorf("%s: ok = %v, expected %v", test.name, ok, test.ok)
			continue
		}
		if ok && result != test.expected {
			t.Errorf("%s: progress = %v, expected %v", test.name, result, test.expected)
		}
	}
}
