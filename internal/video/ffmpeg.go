package video

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
)

// FFmpeg encode settings for reassembled video.
const (
	VideoCodec  = "libx264"
	PixelFormat = "yuv420p"
	VideoPreset = "veryfast"
	VideoCRF    = "23"

	ffmpegCommand  = "ffmpeg"
	ffprobeCommand = "ffprobe"

	progressTimePrefix = "out_time_us="
)

// FrameName returns the file name for a processed frame. The zero-padded
// index keeps the ffmpeg image sequence in order.
func FrameName(idx int) string {
	return fmt.Sprintf("frame_%06d.jpg", idx)
}

// FramePattern is the printf-style sequence pattern handed to ffmpeg.
const FramePattern = "frame_%06d.jpg"

// BuildEncodeArgs builds the ffmpeg arguments that reassemble processed
// frames into a video. The original file is attached as a second input so
// its audio stream, when present, is copied over untouched.
func BuildEncodeArgs(framePattern string, fps float64, audioSource, outputPath string) []string {
	return []string{
		"-y",
		"-framerate", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", framePattern,
		"-i", audioSource,
		"-map", "0:v:0",
		"-map", "1:a?",
		"-c:v", VideoCodec,
		"-pix_fmt", PixelFormat,
		"-preset", VideoPreset,
		"-crf", VideoCRF,
		"-c:a", "copy",
		"-progress", "pipe:2",
		"-nostats",
		outputPath,
	}
}

// Encode runs ffmpeg over the frame sequence. Progress callbacks receive
// values in 0..1 parsed from the -progress stream. Cancelling the context
// kills ffmpeg; the caller is responsible for removing partial output.
func Encode(ctx context.Context, framePattern string, fps float64, audioSource, outputPath string, totalDuration float64, progress func(float64)) error {
	args := BuildEncodeArgs(framePattern, fps, audioSource, outputPath)
	cmd := exec.CommandContext(ctx, ffmpegCommand, args...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("create stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	monitorProgress(stderr, totalDuration, progress)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// ProbeDuration gets the duration of a video file in seconds using ffprobe.
func ProbeDuration(path string) (float64, error) {
	cmd := exec.Command(ffprobeCommand, "-v", "error", "-show_entries", "format=duration", "-of", "csv=p=0", path)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("run ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration: %w", err)
	}
	return duration, nil
}

// monitorProgress reads the ffmpeg -progress stream until it closes.
func monitorProgress(r io.ReadCloser, totalDuration float64, progress func(float64)) {
	defer r.Close()
	if progress == nil || totalDuration <= 0 {
		io.Copy(io.Discard, r)
		return
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if p, ok := ParseProgressLine(scanner.Text(), totalDuration); ok {
			progress(p)
		}
	}
}

// ParseProgressLine extracts a 0..1 progress value from one line of
// ffmpeg -progress output (out_time_us=N).
func ParseProgressLine(line string, totalDuration float64) (float64, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, progressTimePrefix) {
		return 0, false
	}

	us, err := strconv.ParseInt(strings.TrimPrefix(line, progressTimePrefix), 10, 64)
	if err != nil {
		return 0, false
	}

	p := float64(us) / 1e6 / totalDuration
	if p > 1.0 {
		p = 1.0
	}
	if p < 0 {
		return 0, false
	}
	return p, true
}
