// Package video removes watermarks from video files frame by frame and
// reassembles the result with ffmpeg.
package video

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"gocv.io/x/gocv"

	"github.com/inkwash/inkwash/internal/imgproc"
	"github.com/inkwash/inkwash/internal/model"
)

// Frame extraction covers this share of the progress bar; encoding takes
// the rest.
const extractProgressShare = 0.9

const jpegQuality = 95

// ErrNoFrames is returned when the input video yields no frames.
var ErrNoFrames = errors.New("video has no readable frames")

// Options configure a video processor.
type Options struct {
	Method  string        // "telea" or "ns"
	Radius  int           // inpaint radius
	Region  *model.Region // nil means auto-detect on the first frame
	Workers int           // frame inpainting workers
}

// Meta describes a video file.
type Meta struct {
	Frames int
	FPS    float64
	Width  int
	Height int
}

// Processor removes a watermark from whole videos.
type Processor struct {
	opts Options
}

// New creates a video processor.
func New(opts Options) *Processor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Processor{opts: opts}
}

// Probe opens the video and reads its basic properties.
func Probe(path string) (Meta, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return Meta{}, fmt.Errorf("open video %s: %w", path, err)
	}
	defer vc.Close()

	meta := Meta{
		Frames: int(vc.Get(gocv.VideoCaptureFrameCount)),
		FPS:    vc.Get(gocv.VideoCaptureFPS),
		Width:  int(vc.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(vc.Get(gocv.VideoCaptureFrameHeight)),
	}
	if meta.FPS <= 0 {
		meta.FPS = 25
	}
	return meta, nil
}

// ReadFrame returns a single decoded frame by index. The caller owns the
// returned Mat.
func ReadFrame(path string, idx int) (gocv.Mat, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return gocv.Mat{}, fmt.Errorf("open video %s: %w", path, err)
	}
	defer vc.Close()

	vc.Set(gocv.VideoCapturePosFrames, float64(idx))
	frame := gocv.NewMat()
	if ok := vc.Read(&frame); !ok || frame.Empty() {
		frame.Close()
		return gocv.Mat{}, fmt.Errorf("read frame %d of %s: %w", idx, path, ErrNoFrames)
	}
	return frame, nil
}

type frameJob struct {
	idx int
	mat gocv.Mat
}

// Process removes the watermark from inputPath and writes the repaired
// video to outputPath. Frames are inpainted by a worker pool and written
// to a temporary directory as a numbered JPEG sequence, which ffmpeg then
// encodes; the original audio stream is copied over. progress receives
// monotonic values in 0..1.
func (p *Processor) Process(ctx context.Context, inputPath, outputPath string, progress func(float64)) error {
	meta, err := Probe(inputPath)
	if err != nil {
		return err
	}

	region, err := p.resolveRegion(inputPath, meta)
	if err != nil {
		return err
	}

	proc, err := imgproc.NewProcessor(p.opts.Method, p.opts.Radius, nil, nil)
	if err != nil {
		return err
	}

	tempDir, err := os.MkdirTemp(filepath.Dir(outputPath), "inkwash-frames-")
	if err != nil {
		return fmt.Errorf("create temp frame dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	total, err := p.extractFrames(ctx, inputPath, tempDir, meta, region, proc, progress)
	if err != nil {
		return err
	}
	if total == 0 {
		return ErrNoFrames
	}

	duration, err := ProbeDuration(inputPath)
	if err != nil {
		// Frame count over fps is good enough for progress mapping.
		log.Debug().Err(err).Str("video", inputPath).Msg("ffprobe failed, deriving duration")
		duration = float64(total) / meta.FPS
	}

	encodeProgress := func(ep float64) {
		if progress != nil {
			progress(extractProgressShare + (1-extractProgressShare)*ep)
		}
	}
	pattern := filepath.Join(tempDir, FramePattern)
	if err := Encode(ctx, pattern, meta.FPS, inputPath, outputPath, duration, encodeProgress); err != nil {
		os.Remove(outputPath)
		return err
	}

	if progress != nil {
		progress(1.0)
	}
	return nil
}

// resolveRegion clamps the configured region or detects one on the first
// frame.
func (p *Processor) resolveRegion(inputPath string, meta Meta) (model.Region, error) {
	if p.opts.Region != nil && !p.opts.Region.Empty() {
		r := p.opts.Region.Clamp(meta.Width, meta.Height)
		if r.Empty() {
			return model.Region{}, imgproc.ErrEmptyRegion
		}
		return r, nil
	}

	frame, err := ReadFrame(inputPath, 0)
	if err != nil {
		return model.Region{}, err
	}
	defer frame.Close()

	region, score, err := imgproc.DetectRegion(frame)
	if err != nil {
		return model.Region{}, err
	}
	log.Debug().
		Str("video", inputPath).
		Str("region", region.String()).
		Float64("score", score).
		Msg("auto-detected watermark region")
	return region, nil
}

// extractFrames reads the video sequentially and fans frames out to the
// inpainting workers. Returns the number of frames written.
func (p *Processor) extractFrames(ctx context.Context, inputPath, tempDir string, meta Meta, region model.Region, proc *imgproc.Processor, progress func(float64)) (int, error) {
	vc, err := gocv.VideoCaptureFile(inputPath)
	if err != nil {
		return 0, fmt.Errorf("open video %s: %w", inputPath, err)
	}
	defer vc.Close()

	jobs := make(chan frameJob, p.opts.Workers)
	var (
		wg       sync.WaitGroup
		done     atomic.Int64
		firstErr error
		errOnce  sync.Once
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
	}

	for i := 0; i < p.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Each worker owns its mask; Mats are not safe for
			// concurrent writes.
			mask := imgproc.RegionMask(meta.Width, meta.Height, region)
			defer mask.Close()

			for job := range jobs {
				out := proc.Inpaint(job.mat, mask)
				path := filepath.Join(tempDir, FrameName(job.idx))
				ok := gocv.IMWriteWithParams(path, out, []int{gocv.IMWriteJpegQuality, jpegQuality})
				out.Close()
				job.mat.Close()
				if !ok {
					fail(fmt.Errorf("write frame %s", path))
					continue
				}

				n := done.Add(1)
				if progress != nil && meta.Frames > 0 {
					progress(extractProgressShare * float64(n) / float64(meta.Frames))
				}
			}
		}()
	}

	count := 0
	frame := gocv.NewMat()
read:
	for {
		select {
		case <-ctx.Done():
			fail(ctx.Err())
			break read
		default:
		}

		if ok := vc.Read(&frame); !ok || frame.Empty() {
			break
		}
		jobs <- frameJob{idx: count, mat: frame.Clone()}
		count++
	}
	frame.Close()
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return count, firstErr
	}
	return count, nil
}
