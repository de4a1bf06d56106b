package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"github.com/inkwash/inkwash/internal/fileutil"
	"github.com/inkwash/inkwash/internal/imgproc"
	"github.com/inkwash/inkwash/internal/video"
)

var detectCmd = &cobra.Command{
	Use:   "detect <path>",
	Short: "Auto-detect the watermark region",
	Long: `Locate the most likely watermark rectangle in an image, or in the
first frame of a video, and print it as x,y,w,h. The printed value can be
passed back via --region.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDetect(args[0])
	},
}

func runDetect(path string) error {
	var src gocv.Mat
	switch {
	case fileutil.IsImage(path):
		src = gocv.IMRead(path, gocv.IMReadColor)
		if src.Empty() {
			return fmt.Errorf("read image %s: %w", path, imgproc.ErrEmptyImage)
		}
	case fileutil.IsVideo(path):
		frame, err := video.ReadFrame(path, 0)
		if err != nil {
			return err
		}
		src = frame
	default:
		return fmt.Errorf("unsupported file %s", path)
	}
	defer src.Close()

	region, score, err := imgproc.DetectRegion(src)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().
		Str("region", region.String()).
		Float64("score", score).
		Msg(path)

	fmt.Printf("%s score=%.3f\n", region, score)
	return nil
}
