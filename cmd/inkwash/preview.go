package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"github.com/inkwash/inkwash/internal/fileutil"
	"github.com/inkwash/inkwash/internal/imgproc"
	"github.com/inkwash/inkwash/internal/preview"
	"github.com/inkwash/inkwash/internal/video"
)

var previewFrame int

var previewCmd = &cobra.Command{
	Use:   "preview <path>",
	Short: "Render a downscaled removal preview",
	Long: `Apply watermark removal to a single image, or to one frame of a
video, and write a downscaled preview next to the input. Use it to check
a region or mask setup before running a long batch.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(args[0])
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewFrame, "frame", 0, "video frame to preview")
}

func runPreview(path string) error {
	var src gocv.Mat
	switch {
	case fileutil.IsImage(path):
		src = gocv.IMRead(path, gocv.IMReadColor)
		if src.Empty() {
			return fmt.Errorf("read image %s: %w", path, imgproc.ErrEmptyImage)
		}
	case fileutil.IsVideo(path):
		frame, err := video.ReadFrame(path, previewFrame)
		if err != nil {
			return err
		}
		src = frame
	default:
		return fmt.Errorf("unsupported file %s", path)
	}
	defer src.Close()

	templates, err := loadTemplates(cfg.Masks)
	if err != nil {
		return err
	}
	defer closeTemplates(templates)

	proc, err := imgproc.NewProcessor(cfg.Method, cfg.Radius, cfg.Region, templates)
	if err != nil {
		return err
	}

	out, stats, err := proc.Process(src)
	if err != nil {
		return err
	}
	defer out.Close()

	img, err := out.ToImage()
	if err != nil {
		return fmt.Errorf("convert preview: %w", err)
	}

	dst := preview.OutputPath(path)
	if err := preview.Save(preview.Fit(img, cfg.PreviewMaxSize), dst); err != nil {
		return err
	}

	log.Info().
		Str("dst", dst).
		Str("region", stats.Region.String()).
		Bool("color", stats.Color).
		Msg("preview written")

	fmt.Println(dst)
	return nil
}
