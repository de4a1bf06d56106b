package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"github.com/inkwash/inkwash/internal/batch"
	"github.com/inkwash/inkwash/internal/fileutil"
	"github.com/inkwash/inkwash/internal/imgproc"
	"github.com/inkwash/inkwash/internal/model"
)

var imageCmd = &cobra.Command{
	Use:   "image [paths...]",
	Short: "Remove watermarks from images",
	Long: `Remove watermarks from the given image files. Directories are
scanned recursively for supported images. Outputs are written to a
processed/ directory next to each input unless --out is set.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImages(cmd.Context(), args)
	},
}

func runImages(ctx context.Context, args []string) error {
	images, _, err := fileutil.CollectInputs(args)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return fmt.Errorf("no supported images in %v", args)
	}

	templates, err := loadTemplates(cfg.Masks)
	if err != nil {
		return err
	}
	defer closeTemplates(templates)

	proc, err := imgproc.NewProcessor(cfg.Method, cfg.Radius, cfg.Region, templates)
	if err != nil {
		return err
	}

	runner := batch.NewRunner(cfg.Workers)
	for _, path := range images {
		out, err := fileutil.OutputPath(path, cfg.OutputDir, cfg.Suffix)
		if err != nil {
			return err
		}
		runner.Add(model.NewTask(model.TaskKindImage, path, out))
	}

	summary := runner.Run(ctx, func(ctx context.Context, task *model.Task) error {
		return processImageFile(proc, task)
	})

	log.Info().
		Int("total", summary.Total).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("stopped", summary.Stopped).
		Int64("duration(ms)", summary.Elapsed.Milliseconds()).
		Msg("image batch done")

	if summary.Succeeded == 0 {
		return fmt.Errorf("no images processed (%d failed)", summary.Failed)
	}
	return nil
}

// processImageFile removes the watermark from one image file.
func processImageFile(proc *imgproc.Processor, task *model.Task) error {
	start := time.Now()

	src := gocv.IMRead(task.InputPath, gocv.IMReadColor)
	defer src.Close()
	if src.Empty() {
		return fmt.Errorf("read image %s: %w", task.InputPath, imgproc.ErrEmptyImage)
	}

	out, stats, err := proc.Process(src)
	if err != nil {
		return err
	}
	defer out.Close()

	if ok := gocv.IMWrite(task.OutputPath, out); !ok {
		return fmt.Errorf("write image %s", task.OutputPath)
	}

	log.Debug().
		Int64("duration(ms)", time.Since(start).Milliseconds()).
		Float32("brightness", stats.Metrics.Brightness).
		Float32("mean", stats.Metrics.Mean).
		Float32("stdDev", stats.Metrics.StdDev).
		Float32("threshold", stats.Threshold).
		Bool("color", stats.Color).
		Bool("inverted", stats.Inverted).
		Str("dst", task.OutputPath).
		Msg(task.DisplayName())

	return nil
}
