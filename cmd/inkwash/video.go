package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/inkwash/inkwash/internal/batch"
	"github.com/inkwash/inkwash/internal/fileutil"
	"github.com/inkwash/inkwash/internal/model"
	"github.com/inkwash/inkwash/internal/video"
)

var videoCmd = &cobra.Command{
	Use:   "video [paths...]",
	Short: "Remove watermarks from videos",
	Long: `Remove watermarks from the given video files. Each video is taken
apart frame by frame, repaired by a worker pool, and reassembled with
ffmpeg; the original audio stream is copied over. Videos run one at a
time so the frame workers get the whole machine.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVideos(cmd.Context(), args)
	},
}

func runVideos(ctx context.Context, args []string) error {
	_, videos, err := fileutil.CollectInputs(args)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return fmt.Errorf("no supported videos in %v", args)
	}

	proc := video.New(video.Options{
		Method:  cfg.Method,
		Radius:  cfg.Radius,
		Region:  cfg.Region,
		Workers: cfg.Workers,
	})

	// One video at a time; parallelism lives in the frame pool.
	runner := batch.NewRunner(1)
	for _, path := range videos {
		out, err := fileutil.OutputPath(path, cfg.OutputDir, cfg.Suffix)
		if err != nil {
			return err
		}
		runner.Add(model.NewTask(model.TaskKindVideo, path, out))
	}

	runner.SetUpdateCallback(func(task *model.Task) {
		if task.Status == model.TaskStatusCompleted {
			log.Info().
				Str("dst", task.OutputPath).
				Int64("duration(ms)", task.FinishedAt.Sub(task.StartedAt).Milliseconds()).
				Msg(task.DisplayName())
		}
	})

	summary := runner.Run(ctx, func(ctx context.Context, task *model.Task) error {
		return proc.Process(ctx, task.InputPath, task.OutputPath, func(p float64) {
			runner.Progress(task, p)
		})
	})

	log.Info().
		Int("total", summary.Total).
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("stopped", summary.Stopped).
		Int64("duration(ms)", summary.Elapsed.Milliseconds()).
		Msg("video batch done")

	if summary.Succeeded == 0 {
		return fmt.Errorf("no videos processed (%d failed)", summary.Failed)
	}
	return nil
}
