package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkwash/inkwash/internal/fileutil"
	"github.com/inkwash/inkwash/internal/preview"
)

var scanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "List supported media files under a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		return runScan(dir)
	},
}

func runScan(dir string) error {
	images, videos, err := fileutil.ScanDirectory(dir)
	if err != nil {
		return err
	}

	for _, path := range images {
		if w, h, err := preview.Dimensions(path); err == nil {
			fmt.Printf("image\t%s\t%dx%d\n", path, w, h)
		} else {
			fmt.Printf("image\t%s\t?\n", path)
		}
	}
	for _, path := range videos {
		fmt.Printf("video\t%s\n", path)
	}

	fmt.Printf("%d images, %d videos\n", len(images), len(videos))
	return nil
}
