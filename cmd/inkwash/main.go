// inkwash is a batch watermark removal tool for images and videos. The
// watermark area is repaired with OpenCV inpainting; its location comes
// from an explicit region, configured mask templates, or auto-detection.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
