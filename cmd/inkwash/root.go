package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"github.com/inkwash/inkwash/internal/config"
	"github.com/inkwash/inkwash/internal/imgproc"
	"github.com/inkwash/inkwash/internal/model"
)

var (
	cfg config.Config

	cfgFile    string
	debugFlag  bool
	regionFlag string
	methodFlag string
	radiusFlag int
	workerFlag int
	outDirFlag string
)

var rootCmd = &cobra.Command{
	Use:           "inkwash",
	Short:         "Batch watermark removal for images and videos",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (yaml)")
	pf.BoolVar(&debugFlag, "debug", false, "debug logging level")
	pf.StringVar(&regionFlag, "region", "", "watermark rectangle as x,y,w,h")
	pf.StringVar(&methodFlag, "method", config.DefaultMethod, "inpaint method: telea or ns")
	pf.IntVar(&radiusFlag, "radius", config.DefaultRadius, "inpaint radius in pixels")
	pf.IntVar(&workerFlag, "workers", 0, "worker count (default: cores minus one)")
	pf.StringVar(&outDirFlag, "out", "", "output directory (default: processed/ next to input)")

	rootCmd.AddCommand(imageCmd, videoCmd, detectCmd, previewCmd, scanCmd)
}

// setup loads the config file, layers flag overrides on top, and wires
// the logger. Flag values beat config file values.
func setup(cmd *cobra.Command) error {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
	} else {
		cfg = config.Default()
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = methodFlag
	}
	if flags.Changed("radius") {
		cfg.Radius = radiusFlag
	}
	if flags.Changed("workers") {
		cfg.Workers = workerFlag
	}
	if flags.Changed("out") {
		cfg.OutputDir = outDirFlag
	}
	if regionFlag != "" {
		r, err := model.ParseRegion(regionFlag)
		if err != nil {
			return err
		}
		cfg.Region = &r
	}
	if debugFlag {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	if cfg.Info {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if cfg.Human {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	return nil
}

// loadTemplates reads the configured mask template files as grayscale.
// The caller must close the returned templates.
func loadTemplates(masks []config.Mask) ([]imgproc.Template, error) {
	templates := make([]imgproc.Template, 0, len(masks))
	for _, m := range masks {
		mat := gocv.IMRead(m.File, gocv.IMReadGrayScale)
		if mat.Empty() {
			closeTemplates(templates)
			return nil, fmt.Errorf("read mask template %s: %w", m.File, imgproc.ErrEmptyImage)
		}
		templates = append(templates, imgproc.Template{
			Mat:               mat,
			Gravity:           m.Gravity,
			ExcludeForeground: m.Foreground,
		})
	}
	return templates, nil
}

func closeTemplates(templates []imgproc.Template) {
	for i := range templates {
		templates[i].Close()
	}
}
