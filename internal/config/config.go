// Package config loads and validates the YAML configuration file.
package config

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/inkwash/inkwash/internal/model"
)

// Inpainting methods.
const (
	MethodTelea = "telea"
	MethodNS    = "ns"
)

// Defaults.
const (
	DefaultMethod         = MethodTelea
	DefaultRadius         = 3
	DefaultSuffix         = "_nowm"
	DefaultPreviewMaxSize = 800
)

// Mask describes a grayscale watermark template anchored by gravity.
// Foreground excludes detected foreground text from the mask so inpainting
// does not destroy document content under the watermark.
type Mask struct {
	File       string `yaml:"file" validate:"required"`
	Gravity    string `yaml:"gravity" validate:"required,oneof=north north-west north-east west center east south south-west south-east"`
	Foreground bool   `yaml:"foreground"`
}

// Config is the application configuration. Flag values override these.
type Config struct {
	// Logging
	Debug bool `yaml:"debug"`
	Info  bool `yaml:"info"`
	Human bool `yaml:"human"`

	// Inpainting
	Method string `yaml:"method" validate:"oneof=telea ns"`
	Radius int    `yaml:"radius" validate:"min=1,max=32"`

	// Batch execution
	Workers int `yaml:"workers" validate:"min=1,max=64"`

	// Output layout
	OutputDir string `yaml:"output_dir"`
	Suffix    string `yaml:"suffix"`

	// Preview
	PreviewMaxSize int `yaml:"preview_max_size" validate:"min=64,max=4096"`

	// Watermark location
	Region *model.Region `yaml:"region"`
	Masks  []Mask        `yaml:"masks" validate:"dive"`
}

var validate = validator.New()

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Method:         DefaultMethod,
		Radius:         DefaultRadius,
		Workers:        defaultWorkers(),
		Suffix:         DefaultSuffix,
		PreviewMaxSize: DefaultPreviewMaxSize,
	}
}

// Load reads a YAML config file on top of the defaults and validates the
// result.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints and cross-field consistency.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.Region != nil && c.Region.Empty() && (c.Region.X != 0 || c.Region.Y != 0) {
		return fmt.Errorf("region %s has no area", c.Region)
	}
	return nil
}

// HasMaskSource reports whether the config pins the watermark location,
// either by explicit region or by mask templates.
func (c Config) HasMaskSource() bool {
	return (c.Region != nil && !c.Region.Empty()) || len(c.Masks) > 0
}

// One core is left free so the machine stays responsive during batches.
func defaultWorkers() int {
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}
