package options

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/richinsley/glwindow/display"
	"github.com/richinsley/glwindow/graphics"
	"gopkg.in/yaml.v3"
)

type WindowOptions struct {
	Title            *string
	Width            *int
	Height           *int
	AlphaSize        *int
	API              *string // comma separated display API preference, e.g. "egl,glx"
	FixedSurfaceSize *bool   // create the first surface at 1024x768 regardless of the window size
	Record           *string // optional video file every presented frame is encoded to
	FPS              *int
	FFMPEGPath       *string
	ConfigFile       *string
	Help             *bool
}

// fileOptions mirrors WindowOptions for the YAML config file. Absent keys stay nil.
type fileOptions struct {
	Title            *string `yaml:"title"`
	Width            *int    `yaml:"width"`
	Height           *int    `yaml:"height"`
	AlphaSize        *int    `yaml:"alpha_size"`
	API              *string `yaml:"api"`
	FixedSurfaceSize *bool   `yaml:"fixed_surface_size"`
	Record           *string `yaml:"record"`
	FPS              *int    `yaml:"fps"`
	FFMPEGPath       *string `yaml:"ffmpeg"`
}

// Register defines the command-line flags on fs.
func Register(fs *flag.FlagSet) *WindowOptions {
	return &WindowOptions{
		Title:            fs.String("title", "OpenGL on X11", "Window title"),
		Width:            fs.Int("width", 1024, "Initial window width"),
		Height:           fs.Int("height", 768, "Initial window height"),
		AlphaSize:        fs.Int("alpha", 8, "Required alpha channel bits of the pixel format"),
		API:              fs.String("api", "egl,glx", "Display API preference, first available wins"),
		FixedSurfaceSize: fs.Bool("fixed-surface", false, "Create the initial surface at 1024x768 instead of the window size"),
		Record:           fs.String("record", "", "Encode presented frames to this video file"),
		FPS:              fs.Int("fps", 60, "Frame rate written to the recording"),
		FFMPEGPath:       fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		ConfigFile:       fs.String("config", "", "YAML file with option defaults"),
		Help:             fs.Bool("help", false, "Show help message"),
	}
}

// Parse registers the flags, parses args, applies the config file to every
// flag not given on the command line, and validates the result.
func Parse(fs *flag.FlagSet, args []string) (*WindowOptions, error) {
	o := Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *o.Help {
		return o, nil
	}
	if *o.ConfigFile != "" {
		data, err := os.ReadFile(*o.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		set := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if err := o.Apply(data, set); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", *o.ConfigFile, err)
		}
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Apply merges YAML data into o. Keys whose flag name is in set are skipped so
// the command line wins.
func (o *WindowOptions) Apply(data []byte, set map[string]bool) error {
	var f fileOptions
	if err := yaml.Unmarshal(data, &f); err != nil {
		return err
	}
	mergeString(o.Title, f.Title, set["title"])
	mergeInt(o.Width, f.Width, set["width"])
	mergeInt(o.Height, f.Height, set["height"])
	mergeInt(o.AlphaSize, f.AlphaSize, set["alpha"])
	mergeString(o.API, f.API, set["api"])
	if f.FixedSurfaceSize != nil && !set["fixed-surface"] {
		*o.FixedSurfaceSize = *f.FixedSurfaceSize
	}
	mergeString(o.Record, f.Record, set["record"])
	mergeInt(o.FPS, f.FPS, set["fps"])
	mergeString(o.FFMPEGPath, f.FFMPEGPath, set["ffmpeg"])
	return nil
}

func mergeString(dst, src *string, onCommandLine bool) {
	if src != nil && !onCommandLine {
		*dst = *src
	}
}

func mergeInt(dst, src *int, onCommandLine bool) {
	if src != nil && !onCommandLine {
		*dst = *src
	}
}

// Validate rejects options setup could not start from.
func (o *WindowOptions) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", *o.Width, *o.Height)
	}
	if *o.AlphaSize < 0 {
		return fmt.Errorf("invalid alpha size %d", *o.AlphaSize)
	}
	if _, err := o.Preference(); err != nil {
		return err
	}
	if *o.Record != "" && *o.FPS <= 0 {
		return errors.New("recording needs a positive -fps")
	}
	return nil
}

// Preference returns the parsed display API preference list.
func (o *WindowOptions) Preference() ([]graphics.API, error) {
	return display.ParsePreference(*o.API)
}
