package app

import (
	"flag"
	"fmt"
	"strings"
)

const (
	ImagePNG  = "png"
	ImageJPEG = "jpeg"
)

type ImageFormat string

type Config struct {
	DBPath     string
	SessionID  int64
	OutputFile string
	Format     ImageFormat
	Theme      ColorTheme
	FontPath   string

	// Target coordinate to mark with a crosshair; drawn only when both
	// flags were set.
	TargetLat *float64
	TargetLon *float64

	Verbose bool
}

var validImageFormats = map[ImageFormat]struct{}{
	ImagePNG:  {},
	ImageJPEG: {},
}

func NewConfig() *Config {
	return &Config{
		Format:   ImagePNG,
		Theme:    ThermalTheme,
		FontPath: "RobotoMono-Regular.ttf",
	}
}

func NewConfigFromCLI() (*Config, error) {
	c := NewConfig()

	var imageFormat, theme string
	var targetLat, targetLon float64
	flag.StringVar(&c.DBPath, "db", "", "Path to the flight database file")
	flag.Int64Var(&c.SessionID, "s", 1, "Session ID")
	flag.StringVar(&c.OutputFile, "o", "", "Path to the output file")
	flag.StringVar(&imageFormat, "f", string(ImagePNG), "Output image format. [png, jpeg]")
	flag.StringVar(&theme, "theme", string(ThermalTheme), "Altitude color theme. [classic, grayscale, thermal]")
	flag.StringVar(&c.FontPath, "font", c.FontPath, "Path to a TTF font for annotations")
	flag.Float64Var(&targetLat, "target-lat", 0, "Target latitude to mark (degrees)")
	flag.Float64Var(&targetLon, "target-lon", 0, "Target longitude to mark (degrees)")
	flag.BoolVar(&c.Verbose, "verbose", false, "Enable more verbose output")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "target-lat" {
			c.TargetLat = &targetLat
		}
		if f.Name == "target-lon" {
			c.TargetLon = &targetLon
		}
	})

	if c.DBPath == "" {
		return nil, fmt.Errorf("no database file provided")
	}
	if c.OutputFile == "" {
		return nil, fmt.Errorf("no output file provided")
	}

	c.Format = ImageFormat(strings.ToLower(imageFormat))
	if _, ok := validImageFormats[c.Format]; !ok {
		return nil, fmt.Errorf("invalid image format '%s'", imageFormat)
	}

	c.Theme = ColorTheme(strings.ToLower(theme))
	if _, ok := validColorThemes[c.Theme]; !ok {
		return nil, fmt.Errorf("invalid color theme '%s'", theme)
	}

	if (c.TargetLat == nil) != (c.TargetLon == nil) {
		return nil, fmt.Errorf("target-lat and target-lon must be set together")
	}

	return c, nil
}
