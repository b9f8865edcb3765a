package app

import (
	"image/color"
	"math"
)

type ColorTheme string

const (
	ClassicTheme   ColorTheme = "classic"
	GrayscaleTheme ColorTheme = "grayscale"
	ThermalTheme   ColorTheme = "thermal"
)

var validColorThemes = map[ColorTheme]struct{}{
	ClassicTheme:   {},
	GrayscaleTheme: {},
	ThermalTheme:   {},
}

// altitudeColor maps a normalized altitude in [0, 1] to a color, with 0
// being the lowest recorded altitude and 1 the highest.
type altitudeColor func(norm float64) color.RGBA

func themeFunc(theme ColorTheme) altitudeColor {
	switch theme {
	case GrayscaleTheme:
		return grayscaleColor
	case ThermalTheme:
		return thermalColor
	default:
		return classicColor
	}
}

func clampNorm(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// classicColor sweeps hue from blue (low) to red (high).
func classicColor(norm float64) color.RGBA {
	norm = clampNorm(norm)
	hue := 240 * (1 - norm)
	return hsvToRGB(hue, 1, 1)
}

func grayscaleColor(norm float64) color.RGBA {
	norm = clampNorm(norm)
	v := uint8(math.Round(255 * norm))
	return color.RGBA{R: v, G: v, B: v, A: 255}
}

// thermalColor runs black, red, yellow, white with rising altitude.
func thermalColor(norm float64) color.RGBA {
	norm = clampNorm(norm)
	switch {
	case norm < 1.0/3:
		v := uint8(math.Round(255 * norm * 3))
		return color.RGBA{R: v, A: 255}
	case norm < 2.0/3:
		v := uint8(math.Round(255 * (norm - 1.0/3) * 3))
		return color.RGBA{R: 255, G: v, A: 255}
	default:
		v := uint8(math.Round(255 * (norm - 2.0/3) * 3))
		return color.RGBA{R: 255, G: 255, B: v, A: 255}
	}
}

func hsvToRGB(h, s, v float64) color.RGBA {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}
