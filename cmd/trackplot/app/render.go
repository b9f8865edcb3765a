package app

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

const (
	dpi            = 120.0
	fontSize       = 12.0
	tickMarkLength = 5
	pixelsPerLabel = 150.0

	// Plot area in pixels, before borders.
	plotWidth  = 900
	plotHeight = 900

	// Default border sizes in pixels
	defaultTopBorder    = 40
	defaultLeftBorder   = 90
	defaultBottomBorder = 40
	defaultRightBorder  = 40

	defaultDatetimeFormat = time.DateTime
)

// BorderConfig defines the sizes of white space around the plot area
type BorderConfig struct {
	Top    int // Space for longitude scale
	Left   int // Space for latitude scale
	Bottom int // Space for information bar
	Right  int // Right padding
}

// RenderConfig holds all configuration options for track visualization
type RenderConfig struct {
	DatetimeFormat string         // Format string for date/time display
	Location       *time.Location // Timezone for time display

	FontSize float64    // Font size in points
	Theme    ColorTheme // Color scheme for altitude values
	FontPath string     // Path to the TTF font used for annotations

	// Target coordinate to mark, nil when no marker is wanted.
	TargetLat *float64
	TargetLon *float64

	BorderConfig BorderConfig
}

// TrackRenderer draws a recorded ground track as a top-down lat/lon plot,
// coloring the track by altitude.
type TrackRenderer struct {
	config RenderConfig
	colors altitudeColor
}

// NewTrackRenderer creates a new track renderer with the given configuration
func NewTrackRenderer(config RenderConfig) (*TrackRenderer, error) {
	if config.DatetimeFormat == "" {
		config.DatetimeFormat = defaultDatetimeFormat
	}
	if config.Location == nil {
		config.Location = time.Local
	}
	if config.FontSize == 0 {
		config.FontSize = fontSize
	}
	if config.BorderConfig.Top == 0 {
		config.BorderConfig.Top = defaultTopBorder
	}
	if config.BorderConfig.Left == 0 {
		config.BorderConfig.Left = defaultLeftBorder
	}
	if config.BorderConfig.Bottom == 0 {
		config.BorderConfig.Bottom = defaultBottomBorder
	}
	if config.BorderConfig.Right == 0 {
		config.BorderConfig.Right = defaultRightBorder
	}

	return &TrackRenderer{
		config: config,
		colors: themeFunc(config.Theme),
	}, nil
}

// Render creates an image of the track data with annotations
func (r *TrackRenderer) Render(data *TrackData) (*image.RGBA, error) {
	if r.config.TargetLat != nil && r.config.TargetLon != nil {
		data.expandBounds(*r.config.TargetLat, *r.config.TargetLon)
	}

	fullWidth := plotWidth + r.config.BorderConfig.Left + r.config.BorderConfig.Right
	fullHeight := plotHeight + r.config.BorderConfig.Top + r.config.BorderConfig.Bottom
	img := image.NewRGBA(image.Rect(0, 0, fullWidth, fullHeight))

	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	plotArea := image.Rect(
		r.config.BorderConfig.Left,
		r.config.BorderConfig.Top,
		r.config.BorderConfig.Left+plotWidth,
		r.config.BorderConfig.Top+plotHeight,
	)

	proj := newProjection(data, plotArea)

	ann, err := newAnnotator(annotatorConfig{
		DatetimeFormat: r.config.DatetimeFormat,
		Location:       r.config.Location,
		FontSize:       r.config.FontSize,
		FontPath:       r.config.FontPath,
		Borders:        r.config.BorderConfig,
	})
	if err != nil {
		return nil, fmt.Errorf("creating annotator: %w", err)
	}
	defer ann.Close()

	if err = ann.annotate(img, data, proj); err != nil {
		return nil, fmt.Errorf("drawing annotations: %w", err)
	}

	r.renderTrack(img, data, proj)
	r.renderAttempts(img, data, proj)

	if r.config.TargetLat != nil && r.config.TargetLon != nil {
		x, y := proj.toPixel(*r.config.TargetLat, *r.config.TargetLon)
		drawCrosshair(img, x, y, 8, color.RGBA{R: 255, A: 255})
	}

	return img, nil
}

// renderTrack draws the ground track as connected segments colored by the
// altitude at each point.
func (r *TrackRenderer) renderTrack(img *image.RGBA, data *TrackData, proj *projection) {
	prevX, prevY := 0, 0
	for i, p := range data.Points {
		x, y := proj.toPixel(p.Latitude, p.Longitude)
		c := r.colors(data.AltNorm(p.Altitude))

		if i > 0 {
			drawLine(img, prevX, prevY, x, y, c)
		}
		drawDot(img, x, y, 1, c)
		prevX, prevY = x, y
	}
}

// renderAttempts marks the predicted impact point of each correction attempt.
func (r *TrackRenderer) renderAttempts(img *image.RGBA, data *TrackData, proj *projection) {
	marker := color.RGBA{B: 255, A: 255}
	for _, a := range data.Attempts {
		if a.PredictedLat == nil || a.PredictedLon == nil {
			continue
		}
		x, y := proj.toPixel(*a.PredictedLat, *a.PredictedLon)
		drawCrosshair(img, x, y, 4, marker)
	}
}

// projection maps lat/lon coordinates into the plot area, with a small
// margin so the track does not touch the borders. Latitude grows upward.
type projection struct {
	area           image.Rectangle
	minLat, maxLat float64
	minLon, maxLon float64
}

func newProjection(data *TrackData, area image.Rectangle) *projection {
	latSpan := data.MaxLat - data.MinLat
	lonSpan := data.MaxLon - data.MinLon

	// Degenerate tracks (hover, vertical drop) still need a non-zero span.
	if latSpan <= 0 {
		latSpan = 0.01
	}
	if lonSpan <= 0 {
		lonSpan = 0.01
	}

	margin := 0.05
	return &projection{
		area:   area,
		minLat: data.MinLat - latSpan*margin,
		maxLat: data.MaxLat + latSpan*margin,
		minLon: data.MinLon - lonSpan*margin,
		maxLon: data.MaxLon + lonSpan*margin,
	}
}

func (p *projection) toPixel(lat, lon float64) (x, y int) {
	xRatio := (lon - p.minLon) / (p.maxLon - p.minLon)
	yRatio := (lat - p.minLat) / (p.maxLat - p.minLat)

	x = p.area.Min.X + int(xRatio*float64(p.area.Dx()))
	y = p.area.Max.Y - int(yRatio*float64(p.area.Dy()))
	return x, y
}

// Internal annotator implementation
type annotatorConfig struct {
	DatetimeFormat string
	Location       *time.Location
	FontSize       float64
	FontPath       string
	Borders        BorderConfig
}

type annotator struct {
	context  *freetype.Context
	config   annotatorConfig
	fontFace font.Face
}

func newAnnotator(config annotatorConfig) (*annotator, error) {
	fontBytes, err := os.ReadFile(config.FontPath)
	if err != nil {
		return nil, fmt.Errorf("reading font file: %w", err)
	}

	parsedFont, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(parsedFont)
	ctx.SetFontSize(config.FontSize)
	ctx.SetHinting(font.HintingNone)
	ctx.SetSrc(image.Black)

	return &annotator{
		context: ctx,
		config:  config,
		fontFace: truetype.NewFace(parsedFont, &truetype.Options{
			Size:    config.FontSize,
			DPI:     dpi,
			Hinting: font.HintingNone,
		}),
	}, nil
}

func (a *annotator) Close() error {
	if a.fontFace != nil {
		return a.fontFace.Close()
	}
	return nil
}

func (a *annotator) annotate(img *image.RGBA, data *TrackData, proj *projection) error {
	a.context.SetClip(img.Bounds())
	a.context.SetDst(img)

	if err := a.drawLongitudeScale(img, proj); err != nil {
		return fmt.Errorf("drawing longitude scale: %w", err)
	}
	if err := a.drawLatitudeScale(img, proj); err != nil {
		return fmt.Errorf("drawing latitude scale: %w", err)
	}
	if err := a.drawInfoBar(img, data); err != nil {
		return fmt.Errorf("drawing info bar: %w", err)
	}

	return nil
}

func (a *annotator) drawLongitudeScale(img *image.RGBA, proj *projection) error {
	step := calculateNiceDegreeStep(proj.maxLon-proj.minLon, proj.area.Dx())
	start := math.Ceil(proj.minLon/step) * step

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()
	textY := a.config.Borders.Top - fontHeight/2

	for lon := start; lon <= proj.maxLon; lon += step {
		x, _ := proj.toPixel(proj.minLat, lon)

		for y := a.config.Borders.Top - tickMarkLength; y < a.config.Borders.Top; y++ {
			img.Set(x, y, color.Black)
		}

		label := formatDegrees(lon)
		width := font.MeasureString(a.fontFace, label)
		pt := freetype.Pt(x-(width.Round()/2), textY)
		if _, err := a.context.DrawString(label, pt); err != nil {
			return fmt.Errorf("drawing longitude label: %w", err)
		}
	}
	return nil
}

func (a *annotator) drawLatitudeScale(img *image.RGBA, proj *projection) error {
	step := calculateNiceDegreeStep(proj.maxLat-proj.minLat, proj.area.Dy())
	start := math.Ceil(proj.minLat/step) * step

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()

	for lat := start; lat <= proj.maxLat; lat += step {
		_, y := proj.toPixel(lat, proj.minLon)

		for x := a.config.Borders.Left - tickMarkLength; x < a.config.Borders.Left; x++ {
			img.Set(x, y, color.Black)
		}

		textY := y + fontHeight/2 - metrics.Descent.Round()
		pt := freetype.Pt(10, textY)
		if _, err := a.context.DrawString(formatDegrees(lat), pt); err != nil {
			return fmt.Errorf("drawing latitude label: %w", err)
		}
	}
	return nil
}

func (a *annotator) drawInfoBar(img *image.RGBA, data *TrackData) error {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Alt: %s - %s", formatAltitude(data.MinAlt), formatAltitude(data.MaxAlt)))
	sb.WriteString("; ")
	sb.WriteString(fmt.Sprintf("Time: %s - %s",
		data.StartTime.In(a.config.Location).Format(a.config.DatetimeFormat),
		data.EndTime.In(a.config.Location).Format(a.config.DatetimeFormat)))
	sb.WriteString("; ")
	sb.WriteString(fmt.Sprintf("Corrections: %d", len(data.Attempts)))

	metrics := a.fontFace.Metrics()
	fontHeight := (metrics.Ascent + metrics.Descent).Round()

	textY := img.Bounds().Max.Y - (a.config.Borders.Bottom-fontHeight)/2 - metrics.Descent.Round()

	pt := freetype.Pt(a.config.Borders.Left, textY)
	if _, err := a.context.DrawString(sb.String(), pt); err != nil {
		return fmt.Errorf("drawing info text: %w", err)
	}

	return nil
}

// Helper functions

func calculateNiceDegreeStep(span float64, pixels int) float64 {
	// Standard step sizes in degrees
	steps := []float64{
		0.001,
		0.005,
		0.01,
		0.05,
		0.1,
		0.5,
		1,
		5,
		10,
	}

	desiredSteps := float64(pixels) / pixelsPerLabel
	targetStep := span / desiredSteps

	for _, step := range steps {
		if step >= targetStep {
			if span/step >= 2 {
				return step
			}
			break
		}
	}

	return span / 2
}

func formatDegrees(deg float64) string {
	return fmt.Sprintf("%.3f°", deg)
}

func formatAltitude(meters float64) string {
	v, suffix := humanize.ComputeSI(meters)
	return fmt.Sprintf("%.1f %sm", v, suffix)
}

func drawDot(img *image.RGBA, cx, cy, radius int, c color.Color) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				img.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

func drawCrosshair(img *image.RGBA, cx, cy, size int, c color.Color) {
	for d := -size; d <= size; d++ {
		img.Set(cx+d, cy, c)
		img.Set(cx, cy+d, c)
	}
}

// drawLine draws a straight segment using integer Bresenham stepping.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
