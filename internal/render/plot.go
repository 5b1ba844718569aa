// Package render turns parallel coordinate/value sequences into scatter-geo
// map files.
package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mr1hm/go-disaster-maps/internal/models"
)

// magnitudeLabel is the colorbar label that switches markers to
// value-proportional sizes. Every other label gets fixed-size markers.
const magnitudeLabel = "Magnitude"

const (
	fixedMarkerSize = 10.0
	minMarkerSize   = 5.0
	magnitudeScale  = 5.0
	fileExtension   = ".html"
)

// Plot describes one scatter-geo map. Lons, Lats and Values are parallel;
// Text is either empty or parallel to them.
type Plot struct {
	Lons          []float64
	Lats          []float64
	Values        []float64
	Title         string
	ColorbarTitle string
	Colorscale    string
	ReverseScale  bool
	Text          []string
}

// Renderer writes a plot somewhere and returns where.
type Renderer interface {
	ScatterGeo(ctx context.Context, p Plot) (string, error)
}

var ErrInvalidPlot = errors.New("invalid plot")

type Error struct {
	Title string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render %q: %v", e.Title, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (p Plot) Validate() error {
	n := len(p.Lons)
	if len(p.Lats) != n || len(p.Values) != n {
		return fmt.Errorf("%w: %d longitudes, %d latitudes, %d values", ErrInvalidPlot, n, len(p.Lats), len(p.Values))
	}
	if len(p.Text) != 0 && len(p.Text) != n {
		return fmt.Errorf("%w: %d hover texts for %d points", ErrInvalidPlot, len(p.Text), n)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: empty title", ErrInvalidPlot)
	}
	return nil
}

// MarkerSizes applies the presentation rule for marker sizes: magnitude plots
// scale linearly with a floor so small events stay visible; every other plot
// uses one fixed size.
func MarkerSizes(values []float64, colorbarTitle string) []float64 {
	sizes := make([]float64, len(values))
	for i, v := range values {
		if colorbarTitle == magnitudeLabel {
			sizes[i] = max(magnitudeScale*v, minMarkerSize)
		} else {
			sizes[i] = fixedMarkerSize
		}
	}
	return sizes
}

// Filename derives the output file name from a plot title. Equal titles map to
// the same file.
func Filename(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "_") + fileExtension
}

const (
	FireTitle       = "Global Fire Activity"
	EarthquakeTitle = "Global Earthquakes (Past 24 Hours)"
)

func FirePlot(s models.FireSeries) Plot {
	return Plot{
		Lons:          s.Lons,
		Lats:          s.Lats,
		Values:        s.Brightness,
		Title:         FireTitle,
		ColorbarTitle: "Brightness",
		Colorscale:    "YlOrRd",
		ReverseScale:  false,
	}
}

func EarthquakePlot(s models.EarthquakeSeries) Plot {
	return Plot{
		Lons:          s.Lons,
		Lats:          s.Lats,
		Values:        s.Mags,
		Title:         EarthquakeTitle,
		ColorbarTitle: magnitudeLabel,
		Colorscale:    "Viridis",
		ReverseScale:  true,
		Text:          s.Titles,
	}
}
