package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"
)

// HTMLRenderer writes standalone plotly pages into a directory.
type HTMLRenderer struct {
	dir         string
	plotlyJSURL string
	clock       clockwork.Clock
}

func NewHTMLRenderer(dir, plotlyJSURL string, clock clockwork.Clock) *HTMLRenderer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HTMLRenderer{
		dir:         dir,
		plotlyJSURL: plotlyJSURL,
		clock:       clock,
	}
}

func (r *HTMLRenderer) ScatterGeo(ctx context.Context, p Plot) (string, error) {
	path, _, err := r.Render(ctx, p)
	return path, err
}

// Render builds the page for p, saves it under the output directory and
// returns the saved path together with the page bytes. Concurrent renders of
// the same title never leave a partially written file behind.
func (r *HTMLRenderer) Render(ctx context.Context, p Plot) (string, []byte, error) {
	if err := ctx.Err(); err != nil {
		return "", nil, &Error{Title: p.Title, Err: err}
	}
	if err := p.Validate(); err != nil {
		return "", nil, &Error{Title: p.Title, Err: err}
	}

	fig, err := json.Marshal(newFigure(p))
	if err != nil {
		return "", nil, &Error{Title: p.Title, Err: fmt.Errorf("error encoding figure: %w", err)}
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, pageData{
		Title:       p.Title,
		PlotlyJSURL: r.plotlyJSURL,
		Figure:      template.JS(fig),
		GeneratedAt: r.clock.Now().UTC().Format(time.RFC3339),
		Points:      len(p.Lons),
	})
	if err != nil {
		return "", nil, &Error{Title: p.Title, Err: fmt.Errorf("error executing template: %w", err)}
	}

	path := filepath.Join(r.dir, Filename(p.Title))
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return "", nil, &Error{Title: p.Title, Err: fmt.Errorf("error writing plot: %w", err)}
	}

	slog.Info("plot saved", "file", path, "points", len(p.Lons))
	return path, buf.Bytes(), nil
}

// writeFileAtomic writes data to a temp file next to path and renames it into
// place, so readers see either the old page or the new one.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// figure is the declarative plotly description: one scattergeo trace.
type figure struct {
	Data   []trace `json:"data"`
	Layout layout  `json:"layout"`
}

type trace struct {
	Type   string   `json:"type"`
	Lon    numbers  `json:"lon"`
	Lat    numbers  `json:"lat"`
	Text   []string `json:"text"`
	Marker marker   `json:"marker"`
}

type marker struct {
	Size         numbers  `json:"size"`
	Color        numbers  `json:"color"`
	Colorscale   string   `json:"colorscale"`
	ReverseScale bool     `json:"reversescale"`
	Colorbar     colorbar `json:"colorbar"`
}

type colorbar struct {
	Title titleText `json:"title"`
}

type layout struct {
	Title titleText `json:"title"`
}

type titleText struct {
	Text string `json:"text"`
}

func newFigure(p Plot) figure {
	text := p.Text
	if text == nil {
		text = []string{}
	}
	return figure{
		Data: []trace{{
			Type: "scattergeo",
			Lon:  p.Lons,
			Lat:  p.Lats,
			Text: text,
			Marker: marker{
				Size:         MarkerSizes(p.Values, p.ColorbarTitle),
				Color:        p.Values,
				Colorscale:   p.Colorscale,
				ReverseScale: p.ReverseScale,
				Colorbar:     colorbar{Title: titleText{Text: p.ColorbarTitle}},
			},
		}},
		Layout: layout{Title: titleText{Text: p.Title}},
	}
}

// numbers encodes NaN and infinities as null, which plotly treats as a gap.
type numbers []float64

func (n numbers) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 2+len(n)*8)
	buf = append(buf, '[')
	for i, v := range n {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
	}
	return append(buf, ']'), nil
}

type pageData struct {
	Title       string
	PlotlyJSURL string
	Figure      template.JS
	GeneratedAt string
	Points      int
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.PlotlyJSURL}}"></script>
<style>html, body, #plot { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="plot"></div>
<footer>{{.Points}} points, generated {{.GeneratedAt}}</footer>
<script>
var figure = {{.Figure}};
Plotly.newPlot("plot", figure.data, figure.layout, {responsive: true});
</script>
</body>
</html>
`))
