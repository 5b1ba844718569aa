// Package menu runs the numbered console menu that picks a dataset and plots it.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mr1hm/go-disaster-maps/internal/models"
	"github.com/mr1hm/go-disaster-maps/internal/render"
)

type FireSource interface {
	Load(ctx context.Context) (models.FireSeries, error)
}

type EarthquakeSource interface {
	Load(ctx context.Context) (models.EarthquakeSeries, error)
}

type Menu struct {
	in       *bufio.Reader
	out      io.Writer
	fires    FireSource
	quakes   EarthquakeSource
	renderer render.Renderer
}

func New(in io.Reader, out io.Writer, fires FireSource, quakes EarthquakeSource, renderer render.Renderer) *Menu {
	return &Menu{
		in:       bufio.NewReader(in),
		out:      out,
		fires:    fires,
		quakes:   quakes,
		renderer: renderer,
	}
}

// Run prints the banner and handles choices until the user exits, input ends
// or ctx is done.
func (m *Menu) Run(ctx context.Context) error {
	m.banner()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(m.out, "Enter your choice (1-3): ")
		choice, err := m.readLine()
		if err != nil {
			fmt.Fprintln(m.out)
			fmt.Fprintln(m.out, "Exiting program.")
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			m.plotFires(ctx)
		case "2":
			m.plotEarthquakes(ctx)
		case "3":
			fmt.Fprintln(m.out, "Exiting program.")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please enter 1, 2, or 3.")
		}
	}
}

// readLine returns the next input line without its line ending. Surrounding
// spaces are kept, so " 1" is not a valid choice. A final line without a
// newline is still returned; io.EOF comes only once input is exhausted.
func (m *Menu) readLine() (string, error) {
	line, err := m.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (m *Menu) banner() {
	fmt.Fprintln(m.out, "Global Doomsday Disaster Visualization Program")
	fmt.Fprintln(m.out, "1. Dude thats a lot of Fire Activity")
	fmt.Fprintln(m.out, "2. Dude thats a lot of Earthquakes (Past 24 Hours)")
	fmt.Fprintln(m.out, "3. Exit")
}

func (m *Menu) plotFires(ctx context.Context) {
	series, err := m.fires.Load(ctx)
	if err != nil || series.Empty() {
		fmt.Fprintln(m.out, "No fire data available to plot.")
		return
	}
	m.plot(ctx, render.FirePlot(series))
}

func (m *Menu) plotEarthquakes(ctx context.Context) {
	series, err := m.quakes.Load(ctx)
	if err != nil || series.Empty() {
		fmt.Fprintln(m.out, "No earthquake data available to plot.")
		return
	}
	m.plot(ctx, render.EarthquakePlot(series))
}

func (m *Menu) plot(ctx context.Context, p render.Plot) {
	path, err := m.renderer.ScatterGeo(ctx, p)
	if err != nil {
		fmt.Fprintf(m.out, "Could not save plot: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Plot saved as %s\n", path)
}
