package ingestion

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/mr1hm/go-disaster-maps/internal/models"
)

const fireSource = "fire"

// FireLoader downloads the active-fire CSV, stores the raw bytes in a local
// cache file and parses that file.
type FireLoader struct {
	transport Transport
	url       string
	cachePath string

	// guards the cache file between concurrent loads
	mu sync.Mutex
}

func NewFireLoader(transport Transport, url, cachePath string) *FireLoader {
	return &FireLoader{
		transport: transport,
		url:       url,
		cachePath: cachePath,
	}
}

// Load returns the parsed fire series. On any failure it logs once and returns
// a series with no samples together with a *LoadError.
func (l *FireLoader) Load(ctx context.Context) (models.FireSeries, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	series, err := l.load(ctx)
	if err != nil {
		logLoadFailure(err)
		return series, err
	}

	slog.Info("fire data loaded", "count", series.Len(), "skipped", series.Skipped, "cache", l.cachePath)
	return series, nil
}

func (l *FireLoader) load(ctx context.Context) (models.FireSeries, error) {
	body, err := l.transport.Get(ctx, l.url)
	if err != nil {
		return models.FireSeries{}, newLoadError(fireSource, KindTransport, err)
	}

	if err := os.WriteFile(l.cachePath, body, 0o644); err != nil {
		return models.FireSeries{}, newLoadError(fireSource, KindIO, fmt.Errorf("error writing cache file: %w", err))
	}

	f, err := os.Open(l.cachePath)
	if err != nil {
		return models.FireSeries{}, newLoadError(fireSource, KindIO, fmt.Errorf("error opening cache file: %w", err))
	}
	defer f.Close()

	return ParseFireCSV(f)
}

// ParseFireCSV reads a CSV whose header names latitude, longitude and
// brightness columns in any order. Rows where any of the three fields is not
// a number are dropped and counted in Skipped.
func ParseFireCSV(r io.Reader) (models.FireSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return models.FireSeries{}, newLoadError(fireSource, KindSchema, errors.New("missing header row"))
	}
	if err != nil {
		return models.FireSeries{}, newLoadError(fireSource, KindSchema, fmt.Errorf("error reading header: %w", err))
	}

	cols, err := resolveFireColumns(header)
	if err != nil {
		return models.FireSeries{}, newLoadError(fireSource, KindSchema, err)
	}

	var (
		series  models.FireSeries
		readErr error
	)
	for sample := range parseFireRows(records(cr, &readErr), cols, &series.Skipped) {
		series.Append(sample)
	}
	if readErr != nil {
		return models.FireSeries{}, newLoadError(fireSource, KindIO, fmt.Errorf("error reading rows: %w", readErr))
	}
	if series.Empty() {
		return series, newLoadError(fireSource, KindEmpty, fmt.Errorf("no valid rows (%d skipped)", series.Skipped))
	}

	return series, nil
}

type fireColumns struct {
	lat, lon, brightness int
}

func resolveFireColumns(header []string) (fireColumns, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	var missing []string
	lookup := func(name string) int {
		i, ok := index[name]
		if !ok {
			missing = append(missing, name)
		}
		return i
	}

	cols := fireColumns{
		lat:        lookup("latitude"),
		lon:        lookup("longitude"),
		brightness: lookup("brightness"),
	}
	if len(missing) > 0 {
		return fireColumns{}, fmt.Errorf("CSV file does not contain expected columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func (c fireColumns) sample(record []string) (models.FireSample, bool) {
	lat, ok := parseField(record, c.lat)
	if !ok {
		return models.FireSample{}, false
	}
	lon, ok := parseField(record, c.lon)
	if !ok {
		return models.FireSample{}, false
	}
	brightness, ok := parseField(record, c.brightness)
	if !ok {
		return models.FireSample{}, false
	}
	return models.FireSample{Latitude: lat, Longitude: lon, Brightness: brightness}, true
}

func parseField(record []string, i int) (float64, bool) {
	if i >= len(record) {
		return 0, false
	}
	return parseNumber(record[i])
}

// parseNumber reads a decimal field. Surrounding whitespace, "_" between
// digits and the inf/nan spellings are accepted. Exponents past the float64
// range saturate to ±Inf or 0. Hex floats are rejected.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	unsigned := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(unsigned, "0x") || strings.HasPrefix(unsigned, "0X") {
		return 0, false
	}
	if strings.Contains(s, "_") {
		if !underscoresBetweenDigits(s) {
			return 0, false
		}
		s = strings.ReplaceAll(s, "_", "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

func underscoresBetweenDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '_' {
			continue
		}
		if i == 0 || i == len(s)-1 || !isDigit(s[i-1]) || !isDigit(s[i+1]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// records yields CSV records until EOF. Malformed lines are yielded as nil so
// the parse stage counts them as skipped; any other read error stops the
// sequence and is stored in errp.
func records(cr *csv.Reader, errp *error) iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for {
			record, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				var pe *csv.ParseError
				if !errors.As(err, &pe) {
					*errp = err
					return
				}
				record = nil
			}
			if !yield(record) {
				return
			}
		}
	}
}

func parseFireRows(rows iter.Seq[[]string], cols fireColumns, skipped *int) iter.Seq[models.FireSample] {
	return func(yield func(models.FireSample) bool) {
		for record := range rows {
			sample, ok := cols.sample(record)
			if !ok {
				*skipped++
				continue
			}
			if !yield(sample) {
				return
			}
		}
	}
}

func logLoadFailure(err error) {
	var le *LoadError
	if !errors.As(err, &le) {
		slog.Error("load failed", "error", err)
		return
	}
	if le.Kind == KindEmpty {
		slog.Warn("no data to plot", "source", le.Source, "error", le.Err)
		return
	}
	slog.Error("load failed", "source", le.Source, "kind", le.Kind.String(), "error", le.Err)
}
