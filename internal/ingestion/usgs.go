package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mr1hm/go-disaster-maps/internal/models"
)

const earthquakeSource = "earthquake"

type usgsResponse struct {
	Features []usgsFeature `json:"features"`
}

type usgsFeature struct {
	ID         string          `json:"id"`
	Properties *usgsProperties `json:"properties"`
	Geometry   *usgsGeometry   `json:"geometry"`
}
type usgsProperties struct {
	Mag   *float64       `json:"mag"` // null for some events
	Title optionalString `json:"title"`
}
type usgsGeometry struct {
	Coordinates []*float64 `json:"coordinates"` // [lon, lat, depth]
}

// optionalString records whether the key was present at all. An explicit
// null is present and decodes to "".
type optionalString struct {
	present bool
	value   string
}

func (s *optionalString) UnmarshalJSON(b []byte) error {
	s.present = true
	if string(b) == "null" {
		s.value = ""
		return nil
	}
	return json.Unmarshal(b, &s.value)
}

// EarthquakeLoader fetches the USGS daily summary feed.
type EarthquakeLoader struct {
	transport Transport
	url       string
}

func NewEarthquakeLoader(transport Transport, url string) *EarthquakeLoader {
	return &EarthquakeLoader{
		transport: transport,
		url:       url,
	}
}

func (l *EarthquakeLoader) Load(ctx context.Context) (models.EarthquakeSeries, error) {
	body, err := l.transport.Get(ctx, l.url)
	if err != nil {
		err = newLoadError(earthquakeSource, KindTransport, err)
		logLoadFailure(err)
		return models.EarthquakeSeries{}, err
	}

	series, err := ParseEarthquakeGeoJSON(bytes.NewReader(body))
	if err != nil {
		logLoadFailure(err)
		return series, err
	}

	slog.Info("earthquake data loaded", "count", series.Len(), "skipped", series.Skipped)
	return series, nil
}

// ParseEarthquakeGeoJSON extracts magnitude, position and title from every
// feature. Features whose magnitude is null are skipped and a null title reads
// as "". Any other structural defect fails the whole document.
func ParseEarthquakeGeoJSON(r io.Reader) (models.EarthquakeSeries, error) {
	var data usgsResponse
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return models.EarthquakeSeries{}, newLoadError(earthquakeSource, KindSchema, fmt.Errorf("error decoding body: %w", err))
	}
	if data.Features == nil {
		return models.EarthquakeSeries{}, newLoadError(earthquakeSource, KindSchema, errors.New("missing features"))
	}

	var series models.EarthquakeSeries
	for i, f := range data.Features {
		if f.Properties == nil {
			return models.EarthquakeSeries{}, featureError(i, f.ID, "missing properties")
		}
		if f.Properties.Mag == nil {
			series.Skipped++
			continue
		}
		if f.Geometry == nil || len(f.Geometry.Coordinates) < 2 ||
			f.Geometry.Coordinates[0] == nil || f.Geometry.Coordinates[1] == nil {
			return models.EarthquakeSeries{}, featureError(i, f.ID, "coordinates need longitude and latitude")
		}
		if !f.Properties.Title.present {
			return models.EarthquakeSeries{}, featureError(i, f.ID, "missing title")
		}

		series.Append(models.EarthquakeSample{
			Magnitude: *f.Properties.Mag,
			Longitude: *f.Geometry.Coordinates[0],
			Latitude:  *f.Geometry.Coordinates[1],
			Title:     f.Properties.Title.value,
		})
	}

	if series.Empty() {
		return series, newLoadError(earthquakeSource, KindEmpty, fmt.Errorf("no features with magnitude (%d skipped)", series.Skipped))
	}

	return series, nil
}

func featureError(i int, id, msg string) error {
	return newLoadError(earthquakeSource, KindSchema, fmt.Errorf("feature %d (%q): %s", i, id, msg))
}
