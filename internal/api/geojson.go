package api

import (
	"github.com/mr1hm/go-disaster-maps/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [lon, lat]
}

func pointFeature(c models.Coordinates, props map[string]any) Feature {
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: []float64{c.Longitude, c.Latitude},
		},
		Properties: props,
	}
}

func firesToGeoJSON(s models.FireSeries) FeatureCollection {
	features := make([]Feature, 0, s.Len())
	for _, f := range s.Samples() {
		features = append(features, pointFeature(f.Coordinates(), map[string]any{
			"brightness": f.Brightness,
		}))
	}
	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

func earthquakesToGeoJSON(s models.EarthquakeSeries) FeatureCollection {
	features := make([]Feature, 0, s.Len())
	for _, e := range s.Samples() {
		features = append(features, pointFeature(e.Coordinates(), map[string]any{
			"mag":   e.Magnitude,
			"title": e.Title,
		}))
	}
	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
