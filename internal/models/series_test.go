package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFireSeries_AppendKeepsSequencesAligned(t *testing.T) {
	var s FireSeries
	assert.True(t, s.Empty())

	s.Append(FireSample{Latitude: 1, Longitude: 2, Brightness: 300})
	s.Append(FireSample{Latitude: 3, Longitude: 4, Brightness: 310})

	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{1, 3}, s.Lats)
	assert.Equal(t, []float64{2, 4}, s.Lons)
	assert.Equal(t, []float64{300, 310}, s.Brightness)
	assert.Equal(t, []FireSample{
		{Latitude: 1, Longitude: 2, Brightness: 300},
		{Latitude: 3, Longitude: 4, Brightness: 310},
	}, s.Samples())
}

func TestEarthquakeSeries_AppendKeepsSequencesAligned(t *testing.T) {
	var s EarthquakeSeries
	s.Append(EarthquakeSample{Magnitude: 2.5, Longitude: -150, Latitude: 60, Title: "a"})
	s.Append(EarthquakeSample{Magnitude: 5.1, Longitude: 140, Latitude: 35, Title: "b"})

	assert.Equal(t, 2, s.Len())
	assert.Len(t, s.Lons, 2)
	assert.Len(t, s.Lats, 2)
	assert.Equal(t, []string{"a", "b"}, s.Titles)

	samples := s.Samples()
	assert.Equal(t, Coordinates{Latitude: 35, Longitude: 140}, samples[1].Coordinates())
}
