package models

// EarthquakeSample is one USGS feature with a known magnitude.
type EarthquakeSample struct {
	Magnitude float64
	Longitude float64
	Latitude  float64
	Title     string
}

// EarthquakeSeries holds earthquake samples as four parallel sequences.
type EarthquakeSeries struct {
	Mags    []float64
	Lons    []float64
	Lats    []float64
	Titles  []string
	Skipped int // features without a magnitude
}

func (s *EarthquakeSeries) Append(e EarthquakeSample) {
	s.Mags = append(s.Mags, e.Magnitude)
	s.Lons = append(s.Lons, e.Longitude)
	s.Lats = append(s.Lats, e.Latitude)
	s.Titles = append(s.Titles, e.Title)
}

func (s EarthquakeSeries) Len() int {
	return len(s.Mags)
}

func (s EarthquakeSeries) Empty() bool {
	return s.Len() == 0
}

func (s EarthquakeSeries) Samples() []EarthquakeSample {
	out := make([]EarthquakeSample, 0, s.Len())
	for i := range s.Mags {
		out = append(out, EarthquakeSample{
			Magnitude: s.Mags[i],
			Longitude: s.Lons[i],
			Latitude:  s.Lats[i],
			Title:     s.Titles[i],
		})
	}
	return out
}
