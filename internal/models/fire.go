package models

// FireSample is one validated row of the active-fire CSV.
type FireSample struct {
	Latitude   float64
	Longitude  float64
	Brightness float64
}

// FireSeries holds fire samples as parallel sequences ready for plotting.
// Append is the only way samples enter a series, so Lats, Lons and
// Brightness always have equal length.
type FireSeries struct {
	Lats       []float64
	Lons       []float64
	Brightness []float64
	Skipped    int // rows dropped because a field did not parse
}

func (s *FireSeries) Append(f FireSample) {
	s.Lats = append(s.Lats, f.Latitude)
	s.Lons = append(s.Lons, f.Longitude)
	s.Brightness = append(s.Brightness, f.Brightness)
}

func (s FireSeries) Len() int {
	return len(s.Lats)
}

func (s FireSeries) Empty() bool {
	return s.Len() == 0
}

// Samples rebuilds the row view of the series.
func (s FireSeries) Samples() []FireSample {
	out := make([]FireSample, 0, s.Len())
	for i := range s.Lats {
		out = append(out, FireSample{
			Latitude:   s.Lats[i],
			Longitude:  s.Lons[i],
			Brightness: s.Brightness[i],
		})
	}
	return out
}
