package models

type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (e EarthquakeSample) Coordinates() Coordinates {
	return Coordinates{
		Latitude:  e.Latitude,
		Longitude: e.Longitude,
	}
}

func (f FireSample) Coordinates() Coordinates {
	return Coordinates{
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
	}
}
