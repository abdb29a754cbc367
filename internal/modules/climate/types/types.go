package types

type Station struct {
	Code      string  `json:"station"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation"`
}

// Measurement is one daily observation at a station. Precipitation is nil when
// the station did not report it for that day.
type Measurement struct {
	Station       string   `json:"station"`
	Date          Date     `json:"date"`
	Precipitation *float64 `json:"prcp"`
	Temperature   float64  `json:"tobs"`
}

type PrecipitationReading struct {
	Date          Date     `json:"date"`
	Station       string   `json:"station"`
	Precipitation *float64 `json:"prcp"`
}

type TemperatureObservation struct {
	Date  Date    `json:"date"`
	Value float64 `json:"value"`
}
