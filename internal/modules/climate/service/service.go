package service

import (
	"surfsup-server/internal/modules/climate/aggregate"
	"surfsup-server/internal/modules/climate/store"
	"surfsup-server/internal/modules/climate/types"
	"surfsup-server/internal/modules/climate/window"
)

// Service answers the climate questions over an immutable Store. It holds no
// mutable state, so one Service can serve any number of concurrent callers.
type Service struct {
	store    *store.Store
	resolver *window.Resolver
	engine   *aggregate.Engine
}

func NewService(s *store.Store) *Service {
	return &Service{
		store:    s,
		resolver: window.NewResolver(s),
		engine:   aggregate.NewEngine(s),
	}
}

// PrecipitationSeries returns precipitation for the last LookbackDays days
// keyed by date. When several stations report on the same date the reading
// latest in load order wins; use PrecipitationReadings to keep all of them.
func (s *Service) PrecipitationSeries() (map[types.Date]*float64, error) {
	w, err := s.resolver.Resolve()
	if err != nil {
		return nil, err
	}
	out := make(map[types.Date]*float64)
	s.store.Measurements().Since(w.Start).Each(func(m types.Measurement) bool {
		out[m.Date] = m.Precipitation
		return true
	})
	return out, nil
}

// PrecipitationReadings returns every precipitation reading in the last
// LookbackDays days, ordered by date.
func (s *Service) PrecipitationReadings() ([]types.PrecipitationReading, error) {
	w, err := s.resolver.Resolve()
	if err != nil {
		return nil, err
	}
	out := store.Project(s.store.Measurements().Since(w.Start), func(m types.Measurement) types.PrecipitationReading {
		return types.PrecipitationReading{Date: m.Date, Station: m.Station, Precipitation: m.Precipitation}
	})
	if out == nil {
		out = []types.PrecipitationReading{}
	}
	return out, nil
}

// StationList returns station codes in dataset order.
func (s *Service) StationList() []string {
	stations := s.store.Stations()
	out := make([]string, 0, len(stations))
	for _, st := range stations {
		out = append(out, st.Code)
	}
	return out
}

// TopStationTemperatureSeries returns the last LookbackDays days of
// temperature observations for the most active station.
func (s *Service) TopStationTemperatureSeries() ([]types.TemperatureObservation, error) {
	w, err := s.resolver.Resolve()
	if err != nil {
		return nil, err
	}
	top, err := s.engine.MostActiveStation()
	if err != nil {
		return nil, err
	}
	q := s.store.Measurements().Station(top).Since(w.Start)
	out := store.Project(q, func(m types.Measurement) types.TemperatureObservation {
		return types.TemperatureObservation{Date: m.Date, Value: m.Temperature}
	})
	if out == nil {
		out = []types.TemperatureObservation{}
	}
	return out, nil
}

// RangeStatistics returns [min, avg, max] temperature from start through end
// (or through the end of the data when end is nil).
func (s *Service) RangeStatistics(start types.Date, end *types.Date) ([]float64, error) {
	stats, err := s.engine.RangeStats(start, end)
	if err != nil {
		return nil, err
	}
	return []float64{stats.Min, stats.Avg, stats.Max}, nil
}

// Summary describes the loaded dataset.
type Summary struct {
	Stations         int                  `json:"stations"`
	Measurements     int                  `json:"measurements"`
	FirstDate        types.Date           `json:"firstDate"`
	LastDate         types.Date           `json:"lastDate"`
	Window           window.Window        `json:"window"`
	MostActive       store.StationCount   `json:"mostActive"`
	MostActiveTemps  aggregate.Stats      `json:"mostActiveTemperature"`
	ActiveByStations []store.StationCount `json:"activity"`
}

func (s *Service) Summary() (Summary, error) {
	w, err := s.resolver.Resolve()
	if err != nil {
		return Summary{}, err
	}
	first, _ := s.store.Measurements().First()
	activity := s.engine.ActiveStations()
	top := activity[0]
	temps, err := s.engine.StationStats(top.Station)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Stations:         s.store.StationCount(),
		Measurements:     s.store.Len(),
		FirstDate:        first.Date,
		LastDate:         w.End,
		Window:           w,
		MostActive:       top,
		MostActiveTemps:  temps,
		ActiveByStations: activity,
	}, nil
}
