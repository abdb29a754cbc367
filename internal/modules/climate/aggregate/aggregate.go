package aggregate

import (
	"sort"

	"surfsup-server/internal/modules/climate/store"
	"surfsup-server/internal/modules/climate/types"
)

// Stats are temperature statistics over a set of measurements.
type Stats struct {
	Min float64 `json:"min"`
	Avg float64 `json:"avg"`
	Max float64 `json:"max"`
}

type Engine struct {
	store *store.Store
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// ActiveStations returns stations ordered by measurement count, highest first.
// Stations with equal counts are ordered by code.
func (e *Engine) ActiveStations() []store.StationCount {
	counts := e.store.CountByStation()
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// MostActiveStation returns the station with the most measurements. On a tie
// the lexicographically smallest station code wins.
func (e *Engine) MostActiveStation() (string, error) {
	counts := e.ActiveStations()
	if len(counts) == 0 {
		return "", types.ErrNoData
	}
	return counts[0].Station, nil
}

// RangeStats returns min/avg/max temperature over measurements dated on or
// after start and, when end is non-nil, on or before end.
func (e *Engine) RangeStats(start types.Date, end *types.Date) (Stats, error) {
	q := e.store.Measurements().Since(start)
	if end != nil {
		q = q.Until(*end)
	}
	return reduce(q)
}

// StationStats returns min/avg/max temperature over every measurement of one
// station.
func (e *Engine) StationStats(code string) (Stats, error) {
	return reduce(e.store.Measurements().Station(code))
}

func reduce(q store.Query) (Stats, error) {
	var (
		stats Stats
		sum   float64
		n     int
	)
	q.Each(func(m types.Measurement) bool {
		t := m.Temperature
		if n == 0 || t < stats.Min {
			stats.Min = t
		}
		if n == 0 || t > stats.Max {
			stats.Max = t
		}
		sum += t
		n++
		return true
	})
	if n == 0 {
		return Stats{}, types.ErrEmptyRange
	}
	stats.Avg = sum / float64(n)
	return stats, nil
}
