// Package store holds the climate dataset in memory. A Store is built once and
// never modified, so every method is safe for concurrent use without locking.
package store

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"surfsup-server/internal/modules/climate/types"
)

// Source is where a Store gets its records from.
type Source interface {
	Stations(ctx context.Context) ([]types.Station, error)
	Measurements(ctx context.Context) ([]types.Measurement, error)
}

type StationCount struct {
	Station string `json:"station"`
	Count   int    `json:"count"`
}

type Store struct {
	stations []types.Station
	// sorted by date ascending; equal dates keep load order
	measurements []types.Measurement
	counts       []StationCount
}

// Load reads stations and measurements from src concurrently and builds a Store.
func Load(ctx context.Context, src Source) (*Store, error) {
	var (
		stations     []types.Station
		measurements []types.Measurement
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stations, err = src.Stations(gCtx)
		if err != nil {
			return fmt.Errorf("load stations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		measurements, err = src.Measurements(gCtx)
		if err != nil {
			return fmt.Errorf("load measurements: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return New(stations, measurements), nil
}

// New builds a Store from copies of the given records.
func New(stations []types.Station, measurements []types.Measurement) *Store {
	s := &Store{
		stations:     slices.Clone(stations),
		measurements: slices.Clone(measurements),
	}
	sort.SliceStable(s.measurements, func(i, j int) bool {
		return s.measurements[i].Date.Before(s.measurements[j].Date)
	})

	byStation := make(map[string]int)
	for _, m := range s.measurements {
		byStation[m.Station]++
	}
	s.counts = make([]StationCount, 0, len(byStation))
	for code, n := range byStation {
		s.counts = append(s.counts, StationCount{Station: code, Count: n})
	}
	sort.Slice(s.counts, func(i, j int) bool { return s.counts[i].Station < s.counts[j].Station })

	return s
}

// Stations returns every station in load order.
func (s *Store) Stations() []types.Station {
	return slices.Clone(s.stations)
}

func (s *Store) StationCount() int {
	return len(s.stations)
}

// Len returns the number of measurements.
func (s *Store) Len() int {
	return len(s.measurements)
}

// CountByStation groups measurements by station code, ordered by code.
func (s *Store) CountByStation() []StationCount {
	return slices.Clone(s.counts)
}

// Measurements starts a query over all measurements.
func (s *Store) Measurements() Query {
	return Query{store: s}
}

// lowerBound is the index of the first measurement dated on or after d.
func (s *Store) lowerBound(d types.Date) int {
	return sort.Search(len(s.measurements), func(i int) bool {
		return !s.measurements[i].Date.Before(d)
	})
}

// upperBound is the index just past the last measurement dated on or before d.
func (s *Store) upperBound(d types.Date) int {
	return sort.Search(len(s.measurements), func(i int) bool {
		return s.measurements[i].Date.After(d)
	})
}
