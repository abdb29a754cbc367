package store

import "surfsup-server/internal/modules/climate/types"

// Query is an immutable filter over a Store's measurements. Each method returns
// a new Query, so a Query can be shared and extended freely.
type Query struct {
	store      *Store
	since      *types.Date
	until      *types.Date
	station    string
	hasStation bool
	descending bool
}

// Since keeps measurements dated on or after d.
func (q Query) Since(d types.Date) Query {
	q.since = &d
	return q
}

// Until keeps measurements dated on or before d.
func (q Query) Until(d types.Date) Query {
	q.until = &d
	return q
}

func (q Query) Station(code string) Query {
	q.station = code
	q.hasStation = true
	return q
}

// Descending orders results by date, newest first. Measurements sharing a date
// come out in reverse load order.
func (q Query) Descending() Query {
	q.descending = true
	return q
}

// Each calls fn for every matching measurement in order until fn returns false.
func (q Query) Each(fn func(types.Measurement) bool) {
	lo, hi := q.bounds()
	ms := q.store.measurements
	if q.descending {
		for i := hi - 1; i >= lo; i-- {
			if q.match(ms[i]) && !fn(ms[i]) {
				return
			}
		}
		return
	}
	for i := lo; i < hi; i++ {
		if q.match(ms[i]) && !fn(ms[i]) {
			return
		}
	}
}

func (q Query) All() []types.Measurement {
	var out []types.Measurement
	q.Each(func(m types.Measurement) bool {
		out = append(out, m)
		return true
	})
	return out
}

func (q Query) Count() int {
	n := 0
	q.Each(func(types.Measurement) bool {
		n++
		return true
	})
	return n
}

// First returns the first matching measurement in query order.
func (q Query) First() (types.Measurement, bool) {
	var (
		out   types.Measurement
		found bool
	)
	q.Each(func(m types.Measurement) bool {
		out, found = m, true
		return false
	})
	return out, found
}

// Project maps every matching measurement through fn, preserving query order.
func Project[T any](q Query, fn func(types.Measurement) T) []T {
	var out []T
	q.Each(func(m types.Measurement) bool {
		out = append(out, fn(m))
		return true
	})
	return out
}

func (q Query) bounds() (int, int) {
	lo, hi := 0, len(q.store.measurements)
	if q.since != nil {
		lo = q.store.lowerBound(*q.since)
	}
	if q.until != nil {
		hi = q.store.upperBound(*q.until)
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

func (q Query) match(m types.Measurement) bool {
	return !q.hasStation || m.Station == q.station
}
