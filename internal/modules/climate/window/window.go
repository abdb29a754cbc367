package window

import (
	"surfsup-server/internal/modules/climate/store"
	"surfsup-server/internal/modules/climate/types"
)

// LookbackDays is the length of the trailing "last 12 months" window. It is a
// fixed number of days, not a calendar year.
const LookbackDays = 365

// Window is the inclusive date range [Start, End].
type Window struct {
	Start types.Date `json:"start"`
	End   types.Date `json:"end"`
}

type Resolver struct {
	store *store.Store
}

func NewResolver(s *store.Store) *Resolver {
	return &Resolver{store: s}
}

// MostRecentDate returns the latest observation date in the dataset.
func (r *Resolver) MostRecentDate() (types.Date, error) {
	latest, ok := r.store.Measurements().Descending().First()
	if !ok {
		return types.Date{}, types.ErrNoData
	}
	return latest.Date, nil
}

// Start returns ref minus days calendar days.
func Start(ref types.Date, days int) types.Date {
	return ref.AddDays(-days)
}

// Resolve returns the LookbackDays window ending on the most recent date.
func (r *Resolver) Resolve() (Window, error) {
	end, err := r.MostRecentDate()
	if err != nil {
		return Window{}, err
	}
	return Window{Start: Start(end, LookbackDays), End: end}, nil
}
