package window

import (
	"errors"
	"testing"

	"surfsup-server/internal/modules/climate/store"
	"surfsup-server/internal/modules/climate/types"
)

func TestMostRecentDate(t *testing.T) {
	s := store.New(nil, []types.Measurement{
		{Station: "A", Date: types.MustParseDate("2016-01-01")},
		{Station: "B", Date: types.MustParseDate("2017-08-23")},
		{Station: "A", Date: types.MustParseDate("2017-08-18")},
		{Station: "C", Date: types.MustParseDate("2010-01-01")},
	})

	got, err := NewResolver(s).MostRecentDate()
	if err != nil {
		t.Fatalf("MostRecentDate: %v", err)
	}
	if got != types.MustParseDate("2017-08-23") {
		t.Errorf("MostRecentDate = %v, want 2017-08-23", got)
	}
}

func TestMostRecentDate_Empty(t *testing.T) {
	_, err := NewResolver(store.New(nil, nil)).MostRecentDate()
	if !errors.Is(err, types.ErrNoData) {
		t.Fatalf("err = %v, want ErrNoData", err)
	}

	if _, err := NewResolver(store.New(nil, nil)).Resolve(); !errors.Is(err, types.ErrNoData) {
		t.Fatalf("Resolve err = %v, want ErrNoData", err)
	}
}

func TestStart(t *testing.T) {
	tests := []struct {
		ref  string
		days int
		want string
	}{
		{ref: "2017-08-23", days: LookbackDays, want: "2016-08-23"},
		{ref: "2016-08-23", days: LookbackDays, want: "2015-08-24"},
		{ref: "2017-02-28", days: LookbackDays, want: "2016-02-29"},
		{ref: "2017-08-23", days: 0, want: "2017-08-23"},
		{ref: "2017-01-01", days: 1, want: "2016-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got := Start(types.MustParseDate(tt.ref), tt.days)
			if got.String() != tt.want {
				t.Errorf("Start(%s, %d) = %s, want %s", tt.ref, tt.days, got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	s := store.New(nil, []types.Measurement{
		{Station: "A", Date: types.MustParseDate("2017-08-23")},
	})

	w, err := NewResolver(s).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if w.Start.String() != "2016-08-23" || w.End.String() != "2017-08-23" {
		t.Errorf("window = %s..%s", w.Start, w.End)
	}
}
