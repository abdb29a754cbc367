package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"surfsup-server/internal/modules/climate/store"
	"surfsup-server/internal/modules/climate/types"
)

//go:embed sql/get-stations.sql
var getStationsSQL string

//go:embed sql/get-measurements.sql
var getMeasurementsSQL string

// ClimateRepository reads the station and measurement tables into a Store.
type ClimateRepository interface {
	store.Source
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) ClimateRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Stations(ctx context.Context) ([]types.Station, error) {
	rows, err := r.db.QueryContext(ctx, getStationsSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close stations rows", "error", err)
		}
	}()
	var out []types.Station
	for rows.Next() {
		var (
			s                   types.Station
			lat, lng, elevation sql.NullFloat64
		)
		if err := rows.Scan(&s.Code, &s.Name, &lat, &lng, &elevation); err != nil {
			return nil, err
		}
		s.Latitude, s.Longitude, s.Elevation = lat.Float64, lng.Float64, elevation.Float64
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repositoryImpl) Measurements(ctx context.Context) ([]types.Measurement, error) {
	rows, err := r.db.QueryContext(ctx, getMeasurementsSQL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close measurements rows", "error", err)
		}
	}()
	return scanMeasurements(rows)
}

func scanMeasurements(rows *sql.Rows) ([]types.Measurement, error) {
	var out []types.Measurement
	for rows.Next() {
		var (
			rec  types.Measurement
			date string
			prcp sql.NullFloat64
		)
		if err := rows.Scan(&rec.Station, &date, &prcp, &rec.Temperature); err != nil {
			return nil, err
		}
		d, err := parseStoredDate(date)
		if err != nil {
			return nil, fmt.Errorf("measurement for station %q: %w", rec.Station, err)
		}
		rec.Date = d
		if prcp.Valid {
			v := prcp.Float64
			rec.Precipitation = &v
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// parseStoredDate accepts the ISO date stored by sqlite as well as the
// timestamp form database/sql produces when a driver returns a DATE column as
// time.Time.
func parseStoredDate(s string) (types.Date, error) {
	if len(s) > len(types.DateLayout) {
		s = s[:len(types.DateLayout)]
	}
	return types.ParseDate(s)
}
