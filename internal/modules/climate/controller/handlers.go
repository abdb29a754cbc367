package controller

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"surfsup-server/internal/modules/climate/types"
	"surfsup-server/internal/modules/climate/views"
	"surfsup-server/internal/observability/metrics"
	"surfsup-server/internal/utils"
)

var routeIndex = []views.Route{
	{Path: "/api/v1.0/precipitation", Description: "precipitation for the last year of data, keyed by date"},
	{Path: "/api/v1.0/precipitation/readings", Description: "every precipitation reading for the last year of data"},
	{Path: "/api/v1.0/stations", Description: "station codes"},
	{Path: "/api/v1.0/tobs", Description: "last year of temperature observations for the most active station"},
	{Path: "/api/v1.0/<start>", Description: "[min, avg, max] temperature from start (YYYY-MM-DD) onward"},
	{Path: "/api/v1.0/<start>/<end>", Description: "[min, avg, max] temperature from start through end"},
}

func (c *climateControllerImpl) handleHome(w http.ResponseWriter, r *http.Request) {
	data := &views.HomeData{Routes: routeIndex}
	summary, err := c.service.Summary()
	switch {
	case err == nil:
		data.ExampleStart = summary.Window.Start.String()
		data.ExampleEnd = summary.Window.End.String()
	case errors.Is(err, types.ErrNoData):
	default:
		slog.Error("home: summary failed", "error", err)
	}
	utils.WriteHTML(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return views.RenderHome(buf, data)
	})
}

func (c *climateControllerImpl) handleAbout(w http.ResponseWriter, r *http.Request) {
	utils.WriteHTML(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return views.RenderAbout(buf)
	})
}

func (c *climateControllerImpl) handlePrecipitation(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	series, err := c.service.PrecipitationSeries()
	metrics.ObserveQuery(opPrecipitation, start, err)
	if err != nil {
		slog.Error("precipitation query failed", "error", err)
		writeQueryError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, series)
}

func (c *climateControllerImpl) handlePrecipitationReadings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	readings, err := c.service.PrecipitationReadings()
	metrics.ObserveQuery(opPrecipitationReadings, start, err)
	if err != nil {
		slog.Error("precipitation readings query failed", "error", err)
		writeQueryError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, readings)
}

func (c *climateControllerImpl) handleStations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stations := c.service.StationList()
	metrics.ObserveQuery(opStations, start, nil)
	utils.WriteJSON(w, http.StatusOK, stations)
}

func (c *climateControllerImpl) handleTobs(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	series, err := c.service.TopStationTemperatureSeries()
	metrics.ObserveQuery(opTobs, start, err)
	if err != nil {
		slog.Error("tobs query failed", "error", err)
		writeQueryError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, series)
}

func (c *climateControllerImpl) handleRange(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	start, end, err := c.parseRangeParams(r)
	if err != nil {
		metrics.ObserveQuery(opRange, started, err)
		writeQueryError(w, err)
		return
	}

	stats, err := c.service.RangeStatistics(start, end)
	metrics.ObserveQuery(opRange, started, err)
	if err != nil {
		if !errors.Is(err, types.ErrEmptyRange) {
			slog.Error("range query failed", "start", start, "end", end, "error", err)
		}
		writeQueryError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, stats)
}
