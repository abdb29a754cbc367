package metrics

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"surfsup-server/internal/modules/climate/types"
)

const (
	metricPrefix = "surfsup_"

	resultSuccess = "success"
	resultEmpty   = "empty"
	resultInvalid = "invalid"
	resultNoData  = "no_data"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	queriesTotal  *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
	datasetSize   *prometheus.GaugeVec
)

// Init registers the query and dataset collectors with the default registry.
func Init() {
	registerOnce.Do(func() {
		queriesTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "queries_total",
				Help: "Total climate queries by operation and result",
			},
			[]string{"operation", "result"},
		)
		queryDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "query_duration_seconds",
				Help:    "Climate query latency in seconds",
				Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"operation"},
		)
		datasetSize = prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: metricPrefix + "dataset_records",
				Help: "Records held by the in-memory dataset",
			},
			[]string{"entity"},
		)

		prometheus.MustRegister(queriesTotal, queryDuration, datasetSize)
	})
}

// ObserveQuery records one facade call. Safe to call before Init; it is then a no-op.
func ObserveQuery(operation string, start time.Time, err error) {
	if queriesTotal == nil {
		return
	}
	queriesTotal.WithLabelValues(operation, resultLabel(err)).Inc()
	queryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func SetDatasetSize(stations, measurements int) {
	if datasetSize == nil {
		return
	}
	datasetSize.WithLabelValues("stations").Set(float64(stations))
	datasetSize.WithLabelValues("measurements").Set(float64(measurements))
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, types.ErrEmptyRange):
		return resultEmpty
	case errors.Is(err, types.ErrInvalidDate):
		return resultInvalid
	case errors.Is(err, types.ErrNoData):
		return resultNoData
	default:
		return resultError
	}
}
