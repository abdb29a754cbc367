package controller

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"surfsup-server/internal/modules/climate/service"
	"surfsup-server/internal/modules/climate/types"
)

// ClimateService is the query facade the controller serves.
type ClimateService interface {
	PrecipitationSeries() (map[types.Date]*float64, error)
	PrecipitationReadings() ([]types.PrecipitationReading, error)
	StationList() []string
	TopStationTemperatureSeries() ([]types.TemperatureObservation, error)
	RangeStatistics(start types.Date, end *types.Date) ([]float64, error)
	Summary() (service.Summary, error)
}

type ClimateController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type climateControllerImpl struct {
	service  ClimateService
	validate *validator.Validate
}

func NewClimateController(svc ClimateService) ClimateController {
	return &climateControllerImpl{
		service:  svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (c *climateControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", c.handleHome)
	mux.HandleFunc("GET /about", c.handleAbout)
	mux.HandleFunc("GET /api/v1.0/precipitation", c.handlePrecipitation)
	mux.HandleFunc("GET /api/v1.0/precipitation/readings", c.handlePrecipitationReadings)
	mux.HandleFunc("GET /api/v1.0/stations", c.handleStations)
	mux.HandleFunc("GET /api/v1.0/tobs", c.handleTobs)
	mux.HandleFunc("GET /api/v1.0/{start}", c.handleRange)
	mux.HandleFunc("GET /api/v1.0/{start}/{end}", c.handleRange)
}
