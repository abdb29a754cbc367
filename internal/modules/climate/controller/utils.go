package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"surfsup-server/internal/modules/climate/types"
	"surfsup-server/internal/utils"
)

const (
	opPrecipitation         = "precipitation"
	opPrecipitationReadings = "precipitation_readings"
	opStations              = "stations"
	opTobs                  = "tobs"
	opRange                 = "range"
)

// errStartAfterEnd wraps ErrInvalidDate so it maps to 400 like a malformed date.
var errStartAfterEnd = fmt.Errorf("%w: 'start' must be on or before 'end'", types.ErrInvalidDate)

type rangeParams struct {
	Start string `validate:"required,datetime=2006-01-02"`
	End   string `validate:"omitempty,datetime=2006-01-02"`
}

// parseRangeParams reads {start} and the optional {end} path values. The
// returned end is nil when the route has no end segment.
func (c *climateControllerImpl) parseRangeParams(r *http.Request) (types.Date, *types.Date, error) {
	p := rangeParams{Start: r.PathValue("start"), End: r.PathValue("end")}
	if err := c.validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return types.Date{}, nil, fmt.Errorf("%w: '%s' (expected YYYY-MM-DD)", types.ErrInvalidDate, fieldName(verrs[0].Field()))
		}
		return types.Date{}, nil, fmt.Errorf("%w: %v", types.ErrInvalidDate, err)
	}

	start, err := types.ParseDate(p.Start)
	if err != nil {
		return types.Date{}, nil, err
	}
	if p.End == "" {
		return start, nil, nil
	}
	end, err := types.ParseDate(p.End)
	if err != nil {
		return types.Date{}, nil, err
	}
	if start.After(end) {
		return types.Date{}, nil, errStartAfterEnd
	}
	return start, &end, nil
}

func fieldName(f string) string {
	switch f {
	case "Start":
		return "start"
	case "End":
		return "end"
	default:
		return f
	}
}

// writeQueryError maps facade errors onto HTTP statuses.
func writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrInvalidDate):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, types.ErrEmptyRange):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, types.ErrNoData):
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
	default:
		utils.WriteError(w, http.StatusInternalServerError, "internal error")
	}
}
