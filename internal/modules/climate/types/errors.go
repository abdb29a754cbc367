package types

import "errors"

var (
	// ErrNoData is returned when the dataset holds no measurements at all.
	ErrNoData = errors.New("no measurements in dataset")

	// ErrEmptyRange is returned when a date range matches no measurements.
	ErrEmptyRange = errors.New("no measurements in date range")

	ErrInvalidDate = errors.New("invalid date")
)
