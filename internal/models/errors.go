package models

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrValidation     = errors.New("validation failed")
	ErrNoMeasurements = errors.New("client has no measurements")
	ErrDuplicate      = errors.New("duplicate record")
	ErrInvalidBackup  = errors.New("invalid backup document")
)
