package models

import "errors"

// Domain errors shared across repositories and services. Handlers map these
// to 404 responses; everything else surfaces as a 500.
var (
	ErrDeviceNotFound   = errors.New("device not found")
	ErrZoneNotFound     = errors.New("safe zone not found")
	ErrSettingsNotFound = errors.New("tracking settings not found")
	ErrAlertNotFound    = errors.New("alert not found")
	ErrNoLocation       = errors.New("no location recorded for device")
)
