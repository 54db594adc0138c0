package services

import "errors"

// Sentinel errors shared by the service layer. Controllers translate these
// to HTTP statuses.
var (
	ErrNotConfigured      = errors.New("service is not configured")
	ErrNoData             = errors.New("no data available")
	ErrUpstream           = errors.New("upstream request failed")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
)
