package service

import (
	"errors"

	"github.com/yaseenferoz/virl-backend/internal/repository"
)

// Error taxonomy. Handlers map these to HTTP status codes at the boundary;
// anything unrecognized is a store error and surfaces as a generic 500.
var (
	ErrNotFound           = repository.ErrNotFound
	ErrValidation         = errors.New("invalid request")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrForbidden          = errors.New("access denied")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountPending     = errors.New("account pending approval")
	ErrReportNotReady     = errors.New("report not available")
)
