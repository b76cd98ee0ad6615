package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrPlanNotFound           = errors.New("subscription plan not found")
	ErrNoActiveSubscription   = errors.New("no active subscription")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrDuplicateEmail         = errors.New("email already exists")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidInput           = errors.New("invalid input")
)
