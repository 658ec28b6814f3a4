package usecase

import "errors"

var (
	ErrLocationNotApplied = errors.New("apply retail information first")
	ErrNegativeInput      = errors.New("value must not be negative")
	ErrNotFinite          = errors.New("value must be a finite, non-negative number")
	ErrUnknownLocation    = errors.New("unknown location")
	ErrUnknownProduct     = errors.New("unknown product")
	ErrInvalidQuantity    = errors.New("quantity is not one of the planning options")
	ErrEmptyList          = errors.New("list must contain at least one name")
	ErrAdvisorDisabled    = errors.New("advisor not configured")
)
