package domain

import "errors"

var (
	ErrInvalidDomain        = errors.New("invalid recommendation domain")
	ErrUserNotFound         = errors.New("user not found")
	ErrGeneratorUnavailable = errors.New("name generator unavailable")
	ErrItemNotFound         = errors.New("item not found in recommendations")
)
