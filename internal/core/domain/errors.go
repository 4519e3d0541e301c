package domain

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleNotFound    = errors.New("role not found")
	ErrProductNotFound = errors.New("product not found")

	// ErrDuplicateKey signals a unique-constraint violation (email, role name,
	// product name).
	ErrDuplicateKey = errors.New("duplicate value for unique field")

	// ErrClientAlreadyAssigned signals an attempt to assign a client to a
	// product that already has one. Detected by an explicit pre-check; the
	// check-then-set is not atomic across concurrent requests, the redis
	// assignment guard only narrows that window.
	ErrClientAlreadyAssigned = errors.New("product already has a client")
)
