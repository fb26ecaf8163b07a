package model

import "errors"

var (
	// ErrMembershipNotFound indicates that no membership row matches the request.
	ErrMembershipNotFound = errors.New("membership not found")
)
