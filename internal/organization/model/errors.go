package model

import "errors"

var (
	// ErrOrganizationExists indicates that an organization with the given name already exists.
	ErrOrganizationExists = errors.New("organization already exists")
	// ErrOrganizationNotFound indicates that the requested organization does not exist.
	ErrOrganizationNotFound = errors.New("organization not found")
	// ErrOrgMembershipNotFound indicates that the user is not a member of the organization.
	ErrOrgMembershipNotFound = errors.New("organization membership not found")
	// ErrInvalidOrganizationName indicates that the provided organization name is invalid (e.g., empty).
	ErrInvalidOrganizationName = errors.New("invalid organization name")
	// ErrInvalidRole indicates that the provided role is not a known organization role.
	ErrInvalidRole = errors.New("invalid organization role")
)
