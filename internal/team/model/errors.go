package model

import "errors"

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamNameTaken indicates that the organization already has a team with that name.
	ErrTeamNameTaken = errors.New("team name already taken in organization")
	// ErrTeamArchived indicates that the operation targets a team that is already archived.
	ErrTeamArchived = errors.New("team is archived")
	// ErrInvalidTeamName indicates that the provided team name is invalid (e.g., empty).
	ErrInvalidTeamName = errors.New("invalid team name")
	// ErrInvalidLevel indicates a competitive level outside the 1..5 range.
	ErrInvalidLevel = errors.New("competitive level must be between 1 and 5")
	// ErrInvalidArchiveDate indicates a missing or zero archive date.
	ErrInvalidArchiveDate = errors.New("archive date is required")
)
