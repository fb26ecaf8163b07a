package model

import "errors"

var (
	// ErrAthleteNotFound indicates that the requested athlete does not exist.
	ErrAthleteNotFound = errors.New("athlete not found")
	// ErrInvalidAthleteName indicates that first or last name is missing.
	ErrInvalidAthleteName = errors.New("first_name and last_name are required")
	// ErrInvalidBirthYearRange indicates birth_year_min greater than birth_year_max.
	ErrInvalidBirthYearRange = errors.New("birth year range is inverted")
)
