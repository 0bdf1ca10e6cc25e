package repository // repository defines sentinel errors shared by the data access layer

import "errors"

// ErrLayoutNotFound is returned when a layout lookup yields no rows or the
// layout is not owned by the requesting user.
var ErrLayoutNotFound = errors.New("layout not found")

// ErrVenueNotFound is returned when a venue lookup yields no rows for the
// requesting owner.
var ErrVenueNotFound = errors.New("venue not found")
