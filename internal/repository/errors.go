// Package repository implements data access for the booking API over a
// *sql.DB. Sentinel errors declared here let handlers distinguish
// failure scenarios without inspecting driver errors: lookups that miss
// return a typed not-found value, unique-key violations map to
// ErrEmailExists, restricted deletes map to ErrHasReservations or
// ErrHasPayments, and optimistic-concurrency misses map to
// ErrVersionConflict.
package repository

import "errors"

// ErrClientNotFound is returned when a client lookup matches no row.
var ErrClientNotFound = errors.New("client not found")

// ErrTripNotFound is returned when a trip lookup matches no row.
var ErrTripNotFound = errors.New("trip not found")

// ErrReservationNotFound is returned when a reservation lookup matches no row.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when an insert violates an email unique key.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidCode is returned when an activation code matches no pending
// account. A consumed code behaves exactly like an unknown one.
var ErrInvalidCode = errors.New("invalid activation code")

// ErrVersionConflict is returned when an update loses an optimistic
// concurrency race: the row exists but its version moved since it was
// read. Handlers should translate this into an HTTP 409 response.
var ErrVersionConflict = errors.New("version conflict")

// ErrHasReservations is returned when a delete cannot proceed because
// reservations still reference the row.
var ErrHasReservations = errors.New("has reservations")

// ErrHasPayments is returned when a reservation delete cannot proceed
// because payments still reference it.
var ErrHasPayments = errors.New("has payments")
