// Package model defines the database-backed entity types and the closed
// status enumerations used by the booking workflow. Status values are
// stored as strings in MySQL but only the constants declared here are
// accepted at the API boundary.
package model

// ReservationStatus enumerates the lifecycle states of a reservation.
// The wire values are the Portuguese strings used by the public API.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pendente"  // created, not yet settled
	ReservationCompleted ReservationStatus = "realizado" // settled by the booking workflow or a payment
)

// Valid reports whether s is one of the declared reservation states.
func (s ReservationStatus) Valid() bool {
	return s == ReservationPending || s == ReservationCompleted
}

// CanTransition reports whether moving from s to next is allowed.
// The only real transition is pendente -> realizado; re-applying the
// current state is permitted so that payment recording stays idempotent.
func (s ReservationStatus) CanTransition(next ReservationStatus) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	return s == ReservationPending && next == ReservationCompleted
}

// UserStatus enumerates account activation states. Accounts start as
// INATIVO and move to ATIVO exactly once, when an activation code is
// consumed.
type UserStatus string

const (
	UserInactive UserStatus = "INATIVO"
	UserActive   UserStatus = "ATIVO"
)

// Valid reports whether s is a declared account state.
func (s UserStatus) Valid() bool {
	return s == UserInactive || s == UserActive
}

// PaymentMethod enumerates the accepted payment methods.
type PaymentMethod string

const (
	PaymentPix  PaymentMethod = "PIX"
	PaymentCard PaymentMethod = "Cartao"
	PaymentCash PaymentMethod = "Dinheiro"
)

// ParsePaymentMethod validates a raw method string against the closed
// set. The second return value is false for anything outside it.
func ParsePaymentMethod(raw string) (PaymentMethod, bool) {
	m := PaymentMethod(raw)
	switch m {
	case PaymentPix, PaymentCard, PaymentCash:
		return m, true
	}
	return "", false
}
