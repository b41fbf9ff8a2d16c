// Package queue defines message payloads exchanged over the message broker.
package queue

// Email kinds carried in EmailEvent.Kind. Each kind selects a template
// on the consumer side.
const (
	EmailActivation           = "activation"
	EmailReservationConfirmed = "reservation_confirmed"
	EmailReservationReport    = "reservation_report"
)

// ReportLine is one reservation row inside a report event.
type ReportLine struct {
	Destino    string  `json:"destino"`
	DataInicio string  `json:"data_inicio"`
	DataFim    string  `json:"data_fim"`
	Preco      float64 `json:"preco"`
	Status     string  `json:"status"`
}

// EmailEvent is published after a successful mutation whose workflow
// includes an outbound email. It carries everything the consumer needs
// to render and send the message without querying the primary database.
// Fields beyond Kind and To are populated per kind.
type EmailEvent struct {
	Kind       string       `json:"kind"`
	To         string       `json:"to"`
	Nome       string       `json:"nome,omitempty"`
	Codigo     string       `json:"codigo,omitempty"`
	Destino    string       `json:"destino,omitempty"`
	DataInicio string       `json:"data_inicio,omitempty"`
	DataFim    string       `json:"data_fim,omitempty"`
	Preco      float64      `json:"preco,omitempty"`
	Status     string       `json:"status,omitempty"`
	Reservas   []ReportLine `json:"reservas,omitempty"`
}
