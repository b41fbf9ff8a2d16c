package model

import "time"

// Reservation links one client to one trip and records which API user
// created it. Status starts as pendente and only ever advances to
// realizado. The Version column implements optimistic concurrency:
// every update must match the version it read, otherwise the write is
// rejected with a conflict.
//
// Fields:
//  ID        – primary key identifier.
//  ClienteID – client the trip is booked for.
//  ViagemID  – trip being reserved.
//  UsuarioID – authenticated user who created the reservation.
//  Status    – lifecycle state (pendente, realizado).
//  Version   – optimistic concurrency counter, starts at 1.
//  CreatedAt – creation timestamp.
type Reservation struct {
	ID        int64             `json:"id_reserva"` // reservas.id_reserva
	ClienteID int64             `json:"id_cliente"` // reservas.id_cliente
	ViagemID  int64             `json:"id_viagem"`  // reservas.id_viagem
	UsuarioID int64             `json:"usuario_id"` // reservas.usuario_id
	Status    ReservationStatus `json:"status"`     // reservas.status
	Version   int64             `json:"-"`          // reservas.version
	CreatedAt time.Time         `json:"created_at"` // reservas.created_at
}
