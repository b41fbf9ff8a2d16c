package model

import "time"

// Trip represents a row of the `viagens` table. A trip owns zero or
// more reservations; deleting a trip is restricted while reservations
// still reference it.
//
// Fields:
//  ID         – primary key identifier.
//  Destino    – destination name (minimum 4 characters).
//  DataInicio – start date of the trip.
//  DataFim    – end date of the trip.
//  Preco      – positive price in BRL.
//  CreatedAt  – creation timestamp.
type Trip struct {
	ID         int64     `json:"id_viagem"`   // viagens.id_viagem
	Destino    string    `json:"destino"`     // viagens.destino
	DataInicio time.Time `json:"data_inicio"` // viagens.data_inicio
	DataFim    time.Time `json:"data_fim"`    // viagens.data_fim
	Preco      float64   `json:"preco"`       // viagens.preco
	CreatedAt  time.Time `json:"created_at"`  // viagens.created_at
}
