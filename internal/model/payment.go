package model

import "time"

// Payment records money received against a reservation. Creating a
// payment is the only path besides reservation creation that moves a
// reservation to realizado. Duplicate payments against one reservation
// are structurally permitted.
//
// Fields:
//  ID             – primary key identifier.
//  ReservaID      – reservation being paid for.
//  Valor          – positive amount in BRL.
//  FormaPagamento – one of PIX, Cartao, Dinheiro.
//  CreatedAt      – creation timestamp.
type Payment struct {
	ID             int64         `json:"id_pagamento"`    // pagamentos.id_pagamento
	ReservaID      int64         `json:"id_reserva"`      // pagamentos.id_reserva
	Valor          float64       `json:"valor"`           // pagamentos.valor
	FormaPagamento PaymentMethod `json:"forma_pagamento"` // pagamentos.forma_pagamento
	CreatedAt      time.Time     `json:"created_at"`      // pagamentos.created_at
}
