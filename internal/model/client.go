package model

import "time"

// Client represents a row of the `clientes` table. Clients are the
// travellers a reservation is booked for; they are not API users and
// carry no credentials.
//
// Fields:
//  ID        – primary key identifier.
//  Nome      – full name (minimum 10 characters).
//  CPF       – national ID, exactly 11 characters.
//  Telefone  – phone number, exactly 9 characters.
//  Email     – unique, format-validated email address.
//  CreatedAt – creation timestamp.
type Client struct {
	ID        int64     `json:"id_cliente"` // clientes.id_cliente
	Nome      string    `json:"nome"`       // clientes.nome
	CPF       string    `json:"cpf"`        // clientes.cpf
	Telefone  string    `json:"telefone"`   // clientes.telefone
	Email     string    `json:"email"`      // clientes.email
	CreatedAt time.Time `json:"created_at"` // clientes.created_at
}
