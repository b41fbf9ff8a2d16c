package model

import "time"

// LogEntry is an append-only audit record written as a side effect of
// reservation and payment mutations. Entries are never updated or
// deleted.
//
// Fields:
//  ID        – primary key identifier.
//  Acao      – free-text description of the action performed.
//  UsuarioID – user who performed the action.
//  Data      – timestamp of the action.
type LogEntry struct {
	ID        int64     `json:"id_log"`     // logs.id_log
	Acao      string    `json:"acao"`       // logs.acao
	UsuarioID int64     `json:"usuario_id"` // logs.usuario_id
	Data      time.Time `json:"data"`       // logs.data
}
