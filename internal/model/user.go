package model

import "time"

// User represents a row of the `usuarios` table. Accounts are created
// INATIVO with a single-use activation code; the code is cleared when
// the account is activated. Only ATIVO users can log in.
//
// Fields:
//  ID             – primary key identifier.
//  Nome           – display name, carried into issued tokens.
//  Email          – unique email address.
//  SenhaHash      – bcrypt hash of the password.
//  Status         – activation state (INATIVO, ATIVO).
//  CodigoAtivacao – 8-character activation code, nil once consumed.
//  CreatedAt      – creation timestamp.
type User struct {
	ID             int64      `json:"id_usuario"` // usuarios.id_usuario
	Nome           string     `json:"nome"`       // usuarios.nome
	Email          string     `json:"email"`      // usuarios.email
	SenhaHash      string     `json:"-"`          // usuarios.senha
	Status         UserStatus `json:"status"`     // usuarios.status
	CodigoAtivacao *string    `json:"-"`          // usuarios.codigo_ativacao (nullable)
	CreatedAt      time.Time  `json:"created_at"` // usuarios.created_at
}
