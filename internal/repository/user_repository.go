package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/utils"
)

// UserRepo provides operations for the usuarios table.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id_usuario, nome, email, senha, status, codigo_ativacao, created_at"

func scanUser(row interface{ Scan(...any) error }, u *model.User) error {
	var code sql.NullString
	if err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.Status, &code, &u.CreatedAt); err != nil {
		return err
	}
	if code.Valid {
		c := code.String
		u.CodigoAtivacao = &c
	}
	return nil
}

// Create hashes the password and inserts an INATIVO user carrying the
// given activation code. The generated id is populated on the record.
// A duplicate email maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User, password string, cost int) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO usuarios (nome, email, senha, status, codigo_ativacao) VALUES (?,?,?,?,?)",
		u.Nome, u.Email, hash, model.UserInactive, u.CodigoAtivacao)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	u.SenhaHash = hash
	u.Status = model.UserInactive
	return nil
}

// GetByEmail fetches a user by normalized email, returning
// ErrUserNotFound when absent.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM usuarios WHERE email=? LIMIT 1", email), &u)
	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id, returning ErrUserNotFound when absent.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM usuarios WHERE id_usuario=? LIMIT 1", id), &u)
	if err == sql.ErrNoRows {
		return u, ErrUserNotFound
	}
	return u, err
}

// GetByActivationCode fetches the user holding the given activation
// code. Consumed codes are NULL in the table, so a second lookup with
// the same code returns ErrInvalidCode.
func (r *UserRepo) GetByActivationCode(ctx context.Context, code string) (model.User, error) {
	var u model.User
	err := scanUser(r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM usuarios WHERE codigo_ativacao=? LIMIT 1", code), &u)
	if err == sql.ErrNoRows {
		return u, ErrInvalidCode
	}
	return u, err
}

// Activate marks a user ATIVO and clears its activation code. The WHERE
// clause requires a pending code, which makes activation single-use: a
// second attempt matches zero rows and returns ErrInvalidCode.
func (r *UserRepo) Activate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE usuarios SET status=?, codigo_ativacao=NULL WHERE id_usuario=? AND codigo_ativacao IS NOT NULL",
		model.UserActive, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInvalidCode
	}
	return nil
}
