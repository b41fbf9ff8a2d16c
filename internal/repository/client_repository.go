package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/travel-booking/internal/model"
)

// ClientRepo provides CRUD operations for the clientes table.
type ClientRepo struct {
	db *sql.DB
}

// NewClientRepo returns a new ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

const clientColumns = "id_cliente, nome, cpf, telefone, email, created_at"

func scanClient(row interface{ Scan(...any) error }, c *model.Client) error {
	return row.Scan(&c.ID, &c.Nome, &c.CPF, &c.Telefone, &c.Email, &c.CreatedAt)
}

// List returns all clients ordered by id.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+clientColumns+" FROM clientes ORDER BY id_cliente")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Client{}
	for rows.Next() {
		var c model.Client
		if err := scanClient(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches a client by id, returning ErrClientNotFound when absent.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (model.Client, error) {
	var c model.Client
	err := scanClient(r.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clientes WHERE id_cliente=? LIMIT 1", id), &c)
	if err == sql.ErrNoRows {
		return c, ErrClientNotFound
	}
	return c, err
}

// Create inserts a client and populates its generated id. A duplicate
// email maps to ErrEmailExists.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO clientes (nome, cpf, telefone, email) VALUES (?,?,?,?)",
		c.Nome, c.CPF, c.Telefone, c.Email)
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
	c.ID = id
	return scanClient(r.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clientes WHERE id_cliente=?", id), c)
}

// Update rewrites all mutable fields of an existing client. The caller
// is expected to have checked existence via GetByID.
func (r *ClientRepo) Update(ctx context.Context, c *model.Client) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE clientes SET nome=?, cpf=?, telefone=?, email=? WHERE id_cliente=?",
		c.Nome, c.CPF, c.Telefone, c.Email, c.ID)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrEmailExists
	}
	return err
}

// Delete removes a client. The delete is restricted: when reservations
// still reference the client, ErrHasReservations is returned and
// nothing is removed.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservas WHERE id_cliente=?", id).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasReservations
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM clientes WHERE id_cliente=?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrClientNotFound
	}
	return nil
}

// ReportRow is one reservation line in a client report email.
type ReportRow struct {
	Destino    string                  `json:"destino"`
	DataInicio string                  `json:"data_inicio"`
	DataFim    string                  `json:"data_fim"`
	Preco      float64                 `json:"preco"`
	Status     model.ReservationStatus `json:"status"`
}

// ClientReport bundles a client with its reservations joined to their
// trips, in the shape the report email needs.
type ClientReport struct {
	Cliente  model.Client `json:"cliente"`
	Reservas []ReportRow  `json:"reservas"`
}

// Report loads a client together with every reservation it appears in,
// each joined with its trip. Returns ErrClientNotFound when the client
// does not exist; a client with no reservations yields an empty slice.
func (r *ClientRepo) Report(ctx context.Context, id int64) (ClientReport, error) {
	var rep ClientReport
	cli, err := r.GetByID(ctx, id)
	if err != nil {
		return rep, err
	}
	rep.Cliente = cli
	rep.Reservas = []ReportRow{}
	rows, err := r.db.QueryContext(ctx,
		`SELECT v.destino, v.data_inicio, v.data_fim, v.preco, re.status
		 FROM reservas re
		 JOIN viagens v ON v.id_viagem = re.id_viagem
		 WHERE re.id_cliente = ?
		 ORDER BY v.data_inicio`, id)
	if err != nil {
		return rep, err
	}
	defer rows.Close()
	for rows.Next() {
		var row ReportRow
		var ini, fim sql.NullTime
		if err := rows.Scan(&row.Destino, &ini, &fim, &row.Preco, &row.Status); err != nil {
			return rep, err
		}
		if ini.Valid {
			row.DataInicio = ini.Time.UTC().Format("02/01/2006")
		}
		if fim.Valid {
			row.DataFim = fim.Time.UTC().Format("02/01/2006")
		}
		rep.Reservas = append(rep.Reservas, row)
	}
	return rep, rows.Err()
}
