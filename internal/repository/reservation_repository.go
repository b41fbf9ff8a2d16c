package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-booking/internal/model"
)

// ReservationRepo provides CRUD operations for the reservas table. The
// multi-step booking sequences (create + status advance + audit log,
// payment + audit log + status advance) run inside caller-owned
// transactions, so every mutating method has a Tx variant taking a
// *sql.Tx. Reads that feed list endpoints join the related client, trip
// and user rows.
//
// Updates use optimistic concurrency: they match both id and the
// version the caller read, and bump the version on success. A miss with
// an existing row means another writer got there first and surfaces as
// ErrVersionConflict.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying pool so handlers can open transactions that
// span this repository and LogRepo.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = "id_reserva, id_cliente, id_viagem, usuario_id, status, version, created_at"

func scanReservation(row interface{ Scan(...any) error }, re *model.Reservation) error {
	return row.Scan(&re.ID, &re.ClienteID, &re.ViagemID, &re.UsuarioID, &re.Status, &re.Version, &re.CreatedAt)
}

// UserInfo is the public projection of a user embedded in listing
// responses: identifier, name and email only.
type UserInfo struct {
	ID    int64  `json:"id_usuario"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

// ReservationDetail is the listing shape for GET /reservas: the
// reservation joined with its client, trip and owning user.
type ReservationDetail struct {
	model.Reservation
	Cliente model.Client `json:"cliente"`
	Viagem  model.Trip   `json:"viagem"`
	Usuario UserInfo     `json:"usuario"`
}

// ListDetails returns all reservations joined with their client, trip
// and owning user, ordered by reservation id.
func (r *ReservationRepo) ListDetails(ctx context.Context) ([]ReservationDetail, error) {
	const q = `SELECT re.id_reserva, re.id_cliente, re.id_viagem, re.usuario_id, re.status, re.version, re.created_at,
	                  c.id_cliente, c.nome, c.cpf, c.telefone, c.email, c.created_at,
	                  v.id_viagem, v.destino, v.data_inicio, v.data_fim, v.preco, v.created_at,
	                  u.id_usuario, u.nome, u.email
	           FROM reservas re
	           JOIN clientes c ON c.id_cliente = re.id_cliente
	           JOIN viagens v ON v.id_viagem = re.id_viagem
	           JOIN usuarios u ON u.id_usuario = re.usuario_id
	           ORDER BY re.id_reserva`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ReservationDetail{}
	for rows.Next() {
		var d ReservationDetail
		err := rows.Scan(
			&d.ID, &d.ClienteID, &d.ViagemID, &d.UsuarioID, &d.Status, &d.Version, &d.CreatedAt,
			&d.Cliente.ID, &d.Cliente.Nome, &d.Cliente.CPF, &d.Cliente.Telefone, &d.Cliente.Email, &d.Cliente.CreatedAt,
			&d.Viagem.ID, &d.Viagem.Destino, &d.Viagem.DataInicio, &d.Viagem.DataFim, &d.Viagem.Preco, &d.Viagem.CreatedAt,
			&d.Usuario.ID, &d.Usuario.Nome, &d.Usuario.Email,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetByID fetches a reservation by id, returning ErrReservationNotFound
// when absent.
func (r *ReservationRepo) GetByID(ctx context.Context, id int64) (model.Reservation, error) {
	var re model.Reservation
	err := scanReservation(r.db.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservas WHERE id_reserva=? LIMIT 1", id), &re)
	if err == sql.ErrNoRows {
		return re, ErrReservationNotFound
	}
	return re, err
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction and reads the row back to populate generated fields. The
// caller must commit or rollback.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, re *model.Reservation) error {
	result, err := tx.ExecContext(ctx,
		"INSERT INTO reservas (id_cliente, id_viagem, usuario_id, status) VALUES (?,?,?,?)",
		re.ClienteID, re.ViagemID, re.UsuarioID, re.Status)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	re.ID = id
	return scanReservation(tx.QueryRowContext(ctx,
		"SELECT "+reservationColumns+" FROM reservas WHERE id_reserva=?", id), re)
}

// UpdateStatusTx advances the status of a reservation inside a
// transaction, guarded by the version the caller read. On success the
// record's Status and Version fields are refreshed. A version miss with
// an existing row returns ErrVersionConflict.
func (r *ReservationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, re *model.Reservation, status model.ReservationStatus) error {
	result, err := tx.ExecContext(ctx,
		"UPDATE reservas SET status=?, version=version+1 WHERE id_reserva=? AND version=?",
		status, re.ID, re.Version)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.conflictOrMissingTx(ctx, tx, re.ID)
	}
	re.Status = status
	re.Version++
	return nil
}

// UpdateTx rewrites the mutable fields of a reservation inside a
// transaction with the same version guard as UpdateStatusTx.
func (r *ReservationRepo) UpdateTx(ctx context.Context, tx *sql.Tx, re *model.Reservation) error {
	result, err := tx.ExecContext(ctx,
		"UPDATE reservas SET id_cliente=?, id_viagem=?, status=?, version=version+1 WHERE id_reserva=? AND version=?",
		re.ClienteID, re.ViagemID, re.Status, re.ID, re.Version)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.conflictOrMissingTx(ctx, tx, re.ID)
	}
	re.Version++
	return nil
}

// DeleteTx removes a reservation inside a transaction. The delete is
// restricted: when payments still reference the reservation,
// ErrHasPayments is returned and nothing is removed. Running the check
// inside the same transaction closes the window where a payment lands
// between check and delete.
func (r *ReservationRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id int64) error {
	var n int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pagamentos WHERE id_reserva=?", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrHasPayments
	}
	result, err := tx.ExecContext(ctx, "DELETE FROM reservas WHERE id_reserva=?", id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

// conflictOrMissingTx distinguishes a lost optimistic race from a row
// that no longer exists after an update matched zero rows.
func (r *ReservationRepo) conflictOrMissingTx(ctx context.Context, tx *sql.Tx, id int64) error {
	var one int
	err := tx.QueryRowContext(ctx,
		"SELECT 1 FROM reservas WHERE id_reserva=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrReservationNotFound
	}
	if err != nil {
		return err
	}
	return ErrVersionConflict
}
