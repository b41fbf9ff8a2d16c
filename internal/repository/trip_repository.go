package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-booking/internal/model"
)

// TripRepo provides CRUD operations for the viagens table.
type TripRepo struct {
	db *sql.DB
}

// NewTripRepo returns a new TripRepo bound to the given database.
func NewTripRepo(db *sql.DB) *TripRepo { return &TripRepo{db: db} }

const tripColumns = "id_viagem, destino, data_inicio, data_fim, preco, created_at"

func scanTrip(row interface{ Scan(...any) error }, t *model.Trip) error {
	return row.Scan(&t.ID, &t.Destino, &t.DataInicio, &t.DataFim, &t.Preco, &t.CreatedAt)
}

// TripWithReservations is the listing shape for GET /viagens: each trip
// carries the reservations that reference it.
type TripWithReservations struct {
	model.Trip
	Reservas []model.Reservation `json:"reservas"`
}

// List returns all trips, each with its reservations.
func (r *TripRepo) List(ctx context.Context) ([]TripWithReservations, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+tripColumns+" FROM viagens ORDER BY id_viagem")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []TripWithReservations{}
	index := map[int64]int{}
	for rows.Next() {
		var t TripWithReservations
		if err := scanTrip(rows, &t.Trip); err != nil {
			return nil, err
		}
		t.Reservas = []model.Reservation{}
		index[t.ID] = len(out)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}
	resRows, err := r.db.QueryContext(ctx,
		"SELECT id_reserva, id_cliente, id_viagem, usuario_id, status, version, created_at FROM reservas ORDER BY id_reserva")
	if err != nil {
		return nil, err
	}
	defer resRows.Close()
	for resRows.Next() {
		var re model.Reservation
		if err := resRows.Scan(&re.ID, &re.ClienteID, &re.ViagemID, &re.UsuarioID, &re.Status, &re.Version, &re.CreatedAt); err != nil {
			return nil, err
		}
		if i, ok := index[re.ViagemID]; ok {
			out[i].Reservas = append(out[i].Reservas, re)
		}
	}
	return out, resRows.Err()
}

// GetByID fetches a trip by id, returning ErrTripNotFound when absent.
func (r *TripRepo) GetByID(ctx context.Context, id int64) (model.Trip, error) {
	var t model.Trip
	err := scanTrip(r.db.QueryRowContext(ctx,
		"SELECT "+tripColumns+" FROM viagens WHERE id_viagem=? LIMIT 1", id), &t)
	if err == sql.ErrNoRows {
		return t, ErrTripNotFound
	}
	return t, err
}

// Create inserts a trip and populates its generated id.
func (r *TripRepo) Create(ctx context.Context, t *model.Trip) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO viagens (destino, data_inicio, data_fim, preco) VALUES (?,?,?,?)",
		t.Destino, t.DataInicio, t.DataFim, t.Preco)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = id
	return scanTrip(r.db.QueryRowContext(ctx,
		"SELECT "+tripColumns+" FROM viagens WHERE id_viagem=?", id), t)
}

// Update rewrites all mutable fields of an existing trip.
func (r *TripRepo) Update(ctx context.Context, t *model.Trip) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE viagens SET destino=?, data_inicio=?, data_fim=?, preco=? WHERE id_viagem=?",
		t.Destino, t.DataInicio, t.DataFim, t.Preco, t.ID)
	return err
}

// Delete removes a trip. Restricted: when reservations still reference
// the trip, ErrHasReservations is returned and nothing is removed.
func (r *TripRepo) Delete(ctx context.Context, id int64) error {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM reservas WHERE id_viagem=?", id).Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasReservations
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM viagens WHERE id_viagem=?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTripNotFound
	}
	return nil
}
