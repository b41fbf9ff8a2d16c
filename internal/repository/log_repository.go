package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-booking/internal/model"
)

// LogRepo appends and reads audit log entries. The logs table is
// append-only; there are no update or delete operations.
type LogRepo struct {
	db *sql.DB
}

// NewLogRepo returns a new LogRepo bound to the given database.
func NewLogRepo(db *sql.DB) *LogRepo { return &LogRepo{db: db} }

// AppendTx writes one audit entry inside the caller's transaction, so
// the entry commits or rolls back together with the mutation it records.
func (r *LogRepo) AppendTx(ctx context.Context, tx *sql.Tx, acao string, usuarioID int64) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO logs (acao, usuario_id) VALUES (?,?)", acao, usuarioID)
	return err
}

// LogDetail is the listing shape for GET /logs: the entry with the
// acting user's public fields.
type LogDetail struct {
	model.LogEntry
	Usuario UserInfo `json:"usuario"`
}

// ListDetails returns all log entries with their acting user, newest
// first.
func (r *LogRepo) ListDetails(ctx context.Context) ([]LogDetail, error) {
	const q = `SELECT l.id_log, l.acao, l.usuario_id, l.data,
	                  u.id_usuario, u.nome, u.email
	           FROM logs l
	           JOIN usuarios u ON u.id_usuario = l.usuario_id
	           ORDER BY l.data DESC, l.id_log DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LogDetail{}
	for rows.Next() {
		var d LogDetail
		if err := rows.Scan(&d.ID, &d.Acao, &d.UsuarioID, &d.Data,
			&d.Usuario.ID, &d.Usuario.Nome, &d.Usuario.Email); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
