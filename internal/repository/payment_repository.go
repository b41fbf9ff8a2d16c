package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/travel-booking/internal/model"
)

// PaymentRepo provides operations for the pagamentos table. Payments
// are insert-only; recording one also advances the owning reservation,
// which the handler coordinates inside a single transaction.
type PaymentRepo struct {
	db *sql.DB
}

// NewPaymentRepo returns a new PaymentRepo bound to the given database.
func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentColumns = "id_pagamento, id_reserva, valor, forma_pagamento, created_at"

// PaymentDetail is the listing shape for GET /pagamentos: the payment
// with its reservation expanded to client, trip and owning user.
type PaymentDetail struct {
	model.Payment
	Reserva ReservationDetail `json:"reserva"`
}

// ListDetails returns all payments with their reservations joined to
// client, trip and user, ordered by payment id.
func (r *PaymentRepo) ListDetails(ctx context.Context) ([]PaymentDetail, error) {
	const q = `SELECT p.id_pagamento, p.id_reserva, p.valor, p.forma_pagamento, p.created_at,
	                  re.id_reserva, re.id_cliente, re.id_viagem, re.usuario_id, re.status, re.version, re.created_at,
	                  c.id_cliente, c.nome, c.cpf, c.telefone, c.email, c.created_at,
	                  v.id_viagem, v.destino, v.data_inicio, v.data_fim, v.preco, v.created_at,
	                  u.id_usuario, u.nome, u.email
	           FROM pagamentos p
	           JOIN reservas re ON re.id_reserva = p.id_reserva
	           JOIN clientes c ON c.id_cliente = re.id_cliente
	           JOIN viagens v ON v.id_viagem = re.id_viagem
	           JOIN usuarios u ON u.id_usuario = re.usuario_id
	           ORDER BY p.id_pagamento`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []PaymentDetail{}
	for rows.Next() {
		var d PaymentDetail
		err := rows.Scan(
			&d.ID, &d.ReservaID, &d.Valor, &d.FormaPagamento, &d.CreatedAt,
			&d.Reserva.ID, &d.Reserva.ClienteID, &d.Reserva.ViagemID, &d.Reserva.UsuarioID,
			&d.Reserva.Status, &d.Reserva.Version, &d.Reserva.CreatedAt,
			&d.Reserva.Cliente.ID, &d.Reserva.Cliente.Nome, &d.Reserva.Cliente.CPF,
			&d.Reserva.Cliente.Telefone, &d.Reserva.Cliente.Email, &d.Reserva.Cliente.CreatedAt,
			&d.Reserva.Viagem.ID, &d.Reserva.Viagem.Destino, &d.Reserva.Viagem.DataInicio,
			&d.Reserva.Viagem.DataFim, &d.Reserva.Viagem.Preco, &d.Reserva.Viagem.CreatedAt,
			&d.Reserva.Usuario.ID, &d.Reserva.Usuario.Nome, &d.Reserva.Usuario.Email,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CreateTx inserts a payment within the scope of an existing
// transaction and reads the row back to populate generated fields.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, p *model.Payment) error {
	result, err := tx.ExecContext(ctx,
		"INSERT INTO pagamentos (id_reserva, valor, forma_pagamento) VALUES (?,?,?)",
		p.ReservaID, p.Valor, p.FormaPagamento)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = id
	return tx.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM pagamentos WHERE id_pagamento=?", id).
		Scan(&p.ID, &p.ReservaID, &p.Valor, &p.FormaPagamento, &p.CreatedAt)
}
