package handler_test

import (
	"database/sql"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-booking/internal/handler"
	"github.com/iliyamo/travel-booking/internal/repository"
)

func newPaymentHandler(db *sql.DB) *handler.PaymentHandler {
	return handler.NewPaymentHandler(
		repository.NewPaymentRepo(db),
		repository.NewReservationRepo(db),
		repository.NewLogRepo(db),
	)
}

// A non-positive amount is rejected before touching the database.
func TestPaymentCreate_nonPositiveAmount(t *testing.T) {
	db, mock := newMock(t)
	h := newPaymentHandler(db)

	for _, body := range []string{
		`{"id_reserva":3,"valor":-10,"forma_pagamento":"PIX"}`,
		`{"id_reserva":3,"valor":0,"forma_pagamento":"PIX"}`,
	} {
		c, rec := echoCtx(t, http.MethodPost, "/pagamentos", body, 9)
		require.NoError(t, h.Create(c))
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		require.Equal(t, "valor deve ser positivo", decodeBody(t, rec)["erro"], body)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentCreate_invalidMethod(t *testing.T) {
	db, mock := newMock(t)
	h := newPaymentHandler(db)

	c, rec := echoCtx(t, http.MethodPost, "/pagamentos",
		`{"id_reserva":3,"valor":450,"forma_pagamento":"boleto"}`, 9)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "forma de pagamento inválida", decodeBody(t, rec)["erro"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentCreate_reservationNotFound(t *testing.T) {
	db, mock := newMock(t)
	h := newPaymentHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservas WHERE id_reserva=? LIMIT 1")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	c, rec := echoCtx(t, http.MethodPost, "/pagamentos",
		`{"id_reserva":99,"valor":450,"forma_pagamento":"PIX"}`, 9)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "reserva não encontrada", decodeBody(t, rec)["erro"])
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestPaymentCreate_ok walks the payment transaction: insert the
// payment, append the audit entry and advance the reservation to
// realizado, all committed as one unit.
func TestPaymentCreate_ok(t *testing.T) {
	db, mock := newMock(t)
	h := newPaymentHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservas WHERE id_reserva=? LIMIT 1")).
		WithArgs(int64(3)).
		WillReturnRows(reservationRow("pendente", 1))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pagamentos (id_reserva, valor, forma_pagamento) VALUES (?,?,?)")).
		WithArgs(int64(3), 450.0, "PIX").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM pagamentos WHERE id_pagamento=?")).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentCols).AddRow(11, 3, 450.0, "PIX", testTime))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO logs (acao, usuario_id) VALUES (?,?)")).
		WithArgs("Pagamento realizado (reserva 3)", int64(9)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservas SET status=?, version=version+1 WHERE id_reserva=? AND version=?")).
		WithArgs("realizado", int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, rec := echoCtx(t, http.MethodPost, "/pagamentos",
		`{"id_reserva":3,"valor":450,"forma_pagamento":"PIX"}`, 9)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	require.EqualValues(t, 11, body["id_pagamento"])
	require.EqualValues(t, 3, body["id_reserva"])
	require.EqualValues(t, 450, body["valor"])
	require.Equal(t, "PIX", body["forma_pagamento"])
	require.NoError(t, mock.ExpectationsWereMet())
}

// Losing the optimistic race on the reservation status rolls the whole
// payment back.
func TestPaymentCreate_versionConflict(t *testing.T) {
	db, mock := newMock(t)
	h := newPaymentHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservas WHERE id_reserva=? LIMIT 1")).
		WithArgs(int64(3)).
		WillReturnRows(reservationRow("pendente", 1))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pagamentos (id_reserva, valor, forma_pagamento) VALUES (?,?,?)")).
		WithArgs(int64(3), 450.0, "PIX").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM pagamentos WHERE id_pagamento=?")).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows(paymentCols).AddRow(11, 3, 450.0, "PIX", testTime))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO logs (acao, usuario_id) VALUES (?,?)")).
		WithArgs("Pagamento realizado (reserva 3)", int64(9)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE reservas SET status=?, version=version+1 WHERE id_reserva=? AND version=?")).
		WithArgs("realizado", int64(3), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM reservas WHERE id_reserva=? LIMIT 1")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectRollback()

	c, rec := echoCtx(t, http.MethodPost, "/pagamentos",
		`{"id_reserva":3,"valor":450,"forma_pagamento":"PIX"}`, 9)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, "reserva modificada por outra requisição", decodeBody(t, rec)["erro"])
	require.NoError(t, mock.ExpectationsWereMet())
}
