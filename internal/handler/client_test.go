package handler_test

import (
	"database/sql"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-booking/internal/handler"
	"github.com/iliyamo/travel-booking/internal/queue"
	"github.com/iliyamo/travel-booking/internal/repository"
)

func newClientHandler(db *sql.DB) (*handler.ClientHandler, *publishRecorder) {
	h := handler.NewClientHandler(repository.NewClientRepo(db))
	rec := &publishRecorder{}
	h.Publish = rec.publish
	return h, rec
}

// TestClientCreate_validation exercises the field rules; nothing may
// reach the database.
func TestClientCreate_validation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"short_nome", `{"nome":"Maria","cpf":"12345678901","telefone":"999887766","email":"maria@exemplo.com"}`,
			"nome deve possuir, no mínimo, 10 caracteres"},
		{"bad_cpf", `{"nome":"Maria da Silva","cpf":"123","telefone":"999887766","email":"maria@exemplo.com"}`,
			"o cpf deve conter 11 caracteres"},
		{"bad_telefone", `{"nome":"Maria da Silva","cpf":"12345678901","telefone":"12345","email":"maria@exemplo.com"}`,
			"o telefone deve ter 9 caracteres"},
		{"bad_email", `{"nome":"Maria da Silva","cpf":"12345678901","telefone":"999887766","email":"m@e.c"}`,
			"e-mail inválido"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMock(t)
			h, _ := newClientHandler(db)

			c, rec := echoCtx(t, http.MethodPost, "/clientes", tc.body, 0)

			require.NoError(t, h.Create(c))
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, tc.want, decodeBody(t, rec)["erro"])
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestClientCreate_ok(t *testing.T) {
	db, mock := newMock(t)
	h, _ := newClientHandler(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO clientes (nome, cpf, telefone, email) VALUES (?,?,?,?)")).
		WithArgs("Maria da Silva", "12345678901", "999887766", "maria@exemplo.com").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM clientes WHERE id_cliente=?")).
		WithArgs(int64(1)).
		WillReturnRows(clientRow())

	c, rec := echoCtx(t, http.MethodPost, "/clientes",
		`{"nome":"Maria da Silva","cpf":"12345678901","telefone":"999887766","email":"maria@exemplo.com"}`, 0)

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	require.EqualValues(t, 1, body["id_cliente"])
	require.Equal(t, "Maria da Silva", body["nome"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientUpdate_notFound(t *testing.T) {
	db, mock := newMock(t)
	h, _ := newClientHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clientes WHERE id_cliente=? LIMIT 1")).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	c, rec := echoCtx(t, http.MethodPut, "/clientes/42",
		`{"nome":"Maria da Silva","cpf":"12345678901","telefone":"999887766","email":"maria@exemplo.com"}`, 0)
	setParamID(c, "42")

	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "cliente não encontrado", decodeBody(t, rec)["erro"])
	require.NoError(t, mock.ExpectationsWereMet())
}

// A client referenced by reservations cannot be deleted.
func TestClientDelete_hasReservations(t *testing.T) {
	db, mock := newMock(t)
	h, _ := newClientHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clientes WHERE id_cliente=? LIMIT 1")).
		WithArgs(int64(1)).
		WillReturnRows(clientRow())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reservas WHERE id_cliente=?")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	c, rec := echoCtx(t, http.MethodDelete, "/clientes/1", "", 0)
	setParamID(c, "1")

	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "cliente possui reservas", decodeBody(t, rec)["erro"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientDelete_ok(t *testing.T) {
	db, mock := newMock(t)
	h, _ := newClientHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clientes WHERE id_cliente=? LIMIT 1")).
		WithArgs(int64(1)).
		WillReturnRows(clientRow())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reservas WHERE id_cliente=?")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM clientes WHERE id_cliente=?")).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := echoCtx(t, http.MethodDelete, "/clientes/1", "", 0)
	setParamID(c, "1")

	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1, decodeBody(t, rec)["id_cliente"])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientReport_notFound(t *testing.T) {
	db, mock := newMock(t)
	h, _ := newClientHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clientes WHERE id_cliente=? LIMIT 1")).
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	c, rec := echoCtx(t, http.MethodGet, "/clientes/email/7", "", 0)
	setParamID(c, "7")

	require.NoError(t, h.Report(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "cliente não encontrado", decodeBody(t, rec)["erro"])
	require.NoError(t, mock.ExpectationsWereMet())
}

// TestClientReport_ok verifies the report shape — the client plus one
// line per reservation with dd/mm/yyyy dates — and that exactly one
// report email is attempted, addressed to the client.
func TestClientReport_ok(t *testing.T) {
	db, mock := newMock(t)
	h, pub := newClientHandler(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM clientes WHERE id_cliente=? LIMIT 1")).
		WithArgs(int64(1)).
		WillReturnRows(clientRow())
	mock.ExpectQuery(regexp.QuoteMeta("FROM reservas re")).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"destino", "data_inicio", "data_fim", "preco", "status"}).
			AddRow("Fortaleza", testTime, testTime.AddDate(0, 0, 7), 1500.0, "realizado"))

	c, rec := echoCtx(t, http.MethodGet, "/clientes/email/1", "", 0)
	setParamID(c, "1")

	require.NoError(t, h.Report(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	cliente, ok := body["cliente"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "maria@exemplo.com", cliente["email"])

	reservas, ok := body["reservas"].([]any)
	require.True(t, ok)
	require.Len(t, reservas, 1)
	linha := reservas[0].(map[string]any)
	require.Equal(t, "Fortaleza", linha["destino"])
	require.Equal(t, "01/06/2025", linha["data_inicio"])
	require.Equal(t, "08/06/2025", linha["data_fim"])

	require.Len(t, pub.events, 1)
	ev := pub.events[0]
	require.Equal(t, queue.EmailReservationReport, ev.Kind)
	require.Equal(t, "maria@exemplo.com", ev.To)
	require.Equal(t, "Maria da Silva", ev.Nome)
	require.Len(t, ev.Reservas, 1)
	require.Equal(t, "Fortaleza", ev.Reservas[0].Destino)
	require.NoError(t, mock.ExpectationsWereMet())
}
