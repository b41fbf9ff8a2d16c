package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-booking/internal/middleware"
	"github.com/iliyamo/travel-booking/internal/queue"
)

// publishRecorder captures email events instead of dialing the broker.
type publishRecorder struct {
	events []queue.EmailEvent
}

func (p *publishRecorder) publish(_ context.Context, ev queue.EmailEvent) error {
	p.events = append(p.events, ev)
	return nil
}

// newMock returns a sqlmock-backed *sql.DB and closes it when the test
// ends. Expectations are verified explicitly in each test.
func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// echoCtx builds an Echo context for a JSON request. uid > 0 simulates
// a caller that passed the JWT middleware.
func echoCtx(t *testing.T, method, target, body string, uid int64) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if uid > 0 {
		c.Set(middleware.CtxUserID, uid)
		c.Set(middleware.CtxUserNome, "Usuário Teste")
	}
	return c, rec
}

func setParamID(c echo.Context, id string) {
	c.SetParamNames("id")
	c.SetParamValues(id)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

var testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// column sets matching the repository SELECTs
var (
	clientCols      = []string{"id_cliente", "nome", "cpf", "telefone", "email", "created_at"}
	tripCols        = []string{"id_viagem", "destino", "data_inicio", "data_fim", "preco", "created_at"}
	reservationCols = []string{"id_reserva", "id_cliente", "id_viagem", "usuario_id", "status", "version", "created_at"}
	paymentCols     = []string{"id_pagamento", "id_reserva", "valor", "forma_pagamento", "created_at"}
	userCols        = []string{"id_usuario", "nome", "email", "senha", "status", "codigo_ativacao", "created_at"}
)

func clientRow() *sqlmock.Rows {
	return sqlmock.NewRows(clientCols).
		AddRow(1, "Maria da Silva", "12345678901", "999887766", "maria@exemplo.com", testTime)
}

func tripRow() *sqlmock.Rows {
	return sqlmock.NewRows(tripCols).
		AddRow(2, "Fortaleza", testTime, testTime.AddDate(0, 0, 7), 1500.0, testTime)
}

func reservationRow(status string, version int64) *sqlmock.Rows {
	return sqlmock.NewRows(reservationCols).
		AddRow(3, 1, 2, 9, status, version, testTime)
}
