package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/repository"
)

// PaymentHandler records payments against reservations. Creating a
// payment also advances the reservation to realizado; the insert, the
// audit entry and the status change commit as one transaction.
type PaymentHandler struct {
	Payments     *repository.PaymentRepo
	Reservations *repository.ReservationRepo
	Logs         *repository.LogRepo
}

// NewPaymentHandler constructs a PaymentHandler with the provided
// repositories. All dependencies must be non-nil.
func NewPaymentHandler(p *repository.PaymentRepo, res *repository.ReservationRepo, logs *repository.LogRepo) *PaymentHandler {
	if p == nil || res == nil || logs == nil {
		panic("nil repository passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: p, Reservations: res, Logs: logs}
}

type createPaymentReq struct {
	IDReserva      int64   `json:"id_reserva"`
	Valor          float64 `json:"valor"`
	FormaPagamento string  `json:"forma_pagamento"`
}

// List handles GET /pagamentos and returns every payment with its
// reservation expanded.
func (h *PaymentHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Payments.ListDetails(ctx)
	if err != nil {
		return internalError(c, "payment list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /pagamentos. The amount must be positive and the
// method must be one of PIX, Cartao, Dinheiro. No check prevents a
// second payment against the same reservation; the status change is
// idempotent for already-completed reservations.
func (h *PaymentHandler) Create(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"erro": "não autorizado"})
	}
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "dados inválidos"})
	}
	if req.Valor <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "valor deve ser positivo"})
	}
	method, ok := model.ParsePaymentMethod(req.FormaPagamento)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "forma de pagamento inválida"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	re, err := h.Reservations.GetByID(ctx, req.IDReserva)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "reserva não encontrada"})
		}
		return internalError(c, "payment create: reservation lookup", err)
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return internalError(c, "payment create: begin tx", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	p := model.Payment{
		ReservaID:      req.IDReserva,
		Valor:          req.Valor,
		FormaPagamento: method,
	}
	if err := h.Payments.CreateTx(ctx, tx, &p); err != nil {
		return internalError(c, "payment create: insert", err)
	}
	if err := h.Logs.AppendTx(ctx, tx, fmt.Sprintf("Pagamento realizado (reserva %d)", req.IDReserva), uid); err != nil {
		return internalError(c, "payment create: audit log", err)
	}
	if err := h.Reservations.UpdateStatusTx(ctx, tx, &re, model.ReservationCompleted); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"erro": "reserva modificada por outra requisição"})
		}
		return internalError(c, "payment create: advance status", err)
	}
	if err := tx.Commit(); err != nil {
		return internalError(c, "payment create: commit", err)
	}
	committed = true

	return c.JSON(http.StatusCreated, p)
}
