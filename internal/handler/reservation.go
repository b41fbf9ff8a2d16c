package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/queue"
	"github.com/iliyamo/travel-booking/internal/repository"
	queue_publisher "github.com/iliyamo/travel-booking/internal/service"
)

// ReservationHandler implements the reservation lifecycle: listing,
// creation, update and deletion. The mutating operations require an
// authenticated caller and write their audit entry inside the same
// transaction as the data change; the confirmation email is published
// to the broker only after a successful commit and never fails the
// request.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Clients      *repository.ClientRepo
	Trips        *repository.TripRepo
	Logs         *repository.LogRepo

	// Publish dispatches an email event to the broker. Defaults to the
	// RabbitMQ publisher; tests substitute a recorder. A nil Publish
	// drops events.
	Publish func(ctx context.Context, ev queue.EmailEvent) error
}

// NewReservationHandler constructs a ReservationHandler with the
// provided repositories. All dependencies must be non-nil.
func NewReservationHandler(res *repository.ReservationRepo, cli *repository.ClientRepo, trips *repository.TripRepo, logs *repository.LogRepo) *ReservationHandler {
	if res == nil || cli == nil || trips == nil || logs == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{
		Reservations: res,
		Clients:      cli,
		Trips:        trips,
		Logs:         logs,
		Publish:      queue_publisher.PublishEmail,
	}
}

type createReservationReq struct {
	IDCliente int64  `json:"id_cliente"`
	IDViagem  int64  `json:"id_viagem"`
	Email     string `json:"email"`
}

type updateReservationReq struct {
	IDCliente *int64  `json:"id_cliente"`
	IDViagem  *int64  `json:"id_viagem"`
	Status    *string `json:"status"`
}

// List handles GET /reservas. It is public and returns every
// reservation joined with its client, trip and owning user.
func (h *ReservationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Reservations.ListDetails(ctx)
	if err != nil {
		return internalError(c, "reservation list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /reservas. The reservation is inserted pendente
// and advanced to realizado in the same transaction, together with its
// audit entry; committing all three as one unit means a failure leaves
// no half-written reservation behind. The confirmation email is
// dispatched after commit.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"erro": "não autorizado"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "dados inválidos"})
	}
	if !validEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "e-mail inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cliente, err := h.Clients.GetByID(ctx, req.IDCliente)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "cliente não encontrado"})
		}
		return internalError(c, "reservation create: client lookup", err)
	}
	viagem, err := h.Trips.GetByID(ctx, req.IDViagem)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "viagem não encontrada"})
		}
		return internalError(c, "reservation create: trip lookup", err)
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return internalError(c, "reservation create: begin tx", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	re := model.Reservation{
		ClienteID: req.IDCliente,
		ViagemID:  req.IDViagem,
		UsuarioID: uid,
		Status:    model.ReservationPending,
	}
	if err := h.Reservations.CreateTx(ctx, tx, &re); err != nil {
		return internalError(c, "reservation create: insert", err)
	}
	if err := h.Reservations.UpdateStatusTx(ctx, tx, &re, model.ReservationCompleted); err != nil {
		return internalError(c, "reservation create: advance status", err)
	}
	if err := h.Logs.AppendTx(ctx, tx, fmt.Sprintf("Reserva criada para viagem %d", req.IDViagem), uid); err != nil {
		return internalError(c, "reservation create: audit log", err)
	}
	if err := tx.Commit(); err != nil {
		return internalError(c, "reservation create: commit", err)
	}
	committed = true

	// Post-commit, best-effort: the reservation stands even if the
	// broker is down.
	h.publish(c.Request().Context(), queue.EmailEvent{
		Kind:       queue.EmailReservationConfirmed,
		To:         req.Email,
		Nome:       cliente.Nome,
		Destino:    viagem.Destino,
		DataInicio: viagem.DataInicio.UTC().Format("02/01/2006"),
		DataFim:    viagem.DataFim.UTC().Format("02/01/2006"),
		Preco:      viagem.Preco,
		Status:     string(re.Status),
	})

	return c.JSON(http.StatusCreated, re)
}

// publish dispatches one email event, swallowing failures: a lost
// notification never fails the mutation that produced it.
func (h *ReservationHandler) publish(ctx context.Context, ev queue.EmailEvent) {
	if h.Publish == nil {
		return
	}
	if err := h.Publish(ctx, ev); err != nil {
		log.Printf("reservation email publish: %v", err)
	}
}

// Update handles PUT /reservas/:id. Absent reservations yield 404. The
// update is guarded by the version read here, so a concurrent writer
// surfaces as a 409 instead of silently losing the race.
func (h *ReservationHandler) Update(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"erro": "não autorizado"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "id inválido"})
	}
	var req updateReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "dados inválidos"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	re, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"erro": "reserva não encontrada"})
		}
		return internalError(c, "reservation update: lookup", err)
	}

	if req.IDCliente != nil {
		if _, err := h.Clients.GetByID(ctx, *req.IDCliente); err != nil {
			if errors.Is(err, repository.ErrClientNotFound) {
				return c.JSON(http.StatusBadRequest, echo.Map{"erro": "cliente não encontrado"})
			}
			return internalError(c, "reservation update: client lookup", err)
		}
		re.ClienteID = *req.IDCliente
	}
	if req.IDViagem != nil {
		if _, err := h.Trips.GetByID(ctx, *req.IDViagem); err != nil {
			if errors.Is(err, repository.ErrTripNotFound) {
				return c.JSON(http.StatusBadRequest, echo.Map{"erro": "viagem não encontrada"})
			}
			return internalError(c, "reservation update: trip lookup", err)
		}
		re.ViagemID = *req.IDViagem
	}
	if req.Status != nil {
		next := model.ReservationStatus(*req.Status)
		if !re.Status.CanTransition(next) {
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "status inválido"})
		}
		re.Status = next
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return internalError(c, "reservation update: begin tx", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Reservations.UpdateTx(ctx, tx, &re); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"erro": "reserva modificada por outra requisição"})
		}
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"erro": "reserva não encontrada"})
		}
		return internalError(c, "reservation update: write", err)
	}
	if err := h.Logs.AppendTx(ctx, tx, fmt.Sprintf("Reserva %d atualizada", id), uid); err != nil {
		return internalError(c, "reservation update: audit log", err)
	}
	if err := tx.Commit(); err != nil {
		return internalError(c, "reservation update: commit", err)
	}
	committed = true

	return c.JSON(http.StatusOK, re)
}

// Delete handles DELETE /reservas/:id. Absent reservations yield 404;
// reservations with payments are protected from deletion.
func (h *ReservationHandler) Delete(c echo.Context) error {
	uid, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"erro": "não autorizado"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "id inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if _, err := h.Reservations.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"erro": "reserva não encontrada"})
		}
		return internalError(c, "reservation delete: lookup", err)
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return internalError(c, "reservation delete: begin tx", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := h.Reservations.DeleteTx(ctx, tx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrHasPayments):
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "reserva possui pagamentos"})
		case errors.Is(err, repository.ErrReservationNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"erro": "reserva não encontrada"})
		}
		return internalError(c, "reservation delete: write", err)
	}
	if err := h.Logs.AppendTx(ctx, tx, fmt.Sprintf("Reserva %d deletada", id), uid); err != nil {
		return internalError(c, "reservation delete: audit log", err)
	}
	if err := tx.Commit(); err != nil {
		return internalError(c, "reservation delete: commit", err)
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"mensagem": "reserva deletada com sucesso"})
}
