package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/queue"
	"github.com/iliyamo/travel-booking/internal/repository"
	queue_publisher "github.com/iliyamo/travel-booking/internal/service"
)

// ClientHandler exposes CRUD for clients plus the reservation report
// email endpoint.
type ClientHandler struct {
	Clients *repository.ClientRepo

	// Publish dispatches the report email event. Defaults to the
	// RabbitMQ publisher; tests substitute a recorder.
	Publish func(ctx context.Context, ev queue.EmailEvent) error
}

func NewClientHandler(cli *repository.ClientRepo) *ClientHandler {
	return &ClientHandler{Clients: cli, Publish: queue_publisher.PublishEmail}
}

type clientReq struct {
	Nome     string `json:"nome"`
	CPF      string `json:"cpf"`
	Telefone string `json:"telefone"`
	Email    string `json:"email"`
}

// validate applies the client field rules and returns the first
// violation message, or "" when the payload is acceptable.
func (r *clientReq) validate() string {
	r.Nome = strings.TrimSpace(r.Nome)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if len([]rune(r.Nome)) < 10 {
		return "nome deve possuir, no mínimo, 10 caracteres"
	}
	if len(r.CPF) != 11 {
		return "o cpf deve conter 11 caracteres"
	}
	if len(r.Telefone) != 9 {
		return "o telefone deve ter 9 caracteres"
	}
	if len(r.Email) < 10 || !validEmail(r.Email) {
		return "e-mail inválido"
	}
	return ""
}

// List handles GET /clientes.
func (h *ClientHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Clients.List(ctx)
	if err != nil {
		return internalError(c, "client list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /clientes.
func (h *ClientHandler) Create(c echo.Context) error {
	var req clientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "dados inválidos"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cli := model.Client{Nome: req.Nome, CPF: req.CPF, Telefone: req.Telefone, Email: req.Email}
	if err := h.Clients.Create(ctx, &cli); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "email já cadastrado"})
		}
		return internalError(c, "client create", err)
	}
	return c.JSON(http.StatusCreated, cli)
}

// Update handles PUT /clientes/:id.
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "id inválido"})
	}
	var req clientReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "dados inválidos"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cli, err := h.Clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"erro": "cliente não encontrado"})
		}
		return internalError(c, "client update: lookup", err)
	}
	cli.Nome, cli.CPF, cli.Telefone, cli.Email = req.Nome, req.CPF, req.Telefone, req.Email
	if err := h.Clients.Update(ctx, &cli); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "email já cadastrado"})
		}
		return internalError(c, "client update: write", err)
	}
	return c.JSON(http.StatusOK, cli)
}

// Delete handles DELETE /clientes/:id. The delete is restricted while
// reservations still reference the client.
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "id inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cli, err := h.Clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"erro": "cliente não encontrado"})
		}
		return internalError(c, "client delete: lookup", err)
	}
	if err := h.Clients.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrHasReservations):
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "cliente possui reservas"})
		case errors.Is(err, repository.ErrClientNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"erro": "cliente não encontrado"})
		}
		return internalError(c, "client delete: write", err)
	}
	return c.JSON(http.StatusOK, cli)
}

// Report handles GET /clientes/email/:id: it loads the client with its
// reservations and trips, emails the report table to the client's own
// address and returns the report data. The email is best-effort.
func (h *ClientHandler) Report(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "id inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	rep, err := h.Clients.Report(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClientNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"erro": "cliente não encontrado"})
		}
		return internalError(c, "client report", err)
	}

	linhas := make([]queue.ReportLine, 0, len(rep.Reservas))
	for _, r := range rep.Reservas {
		linhas = append(linhas, queue.ReportLine{
			Destino:    r.Destino,
			DataInicio: r.DataInicio,
			DataFim:    r.DataFim,
			Preco:      r.Preco,
			Status:     string(r.Status),
		})
	}
	if h.Publish != nil {
		if err := h.Publish(c.Request().Context(), queue.EmailEvent{
			Kind:     queue.EmailReservationReport,
			To:       rep.Cliente.Email,
			Nome:     rep.Cliente.Nome,
			Reservas: linhas,
		}); err != nil {
			log.Printf("client report email publish: %v", err)
		}
	}

	return c.JSON(http.StatusOK, rep)
}
