package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/repository"
)

// TripHandler exposes CRUD for trips.
type TripHandler struct {
	Trips *repository.TripRepo
}

func NewTripHandler(trips *repository.TripRepo) *TripHandler {
	return &TripHandler{Trips: trips}
}

type tripReq struct {
	Destino    string    `json:"destino"`
	DataInicio time.Time `json:"data_inicio"`
	DataFim    time.Time `json:"data_fim"`
	Preco      float64   `json:"preco"`
}

func (r *tripReq) validate() string {
	r.Destino = strings.TrimSpace(r.Destino)
	if len([]rune(r.Destino)) < 4 {
		return "destino deve possuir, no mínimo, 4 caracteres"
	}
	if r.Preco <= 0 {
		return "preço deve ser positivo"
	}
	if r.DataInicio.IsZero() || r.DataFim.IsZero() {
		return "datas inválidas"
	}
	return ""
}

// List handles GET /viagens: every trip with its reservations.
func (h *TripHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Trips.List(ctx)
	if err != nil {
		return internalError(c, "trip list", err)
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /viagens.
func (h *TripHandler) Create(c echo.Context) error {
	var req tripReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "dados inválidos"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	t := model.Trip{Destino: req.Destino, DataInicio: req.DataInicio, DataFim: req.DataFim, Preco: req.Preco}
	if err := h.Trips.Create(ctx, &t); err != nil {
		return internalError(c, "trip create", err)
	}
	return c.JSON(http.StatusCreated, t)
}

// Update handles PUT /viagens/:id.
func (h *TripHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "id inválido"})
	}
	var req tripReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "dados inválidos"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	t, err := h.Trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"erro": "viagem não encontrada"})
		}
		return internalError(c, "trip update: lookup", err)
	}
	t.Destino, t.DataInicio, t.DataFim, t.Preco = req.Destino, req.DataInicio, req.DataFim, req.Preco
	if err := h.Trips.Update(ctx, &t); err != nil {
		return internalError(c, "trip update: write", err)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /viagens/:id. The delete is restricted while
// reservations still reference the trip.
func (h *TripHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "id inválido"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	t, err := h.Trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTripNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"erro": "viagem não encontrada"})
		}
		return internalError(c, "trip delete: lookup", err)
	}
	if err := h.Trips.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrHasReservations):
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "viagem possui reservas"})
		case errors.Is(err, repository.ErrTripNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"erro": "viagem não encontrada"})
		}
		return internalError(c, "trip delete: write", err)
	}
	return c.JSON(http.StatusOK, t)
}
