package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/repository"
)

// LogHandler exposes the read side of the audit log. Entries are only
// ever written inside the reservation and payment workflows.
type LogHandler struct {
	Logs *repository.LogRepo
}

func NewLogHandler(logs *repository.LogRepo) *LogHandler {
	return &LogHandler{Logs: logs}
}

// List handles GET /logs: every audit entry with its acting user,
// newest first.
func (h *LogHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	out, err := h.Logs.ListDetails(ctx)
	if err != nil {
		return internalError(c, "log list", err)
	}
	return c.JSON(http.StatusOK, out)
}
