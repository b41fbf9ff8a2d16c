package handler

import (
	"log"
	"net/http"
	"net/mail"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/middleware"
)

// dbTimeout bounds every database call issued from a handler.
const dbTimeout = 5 * time.Second

// callerID extracts the authenticated user's id attached by the JWT
// middleware. The second return value is false when the route was
// reached without authentication, which means a wiring mistake.
func callerID(c echo.Context) (int64, bool) {
	id, ok := c.Get(middleware.CtxUserID).(int64)
	return id, ok
}

// internalError logs the full failure server-side and answers with an
// opaque body. Internal details are never echoed to clients.
func internalError(c echo.Context, op string, err error) error {
	log.Printf("%s: %v", op, err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"erro": "erro interno"})
}

// validEmail reports whether s parses as a bare email address.
func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

// pathID parses the :id path parameter as a positive integer.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.ErrBadRequest
	}
	return id, nil
}
