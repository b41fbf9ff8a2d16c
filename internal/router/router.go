package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/travel-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/travel-booking/internal/middleware" // import middleware for JWT authentication
)

// RegisterRoutes registers routes that do not belong to a resource
// group. Currently it exposes only a health check, which load balancers
// and monitoring systems can use to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterUsuario registers the account endpoints under /usuario. None
// of them require authentication: registration and activation happen
// before a token exists, and login is what issues one.
func RegisterUsuario(e *echo.Echo, a *handler.AuthHandler) {
	g := e.Group("/usuario")
	g.POST("/cadastrar", a.Register)
	g.POST("/ativar/:codigo", a.ActivateByCode)
	g.POST("/confirmar", a.Confirm)
	g.POST("/login", a.Login)
}

// RegisterClientes registers the client CRUD and the report email
// endpoint under /clientes. These routes are unauthenticated, matching
// the public API surface.
func RegisterClientes(e *echo.Echo, h *handler.ClientHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/clientes")
	g.GET("", h.List, cache)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	g.GET("/email/:id", h.Report)
}

// RegisterViagens registers the trip CRUD under /viagens.
func RegisterViagens(e *echo.Echo, h *handler.TripHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/viagens")
	g.GET("", h.List, cache)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// RegisterReservas registers the reservation endpoints under /reservas.
// Listing is public; every mutation requires a bearer token so the
// audit log can attribute the caller.
func RegisterReservas(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	auth := middleware.JWTAuth(jwtSecret)
	g := e.Group("/reservas")
	g.GET("", h.List, cache)
	g.POST("", h.Create, auth)
	g.PUT("/:id", h.Update, auth)
	g.DELETE("/:id", h.Delete, auth)
}

// RegisterPagamentos registers the payment endpoints under /pagamentos.
// Both routes require a bearer token.
func RegisterPagamentos(e *echo.Echo, h *handler.PaymentHandler, jwtSecret string) {
	auth := middleware.JWTAuth(jwtSecret)
	g := e.Group("/pagamentos")
	g.GET("", h.List, auth)
	g.POST("", h.Create, auth)
}

// RegisterLogs registers the audit log listing under /logs, protected
// by a bearer token.
func RegisterLogs(e *echo.Echo, h *handler.LogHandler, jwtSecret string) {
	e.GET("/logs", h.List, middleware.JWTAuth(jwtSecret))
}
