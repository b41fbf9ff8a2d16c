package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// Context keys under which JWTAuth stores the caller's identity.
const (
	CtxUserID   = "user_id"   // int64 subject id
	CtxUserNome = "user_nome" // display name from the nome claim
)

// JWTAuth returns an Echo middleware that validates a Bearer access
// token and injects the caller's id and display name into the request
// context. The Authorization header must contain exactly two
// space-separated parts with the literal scheme "Bearer". The secret
// must match the one used when issuing tokens; an empty secret is a
// server misconfiguration and is reported as a 500 with the detail kept
// in the server log. The middleware has no side effects beyond setting
// context values.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"erro": "token não informado"})
			}
			parts := strings.Split(auth, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"erro": "formato de token inválido"})
			}
			if secret == "" {
				log.Printf("jwt middleware: signing secret is not configured")
				return c.JSON(http.StatusInternalServerError, echo.Map{"erro": "erro de configuração do servidor"})
			}

			tok, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"erro": "token inválido"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"erro": "token inválido"})
			}

			// JWT numbers decode as float64; some issuers encode the
			// subject as a numeric string. Coerce both to int64.
			var uid int64
			switch sub := claims["sub"].(type) {
			case float64:
				uid = int64(sub)
			case string:
				if parsed, perr := strconv.ParseInt(sub, 10, 64); perr == nil {
					uid = parsed
				}
			}
			if uid == 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"erro": "token inválido"})
			}
			nome, _ := claims["nome"].(string)

			c.Set(CtxUserID, uid)
			c.Set(CtxUserNome, nome)
			return next(c)
		}
	}
}
