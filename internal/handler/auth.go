package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-booking/internal/config"
	"github.com/iliyamo/travel-booking/internal/model"
	"github.com/iliyamo/travel-booking/internal/queue"
	"github.com/iliyamo/travel-booking/internal/repository"
	queue_publisher "github.com/iliyamo/travel-booking/internal/service"
	"github.com/iliyamo/travel-booking/internal/utils"
)

// AuthHandler bundles dependencies for the /usuario endpoints:
// registration, the two activation paths and login.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo

	// Publish dispatches the activation email event. Defaults to the
	// RabbitMQ publisher; tests substitute a recorder.
	Publish func(ctx context.Context, ev queue.EmailEvent) error
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Publish: queue_publisher.PublishEmail}
}

// ----- DTOs -----

type registerReq struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}
type confirmReq struct {
	Email  string `json:"email"`
	Codigo string `json:"codigo"`
}
type loginReq struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Register creates an INATIVO account with a single-use activation code
// and emails the code to the new user. The password must carry a lower
// and an upper case letter, a digit and a symbol; each violated rule is
// reported.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "dados inválidos"})
	}
	req.Nome = strings.TrimSpace(req.Nome)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if len([]rune(req.Nome)) < 3 {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "nome deve ter pelo menos 3 caracteres"})
	}
	if !validEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "e-mail inválido"})
	}
	if issues := utils.PasswordIssues(req.Senha); len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": issues})
	}

	code, err := utils.NewActivationCode()
	if err != nil {
		return internalError(c, "auth register: activation code", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u := model.User{Nome: req.Nome, Email: req.Email, CodigoAtivacao: &code}
	if err := h.Users.Create(ctx, &u, req.Senha, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "email já cadastrado"})
		}
		return internalError(c, "auth register: create user", err)
	}

	// Best-effort: a lost activation email never fails the registration.
	if h.Publish != nil {
		if err := h.Publish(c.Request().Context(), queue.EmailEvent{
			Kind:   queue.EmailActivation,
			To:     u.Email,
			Codigo: code,
		}); err != nil {
			log.Printf("activation email publish: %v", err)
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{"mensagem": "usuário cadastrado. verifique seu e-mail."})
}

// ActivateByCode activates whichever account holds the code in the URL.
// Codes are cleared on use, so repeating the request fails.
func (h *AuthHandler) ActivateByCode(c echo.Context) error {
	codigo := c.Param("codigo")

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByActivationCode(ctx, codigo)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCode) {
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "código inválido"})
		}
		return internalError(c, "auth activate: lookup", err)
	}
	if err := h.Users.Activate(ctx, u.ID); err != nil {
		if errors.Is(err, repository.ErrInvalidCode) {
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "código inválido"})
		}
		return internalError(c, "auth activate: update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"mensagem": "conta ativada com sucesso!"})
}

// Confirm activates an account by email and code pair: the code must
// belong to that specific user.
func (h *AuthHandler) Confirm(c echo.Context) error {
	var req confirmReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "dados inválidos"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "usuário não encontrado"})
		}
		return internalError(c, "auth confirm: lookup", err)
	}
	if u.CodigoAtivacao == nil || *u.CodigoAtivacao != req.Codigo {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "código inválido"})
	}
	if err := h.Users.Activate(ctx, u.ID); err != nil {
		if errors.Is(err, repository.ErrInvalidCode) {
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "código inválido"})
		}
		return internalError(c, "auth confirm: update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"mensagem": "conta ativada com sucesso!"})
}

// Login verifies the password of an ATIVO account and issues a 4-hour
// bearer token carrying the user's id and display name.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "dados inválidos"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusBadRequest, echo.Map{"erro": "usuário não encontrado"})
		}
		return internalError(c, "auth login: lookup", err)
	}
	if u.Status != model.UserActive {
		return c.JSON(http.StatusForbidden, echo.Map{"erro": "ative sua conta antes de fazer login."})
	}
	if !utils.VerifyPassword(u.SenhaHash, req.Senha) {
		return c.JSON(http.StatusBadRequest, echo.Map{"erro": "senha incorreta"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Nome, h.Cfg.AccessTTLMin)
	if err != nil {
		return internalError(c, "auth login: issue token", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"mensagem": "login realizado!", "token": access.Token})
}
