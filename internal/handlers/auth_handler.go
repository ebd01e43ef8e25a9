package handlers

import (
	"context"
	"net/http"
	"strings"

	"pizzaria-api/internal/metrics"
	"pizzaria-api/internal/middleware"
	"pizzaria-api/internal/models"
	"pizzaria-api/internal/response"
	"pizzaria-api/internal/services"

	"github.com/rs/zerolog"
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (services.AuthResult, error)
	RevokeToken(ctx context.Context, identity *models.Identity) error
}

type LoginValidator interface {
	Validate(ctx context.Context, data map[string]any) ([]string, error)
}

const (
	msgLoginInvalid  = "Erros de validação"
	msgLoginSuccess  = "Usuário logado com sucesso"
	msgLoginRejected = "Usuário ou senha incorreto"
	msgLoginFailed   = "Erro ao realizar login: "
	msgLogoutSuccess = "Usuário deslogado com sucesso!"
	msgLogoutFailed  = "Erro ao realizar logout: "
)

type AuthHandler struct {
	auth      Authenticator
	validator LoginValidator
	format    response.Formatter
	logger    zerolog.Logger
}

func NewAuthHandler(auth Authenticator, validator LoginValidator, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:      auth,
		validator: validator,
		format:    response.NewFormatter("usuario"),
		logger:    logger,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	data := decodeBody(w, r)

	errs, err := h.validator.Validate(r.Context(), data)
	if err != nil {
		h.loginFailed(w, err)
		return
	}
	if len(errs) > 0 {
		metrics.RecordLogin(metrics.LoginInvalid)
		respond(w, h.format.Error(msgLoginInvalid, errs, http.StatusUnprocessableEntity))
		return
	}

	email, _ := data["email"].(string)
	password, _ := data["password"].(string)

	result, err := h.auth.Authenticate(r.Context(), strings.ToLower(email), password)
	if err != nil {
		h.loginFailed(w, err)
		return
	}
	if !result.Authenticated {
		metrics.RecordLogin(metrics.LoginRejected)
		respond(w, h.format.Error(msgLoginRejected, nil, http.StatusNotFound))
		return
	}

	metrics.RecordLogin(metrics.LoginSuccess)
	respond(w, h.format.Success(msgLoginSuccess, result.User))
}

func (h *AuthHandler) loginFailed(w http.ResponseWriter, err error) {
	h.logger.Error().Err(err).Msg("Login failed")
	metrics.RecordLogin(metrics.LoginError)
	respond(w, h.format.Error(msgLoginFailed+err.Error(), nil, http.StatusInternalServerError))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r)

	err := h.auth.RevokeToken(r.Context(), identity)
	metrics.RecordRevocation(err)
	if err != nil {
		h.logger.Error().Err(err).Msg("Logout failed")
		respond(w, h.format.Error(msgLogoutFailed+err.Error(), nil, http.StatusInternalServerError))
		return
	}
	respond(w, h.format.Success(msgLogoutSuccess, nil))
}
