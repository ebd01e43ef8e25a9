package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"pizzaria-api/internal/middleware"
	"pizzaria-api/internal/models"
	"pizzaria-api/internal/services"
	"pizzaria-api/internal/validation"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	result    services.AuthResult
	err       error
	revokeErr error
	calls     int
	email     string
	revoked   []*models.Identity
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, email, password string) (services.AuthResult, error) {
	f.calls++
	f.email = email
	return f.result, f.err
}

func (f *fakeAuthenticator) RevokeToken(_ context.Context, identity *models.Identity) error {
	if identity == nil {
		return &services.RevocationError{Reason: "no current token"}
	}
	if f.revokeErr != nil {
		return f.revokeErr
	}
	f.revoked = append(f.revoked, identity)
	return nil
}

func TestLogin_ValidationFailureSkipsAuthentication(t *testing.T) {
	auth := &fakeAuthenticator{}
	h := NewAuthHandler(auth, validation.NewLoginValidator(), zerolog.Nop())

	_, env, raw := doRequest(t, h.Login, http.MethodPost, "/api/v1/login", `{"email":"nao-e-email"}`, nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, env.Status)
	assert.Equal(t, "Erros de validação", env.Message)
	assert.Equal(t, []string{"O email fornecido não é válido", "O campo senha é obrigatório"}, env.Errors)
	assert.NotContains(t, raw, "usuario")
	assert.Zero(t, auth.calls)
}

func TestLogin_Success(t *testing.T) {
	auth := &fakeAuthenticator{result: services.AuthResult{
		Authenticated: true,
		User:          &models.AuthenticatedUser{ID: 5, Email: "ana@pizzaria.com", Token: "bearer"},
	}}
	h := NewAuthHandler(auth, validation.NewLoginValidator(), zerolog.Nop())

	_, env, raw := doRequest(t, h.Login, http.MethodPost, "/api/v1/login",
		`{"email":"Ana@Pizzaria.com","password":"secret1"}`, nil, nil)
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, "Usuário logado com sucesso", env.Message)
	assert.Equal(t, "ana@pizzaria.com", auth.email)

	var user models.AuthenticatedUser
	require.NoError(t, json.Unmarshal(raw["usuario"], &user))
	assert.Equal(t, models.AuthenticatedUser{ID: 5, Email: "ana@pizzaria.com", Token: "bearer"}, user)
}

func TestLogin_WrongCredentialsIs404(t *testing.T) {
	h := NewAuthHandler(&fakeAuthenticator{}, validation.NewLoginValidator(), zerolog.Nop())

	_, env, raw := doRequest(t, h.Login, http.MethodPost, "/api/v1/login",
		`{"email":"ana@pizzaria.com","password":"wrong"}`, nil, nil)
	assert.Equal(t, http.StatusNotFound, env.Status)
	assert.Equal(t, "Usuário ou senha incorreto", env.Message)
	assert.NotContains(t, raw, "usuario")
}

func TestLogin_InternalError(t *testing.T) {
	auth := &fakeAuthenticator{err: errors.New("connection refused")}
	h := NewAuthHandler(auth, validation.NewLoginValidator(), zerolog.Nop())

	_, env, _ := doRequest(t, h.Login, http.MethodPost, "/api/v1/login",
		`{"email":"ana@pizzaria.com","password":"secret1"}`, nil, nil)
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, "Erro ao realizar login: connection refused", env.Message)
}

func TestLogout(t *testing.T) {
	auth := &fakeAuthenticator{}
	h := NewAuthHandler(auth, validation.NewLoginValidator(), zerolog.Nop())
	identity := &models.Identity{UserID: 5, TokenID: "tok-1"}
	ctx := middleware.WithIdentity(context.Background(), identity)

	_, env, _ := doRequest(t, h.Logout, http.MethodPost, "/api/v1/logout", "", nil, ctx)
	assert.Equal(t, http.StatusOK, env.Status)
	assert.Equal(t, "Usuário deslogado com sucesso!", env.Message)
	assert.Equal(t, []*models.Identity{identity}, auth.revoked)
}

func TestLogout_Failures(t *testing.T) {
	auth := &fakeAuthenticator{}
	h := NewAuthHandler(auth, validation.NewLoginValidator(), zerolog.Nop())

	_, env, _ := doRequest(t, h.Logout, http.MethodPost, "/api/v1/logout", "", nil, nil)
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Equal(t, "Erro ao realizar logout: token revocation failed: no current token", env.Message)

	auth.revokeErr = &services.RevocationError{TokenID: "tok-1", Reason: "token not found or already revoked"}
	ctx := middleware.WithIdentity(context.Background(), &models.Identity{UserID: 5, TokenID: "tok-1"})
	_, env, _ = doRequest(t, h.Logout, http.MethodPost, "/api/v1/logout", "", nil, ctx)
	assert.Equal(t, http.StatusInternalServerError, env.Status)
	assert.Contains(t, env.Message, "already revoked")
}

func TestLogin_NonTextPasswordIs422(t *testing.T) {
	auth := &fakeAuthenticator{}
	h := NewAuthHandler(auth, validation.NewLoginValidator(), zerolog.Nop())

	_, env, _ := doRequest(t, h.Login, http.MethodPost, "/api/v1/login", `{"email":"ana@pizzaria.com","password":123456}`, nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, env.Status)
	assert.Equal(t, []string{"O campo senha deve ser um texto."}, env.Errors)
	assert.Zero(t, auth.calls)
}
