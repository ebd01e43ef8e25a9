package handlers

import (
	"context"
	"net/http"

	"pizzaria-api/internal/middleware"
	"pizzaria-api/internal/models"
	"pizzaria-api/internal/response"

	"github.com/rs/zerolog"
)

type UserStore interface {
	List(ctx context.Context, page int) (*models.Page[models.User], error)
	Get(ctx context.Context, id int) (*models.User, error)
	Create(ctx context.Context, in models.UserInput) (*models.User, error)
	Update(ctx context.Context, id int, in models.UserInput) (*models.User, error)
	Delete(ctx context.Context, id int) (bool, error)
}

var userMessages = resourceMessages{
	listed:       "Usuários encontrados!!",
	created:      "Usuário cadastrado com sucesso!!",
	found:        "Usuário encontrado com sucesso!!",
	updated:      "Usuário atualizado com sucesso!!",
	deleted:      "Usuário deletado com sucesso!!",
	notFound:     "Usuário não encontrado! Que triste!",
	invalid:      "Erro de validação",
	createFailed: "Erro ao cadastrar usuário",
	updateFailed: "Erro ao atualizar usuário",
	deleteFailed: "Erro ao deletar usuário",
	listFailed:   "Erro ao buscar usuários",
	showFailed:   "Erro ao buscar usuário",
}

const msgCurrentUser = "Usuário logado!"

type UserHandler struct {
	users     UserStore
	validator ResourceValidator
	format    response.Formatter
	logger    zerolog.Logger
}

func NewUserHandler(users UserStore, validator ResourceValidator, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		users:     users,
		validator: validator,
		format:    response.NewFormatter("user"),
		logger:    logger,
	}
}

func (h *UserHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.users.List(r.Context(), pageParam(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("Listing users failed")
		respond(w, h.format.Error(userMessages.listFailed, nil, http.StatusInternalServerError))
		return
	}
	respond(w, h.format.Success(userMessages.listed, page))
}

// Me returns the record of the authenticated caller.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r)
	if !ok {
		respond(w, h.format.Error(userMessages.notFound, nil, http.StatusNotFound))
		return
	}
	h.show(w, r, identity.UserID, msgCurrentUser)
}

func (h *UserHandler) Store(w http.ResponseWriter, r *http.Request) {
	data := decodeBody(w, r)

	errs, err := h.validator.ValidateCreate(r.Context(), data)
	if err != nil {
		h.logger.Error().Err(err).Msg("User validation failed")
		respond(w, h.format.Error(userMessages.createFailed, nil, http.StatusInternalServerError))
		return
	}
	if len(errs) > 0 {
		respond(w, h.format.Error(userMessages.invalid, errs, http.StatusUnprocessableEntity))
		return
	}

	user, err := h.users.Create(r.Context(), models.UserInputFromMap(data))
	if err != nil {
		h.logger.Error().Err(err).Msg("Creating user failed")
		respond(w, h.format.Error(userMessages.createFailed, nil, http.StatusInternalServerError))
		return
	}
	respond(w, h.format.Success(userMessages.created, user))
}

func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond(w, h.format.Error(userMessages.notFound, nil, http.StatusNotFound))
		return
	}
	h.show(w, r, id, userMessages.found)
}

func (h *UserHandler) show(w http.ResponseWriter, r *http.Request, id int, message string) {
	user, err := h.users.Get(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int("user_id", id).Msg("Fetching user failed")
		respond(w, h.format.Error(userMessages.showFailed, nil, http.StatusInternalServerError))
		return
	}
	if user == nil {
		respond(w, h.format.Error(userMessages.notFound, nil, http.StatusNotFound))
		return
	}
	respond(w, h.format.Success(message, user))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond(w, h.format.Error(userMessages.notFound, nil, http.StatusNotFound))
		return
	}

	data := decodeBody(w, r)
	errs, err := h.validator.ValidateUpdate(r.Context(), data)
	if err != nil {
		h.logger.Error().Err(err).Int("user_id", id).Msg("User validation failed")
		respond(w, h.format.Error(userMessages.updateFailed, nil, http.StatusInternalServerError))
		return
	}
	if len(errs) > 0 {
		respond(w, h.format.Error(userMessages.invalid, errs, http.StatusUnprocessableEntity))
		return
	}

	user, err := h.users.Update(r.Context(), id, models.UserInputFromMap(data))
	if err != nil {
		h.logger.Error().Err(err).Int("user_id", id).Msg("Updating user failed")
		respond(w, h.format.Error(userMessages.updateFailed, nil, http.StatusInternalServerError))
		return
	}
	if user == nil {
		respond(w, h.format.Error(userMessages.notFound, nil, http.StatusNotFound))
		return
	}
	respond(w, h.format.Success(userMessages.updated, user))
}

func (h *UserHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond(w, h.format.Error(userMessages.notFound, nil, http.StatusNotFound))
		return
	}

	deleted, err := h.users.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int("user_id", id).Msg("Deleting user failed")
		respond(w, h.format.Error(userMessages.deleteFailed, nil, http.StatusInternalServerError))
		return
	}
	if !deleted {
		respond(w, h.format.Error(userMessages.notFound, nil, http.StatusNotFound))
		return
	}
	respond(w, h.format.Success(userMessages.deleted, nil))
}
