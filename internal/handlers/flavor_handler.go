package handlers

import (
	"context"
	"net/http"

	"pizzaria-api/internal/models"
	"pizzaria-api/internal/response"

	"github.com/rs/zerolog"
)

type FlavorStore interface {
	List(ctx context.Context, page int) (*models.Page[models.Flavor], error)
	Get(ctx context.Context, id int) (*models.Flavor, error)
	Create(ctx context.Context, in models.FlavorInput) (*models.Flavor, error)
	Update(ctx context.Context, id int, in models.FlavorInput) (*models.Flavor, error)
	Delete(ctx context.Context, id int) (bool, error)
}

var flavorMessages = resourceMessages{
	listed:       "Sabores encontrados!!",
	created:      "Sabor cadastrado com sucesso!!",
	found:        "Sabor encontrado com sucesso!!",
	updated:      "Sabor atualizado com sucesso!!",
	deleted:      "Sabor deletado com sucesso!!",
	notFound:     "Sabor não encontrado! Que triste!",
	invalid:      "Erro de validação",
	createFailed: "Erro ao cadastrar sabor",
	updateFailed: "Erro ao atualizar sabor",
	deleteFailed: "Erro ao deletar sabor",
	listFailed:   "Erro ao buscar sabores",
	showFailed:   "Erro ao buscar sabor",
}

type FlavorHandler struct {
	flavors   FlavorStore
	validator ResourceValidator
	format    response.Formatter
	logger    zerolog.Logger
}

func NewFlavorHandler(flavors FlavorStore, validator ResourceValidator, logger zerolog.Logger) *FlavorHandler {
	return &FlavorHandler{
		flavors:   flavors,
		validator: validator,
		format:    response.NewFormatter("sabores"),
		logger:    logger,
	}
}

func (h *FlavorHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.flavors.List(r.Context(), pageParam(r))
	if err != nil {
		h.logger.Error().Err(err).Msg("Listing flavors failed")
		respond(w, h.format.Error(flavorMessages.listFailed, nil, http.StatusInternalServerError))
		return
	}
	respond(w, h.format.Success(flavorMessages.listed, page))
}

func (h *FlavorHandler) Store(w http.ResponseWriter, r *http.Request) {
	data := decodeBody(w, r)

	errs, err := h.validator.ValidateCreate(r.Context(), data)
	if err != nil {
		h.logger.Error().Err(err).Msg("Flavor validation failed")
		respond(w, h.format.Error(flavorMessages.createFailed, nil, http.StatusInternalServerError))
		return
	}
	if len(errs) > 0 {
		respond(w, h.format.Error(flavorMessages.invalid, errs, http.StatusUnprocessableEntity))
		return
	}

	flavor, err := h.flavors.Create(r.Context(), models.FlavorInputFromMap(data))
	if err != nil {
		h.logger.Error().Err(err).Msg("Creating flavor failed")
		respond(w, h.format.Error(flavorMessages.createFailed, nil, http.StatusInternalServerError))
		return
	}
	respond(w, h.format.Success(flavorMessages.created, flavor))
}

func (h *FlavorHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond(w, h.format.Error(flavorMessages.notFound, nil, http.StatusNotFound))
		return
	}

	flavor, err := h.flavors.Get(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int("flavor_id", id).Msg("Fetching flavor failed")
		respond(w, h.format.Error(flavorMessages.showFailed, nil, http.StatusInternalServerError))
		return
	}
	if flavor == nil {
		respond(w, h.format.Error(flavorMessages.notFound, nil, http.StatusNotFound))
		return
	}
	respond(w, h.format.Success(flavorMessages.found, flavor))
}

func (h *FlavorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond(w, h.format.Error(flavorMessages.notFound, nil, http.StatusNotFound))
		return
	}

	data := decodeBody(w, r)
	errs, err := h.validator.ValidateUpdate(r.Context(), data)
	if err != nil {
		h.logger.Error().Err(err).Int("flavor_id", id).Msg("Flavor validation failed")
		respond(w, h.format.Error(flavorMessages.updateFailed, nil, http.StatusInternalServerError))
		return
	}
	if len(errs) > 0 {
		respond(w, h.format.Error(flavorMessages.invalid, errs, http.StatusUnprocessableEntity))
		return
	}

	flavor, err := h.flavors.Update(r.Context(), id, models.FlavorInputFromMap(data))
	if err != nil {
		h.logger.Error().Err(err).Int("flavor_id", id).Msg("Updating flavor failed")
		respond(w, h.format.Error(flavorMessages.updateFailed, nil, http.StatusInternalServerError))
		return
	}
	if flavor == nil {
		respond(w, h.format.Error(flavorMessages.notFound, nil, http.StatusNotFound))
		return
	}
	respond(w, h.format.Success(flavorMessages.updated, flavor))
}

func (h *FlavorHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respond(w, h.format.Error(flavorMessages.notFound, nil, http.StatusNotFound))
		return
	}

	deleted, err := h.flavors.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Int("flavor_id", id).Msg("Deleting flavor failed")
		respond(w, h.format.Error(flavorMessages.deleteFailed, nil, http.StatusInternalServerError))
		return
	}
	if !deleted {
		respond(w, h.format.Error(flavorMessages.notFound, nil, http.StatusNotFound))
		return
	}
	respond(w, h.format.Success(flavorMessages.deleted, nil))
}
