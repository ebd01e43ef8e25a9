package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"pizzaria-api/internal/response"

	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// ResourceValidator checks create and update bodies of one resource.
type ResourceValidator interface {
	ValidateCreate(ctx context.Context, data map[string]any) ([]string, error)
	ValidateUpdate(ctx context.Context, data map[string]any) ([]string, error)
}

// resourceMessages are the fixed envelope messages of a CRUD resource.
type resourceMessages struct {
	listed       string
	created      string
	found        string
	updated      string
	deleted      string
	notFound     string
	invalid      string
	createFailed string
	updateFailed string
	deleteFailed string
	listFailed   string
	showFailed   string
}

// decodeBody reads a JSON object. A missing or malformed body yields an
// empty map so that validation reports the missing fields.
func decodeBody(w http.ResponseWriter, r *http.Request) map[string]any {
	data := map[string]any{}
	if r.Body == nil {
		return data
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&data); err != nil || data == nil {
		return map[string]any{}
	}
	return data
}

// pathID returns the {id} path variable. Non-numeric ids never match a row.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func respond(w http.ResponseWriter, env response.Envelope) {
	response.Write(w, env)
}
