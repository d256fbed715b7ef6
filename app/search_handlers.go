package wayfarer

import (
	"net/http"

	"github.com/wayfarer-app/wayfarer/core"
)

type SearchHandler struct {
	search *core.SearchService
}

func NewSearchHandler(search *core.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

type SearchPayload struct {
	Query string `json:"query" validate:"required"`
	Type  string `json:"type" validate:"required,oneof=places users hazards"`
}

func (h *SearchHandler) SearchHandler(w http.ResponseWriter, r *http.Request) error {
	var payload SearchPayload
	if err := decodeJson(r, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	results, err := h.search.Search(r.Context(), payload.Query, core.SearchKind(payload.Type))
	if err != nil {
		return err
	}
	if results == nil {
		results = []core.SearchResult{}
	}

	return writeJson(w, results)
}
