package wayfarer

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wayfarer-app/wayfarer/core"
	"github.com/wayfarer-app/wayfarer/pkg/router"
)

type DestinationHandler struct {
	store core.DestinationStore
}

func NewDestinationHandler(store core.DestinationStore) *DestinationHandler {
	return &DestinationHandler{store: store}
}

type DestinationPayload struct {
	Name       string  `json:"name" validate:"required"`
	Address    string  `json:"address"`
	Category   string  `json:"category"`
	Latitude   float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude  float64 `json:"longitude" validate:"min=-180,max=180"`
	IsFavorite bool    `json:"is_favorite"`
}

func (h *DestinationHandler) ListDestinationsHandler(w http.ResponseWriter, r *http.Request) error {
	destinations, err := h.store.ListDestinationsByOwner(r.Context(), core.SubjectFromRequest(r))
	if err != nil {
		return fmt.Errorf("list destinations: %w", err)
	}
	if destinations == nil {
		destinations = []core.Destination{}
	}
	return writeJson(w, destinations)
}

func (h *DestinationHandler) CreateDestinationHandler(w http.ResponseWriter, r *http.Request) error {
	var payload DestinationPayload
	if err := decodeJson(r, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	destination := core.Destination{
		ID:         uuid.NewString(),
		Owner:      core.SubjectFromRequest(r),
		Name:       payload.Name,
		Address:    payload.Address,
		Category:   payload.Category,
		Latitude:   payload.Latitude,
		Longitude:  payload.Longitude,
		IsFavorite: payload.IsFavorite,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.store.CreateDestination(r.Context(), destination); err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	return writeJsonStatus(w, destination, http.StatusCreated)
}

func (h *DestinationHandler) DeleteDestinationHandler(w http.ResponseWriter, r *http.Request) error {
	// scoping the delete by owner means a foreign id looks identical to a
	// missing one
	ok, err := h.store.DeleteDestination(r.Context(),
		chi.URLParam(r, "destinationID"), core.SubjectFromRequest(r))
	if err != nil {
		return fmt.Errorf("delete destination: %w", err)
	}
	if !ok {
		return router.NewJsonError(http.StatusNotFound, "destination not found")
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
