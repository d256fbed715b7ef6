package wayfarer

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wayfarer-app/wayfarer/core"
	"github.com/wayfarer-app/wayfarer/pkg/router"
)

type LocationHandler struct {
	store core.LocationStore
}

func NewLocationHandler(store core.LocationStore) *LocationHandler {
	return &LocationHandler{store: store}
}

type LocationPayload struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
}

func (h *LocationHandler) ListLocationsHandler(w http.ResponseWriter, r *http.Request) error {
	locations, err := h.store.ListLocations(r.Context())
	if err != nil {
		return fmt.Errorf("list locations: %w", err)
	}
	if locations == nil {
		locations = []core.Location{}
	}
	return writeJson(w, locations)
}

func (h *LocationHandler) GetLocationHandler(w http.ResponseWriter, r *http.Request) error {
	location, err := h.store.GetLocation(r.Context(), chi.URLParam(r, "locationID"))
	if err != nil {
		return fmt.Errorf("get location: %w", err)
	}
	if location == nil {
		return router.NewJsonError(http.StatusNotFound, "location not found")
	}
	return writeJson(w, location)
}

func (h *LocationHandler) CreateLocationHandler(w http.ResponseWriter, r *http.Request) error {
	var payload LocationPayload
	if err := decodeJson(r, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	location := core.Location{
		ID:          uuid.NewString(),
		Name:        payload.Name,
		Description: payload.Description,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
	}
	if err := h.store.CreateLocation(r.Context(), location); err != nil {
		return fmt.Errorf("create location: %w", err)
	}

	return writeJson(w, location)
}

func (h *LocationHandler) UpdateLocationHandler(w http.ResponseWriter, r *http.Request) error {
	var payload LocationPayload
	if err := decodeJson(r, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	location := core.Location{
		ID:          chi.URLParam(r, "locationID"),
		Name:        payload.Name,
		Description: payload.Description,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
	}
	ok, err := h.store.UpdateLocation(r.Context(), location)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if !ok {
		return router.NewJsonError(http.StatusNotFound, "location not found")
	}

	return writeJson(w, location)
}

func (h *LocationHandler) DeleteLocationHandler(w http.ResponseWriter, r *http.Request) error {
	ok, err := h.store.DeleteLocation(r.Context(), chi.URLParam(r, "locationID"))
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if !ok {
		return router.NewJsonError(http.StatusNotFound, "location not found")
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
