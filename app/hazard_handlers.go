package wayfarer

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-app/wayfarer/core"
)

type HazardHandler struct {
	store core.HazardStore
}

func NewHazardHandler(store core.HazardStore) *HazardHandler {
	return &HazardHandler{store: store}
}

type HazardPayload struct {
	Category    string  `json:"category" validate:"required"`
	Description string  `json:"description"`
	PhotoURL    string  `json:"photoUrl" validate:"omitempty,url"`
	Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
}

func (h *HazardHandler) SubmitHazardHandler(w http.ResponseWriter, r *http.Request) error {
	var payload HazardPayload
	if err := decodeJson(r, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	hazard := core.Hazard{
		ID:          uuid.NewString(),
		Category:    payload.Category,
		Description: payload.Description,
		PhotoURL:    payload.PhotoURL,
		Latitude:    payload.Latitude,
		Longitude:   payload.Longitude,
		ReportedBy:  core.SubjectFromRequest(r),
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.store.CreateHazard(r.Context(), hazard); err != nil {
		return fmt.Errorf("create hazard: %w", err)
	}

	return writeJson(w, hazard)
}

func (h *HazardHandler) ListHazardsHandler(w http.ResponseWriter, r *http.Request) error {
	hazards, err := h.store.ListHazards(r.Context())
	if err != nil {
		return fmt.Errorf("list hazards: %w", err)
	}
	if hazards == nil {
		hazards = []core.Hazard{}
	}
	return writeJson(w, hazards)
}
