package wayfarer

import (
	"net/http"

	"github.com/wayfarer-app/wayfarer/core"
	"github.com/wayfarer-app/wayfarer/pkg/router"
)

type AuthHandler struct {
	auth *core.AuthService
}

func NewAuthHandler(auth *core.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type RegisterPayload struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) error {
	var payload RegisterPayload
	if err := decodeJson(r, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	if err := h.auth.Register(r.Context(), payload.Username, payload.Email, payload.Password); err != nil {
		return err
	}

	return writeJson(w, MessageResponse{Message: "User registered successfully."})
}

type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) error {
	var payload LoginPayload
	if err := decodeJson(r, &payload); err != nil {
		return err
	}
	if err := validatePayload(payload); err != nil {
		return err
	}

	session, err := h.auth.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		return err
	}

	return writeJson(w, session)
}

// MeHandler lives under the public /api/auth prefix, so the gate does not
// enforce a token here; it still attaches the identity when a valid one is
// presented. No identity means 401.
func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) error {
	subject, ok := core.OptionalSubjectFromRequest(r)
	if !ok {
		return router.NewJsonError(http.StatusUnauthorized, "unauthorized")
	}

	profile, err := h.auth.CurrentIdentity(r.Context(), subject)
	if err != nil {
		return err
	}

	return writeJson(w, profile)
}
