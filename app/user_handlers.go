package wayfarer

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wayfarer-app/wayfarer/core"
	"github.com/wayfarer-app/wayfarer/pkg/router"
)

type UserHandler struct {
	store core.UserStore
}

func NewUserHandler(store core.UserStore) *UserHandler {
	return &UserHandler{store: store}
}

func (h *UserHandler) MeHandler(w http.ResponseWriter, r *http.Request) error {
	subject := core.SubjectFromRequest(r)

	profile, err := h.store.GetUserByUsername(r.Context(), subject)
	if err != nil {
		return fmt.Errorf("get user by username: %w", err)
	}
	if profile == nil {
		return core.ErrUserNotFound
	}

	return writeJson(w, profile)
}

func (h *UserHandler) GetUserByUsernameHandler(w http.ResponseWriter, r *http.Request) error {
	profile, err := h.store.GetUserByUsername(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		return fmt.Errorf("get user by username: %w", err)
	}
	if profile == nil {
		return router.NewJsonError(http.StatusNotFound, "user not found")
	}

	return writeJson(w, profile)
}
