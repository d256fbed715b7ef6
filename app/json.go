package wayfarer

import (
	"encoding/json"
	"net/http"

	"github.com/wayfarer-app/wayfarer/pkg/router"
)

func decodeJson(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return router.NewJsonError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}

func writeJson(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

func writeJsonStatus(w http.ResponseWriter, v any, code int) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}
