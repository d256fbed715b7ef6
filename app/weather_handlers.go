package wayfarer

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/wayfarer-app/wayfarer/core"
	"github.com/wayfarer-app/wayfarer/pkg/router"
)

type WeatherHandler struct {
	provider core.WeatherProvider
}

func NewWeatherHandler(provider core.WeatherProvider) *WeatherHandler {
	return &WeatherHandler{provider: provider}
}

func (h *WeatherHandler) GetWeatherHandler(w http.ResponseWriter, r *http.Request) error {
	latitude, err := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
	if err != nil {
		return router.NewJsonError(http.StatusBadRequest, "latitude must be a number")
	}
	longitude, err := strconv.ParseFloat(r.URL.Query().Get("longitude"), 64)
	if err != nil {
		return router.NewJsonError(http.StatusBadRequest, "longitude must be a number")
	}

	weather, err := h.provider.Current(r.Context(), latitude, longitude)
	if err != nil {
		return fmt.Errorf("fetching weather: %w", err)
	}

	return writeJson(w, weather)
}
