package core

import (
	"context"
)

// Weather is the conditions payload for a coordinate.
type Weather struct {
	Temp         float64 `json:"temp"`
	Description  string  `json:"description"`
	Icon         string  `json:"icon"`
	LocationName string  `json:"locationName"`
	Humidity     int     `json:"humidity"`
	WindSpeed    float64 `json:"windSpeed"`
}

type WeatherProvider interface {
	Current(ctx context.Context, latitude, longitude float64) (*Weather, error)
}

// StaticWeatherProvider serves fixed conditions. It stands in until a real
// upstream weather API is wired; the response shape is what clients consume.
type StaticWeatherProvider struct{}

func NewStaticWeatherProvider() *StaticWeatherProvider {
	return &StaticWeatherProvider{}
}

func (p *StaticWeatherProvider) Current(ctx context.Context, latitude, longitude float64) (*Weather, error) {
	return &Weather{
		Temp:         22.5,
		Description:  "Partly cloudy",
		Icon:         "02d",
		LocationName: "New York",
		Humidity:     65,
		WindSpeed:    12.5,
	}, nil
}
