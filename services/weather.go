package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/lgu-leganes/bizportal/log"
	"github.com/lgu-leganes/bizportal/model"
)

type openWeatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Weather looks up current conditions for a "City,CC" location string. On a
// missing key or any request failure it returns the N/A sentinel instead of
// an error.
func (c *Client) Weather(ctx context.Context, location string) model.WeatherData {
	city := strings.Split(location, ",")[0]

	if c.weatherKey == "" {
		log.Warn("weather.missing_api_key")
		return model.WeatherData{
			City:            city,
			Temperature:     "N/A",
			Description:     "Weather data unavailable",
			FullDescription: "Please check your API configuration.",
		}
	}

	query := url.Values{
		"q":     {location},
		"appid": {c.weatherKey},
		"units": {"metric"},
	}
	req, err := http.NewRequestWithContext(ctx, "GET", c.WeatherURL+"?"+query.Encode(), nil)
	if err != nil {
		return weatherUnavailable(city)
	}

	res, err := c.http.Do(req)
	if err != nil {
		log.Errorf("weather.request: %s", err)
		return weatherUnavailable(city)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Errorf("weather.request: status %d", res.StatusCode)
		return weatherUnavailable(city)
	}

	var data openWeatherResponse
	err = json.NewDecoder(res.Body).Decode(&data)
	if err != nil || len(data.Weather) == 0 {
		log.Errorf("weather.parse_body: %s", err)
		return weatherUnavailable(city)
	}

	temperature := fmt.Sprintf("%d°C", int(math.Round(data.Main.Temp)))
	description := data.Weather[0].Description
	return model.WeatherData{
		City:        data.Name,
		Temperature: temperature,
		Description: description,
		FullDescription: fmt.Sprintf(
			"The current weather in %s is %s with a temperature of %s.",
			data.Name, description, temperature,
		),
	}
}

func weatherUnavailable(city string) model.WeatherData {
	return model.WeatherData{
		City:        city,
		Temperature: "N/A",
		Description: "Failed to load weather data",
	}
}
