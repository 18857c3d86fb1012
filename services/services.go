// Package services wraps the third-party lookups the dashboard leans on:
// OpenWeather, the Google News RSS feed and the OpenAI chat API. Every call
// is a single attempt that degrades to a fallback value; callers never see
// an error, only placeholder data.
package services

import (
	"net/http"
	"time"

	"github.com/lgu-leganes/bizportal/config"
)

const (
	defaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultNewsURL    = "https://news.google.com/rss/search"
	defaultOpenAIURL  = "https://api.openai.com/v1/chat/completions"
)

type Client struct {
	http *http.Client

	WeatherURL string
	NewsURL    string
	OpenAIURL  string

	weatherKey string
	openAIKey  string
}

func New(cfg config.Config) *Client {
	return &Client{
		http:       &http.Client{Timeout: 10 * time.Second},
		WeatherURL: defaultWeatherURL,
		NewsURL:    defaultNewsURL,
		OpenAIURL:  defaultOpenAIURL,
		weatherKey: cfg.OpenWeatherKey,
		openAIKey:  cfg.OpenAIKey,
	}
}
