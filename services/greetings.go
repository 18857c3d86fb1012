package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lgu-leganes/bizportal/model"
)

// FormatTimestamp renders a header line like
// "Monday, January 2, 2006 - 3:04 pm".
func FormatTimestamp(now time.Time) string {
	return now.Format("Monday, January 2, 2006") +
		" - " +
		strings.ToLower(now.Format("3:04 PM"))
}

// FallbackGreeting is used when the AI greeting is unavailable.
func FallbackGreeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "Good Morning! Here's your daily update."
	case hour < 18:
		return "Good Afternoon! Here's your daily update."
	default:
		return "Good Evening! Here's your daily update."
	}
}

// Greeting asks the AI for a short daily greeting, falling back to the
// time-of-day one.
func (c *Client) Greeting(ctx context.Context, now time.Time) string {
	response := c.Complete(ctx,
		"Generate a short friendly greeting like 'Good Morning! Here's your daily update.'", 40)
	if isCompletionError(response) {
		return FallbackGreeting(now)
	}
	return response
}

// WeatherGreeting turns a weather reading into a one-liner for the dashboard.
func (c *Client) WeatherGreeting(ctx context.Context, weather model.WeatherData) string {
	if weather.Temperature == "N/A" {
		return "Weather info unavailable."
	}

	prompt := fmt.Sprintf(`Create a friendly, concise weather greeting (1-2 sentences) for %s:
- Temperature: %s
- Conditions: %s
- Make it warm and natural
- Don't mention you're an AI`,
		weather.City, weather.Temperature, weather.Description)

	response := c.Complete(ctx, prompt, 80)
	if isCompletionError(response) {
		return fmt.Sprintf("Current weather in %s: %s and %s.",
			weather.City, weather.Temperature, weather.Description)
	}
	return response
}

func isCompletionError(response string) bool {
	switch response {
	case "Missing API key.", "Error generating response.", "No response.":
		return true
	}
	return false
}
