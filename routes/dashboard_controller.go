package routes

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/lgu-leganes/bizportal/app"
	"github.com/lgu-leganes/bizportal/compliance"
	"github.com/lgu-leganes/bizportal/httpx"
	"github.com/lgu-leganes/bizportal/model"
	"github.com/lgu-leganes/bizportal/services"
)

func DashboardSummary(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now()

		weather := app.Services.Weather(r.Context(), app.WeatherLocation)

		summary := model.DashboardSummary{
			Greeting:        app.Services.Greeting(r.Context(), now),
			Timestamp:       services.FormatTimestamp(now),
			Weather:         &weather,
			WeatherGreeting: app.Services.WeatherGreeting(r.Context(), weather),
			News:            app.Services.News(r.Context(), app.NewsQuery),
		}

		systemInfo, err := buildSystemInfo(r, app)
		if err != nil {
			httpx.LogInternalError(w, "db.dashboard_summary.system_info", err)
			return
		}
		summary.SystemInfo = systemInfo

		render.JSON(w, r, summary)
	}
}

// buildSystemInfo derives the dashboard's notice lines from the directory.
func buildSystemInfo(r *http.Request, app app.App) ([]string, error) {
	businesses, err := loadBusinesses(r, app.DB)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	var pending, noncompliant int
	for _, b := range businesses {
		switch compliance.Classify(today, b.DTIExpiry, b.SECExpiry, b.CDAExpiry) {
		case compliance.Pending:
			pending++
		case compliance.NonCompliant:
			noncompliant++
		}
	}

	info := []string{
		fmt.Sprintf("%d businesses registered in the directory.", len(businesses)),
	}
	if pending > 0 {
		info = append(info, fmt.Sprintf("%d businesses have permits expiring within 30 days.", pending))
	}
	if noncompliant > 0 {
		info = append(info, fmt.Sprintf("%d businesses have expired permits and need renewal.", noncompliant))
	}
	if pending == 0 && noncompliant == 0 {
		info = append(info, "All registered businesses are compliant.")
	}
	return info, nil
}

func DashboardStats(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businesses, err := loadBusinesses(r, app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.dashboard_stats", err)
			return
		}

		today := time.Now()
		stats := model.DashboardStats{
			TotalBusinesses: len(businesses),
		}
		municipalities := map[string]bool{}
		for _, b := range businesses {
			switch compliance.Classify(today, b.DTIExpiry, b.SECExpiry, b.CDAExpiry) {
			case compliance.Compliant:
				stats.CompliantBusinesses++
			case compliance.Pending:
				stats.PendingBusinesses++
			case compliance.NonCompliant:
				stats.NonCompliantBusinesses++
			}
			if b.Municipality != "" {
				municipalities[b.Municipality] = true
			}
		}
		stats.Municipalities = len(municipalities)

		stats.GrowthRate, err = growthRate(r, app, today)
		if err != nil {
			httpx.LogInternalError(w, "db.dashboard_stats.growth", err)
			return
		}

		render.JSON(w, r, stats)
	}
}

// growthRate compares businesses established this year against the total on
// record. Establishment dates live in the detail table and may be missing.
func growthRate(r *http.Request, app app.App, today time.Time) (float64, error) {
	var total, thisYear int
	yearPrefix := today.Format("2006") + "%"
	err := app.QueryRowContext(r.Context(), `
		SELECT
			COUNT(*),
			COUNT(CASE WHEN dateestablished LIKE ? THEN 1 END)
		FROM business_detail
		WHERE dateestablished <> ''`,
		yearPrefix,
	).Scan(&total, &thisYear)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	return float64(thisYear) / float64(total) * 100, nil
}
