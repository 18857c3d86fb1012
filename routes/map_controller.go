package routes

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/lgu-leganes/bizportal/app"
	"github.com/lgu-leganes/bizportal/compliance"
	"github.com/lgu-leganes/bizportal/httpx"
	"github.com/lgu-leganes/bizportal/model"
)

func MapMarkers(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		businesses, err := loadFilteredBusinesses(r, app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.get_map_markers", err)
			return
		}

		today := time.Now()
		markers := []model.MapMarker{}
		for _, b := range businesses {
			position, ok := parseLatLng(b.LongLat)
			if !ok {
				// not every directory row carries usable coordinates
				continue
			}

			markers = append(markers, model.MapMarker{
				Position:     position,
				BusinessID:   b.BusinessID,
				BusinessName: b.BusinessName,
				Owner:        b.RepName,
				Address:      joinAddress(b.Street, b.Barangay, b.Municipality),
				Compliance:   string(compliance.Classify(today, b.DTIExpiry, b.SECExpiry, b.CDAExpiry)),
			})
		}

		render.JSON(w, r, map[string]any{
			"markers": markers,
		})
	}
}

// parseLatLng splits a "lat,lng" pair as recorded in the GIS dataset.
func parseLatLng(longlat string) (model.LatLng, bool) {
	parts := strings.Split(longlat, ",")
	if len(parts) != 2 {
		return model.LatLng{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return model.LatLng{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return model.LatLng{}, false
	}
	return model.LatLng{Lat: lat, Lng: lng}, true
}

func joinAddress(parts ...string) string {
	nonEmpty := []string{}
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
