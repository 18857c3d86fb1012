package routes

import (
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/lgu-leganes/bizportal/app"
	"github.com/lgu-leganes/bizportal/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	root.
		With(middlewares.CookieAuth(app.BearerServer), middlewares.Admin(app.TokenSecret)).
		Mount("/admin", servePrivateFiles("/admin"))
	root.Mount("/", servePublicFiles())

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	// registration wizard
	api.Post("/applications", CreateApplication(app))
	api.Get("/applications/{id}", GetApplication(app))
	api.Get("/applications/{id}/fields/{name}", GetApplicationField(app))
	api.Put("/applications/{id}/fields/{name}", UpdateApplicationField(app))
	api.Post("/applications/{id}/next", AdvanceApplication(app))
	api.Post("/applications/{id}/prev", RewindApplication(app))
	api.Post("/applications/{id}/submit", SubmitApplication(app))

	api.Post("/applications/{id}/requirements", AddRequirement(app))
	api.Delete("/applications/{id}/requirements/{reqId}", DeleteRequirement(app))

	// business directory
	api.Get("/businesses", ListBusinesses(app))
	api.Get("/businesses/export", ExportBusinesses(app))
	api.Get("/businesses/{id}", GetBusinessById(app))

	// dashboard + map
	api.Get("/dashboard/summary", DashboardSummary(app))
	api.Get("/dashboard/stats", DashboardStats(app))
	api.Get("/map/markers", MapMarkers(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		r.Get("/applications", ListSubmittedApplications(app))
	})

	api.Post("/register", Register(app))
	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

func servePublicFiles() http.Handler {
	return http.FileServer(http.Dir("public"))
}

func servePrivateFiles(path string) http.Handler {
	return http.StripPrefix(path, http.FileServer(http.Dir("private")))
}
