package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/arcians/profile-registry/docs"
	"github.com/arcians/profile-registry/internal/api/handlers"
	mw "github.com/arcians/profile-registry/internal/api/middleware"
	"github.com/arcians/profile-registry/internal/storage"
)

type Dependencies struct {
	APIPrefix       string
	AllowedOrigins  []string
	HealthHandler   *handlers.HealthHandler
	ProfilesHandler *handlers.ProfilesHandler
	UploadsHandler  *handlers.UploadsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS(dep.AllowedOrigins))
	r.Use(chimid.Compress(5))

	r.Get("/healthz", dep.HealthHandler.Liveness)
	r.Get("/readyz", dep.HealthHandler.Readiness)

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route(dep.APIPrefix, func(api chi.Router) {
		api.Get("/", dep.HealthHandler.Root)
		api.Post("/upload", dep.UploadsHandler.Upload)

		api.Route("/profiles", func(pr chi.Router) {
			pr.Get("/", dep.ProfilesHandler.List)
			pr.Post("/", dep.ProfilesHandler.Create)
			pr.Get("/{id}", dep.ProfilesHandler.Get)
		})
	})

	r.Handle(storage.URLPrefix+"/*", dep.UploadsHandler.Static())

	return r
}
