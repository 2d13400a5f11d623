package api

import (
	"net/http"

	"github.com/JaimeStill/laurel/internal/config"
	"github.com/JaimeStill/laurel/internal/jobs"
	"github.com/JaimeStill/laurel/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Essays.Handler().Routes(),
		domain.Rubric.Handler().Routes(),
		jobs.NewHandler(domain.Jobs, runtime.Logger, cfg.API.MaxUploadSizeBytes()).Routes(),
	)
}
