package api

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/yourorg/gig-optimizer-gateway/internal/config"
	"github.com/yourorg/gig-optimizer-gateway/internal/middleware"
	"github.com/yourorg/gig-optimizer-gateway/internal/ollama"
)

type Server struct {
	Router http.Handler
}

func NewServer(cfg config.Config, client *ollama.Client, logger zerolog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(logger))
	r.Use(middleware.AccessLog(logger))

	// Permissive by design: the only intended caller is the browser extension
	// popup running against localhost. Not meant for public exposure.
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return OriginAllowed(origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Post("/improve_gig", ImproveGig(client, logger))
	r.Post("/seo_score", SEOScore())
	r.Post("/reply_suggestion", ReplySuggestion(client))
	r.Post("/chat_gig", ChatGig(client))
	r.Get("/health", Health(client))

	return &Server{Router: r}
}

var (
	localOrigin     = regexp.MustCompile(`^https?://(localhost|127\.0\.0\.1)(:\d+)?$`)
	extensionOrigin = regexp.MustCompile(`^[a-z][a-z-]*-extension://`)
)

// OriginAllowed admits any localhost origin at any port plus any browser
// extension origin (chrome-extension://, moz-extension://, ...).
func OriginAllowed(origin string) bool {
	return localOrigin.MatchString(origin) || extensionOrigin.MatchString(origin)
}
