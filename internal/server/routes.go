package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/iamyashsharma43/SENTIFY/internal/config"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/middleware"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

// Rate limit categories. Each has its own per-client budget.
const (
	limitAnalysis   = "analysis"
	limitAutomation = "automation"
)

// allowedHeaders are accepted on cross-origin requests.
const allowedHeaders = "Accept, Content-Type, X-Request-ID"

// SetupRoutes configures the router.
//
// The configured routes include:
//   - /health and /version, never rate limited
//   - the Instagram automation endpoints under /api/instagram
//   - the analysis endpoints under /api and the /transcribe upload
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	r.Use(corsMiddleware(s.Config.CORS))
	r.Use(chimiddleware.RequestID)
	if s.Config.Server.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	if !s.Config.Logging.NoRequestLog {
		r.Use(middleware.RequestLogger())
	}
	r.Use(middleware.Recovery())
	r.Use(middleware.SecurityHeaders())

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	r.Get(constants.HealthPath, s.Handlers.Health.Health)
	r.Get(constants.VersionPath, s.Handlers.Health.Version)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoCache())
		s.limit(r, limitAutomation)

		r.Post(constants.InstagramLoginPath, s.Handlers.Instagram.Login)
		r.Post(constants.InstagramPostPath, s.Handlers.Instagram.Post)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.NoCache())
		s.limit(r, limitAnalysis)

		r.Post(constants.AnalyzePath, s.Handlers.Analysis.Analyze)
		r.Post(constants.PredictPath, s.Handlers.Analysis.Predict)
		r.Post(constants.PredictPatientsSentimentsPath, s.Handlers.Analysis.PredictPatients)
		r.Post(constants.TranscribePath, s.Handlers.Upload.Transcribe)
		r.Post(constants.UploadDatasetPath, s.Handlers.Upload.UploadDataset)
	})

	s.router = r
}

func (s *Server) limit(r chi.Router, category string) {
	if s.Config.RateLimit.Disabled {
		return
	}
	r.Use(middleware.RateLimit(s.limits, category))
}

// corsMiddleware allows the single configured front-end origin.
// Preflight requests from that origin are answered directly.
func corsMiddleware(cfg config.CORSSettings) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" || origin != cfg.AllowedOrigin {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			if cfg.AllowCredentials() {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Methods", methods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Set("Access-Control-Max-Age", "300")
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
