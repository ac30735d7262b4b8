// ABOUTME: Web server wiring routes for the CRM API, briefings, and onboarding
// ABOUTME: chi router with embedded templates and static frontend
package web

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gosslou/carnet/assistant"
	"github.com/gosslou/carnet/config"
	"github.com/gosslou/carnet/db"
	"github.com/gosslou/carnet/onboarding"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

type Server struct {
	db        *sql.DB
	templates *template.Template
	assistant *assistant.Assistant
	enricher  *onboarding.Enricher
	sessions  *onboarding.SessionStore
	cfg       *config.Config
	router    *chi.Mux
}

func NewServer(database *sql.DB, cfg *config.Config) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html", "templates/onboarding/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		db:        database,
		templates: tmpl,
		assistant: assistant.New(cfg),
		enricher:  onboarding.NewEnricher(),
		sessions:  onboarding.NewSessionStore(),
		cfg:       cfg,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(s.onboardingRedirect)

	r.Route("/api", func(r chi.Router) {
		r.Get("/contacts", s.handleListContacts)
		r.Post("/contacts", s.handleCreateContact)
		r.Get("/contacts/{id}", s.handleGetContact)
		r.Put("/contacts/{id}", s.handleUpdateContact)
		r.Delete("/contacts/{id}", s.handleDeleteContact)
		r.Post("/contacts/{id}/notes", s.handleAddNote)
		r.Get("/search", s.handleSearch)
		r.Get("/master-profile", s.handleMasterProfile)
		r.Get("/briefing/{id}", s.handleBriefingJSON)
		r.Get("/health", s.handleHealth)

		r.Route("/ai", func(r chi.Router) {
			r.Get("/test", s.handleAITest)
			r.Post("/briefing/{id}", s.handleAIBriefing)
			r.Post("/ask", s.handleAIAsk)
			r.Get("/suggestions", s.handleAISuggestions)
		})
	})

	r.Get("/briefing/{id}", s.handleBriefingHTML)
	r.Get("/briefing-text/{id}", s.handleBriefingText)

	r.Route("/onboarding", func(r chi.Router) {
		r.Get("/", s.handleOnboardingWelcome)
		r.Get("/step1", s.handleOnboardingStep1)
		r.Post("/step1", s.handleOnboardingStep1)
		r.Get("/step2", s.handleOnboardingStep2)
		r.Post("/step2", s.handleOnboardingStep2)
		r.Get("/step3", s.handleOnboardingStep3)
		r.Post("/step3", s.handleOnboardingStep3)
		r.Get("/skip", s.handleOnboardingSkip)
	})

	r.Get("/", s.handleIndex)
	r.Handle("/static/*", http.FileServer(http.FS(staticFS)))

	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) Start(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Printf("Starting CRM server at http://%s", addr)
	return http.ListenAndServe(addr, s.router)
}

// onboardingRedirect sends page requests to the wizard while no master
// profile exists. API, static, briefing, and onboarding paths are
// exempt so the backend stays usable during first run.
func (s *Server) onboardingRedirect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if hasAnyPrefix(path, "/onboarding", "/api/", "/static/", "/briefing") {
			next.ServeHTTP(w, r)
			return
		}

		if session := s.session(w, r); session.SkipOnboarding {
			next.ServeHTTP(w, r)
			return
		}

		has, err := db.HasMasterProfile(s.db)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if !has {
			http.Redirect(w, r, "/onboarding/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func hasAnyPrefix(path string, prefixes ...string) bool {
	for _, p := range prefixes {
		if len(path) >= len(p) && path[:len(p)] == p {
			return true
		}
	}
	return false
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "index not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"message": "CRM Personnel operationnel",
	})
}

func (s *Server) renderTemplate(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Template error rendering %s: %v", name, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"erreur": message})
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// accessLogger logs one line per request.
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			log.Printf("%s %s %d %dB %s", r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start))
		}()

		next.ServeHTTP(ww, r)
	})
}
