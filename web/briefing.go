// ABOUTME: Briefing rendering surfaces: HTML page, JSON API, plain text
// ABOUTME: All three recompute the briefing from the stored contact
package web

import (
	"fmt"
	"net/http"

	"github.com/gosslou/carnet/briefing"
	"github.com/gosslou/carnet/db"
	"github.com/gosslou/carnet/models"
)

func (s *Server) briefingFor(w http.ResponseWriter, r *http.Request) (*models.Briefing, bool) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Identifiant invalide")
		return nil, false
	}

	contact, err := db.GetContact(s.db, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if contact == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Contact %d non trouve", id))
		return nil, false
	}

	return briefing.Build(contact), true
}

func (s *Server) handleBriefingHTML(w http.ResponseWriter, r *http.Request) {
	b, ok := s.briefingFor(w, r)
	if !ok {
		return
	}
	s.renderTemplate(w, "briefing.html", b)
}

func (s *Server) handleBriefingJSON(w http.ResponseWriter, r *http.Request) {
	b, ok := s.briefingFor(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, b)
}

func (s *Server) handleBriefingText(w http.ResponseWriter, r *http.Request) {
	b, ok := s.briefingFor(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(briefing.RenderText(b)))
}
