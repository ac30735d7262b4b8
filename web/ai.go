// ABOUTME: AI assistant routes: connection test, briefing, Q&A, suggestions
// ABOUTME: The adapter fails soft, so these always answer 200 with a result
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gosslou/carnet/db"
	"github.com/gosslou/carnet/models"
)

func (s *Server) handleAITest(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.assistant.TestConnection(r.Context()))
}

func (s *Server) handleAIBriefing(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	contact, err := db.GetContact(s.db, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contact == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Contact %d non trouve", id))
		return
	}

	master, err := db.GetMasterProfile(s.db)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, s.assistant.GenerateBriefing(r.Context(), contact, master))
}

func (s *Server) handleAIAsk(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || strings.TrimSpace(payload.Question) == "" {
		respondError(w, http.StatusBadRequest, "Question requise")
		return
	}

	contacts, err := db.GetAllContacts(s.db)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	master, err := db.GetMasterProfile(s.db)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK,
		s.assistant.Ask(r.Context(), payload.Question, contactsContext(contacts), master))
}

func (s *Server) handleAISuggestions(w http.ResponseWriter, r *http.Request) {
	contacts, err := db.GetAllContacts(s.db)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	master, err := db.GetMasterProfile(s.db)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, s.assistant.Suggest(r.Context(), contacts, master))
}

// contactsContext serializes a one-line summary per contact for the
// assistant prompt.
func contactsContext(contacts []models.Contact) string {
	var lines []string
	for i := range contacts {
		c := &contacts[i]
		line := fmt.Sprintf("- %s (%s)", c.FullName(), c.Categorie)
		if societe := c.InfoString("societe"); societe != "" {
			line += " - " + societe
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
