// ABOUTME: JSON API handlers for contact CRUD, notes, and search
// ABOUTME: Validation errors map to 400, absent contacts to 404
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gosslou/carnet/db"
	"github.com/gosslou/carnet/models"
)

// contactPayload is the request body for create/update. Informations is
// kept raw so a non-object value can be rejected with the mapping rule.
type contactPayload struct {
	Nom          *string         `json:"nom"`
	Prenom       *string         `json:"prenom"`
	Categorie    *string         `json:"categorie"`
	Informations json.RawMessage `json:"informations"`
}

var errNotMapping = &models.ValidationError{Message: "Les informations doivent etre un dictionnaire (cle: valeur)."}

func decodePayload(r *http.Request) (*contactPayload, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		return nil, errors.New("Donnees JSON requises")
	}
	var payload contactPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.New("Donnees JSON requises")
	}
	return &payload, nil
}

// informationsMap decodes the raw informations value, enforcing the
// key/value-mapping rule. Absent or null yields (nil, false, nil).
func (p *contactPayload) informationsMap() (map[string]any, bool, error) {
	if len(p.Informations) == 0 || string(p.Informations) == "null" {
		return nil, false, nil
	}
	var m map[string]any
	if err := json.Unmarshal(p.Informations, &m); err != nil {
		return nil, false, errNotMapping
	}
	return m, true, nil
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := db.GetAllContacts(s.db)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"contacts": contacts, "total": len(contacts)})
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	infos, _, err := payload.informationsMap()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	categorie := models.CategorieAutre
	if payload.Categorie != nil {
		categorie = *payload.Categorie
	}

	valid, err := models.ValidateContact(strValue(payload.Nom), strValue(payload.Prenom), categorie, infos)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	contact, err := db.CreateContact(s.db, valid)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"contact": contact, "message": "Contact cree"})
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(w, http.StatusOK, map[string]any{"contact": contact})
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	payload, err := decodePayload(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	existing, err := db.GetContact(s.db, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Contact %d non trouve", id))
		return
	}

	infos, hasInfos, err := payload.informationsMap()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Validate the effective values (request fields falling back to the
	// stored ones) so a partial update cannot corrupt the record.
	nom := existing.Nom
	if payload.Nom != nil {
		nom = *payload.Nom
	}
	prenom := existing.Prenom
	if payload.Prenom != nil {
		prenom = *payload.Prenom
	}
	categorie := existing.Categorie
	if payload.Categorie != nil {
		categorie = *payload.Categorie
	}

	valid, err := models.ValidateContact(nom, prenom, categorie, infos)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := &db.ContactPatch{
		Nom:       &valid.Nom,
		Prenom:    &valid.Prenom,
		Categorie: &valid.Categorie,
	}
	if hasInfos {
		patch.Informations = infos
	}

	contact, err := db.UpdateContact(s.db, id, patch)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contact == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Contact %d non trouve", id))
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"contact": contact, "message": "Contact mis a jour"})
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	deleted, err := db.DeleteContact(s.db, id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Contact %d non trouve", id))
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"message": fmt.Sprintf("Contact %d supprime", id)})
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Identifiant invalide")
		return
	}

	var payload struct {
		Contenu string `json:"contenu"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Donnees JSON requises")
		return
	}

	contenu, err := models.ValidateNote(payload.Contenu)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	contact, err := db.AddNote(s.db, id, contenu)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contact == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Contact %d non trouve", id))
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"contact": contact, "message": "Note ajoutee"})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	categorie := r.URL.Query().Get("categorie")

	contacts, err := db.SearchContacts(s.db, query, categorie)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"contacts": contacts, "total": len(contacts)})
}

func (s *Server) handleMasterProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := db.GetMasterProfile(s.db)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if profile == nil {
		respondError(w, http.StatusNotFound, "Aucun profil master")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"profile": profile})
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
