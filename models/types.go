// ABOUTME: Data models for the personal CRM
// ABOUTME: Defines Contact, Note, and the briefing projection types
package models

import "strings"

// Contact is the single persisted entity. The JSON keys match the
// persisted wire format of the original French app.
type Contact struct {
	ID               int64          `json:"id"`
	Nom              string         `json:"nom"`
	Prenom           string         `json:"prenom"`
	Categorie        string         `json:"categorie"`
	Informations     map[string]any `json:"informations"`
	Notes            []Note         `json:"notes"`
	DateCreation     string         `json:"date_creation"`
	DateModification string         `json:"date_modification"`
}

// Note is an append-only chronological entry. Dates are kept as the
// stored ISO-8601 strings so malformed values round-trip unchanged.
type Note struct {
	Date    string `json:"date"`
	Contenu string `json:"contenu"`
}

// Contact categories (closed set, stored lower-cased).
const (
	CategorieFamille = "famille"
	CategorieAmi     = "ami"
	CategoriePro     = "pro"
	CategorieAutre   = "autre"
)

// Categories lists the allowed contact categories in display order.
var Categories = []string{CategorieFamille, CategorieAmi, CategoriePro, CategorieAutre}

// MasterProfileType is the informations.type marker written on the
// singleton contact representing the application's own user.
const MasterProfileType = "profil_master"

// FullName returns "prenom nom" with surrounding whitespace trimmed.
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.Prenom + " " + c.Nom)
}

// InfoString reads a string value from the informations map,
// returning "" when the key is absent or not a string.
func (c *Contact) InfoString(key string) string {
	if c.Informations == nil {
		return ""
	}
	if v, ok := c.Informations[key].(string); ok {
		return v
	}
	return ""
}

// Briefing is a derived, non-persisted projection of a contact plus
// extracted signals, recomputed on each request.
type Briefing struct {
	Contact            BriefingContact `json:"contact"`
	ContextePro        ContextePro     `json:"contexte_pro"`
	ViePerso           map[string]any  `json:"vie_perso"`
	SujetsConversation []any           `json:"sujets_conversation"`
	DernierContact     map[string]any  `json:"dernier_contact"`
	PromessesEnAttente []BriefingNote  `json:"promesses_en_attente"`
	ASuivre            []any           `json:"a_suivre"`
	NotesRecentes      []BriefingNote  `json:"notes_recentes"`
	InfoComplementaire string          `json:"info_complementaire"`
	Parcours           string          `json:"parcours"`
}

// BriefingContact is the identity header of a briefing.
type BriefingContact struct {
	ID         int64  `json:"id"`
	NomComplet string `json:"nom_complet"`
	Prenom     string `json:"prenom"`
	Nom        string `json:"nom"`
	Categorie  string `json:"categorie"`
}

// ContextePro is the professional-context block assembled from fixed
// informations keys; missing keys default to empty strings.
type ContextePro struct {
	Societe    string `json:"societe"`
	Poste      string `json:"poste"`
	Secteur    string `json:"secteur"`
	Specialite string `json:"specialite"`
	Email      string `json:"email"`
	Telephone  string `json:"telephone"`
	LinkedIn   string `json:"linkedin"`
	Ville      string `json:"ville"`
}

// Empty reports whether every field of the block is blank.
func (p ContextePro) Empty() bool {
	return p.Societe == "" && p.Poste == "" && p.Secteur == "" && p.Specialite == "" &&
		p.Email == "" && p.Telephone == "" && p.LinkedIn == "" && p.Ville == ""
}

// BriefingNote is a note rendered for display, date already formatted.
type BriefingNote struct {
	Date    string `json:"date"`
	Contenu string `json:"contenu"`
}
