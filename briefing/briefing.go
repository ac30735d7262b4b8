// ABOUTME: Briefing engine producing a pre-meeting report for a contact
// ABOUTME: Pure projection: promise extraction, recent notes, date formatting
package briefing

import (
	"strings"
	"time"

	"github.com/gosslou/carnet/models"
)

// promiseKeywords flag notes containing a self-committed follow-up.
// Matching is done on the lower-cased note content.
var promiseKeywords = []string{
	"je devais", "je dois", "promis", "a faire", "todo", "rappel",
	"je lui ai promis", "je vais lui", "je m'engage",
}

const maxPromises = 5
const maxRecentNotes = 5

// Build produces the briefing projection for a contact. It is
// deterministic, has no side effects, and degrades missing or
// malformed informations to blank fields instead of failing.
func Build(contact *models.Contact) *models.Briefing {
	info := contact.Informations
	if info == nil {
		info = map[string]any{}
	}

	b := &models.Briefing{
		Contact: models.BriefingContact{
			ID:         contact.ID,
			NomComplet: contact.FullName(),
			Prenom:     contact.Prenom,
			Nom:        contact.Nom,
			Categorie:  contact.Categorie,
		},
		ContextePro: models.ContextePro{
			Societe:    contact.InfoString("societe"),
			Poste:      contact.InfoString("poste"),
			Secteur:    contact.InfoString("secteur"),
			Specialite: contact.InfoString("specialite"),
			Email:      contact.InfoString("email"),
			Telephone:  contact.InfoString("telephone"),
			LinkedIn:   contact.InfoString("linkedin"),
			Ville:      contact.InfoString("ville"),
		},
		ViePerso:           asMap(info["vie_perso"]),
		SujetsConversation: asList(info["sujets_conversation"]),
		DernierContact:     asMap(info["dernier_contact"]),
		PromessesEnAttente: extractPromises(contact.Notes),
		NotesRecentes:      recentNotes(contact.Notes),
		InfoComplementaire: contact.InfoString("info_complementaire"),
		Parcours:           contact.InfoString("parcours"),
	}

	b.ASuivre = asList(b.DernierContact["a_suivre"])

	return b
}

// extractPromises scans notes most recent first and collects notes
// whose content matches a promise keyword. A note contributes at most
// once, and at most maxPromises notes are kept, preserving the
// reverse-chronological scan order.
func extractPromises(notes []models.Note) []models.BriefingNote {
	promises := []models.BriefingNote{}

	for i := len(notes) - 1; i >= 0; i-- {
		if len(promises) == maxPromises {
			break
		}
		contenu := strings.ToLower(notes[i].Contenu)
		for _, keyword := range promiseKeywords {
			if strings.Contains(contenu, keyword) {
				promises = append(promises, models.BriefingNote{
					Date:    FormatDate(notes[i].Date),
					Contenu: notes[i].Contenu,
				})
				break
			}
		}
	}

	return promises
}

// recentNotes formats the last maxRecentNotes notes, most recent first.
func recentNotes(notes []models.Note) []models.BriefingNote {
	start := len(notes) - maxRecentNotes
	if start < 0 {
		start = 0
	}

	formatted := []models.BriefingNote{}
	for i := len(notes) - 1; i >= start; i-- {
		formatted = append(formatted, models.BriefingNote{
			Date:    FormatDate(notes[i].Date),
			Contenu: notes[i].Contenu,
		})
	}
	return formatted
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02",
}

// FormatDate renders an ISO-8601 timestamp as DD/MM/YYYY, tolerating a
// trailing Z marker. Empty or unparseable input is returned unchanged.
func FormatDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}

	candidate := dateStr
	if strings.HasSuffix(candidate, "Z") {
		candidate = strings.TrimSuffix(candidate, "Z") + "+00:00"
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format("02/01/2006")
		}
	}
	// Retry the original string for layouts with explicit offsets.
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return dateStr
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return []any{}
}
