// ABOUTME: Tests for the briefing engine
// ABOUTME: Covers promise extraction, date formatting, and text rendering
package briefing

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosslou/carnet/models"
)

func TestBuildAssemblesContexteProFromFixedKeys(t *testing.T) {
	contact := &models.Contact{
		ID:        7,
		Nom:       "Martin",
		Prenom:    "Alice",
		Categorie: "pro",
		Informations: map[string]any{
			"societe": "Acme",
			"poste":   "CTO",
			"ville":   "Lyon",
		},
	}

	b := Build(contact)

	assert.Equal(t, int64(7), b.Contact.ID)
	assert.Equal(t, "Alice Martin", b.Contact.NomComplet)
	assert.Equal(t, "Acme", b.ContextePro.Societe)
	assert.Equal(t, "CTO", b.ContextePro.Poste)
	assert.Equal(t, "Lyon", b.ContextePro.Ville)
	// Missing keys are not errors, they default to empty strings.
	assert.Equal(t, "", b.ContextePro.Email)
	assert.Equal(t, "", b.ContextePro.Secteur)
}

func TestBuildTotalOverEmptyContact(t *testing.T) {
	b := Build(&models.Contact{Nom: "Martin"})

	assert.True(t, b.ContextePro.Empty())
	assert.Empty(t, b.ViePerso)
	assert.Empty(t, b.SujetsConversation)
	assert.Empty(t, b.DernierContact)
	assert.Empty(t, b.PromessesEnAttente)
	assert.Empty(t, b.ASuivre)
	assert.Empty(t, b.NotesRecentes)
}

func TestBuildPassthroughAndASuivre(t *testing.T) {
	contact := &models.Contact{
		Nom: "Martin",
		Informations: map[string]any{
			"vie_perso":           map[string]any{"enfants": "2"},
			"sujets_conversation": []any{"rugby", "jazz"},
			"dernier_contact": map[string]any{
				"date":     "2024-01-10",
				"a_suivre": []any{"envoyer le contrat"},
			},
		},
	}

	b := Build(contact)

	assert.Equal(t, "2", b.ViePerso["enfants"])
	assert.Equal(t, []any{"rugby", "jazz"}, b.SujetsConversation)
	require.Len(t, b.ASuivre, 1)
	assert.Equal(t, "envoyer le contrat", b.ASuivre[0])
}

func TestExtractPromisesKeywordsAndOrder(t *testing.T) {
	notes := []models.Note{
		{Date: "2024-01-01T10:00:00", Contenu: "Dejeuner sympa"},
		{Date: "2024-01-02T10:00:00", Contenu: "Je dois lui envoyer le contrat"},
		{Date: "2024-01-03T10:00:00", Contenu: "PROMIS : rappeler mardi"},
		{Date: "2024-01-04T10:00:00", Contenu: "Rien de special"},
	}

	promises := extractPromises(notes)
	require.Len(t, promises, 2)
	// Most recent matching note first.
	assert.Equal(t, "PROMIS : rappeler mardi", promises[0].Contenu)
	assert.Equal(t, "03/01/2024", promises[0].Date)
	assert.Equal(t, "Je dois lui envoyer le contrat", promises[1].Contenu)
}

func TestExtractPromisesSingleContributionPerNote(t *testing.T) {
	// Content matching several keywords still contributes once.
	notes := []models.Note{
		{Date: "2024-01-02", Contenu: "todo : je dois lui envoyer le contrat, promis"},
	}
	promises := extractPromises(notes)
	assert.Len(t, promises, 1)
}

func TestExtractPromisesCap(t *testing.T) {
	var notes []models.Note
	for i := 0; i < 8; i++ {
		notes = append(notes, models.Note{
			Date:    fmt.Sprintf("2024-01-%02dT09:00:00", i+1),
			Contenu: fmt.Sprintf("rappel numero %d", i+1),
		})
	}

	promises := extractPromises(notes)
	require.Len(t, promises, 5)
	// The five most recent, in reverse-chronological order.
	assert.Equal(t, "rappel numero 8", promises[0].Contenu)
	assert.Equal(t, "rappel numero 4", promises[4].Contenu)
}

func TestRecentNotesReverseChronological(t *testing.T) {
	var notes []models.Note
	for i := 0; i < 7; i++ {
		notes = append(notes, models.Note{
			Date:    fmt.Sprintf("2024-02-%02dT09:00:00", i+1),
			Contenu: fmt.Sprintf("note %d", i+1),
		})
	}

	recent := recentNotes(notes)
	require.Len(t, recent, 5)
	assert.Equal(t, "note 7", recent[0].Contenu)
	assert.Equal(t, "note 3", recent[4].Contenu)
	assert.Equal(t, "07/02/2024", recent[0].Date)
}

func TestFormatDate(t *testing.T) {
	cases := map[string]string{
		"2024-03-05T10:00:00Z":      "05/03/2024",
		"2024-03-05T10:00:00+01:00": "05/03/2024",
		"2024-03-05T10:00:00":       "05/03/2024",
		"2024-03-05":                "05/03/2024",
		"":                          "",
		"pas une date":              "pas une date",
		"2024-99-99":                "2024-99-99",
	}
	for input, want := range cases {
		assert.Equal(t, want, FormatDate(input), "input %q", input)
	}
}

func TestRenderTextOmitsEmptySections(t *testing.T) {
	b := Build(&models.Contact{Nom: "Martin", Prenom: "Alice", Categorie: "pro"})
	text := RenderText(b)

	assert.Contains(t, text, "=== BRIEFING : Alice Martin ===")
	assert.Contains(t, text, "Categorie : pro")
	assert.NotContains(t, text, "CONTEXTE PRO")
	assert.NotContains(t, text, "VIE PERSO")
	assert.NotContains(t, text, "PROMESSES")
	assert.NotContains(t, text, "NOTES RECENTES")
}

func TestRenderTextSectionsAndOrder(t *testing.T) {
	contact := &models.Contact{
		ID:        1,
		Nom:       "Martin",
		Prenom:    "Alice",
		Categorie: "pro",
		Informations: map[string]any{
			"societe":             "Acme",
			"telephone":           "0600000000",
			"vie_perso":           map[string]any{"enfants": "2"},
			"sujets_conversation": []any{"rugby"},
			"dernier_contact":     map[string]any{"date": "2024-01-10"},
		},
		Notes: []models.Note{
			{Date: "2024-01-02T10:00:00", Contenu: "Je dois lui envoyer le contrat"},
		},
	}

	text := RenderText(Build(contact))

	sections := []string{
		"=== BRIEFING : Alice Martin ===",
		"--- CONTEXTE PRO ---",
		"--- VIE PERSO ---",
		"--- SUJETS DE CONVERSATION ---",
		"--- DERNIER CONTACT ---",
		"--- PROMESSES EN ATTENTE ---",
		"--- NOTES RECENTES ---",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(text, section)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", section)
		assert.Greater(t, idx, last, "section %q out of order", section)
		last = idx
	}

	assert.Contains(t, text, "Societe : Acme")
	assert.Contains(t, text, "Tel : 0600000000")
	assert.Contains(t, text, "  * rugby")
	assert.Contains(t, text, "[02/01/2024] Je dois lui envoyer le contrat")
}
