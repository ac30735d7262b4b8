// ABOUTME: Plain-text rendering of a briefing
// ABOUTME: Emits fixed-order sections, skipping those with no content
package briefing

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gosslou/carnet/models"
)

// RenderText produces the terminal/API version of a briefing. The
// header is always emitted; every other section only when it has at
// least one non-empty value. Section order is fixed.
func RenderText(b *models.Briefing) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("=== BRIEFING : %s ===", b.Contact.NomComplet))
	lines = append(lines, fmt.Sprintf("Categorie : %s", b.Contact.Categorie))
	lines = append(lines, "")

	pro := b.ContextePro
	if !pro.Empty() {
		lines = append(lines, "--- CONTEXTE PRO ---")
		if pro.Societe != "" {
			lines = append(lines, fmt.Sprintf("Societe : %s", pro.Societe))
		}
		if pro.Poste != "" {
			lines = append(lines, fmt.Sprintf("Poste : %s", pro.Poste))
		}
		if pro.Ville != "" {
			lines = append(lines, fmt.Sprintf("Ville : %s", pro.Ville))
		}
		if pro.Telephone != "" {
			lines = append(lines, fmt.Sprintf("Tel : %s", pro.Telephone))
		}
		if pro.Email != "" {
			lines = append(lines, fmt.Sprintf("Email : %s", pro.Email))
		}
		lines = append(lines, "")
	}

	if len(b.ViePerso) > 0 {
		lines = append(lines, "--- VIE PERSO ---")
		for _, k := range sortedKeys(b.ViePerso) {
			lines = append(lines, fmt.Sprintf("  %s : %v", k, b.ViePerso[k]))
		}
		lines = append(lines, "")
	}

	if len(b.SujetsConversation) > 0 {
		lines = append(lines, "--- SUJETS DE CONVERSATION ---")
		for _, s := range b.SujetsConversation {
			lines = append(lines, fmt.Sprintf("  * %v", s))
		}
		lines = append(lines, "")
	}

	if len(b.DernierContact) > 0 {
		lines = append(lines, "--- DERNIER CONTACT ---")
		for _, k := range sortedKeys(b.DernierContact) {
			lines = append(lines, fmt.Sprintf("  %s : %v", k, b.DernierContact[k]))
		}
		lines = append(lines, "")
	}

	if len(b.PromessesEnAttente) > 0 {
		lines = append(lines, "--- PROMESSES EN ATTENTE ---")
		for _, p := range b.PromessesEnAttente {
			lines = append(lines, fmt.Sprintf("  [%s] %s", p.Date, p.Contenu))
		}
		lines = append(lines, "")
	}

	if len(b.NotesRecentes) > 0 {
		lines = append(lines, "--- NOTES RECENTES ---")
		for _, n := range b.NotesRecentes {
			lines = append(lines, fmt.Sprintf("  [%s] %s", n.Date, n.Contenu))
		}
	}

	return strings.Join(lines, "\n")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
