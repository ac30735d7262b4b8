// ABOUTME: Input validation for contacts and notes
// ABOUTME: Gatekeeper ensuring only well-formed data reaches the store
package models

import (
	"fmt"
	"strings"
)

// ValidationError is a caller-correctable input-shape violation,
// carrying the specific rule that was broken.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// ValidContact holds normalized contact fields after validation.
type ValidContact struct {
	Nom          string
	Prenom       string
	Categorie    string
	Informations map[string]any
}

// ValidateContact checks and normalizes contact fields. Rules, in
// order: nom non-empty after trimming, categorie lower-case-matches one
// of the allowed set, nil informations becomes an empty map. Callers
// decode informations from JSON objects, so the "must be a mapping"
// rule is enforced at the decode boundary.
func ValidateContact(nom, prenom, categorie string, informations map[string]any) (*ValidContact, error) {
	if strings.TrimSpace(nom) == "" {
		return nil, &ValidationError{Message: "Le nom est obligatoire."}
	}

	categorie = strings.ToLower(strings.TrimSpace(categorie))
	if !IsValidCategorie(categorie) {
		return nil, &ValidationError{Message: fmt.Sprintf(
			"Categorie invalide : '%s'. Categories autorisees : %s",
			categorie, strings.Join(Categories, ", "))}
	}

	if informations == nil {
		informations = map[string]any{}
	}

	return &ValidContact{
		Nom:          strings.TrimSpace(nom),
		Prenom:       strings.TrimSpace(prenom),
		Categorie:    categorie,
		Informations: informations,
	}, nil
}

// ValidateNote requires non-empty trimmed content and returns it.
func ValidateNote(contenu string) (string, error) {
	trimmed := strings.TrimSpace(contenu)
	if trimmed == "" {
		return "", &ValidationError{Message: "Le contenu de la note ne peut pas etre vide."}
	}
	return trimmed, nil
}

// IsValidCategorie reports whether the (already lower-cased) category
// belongs to the closed set.
func IsValidCategorie(categorie string) bool {
	for _, c := range Categories {
		if c == categorie {
			return true
		}
	}
	return false
}
