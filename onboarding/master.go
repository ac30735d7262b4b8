// ABOUTME: Master profile creation at the end of the onboarding wizard
// ABOUTME: Persists the singleton contact representing the user
package onboarding

import (
	"database/sql"
	"fmt"

	"github.com/gosslou/carnet/db"
	"github.com/gosslou/carnet/models"
)

// CreateMasterProfile persists the wizard profile as a contact and
// claims the master-profile slot. The informations.type marker is kept
// for wire compatibility, but the slot is what identifies the profile.
func CreateMasterProfile(database *sql.DB, profile *Profile) (*models.Contact, error) {
	source := profile.Source
	if source == "" {
		source = "manuel"
	}

	informations := map[string]any{
		"type":                  models.MasterProfileType,
		"poste":                 profile.Poste,
		"societe":               profile.Entreprise,
		"secteur":               profile.Secteur,
		"linkedin":              profile.LinkedIn,
		"formation":             profile.Formation,
		"hobbies":               profile.Hobbies,
		"sport_details":         profile.SportDetails,
		"style_communication":   profile.StyleCommunication,
		"objectifs_crm":         profile.ObjectifsCRM,
		"source_enrichissement": source,
	}

	valid, err := models.ValidateContact(profile.Nom, profile.Prenom, models.CategorieAutre, informations)
	if err != nil {
		return nil, err
	}

	contact, err := db.CreateContact(database, valid)
	if err != nil {
		return nil, fmt.Errorf("failed to create master profile contact: %w", err)
	}

	if err := db.SetMasterProfile(database, contact.ID); err != nil {
		return nil, fmt.Errorf("failed to claim master profile slot: %w", err)
	}

	return contact, nil
}
