// ABOUTME: Master profile singleton slot operations
// ABOUTME: Tracks which contact represents the application's own user
package db

import (
	"database/sql"

	"github.com/gosslou/carnet/models"
)

// SetMasterProfile claims the singleton slot for the given contact.
// The slot table's CHECK constraint keeps it single-row, so the last
// claim wins and stray informations markers on other contacts are
// never consulted.
func SetMasterProfile(db *sql.DB, contactID int64) error {
	_, err := db.Exec(`INSERT OR REPLACE INTO master_profile (id, contact_id) VALUES (1, ?)`, contactID)
	return err
}

// GetMasterProfile returns the contact holding the slot, or nil when
// no master profile exists yet.
func GetMasterProfile(db *sql.DB) (*models.Contact, error) {
	var contactID int64
	row := db.QueryRow(`SELECT contact_id FROM master_profile WHERE id = 1`)
	if err := row.Scan(&contactID); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	c, err := GetContact(db, contactID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		// Slot points at a deleted contact; treat as absent.
		return nil, nil
	}
	return c, nil
}

// HasMasterProfile reports whether onboarding has completed.
func HasMasterProfile(db *sql.DB) (bool, error) {
	c, err := GetMasterProfile(db)
	if err != nil {
		return false, err
	}
	return c != nil, nil
}
