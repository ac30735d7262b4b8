// ABOUTME: Contact database operations
// ABOUTME: Handles CRUD, search, and chronological note appends
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gosslou/carnet/models"
)

func now() string {
	return time.Now().Format(time.RFC3339)
}

// CreateContact inserts a validated contact and returns the stored row.
func CreateContact(db *sql.DB, valid *models.ValidContact) (*models.Contact, error) {
	infos, err := json.Marshal(valid.Informations)
	if err != nil {
		return nil, fmt.Errorf("failed to encode informations: %w", err)
	}

	created := now()
	res, err := db.Exec(`
		INSERT INTO contacts (nom, prenom, categorie, informations, notes, date_creation, date_modification)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, valid.Nom, valid.Prenom, strings.ToLower(valid.Categorie), string(infos), "[]", created, created)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return GetContact(db, id)
}

// GetContact fetches a contact by id, returning nil when absent.
func GetContact(db *sql.DB, id int64) (*models.Contact, error) {
	row := db.QueryRow(`
		SELECT id, nom, prenom, categorie, informations, notes, date_creation, date_modification
		FROM contacts WHERE id = ?
	`, id)

	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return contact, nil
}

// ContactPatch carries the updatable contact fields. Nil pointers leave
// the stored value untouched. A non-nil Informations map is
// shallow-merged into the stored map (key overwrite, not replacement).
type ContactPatch struct {
	Nom          *string
	Prenom       *string
	Categorie    *string
	Informations map[string]any
}

// UpdateContact applies a partial patch and returns the refreshed row,
// or nil when the contact does not exist.
func UpdateContact(db *sql.DB, id int64, patch *ContactPatch) (*models.Contact, error) {
	existing, err := GetContact(db, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	var sets []string
	var values []any

	if patch.Nom != nil {
		sets = append(sets, "nom = ?")
		values = append(values, *patch.Nom)
	}
	if patch.Prenom != nil {
		sets = append(sets, "prenom = ?")
		values = append(values, *patch.Prenom)
	}
	if patch.Categorie != nil {
		sets = append(sets, "categorie = ?")
		values = append(values, strings.ToLower(*patch.Categorie))
	}
	if patch.Informations != nil {
		merged := existing.Informations
		if merged == nil {
			merged = map[string]any{}
		}
		for k, v := range patch.Informations {
			merged[k] = v
		}
		encoded, err := json.Marshal(merged)
		if err != nil {
			return nil, fmt.Errorf("failed to encode informations: %w", err)
		}
		sets = append(sets, "informations = ?")
		values = append(values, string(encoded))
	}

	if len(sets) == 0 {
		return existing, nil
	}

	sets = append(sets, "date_modification = ?")
	values = append(values, now())
	values = append(values, id)

	query := fmt.Sprintf("UPDATE contacts SET %s WHERE id = ?", strings.Join(sets, ", "))
	if _, err := db.Exec(query, values...); err != nil {
		return nil, err
	}

	return GetContact(db, id)
}

// DeleteContact removes a contact permanently (hard delete). Returns
// false when no row matched.
func DeleteContact(db *sql.DB, id int64) (bool, error) {
	res, err := db.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// SearchContacts matches query as a substring of nom, prenom, or the
// serialized informations blob, optionally AND'd with an exact
// category. Results are ordered by nom then prenom.
func SearchContacts(db *sql.DB, query, categorie string) ([]models.Contact, error) {
	var conditions []string
	var values []any

	if query != "" {
		conditions = append(conditions, "(nom LIKE ? OR prenom LIKE ? OR informations LIKE ?)")
		pattern := "%" + query + "%"
		values = append(values, pattern, pattern, pattern)
	}
	if categorie != "" {
		conditions = append(conditions, "categorie = ?")
		values = append(values, strings.ToLower(categorie))
	}

	sqlQuery := `SELECT id, nom, prenom, categorie, informations, notes, date_creation, date_modification FROM contacts`
	if len(conditions) > 0 {
		sqlQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += " ORDER BY nom, prenom"

	rows, err := db.Query(sqlQuery, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

// GetAllContacts returns every contact ordered by nom then prenom.
func GetAllContacts(db *sql.DB) ([]models.Contact, error) {
	rows, err := db.Query(`
		SELECT id, nom, prenom, categorie, informations, notes, date_creation, date_modification
		FROM contacts ORDER BY nom, prenom
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContacts(rows)
}

// AddNote appends a note to the contact's chronological sequence and
// refreshes date_modification. Returns nil when the contact is absent.
// Read-modify-write on the whole notes blob: last writer wins, which is
// acceptable for a single-user tool.
func AddNote(db *sql.DB, id int64, contenu string) (*models.Contact, error) {
	contact, err := GetContact(db, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, nil
	}

	notes := append(contact.Notes, models.Note{
		Date:    now(),
		Contenu: contenu,
	})
	encoded, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notes: %w", err)
	}

	_, err = db.Exec(`
		UPDATE contacts SET notes = ?, date_modification = ? WHERE id = ?
	`, string(encoded), now(), id)
	if err != nil {
		return nil, err
	}

	return GetContact(db, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContact(row rowScanner) (*models.Contact, error) {
	contact := &models.Contact{}
	var infos, notes string

	err := row.Scan(
		&contact.ID,
		&contact.Nom,
		&contact.Prenom,
		&contact.Categorie,
		&infos,
		&notes,
		&contact.DateCreation,
		&contact.DateModification,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(infos), &contact.Informations); err != nil {
		return nil, fmt.Errorf("failed to decode informations for contact %d: %w", contact.ID, err)
	}
	if err := json.Unmarshal([]byte(notes), &contact.Notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes for contact %d: %w", contact.ID, err)
	}

	return contact, nil
}

func scanContacts(rows *sql.Rows) ([]models.Contact, error) {
	var contacts []models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *contact)
	}
	return contacts, rows.Err()
}
