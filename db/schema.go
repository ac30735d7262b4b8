// ABOUTME: Database schema definitions
// ABOUTME: Handles SQLite table creation and initialization
package db

import (
	"database/sql"
)

// The master_profile table is a singleton slot: the CHECK constraint
// guarantees at most one row, so the master profile is found by
// identity instead of scanning serialized informations for a marker.
const schema = `
CREATE TABLE IF NOT EXISTS contacts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	nom TEXT NOT NULL,
	prenom TEXT DEFAULT '',
	categorie TEXT DEFAULT 'autre',
	informations TEXT DEFAULT '{}',
	notes TEXT DEFAULT '[]',
	date_creation TEXT NOT NULL,
	date_modification TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_contacts_nom ON contacts(nom);
CREATE INDEX IF NOT EXISTS idx_contacts_categorie ON contacts(categorie);

CREATE TABLE IF NOT EXISTS master_profile (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	contact_id INTEGER NOT NULL,
	FOREIGN KEY (contact_id) REFERENCES contacts(id) ON DELETE CASCADE
);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
