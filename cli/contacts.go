// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for managing contacts and briefings
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gosslou/carnet/briefing"
	"github.com/gosslou/carnet/db"
	"github.com/gosslou/carnet/models"
)

// AddContactCommand adds a new contact.
func AddContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	nom := fs.String("nom", "", "Last name (required)")
	prenom := fs.String("prenom", "", "First name")
	categorie := fs.String("categorie", models.CategorieAutre, "Category: famille, ami, pro, autre")
	societe := fs.String("societe", "", "Company")
	poste := fs.String("poste", "", "Job title")
	ville := fs.String("ville", "", "City")
	_ = fs.Parse(args)

	if *nom == "" {
		return fmt.Errorf("--nom is required")
	}

	informations := map[string]any{}
	if *societe != "" {
		informations["societe"] = *societe
	}
	if *poste != "" {
		informations["poste"] = *poste
	}
	if *ville != "" {
		informations["ville"] = *ville
	}

	valid, err := models.ValidateContact(*nom, *prenom, *categorie, informations)
	if err != nil {
		return err
	}

	contact, err := db.CreateContact(database, valid)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	fmt.Printf("✓ Contact created: %s (ID: %d)\n", contact.FullName(), contact.ID)
	fmt.Printf("  Categorie: %s\n", contact.Categorie)
	if *societe != "" {
		fmt.Printf("  Societe: %s\n", *societe)
	}
	return nil
}

// ListContactsCommand lists contacts, optionally filtered.
func ListContactsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	query := fs.String("query", "", "Search by name or informations")
	categorie := fs.String("categorie", "", "Filter by category")
	_ = fs.Parse(args)

	contacts, err := db.SearchContacts(database, *query, *categorie)
	if err != nil {
		return fmt.Errorf("failed to find contacts: %w", err)
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNOM\tPRENOM\tCATEGORIE\tSOCIETE\tNOTES")
	_, _ = fmt.Fprintln(w, "--\t---\t------\t---------\t-------\t-----")

	for i := range contacts {
		c := &contacts[i]
		societe := c.InfoString("societe")
		if societe == "" {
			societe = "-"
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%d\n",
			c.ID, c.Nom, c.Prenom, c.Categorie, societe, len(c.Notes))
	}
	_ = w.Flush()

	fmt.Printf("\nTotal: %d contact(s)\n", len(contacts))
	return nil
}

// UpdateContactCommand updates an existing contact.
func UpdateContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-contact", flag.ExitOnError)
	nom := fs.String("nom", "", "Last name")
	prenom := fs.String("prenom", "", "First name")
	categorie := fs.String("categorie", "", "Category")
	_ = fs.Parse(args)

	id, err := positionalID(fs, "contact")
	if err != nil {
		return err
	}

	existing, err := db.GetContact(database, id)
	if err != nil {
		return fmt.Errorf("failed to get contact: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("contact not found: %d", id)
	}

	effNom := existing.Nom
	if *nom != "" {
		effNom = *nom
	}
	effPrenom := existing.Prenom
	if *prenom != "" {
		effPrenom = *prenom
	}
	effCategorie := existing.Categorie
	if *categorie != "" {
		effCategorie = *categorie
	}

	valid, err := models.ValidateContact(effNom, effPrenom, effCategorie, nil)
	if err != nil {
		return err
	}

	contact, err := db.UpdateContact(database, id, &db.ContactPatch{
		Nom:       &valid.Nom,
		Prenom:    &valid.Prenom,
		Categorie: &valid.Categorie,
	})
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	fmt.Printf("✓ Contact updated: %s (ID: %d)\n", contact.FullName(), contact.ID)
	return nil
}

// DeleteContactCommand deletes a contact.
func DeleteContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("delete-contact", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := positionalID(fs, "contact")
	if err != nil {
		return err
	}

	deleted, err := db.DeleteContact(database, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if !deleted {
		return fmt.Errorf("contact not found: %d", id)
	}

	fmt.Printf("✓ Contact deleted: %d\n", id)
	return nil
}

// AddNoteCommand appends a note to a contact.
func AddNoteCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-note", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := positionalID(fs, "contact")
	if err != nil {
		return err
	}

	contenu := strings.Join(fs.Args()[1:], " ")
	contenu, err = models.ValidateNote(contenu)
	if err != nil {
		return err
	}

	contact, err := db.AddNote(database, id, contenu)
	if err != nil {
		return fmt.Errorf("failed to add note: %w", err)
	}
	if contact == nil {
		return fmt.Errorf("contact not found: %d", id)
	}

	fmt.Printf("✓ Note added to %s (%d note(s) total)\n", contact.FullName(), len(contact.Notes))
	return nil
}

// BriefingCommand prints the text briefing for a contact.
func BriefingCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("briefing", flag.ExitOnError)
	_ = fs.Parse(args)

	id, err := positionalID(fs, "contact")
	if err != nil {
		return err
	}

	contact, err := db.GetContact(database, id)
	if err != nil {
		return fmt.Errorf("failed to get contact: %w", err)
	}
	if contact == nil {
		return fmt.Errorf("contact not found: %d", id)
	}

	fmt.Println(briefing.RenderText(briefing.Build(contact)))
	return nil
}

func positionalID(fs *flag.FlagSet, what string) (int64, error) {
	if len(fs.Args()) < 1 {
		return 0, fmt.Errorf("%s ID is required", what)
	}
	id, err := strconv.ParseInt(fs.Args()[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s ID: %w", what, err)
	}
	return id, nil
}
