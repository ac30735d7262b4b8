// ABOUTME: Tests for contact MCP tool handlers
// ABOUTME: Validates tool input/output and error handling
package handlers

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/gosslou/carnet/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	return database
}

func TestAddContactHandler(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	handler := NewContactHandlers(database)

	_, out, err := handler.AddContact(context.Background(), nil, AddContactInput{
		Nom:          "Martin",
		Prenom:       "Alice",
		Categorie:    "PRO",
		Informations: map[string]any{"societe": "Acme"},
	})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	if out.ID == 0 {
		t.Error("ID was not set")
	}
	if out.Nom != "Martin" {
		t.Errorf("Expected nom 'Martin', got %v", out.Nom)
	}
	if out.Categorie != "pro" {
		t.Errorf("Expected categorie 'pro', got %v", out.Categorie)
	}
}

func TestAddContactHandlerValidation(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	handler := NewContactHandlers(database)

	_, _, err := handler.AddContact(context.Background(), nil, AddContactInput{Nom: "   "})
	if err == nil {
		t.Fatal("Expected validation error for empty nom")
	}

	_, _, err = handler.AddContact(context.Background(), nil, AddContactInput{
		Nom:       "Martin",
		Categorie: "collegue",
	})
	if err == nil {
		t.Fatal("Expected validation error for unknown category")
	}
}

func TestFindContactsHandler(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	handler := NewContactHandlers(database)
	ctx := context.Background()

	_, _, err := handler.AddContact(ctx, nil, AddContactInput{
		Nom:          "Martin",
		Categorie:    "pro",
		Informations: map[string]any{"societe": "Acme"},
	})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}
	_, _, err = handler.AddContact(ctx, nil, AddContactInput{Nom: "Durand", Categorie: "ami"})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	_, out, err := handler.FindContacts(ctx, nil, FindContactsInput{Query: "Acme"})
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if out.Total != 1 {
		t.Fatalf("Expected 1 result, got %d", out.Total)
	}
	if out.Contacts[0].Nom != "Martin" {
		t.Errorf("Expected Martin, got %v", out.Contacts[0].Nom)
	}

	_, out, err = handler.FindContacts(ctx, nil, FindContactsInput{Categorie: "ami"})
	if err != nil {
		t.Fatalf("FindContacts failed: %v", err)
	}
	if out.Total != 1 || out.Contacts[0].Nom != "Durand" {
		t.Errorf("Category filter returned wrong results: %+v", out.Contacts)
	}
}

func TestUpdateContactHandler(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	handler := NewContactHandlers(database)
	ctx := context.Background()

	_, created, err := handler.AddContact(ctx, nil, AddContactInput{
		Nom:          "Martin",
		Informations: map[string]any{"ville": "Paris"},
	})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	_, out, err := handler.UpdateContact(ctx, nil, UpdateContactInput{
		ID:           created.ID,
		Prenom:       "Alice",
		Informations: map[string]any{"societe": "Acme"},
	})
	if err != nil {
		t.Fatalf("UpdateContact failed: %v", err)
	}

	if out.Prenom != "Alice" {
		t.Errorf("Expected prenom 'Alice', got %v", out.Prenom)
	}
	if out.Informations["ville"] != "Paris" {
		t.Error("Existing informations key was lost on merge")
	}
	if out.Informations["societe"] != "Acme" {
		t.Error("New informations key was not merged")
	}
}

func TestUpdateContactHandlerNotFound(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	handler := NewContactHandlers(database)

	_, _, err := handler.UpdateContact(context.Background(), nil, UpdateContactInput{ID: 999, Nom: "X"})
	if err == nil {
		t.Fatal("Expected error for missing contact")
	}
}

func TestDeleteContactHandler(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	handler := NewContactHandlers(database)
	ctx := context.Background()

	_, created, err := handler.AddContact(ctx, nil, AddContactInput{Nom: "Martin"})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	_, out, err := handler.DeleteContact(ctx, nil, DeleteContactInput{ID: created.ID})
	if err != nil {
		t.Fatalf("DeleteContact failed: %v", err)
	}
	if !out.Success {
		t.Error("Expected success")
	}

	_, _, err = handler.DeleteContact(ctx, nil, DeleteContactInput{ID: created.ID})
	if err == nil {
		t.Fatal("Expected error deleting missing contact")
	}
}

func TestAddNoteHandler(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	handler := NewContactHandlers(database)
	ctx := context.Background()

	_, created, err := handler.AddContact(ctx, nil, AddContactInput{Nom: "Martin"})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	_, out, err := handler.AddNote(ctx, nil, AddNoteInput{
		ContactID: created.ID,
		Contenu:   "Dejeuner tres sympa",
	})
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if len(out.Notes) != 1 {
		t.Fatalf("Expected 1 note, got %d", len(out.Notes))
	}
	if out.Notes[0].Contenu != "Dejeuner tres sympa" {
		t.Errorf("Unexpected note content: %v", out.Notes[0].Contenu)
	}

	_, _, err = handler.AddNote(ctx, nil, AddNoteInput{ContactID: created.ID, Contenu: "   "})
	if err == nil {
		t.Fatal("Expected validation error for empty note")
	}
}

func TestGetBriefingHandler(t *testing.T) {
	database := setupTestDB(t)
	defer database.Close()

	handler := NewContactHandlers(database)
	ctx := context.Background()

	_, created, err := handler.AddContact(ctx, nil, AddContactInput{
		Nom:       "Martin",
		Prenom:    "Alice",
		Categorie: "pro",
	})
	if err != nil {
		t.Fatalf("AddContact failed: %v", err)
	}

	_, _, err = handler.AddNote(ctx, nil, AddNoteInput{
		ContactID: created.ID,
		Contenu:   "Je dois lui envoyer le contrat",
	})
	if err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}

	_, out, err := handler.GetBriefing(ctx, nil, GetBriefingInput{ContactID: created.ID})
	if err != nil {
		t.Fatalf("GetBriefing failed: %v", err)
	}

	if out.Briefing.Contact.NomComplet != "Alice Martin" {
		t.Errorf("Unexpected nom_complet: %v", out.Briefing.Contact.NomComplet)
	}
	if len(out.Briefing.PromessesEnAttente) != 1 {
		t.Fatalf("Expected 1 pending promise, got %d", len(out.Briefing.PromessesEnAttente))
	}
	if out.Texte == "" {
		t.Error("Expected non-empty text rendering")
	}
}
