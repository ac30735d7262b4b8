// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, find_contacts, update_contact, delete_contact, add_note, and get_briefing tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gosslou/carnet/briefing"
	"github.com/gosslou/carnet/db"
	"github.com/gosslou/carnet/models"
)

type ContactHandlers struct {
	db *sql.DB
}

func NewContactHandlers(database *sql.DB) *ContactHandlers {
	return &ContactHandlers{db: database}
}

type AddContactInput struct {
	Nom          string         `json:"nom" jsonschema:"Last name (required)"`
	Prenom       string         `json:"prenom,omitempty" jsonschema:"First name"`
	Categorie    string         `json:"categorie,omitempty" jsonschema:"Category: famille, ami, pro, or autre (default autre)"`
	Informations map[string]any `json:"informations,omitempty" jsonschema:"Free-form key/value details (societe, poste, ville, ...)"`
}

type ContactOutput struct {
	ID               int64          `json:"id"`
	Nom              string         `json:"nom"`
	Prenom           string         `json:"prenom,omitempty"`
	Categorie        string         `json:"categorie"`
	Informations     map[string]any `json:"informations,omitempty"`
	Notes            []models.Note  `json:"notes,omitempty"`
	DateCreation     string         `json:"date_creation"`
	DateModification string         `json:"date_modification"`
}

func (h *ContactHandlers) AddContact(_ context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	categorie := input.Categorie
	if categorie == "" {
		categorie = models.CategorieAutre
	}

	valid, err := models.ValidateContact(input.Nom, input.Prenom, categorie, input.Informations)
	if err != nil {
		return nil, ContactOutput{}, err
	}

	contact, err := db.CreateContact(h.db, valid)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}

	return nil, contactToOutput(contact), nil
}

type FindContactsInput struct {
	Query     string `json:"query,omitempty" jsonschema:"Search query (matches name and informations)"`
	Categorie string `json:"categorie,omitempty" jsonschema:"Filter by category: famille, ami, pro, autre"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Total    int             `json:"total"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, request *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	contacts, err := db.SearchContacts(h.db, input.Query, input.Categorie)
	if err != nil {
		return nil, FindContactsOutput{}, fmt.Errorf("failed to find contacts: %w", err)
	}

	result := make([]ContactOutput, len(contacts))
	for i := range contacts {
		result[i] = contactToOutput(&contacts[i])
	}

	return nil, FindContactsOutput{Contacts: result, Total: len(result)}, nil
}

type UpdateContactInput struct {
	ID           int64          `json:"id" jsonschema:"Contact ID (required)"`
	Nom          string         `json:"nom,omitempty" jsonschema:"Updated last name"`
	Prenom       string         `json:"prenom,omitempty" jsonschema:"Updated first name"`
	Categorie    string         `json:"categorie,omitempty" jsonschema:"Updated category"`
	Informations map[string]any `json:"informations,omitempty" jsonschema:"Keys to merge into the contact's informations"`
}

func (h *ContactHandlers) UpdateContact(_ context.Context, request *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ID == 0 {
		return nil, ContactOutput{}, fmt.Errorf("id is required")
	}

	existing, err := db.GetContact(h.db, input.ID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to get contact: %w", err)
	}
	if existing == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact %d not found", input.ID)
	}

	nom := existing.Nom
	if input.Nom != "" {
		nom = input.Nom
	}
	prenom := existing.Prenom
	if input.Prenom != "" {
		prenom = input.Prenom
	}
	categorie := existing.Categorie
	if input.Categorie != "" {
		categorie = input.Categorie
	}

	valid, err := models.ValidateContact(nom, prenom, categorie, input.Informations)
	if err != nil {
		return nil, ContactOutput{}, err
	}

	patch := &db.ContactPatch{
		Nom:       &valid.Nom,
		Prenom:    &valid.Prenom,
		Categorie: &valid.Categorie,
	}
	if input.Informations != nil {
		patch.Informations = input.Informations
	}

	contact, err := db.UpdateContact(h.db, input.ID, patch)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to update contact: %w", err)
	}

	return nil, contactToOutput(contact), nil
}

type DeleteContactInput struct {
	ID int64 `json:"id" jsonschema:"Contact ID (required)"`
}

type DeleteContactOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *ContactHandlers) DeleteContact(_ context.Context, request *mcp.CallToolRequest, input DeleteContactInput) (*mcp.CallToolResult, DeleteContactOutput, error) {
	if input.ID == 0 {
		return nil, DeleteContactOutput{}, fmt.Errorf("id is required")
	}

	deleted, err := db.DeleteContact(h.db, input.ID)
	if err != nil {
		return nil, DeleteContactOutput{}, fmt.Errorf("failed to delete contact: %w", err)
	}
	if !deleted {
		return nil, DeleteContactOutput{}, fmt.Errorf("contact %d not found", input.ID)
	}

	return nil, DeleteContactOutput{
		Success: true,
		Message: fmt.Sprintf("Deleted contact %d", input.ID),
	}, nil
}

type AddNoteInput struct {
	ContactID int64  `json:"contact_id" jsonschema:"Contact ID (required)"`
	Contenu   string `json:"contenu" jsonschema:"Note content (required)"`
}

func (h *ContactHandlers) AddNote(_ context.Context, request *mcp.CallToolRequest, input AddNoteInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.ContactID == 0 {
		return nil, ContactOutput{}, fmt.Errorf("contact_id is required")
	}

	contenu, err := models.ValidateNote(input.Contenu)
	if err != nil {
		return nil, ContactOutput{}, err
	}

	contact, err := db.AddNote(h.db, input.ContactID, contenu)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to add note: %w", err)
	}
	if contact == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact %d not found", input.ContactID)
	}

	return nil, contactToOutput(contact), nil
}

type GetBriefingInput struct {
	ContactID int64 `json:"contact_id" jsonschema:"Contact ID (required)"`
}

type GetBriefingOutput struct {
	Briefing *models.Briefing `json:"briefing"`
	Texte    string           `json:"texte"`
}

func (h *ContactHandlers) GetBriefing(_ context.Context, request *mcp.CallToolRequest, input GetBriefingInput) (*mcp.CallToolResult, GetBriefingOutput, error) {
	if input.ContactID == 0 {
		return nil, GetBriefingOutput{}, fmt.Errorf("contact_id is required")
	}

	contact, err := db.GetContact(h.db, input.ContactID)
	if err != nil {
		return nil, GetBriefingOutput{}, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact == nil {
		return nil, GetBriefingOutput{}, fmt.Errorf("contact %d not found", input.ContactID)
	}

	b := briefing.Build(contact)
	return nil, GetBriefingOutput{Briefing: b, Texte: briefing.RenderText(b)}, nil
}

func contactToOutput(contact *models.Contact) ContactOutput {
	return ContactOutput{
		ID:               contact.ID,
		Nom:              contact.Nom,
		Prenom:           contact.Prenom,
		Categorie:        contact.Categorie,
		Informations:     contact.Informations,
		Notes:            contact.Notes,
		DateCreation:     contact.DateCreation,
		DateModification: contact.DateModification,
	}
}
