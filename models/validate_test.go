// ABOUTME: Tests for contact and note validation rules
// ABOUTME: Covers name trimming, category normalization, and rejection messages
package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateContactRejectsEmptyNom(t *testing.T) {
	cases := []string{"", "   ", "\t\n"}
	for _, nom := range cases {
		_, err := ValidateContact(nom, "Alice", "pro", nil)
		require.Error(t, err, "nom %q should be rejected", nom)
		assert.True(t, IsValidationError(err))
	}
}

func TestValidateContactTrimsFields(t *testing.T) {
	valid, err := ValidateContact("  Martin  ", "  Alice ", "pro", nil)
	require.NoError(t, err)
	assert.Equal(t, "Martin", valid.Nom)
	assert.Equal(t, "Alice", valid.Prenom)
}

func TestValidateContactCategorieCaseInsensitive(t *testing.T) {
	for _, categorie := range []string{"PRO", "Pro", "pro", " FAMILLE ", "ami", "Autre"} {
		valid, err := ValidateContact("Martin", "", categorie, nil)
		require.NoError(t, err, "categorie %q should be accepted", categorie)
		assert.True(t, IsValidCategorie(valid.Categorie))
		assert.Equal(t, strings.ToLower(strings.TrimSpace(categorie)), valid.Categorie)
	}
}

func TestValidateContactRejectsUnknownCategorie(t *testing.T) {
	_, err := ValidateContact("Martin", "", "collegue", nil)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	// The error must enumerate the full allowed set.
	for _, c := range Categories {
		assert.Contains(t, err.Error(), c)
	}
}

func TestValidateContactDefaultsInformations(t *testing.T) {
	valid, err := ValidateContact("Martin", "", "autre", nil)
	require.NoError(t, err)
	require.NotNil(t, valid.Informations)
	assert.Empty(t, valid.Informations)

	infos := map[string]any{"societe": "Acme"}
	valid, err = ValidateContact("Martin", "", "autre", infos)
	require.NoError(t, err)
	assert.Equal(t, "Acme", valid.Informations["societe"])
}

func TestValidateNote(t *testing.T) {
	_, err := ValidateNote("")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	_, err = ValidateNote("   ")
	require.Error(t, err)

	contenu, err := ValidateNote("  Rappeler lundi  ")
	require.NoError(t, err)
	assert.Equal(t, "Rappeler lundi", contenu)
}

func TestFullName(t *testing.T) {
	c := &Contact{Nom: "Martin", Prenom: "Alice"}
	assert.Equal(t, "Alice Martin", c.FullName())

	c = &Contact{Nom: "Martin"}
	assert.Equal(t, "Martin", c.FullName())

	c = &Contact{}
	assert.Equal(t, "", c.FullName())
}

func TestInfoString(t *testing.T) {
	c := &Contact{Informations: map[string]any{"societe": "Acme", "age": 42}}
	assert.Equal(t, "Acme", c.InfoString("societe"))
	assert.Equal(t, "", c.InfoString("absent"))
	assert.Equal(t, "", c.InfoString("age"), "non-string values read as empty")

	c = &Contact{}
	assert.Equal(t, "", c.InfoString("societe"))
}
