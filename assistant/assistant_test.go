// ABOUTME: Tests for the Anthropic adapter
// ABOUTME: Fake Messages API server, fail-soft paths, suggestion parsing
package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosslou/carnet/config"
	"github.com/gosslou/carnet/models"
)

func testAssistant(t *testing.T, apiKey string, handler http.HandlerFunc) *Assistant {
	t.Helper()
	a := New(&config.Config{
		AnthropicAPIKey: apiKey,
		ClaudeModel:     "claude-test",
		ClaudeMaxTokens: 256,
	})
	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		a.SetBaseURL(server.URL)
	}
	return a
}

func textResponse(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"content": []map[string]string{{"type": "text", "text": text}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func TestIsConfigured(t *testing.T) {
	assert.False(t, testAssistant(t, "", nil).IsConfigured())
	assert.True(t, testAssistant(t, "sk-test", nil).IsConfigured())
}

func TestGenerateBriefingUnconfigured(t *testing.T) {
	a := testAssistant(t, "", nil)

	result := a.GenerateBriefing(context.Background(), &models.Contact{Nom: "Martin"}, nil)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.Equal(t, "API Claude non configuree", result.Message)
}

func TestGenerateBriefingSuccess(t *testing.T) {
	var gotRequest messagesRequest
	a := testAssistant(t, "sk-test", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sk-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		textResponse("Briefing genere.")(w, r)
	})

	contact := &models.Contact{
		Nom:       "Martin",
		Prenom:    "Alice",
		Categorie: "pro",
		Notes: []models.Note{
			{Date: "2024-01-02", Contenu: "Je dois lui envoyer le contrat"},
		},
	}
	result := a.GenerateBriefing(context.Background(), contact, nil)

	require.True(t, result.Success, result.Message)
	assert.Equal(t, "Briefing genere.", result.Briefing)
	assert.Equal(t, "claude-test", result.Model)

	require.Len(t, gotRequest.Messages, 1)
	assert.Contains(t, gotRequest.Messages[0].Content, "Alice Martin")
	assert.Contains(t, gotRequest.Messages[0].Content, "Je dois lui envoyer le contrat")
}

func TestGenerateBriefingWithMasterProfile(t *testing.T) {
	var gotRequest messagesRequest
	a := testAssistant(t, "sk-test", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		textResponse("ok")(w, r)
	})

	master := &models.Contact{Nom: "Gosselin", Prenom: "Lou"}
	result := a.GenerateBriefing(context.Background(), &models.Contact{Nom: "Martin"}, master)

	require.True(t, result.Success)
	assert.Contains(t, gotRequest.Messages[0].Content, "Lou Gosselin")
}

func TestAskBuildsContext(t *testing.T) {
	var gotRequest messagesRequest
	a := testAssistant(t, "sk-test", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		textResponse("Reponse.")(w, r)
	})

	result := a.Ask(context.Background(), "Qui travaille chez Acme ?", "Martin Alice (pro)", nil)
	require.True(t, result.Success)
	assert.Equal(t, "Reponse.", result.Response)
	assert.NotEmpty(t, gotRequest.System)
	assert.Contains(t, gotRequest.Messages[0].Content, "Contexte contacts:")
	assert.Contains(t, gotRequest.Messages[0].Content, "Question: Qui travaille chez Acme ?")
}

func TestFailSoftOnAPIErrors(t *testing.T) {
	cases := map[string]struct {
		status  int
		message string
	}{
		"auth":      {http.StatusUnauthorized, "cle API invalide"},
		"ratelimit": {http.StatusTooManyRequests, "limite de requetes"},
		"server":    {http.StatusInternalServerError, "erreur API Anthropic"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			a := testAssistant(t, "sk-test", func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", tc.status)
			})

			result := a.GenerateBriefing(context.Background(), &models.Contact{Nom: "X"}, nil)
			require.False(t, result.Success)
			assert.Contains(t, result.Message, tc.message)
		})
	}
}

func TestFailSoftOnUnreachableEndpoint(t *testing.T) {
	a := testAssistant(t, "sk-test", nil)
	a.SetBaseURL("http://127.0.0.1:1/v1/messages")

	result := a.Ask(context.Background(), "hello", "", nil)
	require.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}

func TestSuggestEmptyContacts(t *testing.T) {
	a := testAssistant(t, "sk-test", nil)

	result := a.Suggest(context.Background(), nil, nil)
	require.True(t, result.Success)
	assert.Empty(t, result.Suggestions)
}

func TestSuggestParsesJSONArray(t *testing.T) {
	payload := `Voici les suggestions : [{"titre":"Relancer Alice","description":"Pas de nouvelle depuis un mois.","type":"relance"}] et voila.`
	a := testAssistant(t, "sk-test", textResponse(payload))

	contacts := []models.Contact{{Nom: "Martin", Prenom: "Alice", Categorie: "pro"}}
	result := a.Suggest(context.Background(), contacts, nil)

	require.True(t, result.Success)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "Relancer Alice", result.Suggestions[0].Titre)
	assert.Equal(t, "relance", result.Suggestions[0].Type)
}

func TestSuggestDegradesOnBadJSON(t *testing.T) {
	a := testAssistant(t, "sk-test", textResponse("je ne peux pas repondre en JSON"))

	contacts := []models.Contact{{Nom: "Martin"}}
	result := a.Suggest(context.Background(), contacts, nil)

	require.True(t, result.Success)
	assert.Empty(t, result.Suggestions)
}

func TestParseSuggestions(t *testing.T) {
	assert.Empty(t, parseSuggestions(""))
	assert.Empty(t, parseSuggestions("pas de crochets"))
	assert.Empty(t, parseSuggestions("[{invalid json}]"))

	parsed := parseSuggestions(`[{"titre":"A","description":"B","type":"follow_up"}]`)
	require.Len(t, parsed, 1)
	assert.Equal(t, "A", parsed[0].Titre)
}
