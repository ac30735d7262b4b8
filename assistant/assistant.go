// ABOUTME: Anthropic Messages API adapter for CRM AI features
// ABOUTME: Briefing generation, Q&A assistant, and dashboard suggestions
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gosslou/carnet/config"
	"github.com/gosslou/carnet/models"
)

const (
	defaultBaseURL   = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	requestTimeout   = 10 * time.Second
)

// Assistant talks to the Anthropic Messages API. All operations fail
// soft: unconfigured, rate-limited, or unreachable endpoints produce a
// structured {Success:false, Message} result, never an error.
type Assistant struct {
	apiKey    string
	model     string
	maxTokens int
	baseURL   string
	client    *http.Client
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Result is the fail-soft outcome of an assistant call.
type Result struct {
	Success  bool   `json:"success"`
	Briefing string `json:"briefing,omitempty"`
	Response string `json:"response,omitempty"`
	Message  string `json:"message,omitempty"`
	Model    string `json:"model,omitempty"`
}

// Suggestion is one proactive dashboard action.
type Suggestion struct {
	Titre       string `json:"titre"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// SuggestResult carries dashboard suggestions or a degraded message.
type SuggestResult struct {
	Success     bool         `json:"success"`
	Suggestions []Suggestion `json:"suggestions"`
	Message     string       `json:"message,omitempty"`
}

func New(cfg *config.Config) *Assistant {
	return &Assistant{
		apiKey:    cfg.AnthropicAPIKey,
		model:     cfg.ClaudeModel,
		maxTokens: cfg.ClaudeMaxTokens,
		baseURL:   defaultBaseURL,
		client:    &http.Client{Timeout: requestTimeout},
	}
}

// SetBaseURL overrides the API endpoint (tests).
func (a *Assistant) SetBaseURL(u string) {
	a.baseURL = u
}

// IsConfigured reports whether an API key is present.
func (a *Assistant) IsConfigured() bool {
	return a.apiKey != ""
}

const notConfiguredMessage = "API Claude non configuree"

// TestConnection issues a minimal request to verify the key works.
func (a *Assistant) TestConnection(ctx context.Context) *Result {
	if !a.IsConfigured() {
		return &Result{Success: false, Message: "Cle API non configuree. Ajoutez-la dans les parametres."}
	}

	_, err := a.complete(ctx, "", "Reponds uniquement 'OK' pour confirmer la connexion.", 50)
	if err != nil {
		return &Result{Success: false, Message: err.Error()}
	}
	return &Result{Success: true, Message: "Connexion reussie !", Model: a.model}
}

// GenerateBriefing asks the model for a meeting-preparation briefing,
// optionally personalized with the user's master profile.
func (a *Assistant) GenerateBriefing(ctx context.Context, contact *models.Contact, master *models.Contact) *Result {
	if !a.IsConfigured() {
		return &Result{Success: false, Message: notConfiguredMessage}
	}

	notesText := "Aucune note enregistree."
	if len(contact.Notes) > 0 {
		recent := contact.Notes
		if len(recent) > 10 {
			recent = recent[len(recent)-10:]
		}
		var b bytes.Buffer
		for i, n := range recent {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "- [%s] %s", n.Date, n.Contenu)
		}
		notesText = b.String()
	}

	prompt := fmt.Sprintf(`Tu es un assistant CRM personnel. Genere un briefing concis et utile pour preparer une rencontre avec ce contact.

%s

Contact :
- Nom: %s
- Categorie: %s
- Informations: %s

Notes recentes :
%s

Genere un briefing structure avec :
1. **Resume du contact** (qui est cette personne, relation)
2. **Points cles a aborder** (sujets de conversation pertinents)
3. **Promesses ou suivis en attente** (extraits des notes)
4. **Suggestions** (comment renforcer la relation)

Sois concis, pratique et bienveillant. Reponds en francais.`,
		masterContext(master), contact.FullName(), contact.Categorie,
		jsonString(contact.Informations), notesText)

	text, err := a.complete(ctx, "", prompt, a.maxTokens)
	if err != nil {
		return &Result{Success: false, Message: fmt.Sprintf("Erreur: %v", err)}
	}
	return &Result{Success: true, Briefing: text, Model: a.model}
}

// Ask answers a free-form question, optionally grounded in a serialized
// contacts context and the user's master profile.
func (a *Assistant) Ask(ctx context.Context, question, contactsContext string, master *models.Contact) *Result {
	if !a.IsConfigured() {
		return &Result{Success: false, Message: notConfiguredMessage}
	}

	systemPrompt := `Tu es un assistant CRM personnel intelligent. Tu aides l'utilisateur a gerer ses contacts et relations.
Tu peux :
- Repondre aux questions sur les contacts
- Donner des conseils relationnels
- Suggerer des actions (appeler, envoyer un message, planifier un meeting)
- Aider a rediger des messages

Sois concis, pratique et bienveillant. Reponds en francais.`

	var parts []string
	if master != nil {
		parts = append(parts, fmt.Sprintf("Profil utilisateur: %s - %s",
			master.FullName(), jsonString(master.Informations)))
	}
	if contactsContext != "" {
		parts = append(parts, "Contexte contacts:\n"+contactsContext)
	}

	userMessage := question
	if len(parts) > 0 {
		var b bytes.Buffer
		for _, p := range parts {
			b.WriteString(p)
			b.WriteString("\n\n")
		}
		b.WriteString("Question: " + question)
		userMessage = b.String()
	}

	text, err := a.complete(ctx, systemPrompt, userMessage, a.maxTokens)
	if err != nil {
		return &Result{Success: false, Message: fmt.Sprintf("Erreur: %v", err)}
	}
	return &Result{Success: true, Response: text, Model: a.model}
}

// Suggest analyzes up to 20 contacts and proposes concrete actions for
// the dashboard. A response that is not valid JSON degrades to an empty
// suggestion list rather than an error.
func (a *Assistant) Suggest(ctx context.Context, contacts []models.Contact, master *models.Contact) *SuggestResult {
	if !a.IsConfigured() {
		return &SuggestResult{Success: false, Message: notConfiguredMessage}
	}
	if len(contacts) == 0 {
		return &SuggestResult{Success: true, Suggestions: []Suggestion{}}
	}

	if len(contacts) > 20 {
		contacts = contacts[:20]
	}
	summary := make([]map[string]any, 0, len(contacts))
	for i := range contacts {
		c := &contacts[i]
		lastNote := "jamais"
		if len(c.Notes) > 0 {
			lastNote = c.Notes[len(c.Notes)-1].Date
		}
		cles := map[string]any{}
		for _, k := range []string{"societe", "ville", "anniversaire"} {
			if v, ok := c.Informations[k]; ok {
				cles[k] = v
			}
		}
		summary = append(summary, map[string]any{
			"nom":           c.FullName(),
			"categorie":     c.Categorie,
			"nb_notes":      len(c.Notes),
			"derniere_note": lastNote,
			"infos_cles":    cles,
		})
	}

	prompt := fmt.Sprintf(`Analyse ces contacts CRM et genere 3-5 suggestions d'actions concretes.

Contacts :
%s

Pour chaque suggestion, donne :
- Un titre court (max 60 caracteres)
- Une description (1-2 phrases)
- Le type: "follow_up", "anniversaire", "networking", "relance"

Reponds UNIQUEMENT avec un JSON valide (array d'objets avec titre, description, type).
Pas de markdown, pas de texte avant ou apres le JSON.`, jsonString(summary))

	text, err := a.complete(ctx, "", prompt, a.maxTokens)
	if err != nil {
		return &SuggestResult{Success: false, Message: fmt.Sprintf("Erreur: %v", err)}
	}

	return &SuggestResult{Success: true, Suggestions: parseSuggestions(text)}
}

// parseSuggestions extracts the first JSON array from the model output,
// tolerating surrounding prose. Unparseable output yields no
// suggestions.
func parseSuggestions(text string) []Suggestion {
	start := bytes.IndexByte([]byte(text), '[')
	end := bytes.LastIndexByte([]byte(text), ']')
	if start < 0 || end <= start {
		return []Suggestion{}
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(text[start:end+1]), &suggestions); err != nil {
		return []Suggestion{}
	}
	return suggestions
}

// complete performs one Messages API round trip and returns the first
// text block of the response.
func (a *Assistant) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	payload := messagesRequest{
		Model:     a.model,
		MaxTokens: maxTokens,
		System:    system,
		Messages:  []message{{Role: "user", Content: user}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", a.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requete API echouee: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("lecture reponse: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("cle API invalide. Verifiez votre cle sur console.anthropic.com")
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", fmt.Errorf("limite de requetes atteinte. Reessayez dans quelques instants")
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("erreur API Anthropic (%d): %s", resp.StatusCode, string(respBody))
	}

	var apiResp messagesResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode reponse: %w", err)
	}
	if len(apiResp.Content) == 0 {
		return "", fmt.Errorf("reponse vide")
	}
	return apiResp.Content[0].Text, nil
}

func masterContext(master *models.Contact) string {
	if master == nil {
		return ""
	}
	return fmt.Sprintf(`Profil de l'utilisateur (vous) :
- Nom: %s
- Informations: %s`, master.FullName(), jsonString(master.Informations))
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
