// ABOUTME: Best-effort profile enrichment from public web search results
// ABOUTME: Heuristic HTML/text extraction, advisory only, never fails hard
package onboarding

import (
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Candidate is a partially-filled profile guess. Any field may be
// wrong, partial, or empty; the user edits it before persistence.
type Candidate struct {
	Prenom     string `json:"prenom"`
	Nom        string `json:"nom"`
	Entreprise string `json:"entreprise"`
	Poste      string `json:"poste"`
	Secteur    string `json:"secteur"`
	LinkedIn   string `json:"linkedin,omitempty"`
	Source     string `json:"source"`
}

// Source markers on a candidate.
const (
	SourceWebSearch   = "recherche_web"
	SourceManualEntry = "saisie_manuelle"
	SourceLinkedInURL = "linkedin_url"
)

const defaultSearchBaseURL = "https://html.duckduckgo.com/html/"
const enrichTimeout = 10 * time.Second

var (
	snippetRe  = regexp.MustCompile(`(?s)<a class="result__snippet"[^>]*>(.*?)</a>`)
	titleRe    = regexp.MustCompile(`(?s)<a class="result__a"[^>]*>(.*?)</a>`)
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	posteRe    = regexp.MustCompile(`(?:^|\s|-|–)\s*([A-Z][^.·\-]+?)(?:\s+(?:at|@|chez|[-–])\s+)`)
	entRe      = regexp.MustCompile(`(?:at|@|chez|[-–])\s+([A-Z][^.\-]+)`)
	titleSepRe = regexp.MustCompile(`\s*[-–|]\s*`)
	slugRe     = regexp.MustCompile(`linkedin\.com/in/([\w\-]+)`)
	profileRe  = regexp.MustCompile(`^https?://(www\.)?linkedin\.com/in/[\w\-]+/?$`)
)

// Enricher queries a public search-result page and heuristically
// parses snippets. BaseURL is overridable for tests.
type Enricher struct {
	BaseURL   string
	UserAgent string
	client    *http.Client
}

func NewEnricher() *Enricher {
	return &Enricher{
		BaseURL:   defaultSearchBaseURL,
		UserAgent: "Mozilla/5.0 (compatible; CRM-Onboarding/1.0)",
		client:    &http.Client{Timeout: enrichTimeout},
	}
}

// IsProfileURL reports whether url looks like a LinkedIn profile link.
func IsProfileURL(u string) bool {
	return profileRe.MatchString(u)
}

// FromIdentity builds a candidate from a first/last name and optional
// employer via a web search. Network or parse failures degrade the
// source to manual entry and leave role/employer blank.
func (e *Enricher) FromIdentity(firstName, lastName, company string) *Candidate {
	candidate := &Candidate{
		Prenom:     firstName,
		Nom:        lastName,
		Entreprise: company,
		Source:     SourceWebSearch,
	}

	queryParts := []string{firstName, lastName}
	if company != "" {
		queryParts = append(queryParts, company)
	}
	queryParts = append(queryParts, "LinkedIn")

	page, err := e.fetch(strings.Join(queryParts, " "))
	if err != nil {
		candidate.Source = SourceManualEntry
		return candidate
	}

	snippets := snippetRe.FindAllStringSubmatch(page, 5)
	for _, match := range snippets {
		clean := html.UnescapeString(tagRe.ReplaceAllString(match[1], ""))

		if candidate.Poste == "" {
			if m := posteRe.FindStringSubmatch(clean); m != nil {
				candidate.Poste = strings.TrimSpace(m[1])
			}
		}
		if candidate.Entreprise == "" {
			if m := entRe.FindStringSubmatch(clean); m != nil {
				candidate.Entreprise = strings.TrimSpace(m[1])
			}
		}
	}

	return candidate
}

// FromProfileURL builds a candidate from a public profile URL by
// searching for it and splitting the first result title into
// {name, role, employer}. When the network call fails, the name is
// guessed from the URL's profile slug instead.
func (e *Enricher) FromProfileURL(profileURL string) *Candidate {
	candidate := &Candidate{
		LinkedIn: profileURL,
		Source:   SourceLinkedInURL,
	}

	page, err := e.fetch(profileURL)
	if err != nil {
		if m := slugRe.FindStringSubmatch(profileURL); m != nil {
			slug := titleCase(strings.ReplaceAll(m[1], "-", " "))
			parts := strings.Fields(slug)
			if len(parts) >= 2 {
				candidate.Prenom = parts[0]
				candidate.Nom = strings.Join(parts[1:], " ")
			}
		}
		return candidate
	}

	m := titleRe.FindStringSubmatch(page)
	if m == nil {
		return candidate
	}
	title := html.UnescapeString(tagRe.ReplaceAllString(m[1], ""))
	parts := titleSepRe.Split(title, -1)

	if len(parts) >= 1 {
		nameParts := strings.Fields(strings.TrimSpace(parts[0]))
		if len(nameParts) >= 2 {
			candidate.Prenom = nameParts[0]
			candidate.Nom = strings.Join(nameParts[1:], " ")
		} else if len(nameParts) == 1 {
			candidate.Nom = nameParts[0]
		}
	}
	if len(parts) >= 2 {
		candidate.Poste = strings.TrimSpace(parts[1])
	}
	if len(parts) >= 3 {
		entreprise := strings.TrimSpace(parts[2])
		if !strings.Contains(entreprise, "LinkedIn") {
			candidate.Entreprise = entreprise
		}
	}

	return candidate
}

func (e *Enricher) fetch(query string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, e.BaseURL+"?q="+url.QueryEscape(query), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", e.UserAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	// Search endpoints answer scrapers with 403/429; an error page is
	// not a results page.
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}
