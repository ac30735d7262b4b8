// ABOUTME: Onboarding wizard handlers (3 steps plus welcome and skip)
// ABOUTME: Wizard state lives in an in-memory session behind a cookie
package web

import (
	"net/http"
	"strings"

	"github.com/gosslou/carnet/db"
	"github.com/gosslou/carnet/onboarding"
)

const sessionCookie = "carnet_session"

// session returns the wizard session for the request, creating one
// (and setting the cookie) when needed.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *onboarding.Session {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if session := s.sessions.Get(cookie.Value); session != nil {
			return session
		}
	}

	token, session := s.sessions.New()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	return session
}

// redirectIfOnboarded sends completed users back to the app.
func (s *Server) redirectIfOnboarded(w http.ResponseWriter, r *http.Request) bool {
	has, err := db.HasMasterProfile(s.db)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return true
	}
	if has {
		http.Redirect(w, r, "/", http.StatusFound)
		return true
	}
	return false
}

type onboardingView struct {
	Error   string
	Profile *onboarding.Profile
}

func (s *Server) handleOnboardingWelcome(w http.ResponseWriter, r *http.Request) {
	if s.redirectIfOnboarded(w, r) {
		return
	}
	s.renderTemplate(w, "welcome.html", onboardingView{})
}

func (s *Server) handleOnboardingStep1(w http.ResponseWriter, r *http.Request) {
	if s.redirectIfOnboarded(w, r) {
		return
	}
	session := s.session(w, r)

	if r.Method == http.MethodGet {
		s.renderTemplate(w, "step1.html", onboardingView{})
		return
	}

	linkedinURL := strings.TrimSpace(r.FormValue("linkedin_url"))
	firstName := strings.TrimSpace(r.FormValue("first_name"))
	lastName := strings.TrimSpace(r.FormValue("last_name"))
	company := strings.TrimSpace(r.FormValue("company"))

	var candidate *onboarding.Candidate
	switch {
	case linkedinURL != "":
		if !onboarding.IsProfileURL(linkedinURL) {
			s.renderTemplate(w, "step1.html", onboardingView{
				Error: "URL LinkedIn invalide. Utilisez le format : https://linkedin.com/in/votre-profil",
			})
			return
		}
		candidate = s.enrichFromURL(linkedinURL)
	case firstName != "" && lastName != "":
		candidate = s.enrichFromIdentity(firstName, lastName, company)
	default:
		s.renderTemplate(w, "step1.html", onboardingView{
			Error: "Veuillez remplir au moins votre prenom et nom, ou fournir votre URL LinkedIn.",
		})
		return
	}

	session.Profile = &onboarding.Profile{Candidate: *candidate}
	http.Redirect(w, r, "/onboarding/step2", http.StatusFound)
}

func (s *Server) enrichFromIdentity(firstName, lastName, company string) *onboarding.Candidate {
	if !s.cfg.EnableWebEnrichment {
		return &onboarding.Candidate{
			Prenom:     firstName,
			Nom:        lastName,
			Entreprise: company,
			Source:     onboarding.SourceManualEntry,
		}
	}
	return s.enricher.FromIdentity(firstName, lastName, company)
}

func (s *Server) enrichFromURL(linkedinURL string) *onboarding.Candidate {
	if !s.cfg.EnableWebEnrichment {
		return &onboarding.Candidate{
			LinkedIn: linkedinURL,
			Source:   onboarding.SourceManualEntry,
		}
	}
	return s.enricher.FromProfileURL(linkedinURL)
}

func (s *Server) handleOnboardingStep2(w http.ResponseWriter, r *http.Request) {
	if s.redirectIfOnboarded(w, r) {
		return
	}
	session := s.session(w, r)
	if session.Profile == nil {
		http.Redirect(w, r, "/onboarding/step1", http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		s.renderTemplate(w, "step2.html", onboardingView{Profile: session.Profile})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	session.Profile.Formation = strings.TrimSpace(r.FormValue("formation"))
	session.Profile.Hobbies = r.Form["hobbies"]
	session.Profile.SportDetails = strings.TrimSpace(r.FormValue("sport_details"))
	session.Profile.StyleCommunication = strings.TrimSpace(r.FormValue("style_communication"))
	session.Profile.ObjectifsCRM = r.Form["objectifs_crm"]

	http.Redirect(w, r, "/onboarding/step3", http.StatusFound)
}

func (s *Server) handleOnboardingStep3(w http.ResponseWriter, r *http.Request) {
	if s.redirectIfOnboarded(w, r) {
		return
	}
	session := s.session(w, r)
	if session.Profile == nil {
		http.Redirect(w, r, "/onboarding/step1", http.StatusFound)
		return
	}

	if r.Method == http.MethodGet {
		s.renderTemplate(w, "step3.html", onboardingView{Profile: session.Profile})
		return
	}

	// The confirmation form lets the user correct the name the
	// enrichment guessed (or failed to guess).
	if nom := strings.TrimSpace(r.FormValue("nom")); nom != "" {
		session.Profile.Nom = nom
	}
	if prenom := strings.TrimSpace(r.FormValue("prenom")); prenom != "" {
		session.Profile.Prenom = prenom
	}

	if _, err := onboarding.CreateMasterProfile(s.db, session.Profile); err != nil {
		s.renderTemplate(w, "step3.html", onboardingView{
			Error:   err.Error(),
			Profile: session.Profile,
		})
		return
	}

	// Candidate is transient: discard it once the contact exists.
	session.Profile = nil
	http.Redirect(w, r, "/?first_time=true", http.StatusFound)
}

func (s *Server) handleOnboardingSkip(w http.ResponseWriter, r *http.Request) {
	session := s.session(w, r)
	session.SkipOnboarding = true
	http.Redirect(w, r, "/", http.StatusFound)
}
