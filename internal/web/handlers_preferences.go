package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/JonMunkholm/salaryboard/internal/core"
	"github.com/google/uuid"
)

// clientCookie identifies a browser for preference storage.
const clientCookie = "sb_client"

const clientCookieTTL = 365 * 24 * time.Hour

type themeRequest struct {
	Theme string `json:"theme" validate:"required"`
}

// clientID returns the browser's preference key, issuing a new one when the
// cookie is missing or malformed.
func clientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(clientCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     clientCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(clientCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := core.Theme(r.Context(), s.prefs, clientID(w, r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: theme})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10)).Decode(&req); err != nil {
			s.respondError(w, r, fmt.Errorf("%w: malformed body", core.ErrInvalidPreference))
			return
		}
	} else {
		req.Theme = r.FormValue("theme")
	}
	req.Theme = strings.ToLower(strings.TrimSpace(req.Theme))

	if err := s.validate.Struct(req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrInvalidPreference, err))
		return
	}

	if err := s.prefs.Set(r.Context(), clientID(w, r), core.PrefTheme, req.Theme); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: req.Theme})
}
