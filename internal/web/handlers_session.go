package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/JonMunkholm/salaryboard/internal/core"
	"github.com/JonMunkholm/salaryboard/internal/logging"
	webmw "github.com/JonMunkholm/salaryboard/internal/web/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

// sessionCookie is the cookie name jwtauth.TokenFromCookie reads.
const sessionCookie = "jwt"

type loginRequest struct {
	EmpNo string `json:"empNo" validate:"required,number,max=20"`
}

// decodeLogin accepts a JSON body or a form post (HTMX).
func decodeLogin(w http.ResponseWriter, r *http.Request) (loginRequest, error) {
	var req loginRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
			return req, fmt.Errorf("%w: malformed body", core.ErrInvalidEmpNo)
		}
	} else {
		req.EmpNo = r.FormValue("empNo")
	}
	req.EmpNo = strings.TrimSpace(req.EmpNo)
	return req, nil
}

// handleLogin signs an employee in by EMP No. Unknown numbers get 404 and
// no token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := decodeLogin(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", core.ErrInvalidEmpNo, err))
		return
	}

	emp, err := s.service.Lookup(req.EmpNo)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	token, expiresAt, err := s.issueToken(emp.EmpNo)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})

	logging.WithFields(logging.ContextWithEmpNo(r.Context(), emp.EmpNo)).Info("employee signed in")

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Employee:  newEmployeeSummary(emp),
	})
}

// issueToken signs a session token for empNo.
func (s *Server) issueToken(empNo string) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.cfg.Session.TTL).Truncate(time.Second)

	claims := map[string]any{webmw.ClaimEmpNo: empNo}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiry(claims, expiresAt)

	_, token, err := s.auth.Encode(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// handleLogout clears the session cookie. Tokens are stateless and simply
// expire.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// handleMe returns the signed-in employee's history, newest first.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	emp, err := s.service.Lookup(webmw.EmpNo(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newEmployeeResponse(emp))
}

func (s *Server) handleMyRecord(w http.ResponseWriter, r *http.Request) {
	emp, rec, err := s.service.EmployeeRecord(webmw.EmpNo(r), chi.URLParam(r, "year"), chi.URLParam(r, "month"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, EmployeeRecordResponse{
		Employee: newEmployeeSummary(emp),
		Record:   newRecordResponse(rec),
	})
}
