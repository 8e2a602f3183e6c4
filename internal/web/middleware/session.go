package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/salaryboard/internal/logging"
	"github.com/go-chi/jwtauth/v5"
)

// ClaimEmpNo is the token claim carrying the signed-in employee number.
const ClaimEmpNo = "emp_no"

// ErrSessionRequired is returned when a verified token lacks an employee.
var ErrSessionRequired = errors.New("session required")

// ErrorResponder writes an error response for a rejected request.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

// RequireSession rejects requests without a valid session token. It must run
// after jwtauth.Verifier. The employee number is added to the request
// context; read it with EmpNo.
func RequireSession(respond ErrorResponder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				respond(w, r, err)
				return
			}
			if token == nil {
				respond(w, r, ErrSessionRequired)
				return
			}

			empNo, _ := claims[ClaimEmpNo].(string)
			empNo = strings.TrimSpace(empNo)
			if empNo == "" {
				respond(w, r, ErrSessionRequired)
				return
			}

			ctx := logging.ContextWithEmpNo(r.Context(), empNo)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// EmpNo returns the employee number of the session, or "".
func EmpNo(r *http.Request) string {
	return logging.EmpNoFromContext(r.Context())
}
