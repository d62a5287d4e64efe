package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

var errMissingEmployeeClaim = errors.New("employee_id claim missing from token")

// employeeIDFromRequest pulls the authenticated employee id out of the
// verified JWT. AuthRequired runs first, so a missing claim here is a token
// minted without one, not an unauthenticated request.
func employeeIDFromRequest(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", err
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", errMissingEmployeeClaim
	}
	return employeeID, nil
}
