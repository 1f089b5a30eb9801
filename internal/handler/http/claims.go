package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// employeeIDFromContext extracts the employee_id claim of the verified token.
func employeeIDFromContext(r *http.Request) string {
	_, claims, _ := jwtauth.FromContext(r.Context())
	if employeeID, ok := claims["employee_id"].(string); ok {
		return employeeID
	}
	return ""
}

func isAdminFromContext(r *http.Request) bool {
	_, claims, _ := jwtauth.FromContext(r.Context())
	admin, _ := claims["is_admin"].(bool)
	return admin
}
