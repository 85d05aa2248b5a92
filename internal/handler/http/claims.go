package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/campushr/hris-engine-go/internal/domain/approval"
)

var errMissingClaims = errors.New("missing token claims")

// actorFromRequest extracts the authenticated employee and role from the
// verified token.
func actorFromRequest(r *http.Request) (approval.Actor, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return approval.Actor{}, err
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return approval.Actor{}, errMissingClaims
	}
	role, _ := claims["role"].(string)

	return approval.Actor{EmployeeID: employeeID, Role: role}, nil
}
