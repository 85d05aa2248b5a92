package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/campushr/hris-engine-go/internal/domain/approval"
	"github.com/campushr/hris-engine-go/internal/handler/http/response"
)

// HROnly requires the hr role
func HROnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "HR access required")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != approval.RoleHR {
			response.Forbidden(w, "HR access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
