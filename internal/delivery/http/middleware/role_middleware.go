package middleware

import (
	"net/http"

	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/pkg/response"
)

// RequireRole rejects authenticated actors of the wrong role with a 403.
// Role is read from context (set by AuthMiddleware from the token claims),
// so a valid doctor token on a patient endpoint is forbidden, not
// unauthorized.
func RequireRole(expected entity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := GetActorRoleFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Role information not found")
				return
			}

			if role != expected {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePatient is a convenience middleware for patient-only endpoints
func RequirePatient(next http.Handler) http.Handler {
	return RequireRole(entity.RolePatient)(next)
}

// RequireDoctor is a convenience middleware for doctor-only endpoints
func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleDoctor)(next)
}
