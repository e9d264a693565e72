package middleware

import (
	"context"
	"net/http"
	"strings"

	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/domain/repository"
	"medical-appointments-api/pkg/jwt"
	"medical-appointments-api/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	ActorIDKey   contextKey = "actor_id"
	ActorRoleKey contextKey = "actor_role"
)

// AuthMiddleware resolves a bearer token into a concrete actor. A token
// that fails verification is a 401; a valid token whose subject no
// longer exists in its actor table is a 404, so the two cases stay
// distinguishable to clients.
type AuthMiddleware struct {
	jwtService  *jwt.Service
	patientRepo repository.PatientRepository
	doctorRepo  repository.DoctorRepository
	log         *logrus.Logger
}

func NewAuthMiddleware(
	jwtService *jwt.Service,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	log *logrus.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:  jwtService,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		log:         log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		claims, err := m.jwtService.Validate(parts[1])
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		exists, err := m.actorExists(r.Context(), claims.SubjectID, claims.Role)
		if err != nil {
			m.log.Warnf("Failed to resolve actor %d (%s): %+v", claims.SubjectID, claims.Role, err)
			response.InternalServerError(w, "Failed to resolve actor")
			return
		}
		if !exists {
			response.NotFound(w, response.CodeUnknownActor, "No actor matches the token subject")
			return
		}

		ctx := context.WithValue(r.Context(), ActorIDKey, claims.SubjectID)
		ctx = context.WithValue(ctx, ActorRoleKey, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) actorExists(ctx context.Context, id uint, role entity.Role) (bool, error) {
	switch role {
	case entity.RolePatient:
		patient, err := m.patientRepo.FindByID(ctx, id)
		return patient != nil, err
	case entity.RoleDoctor:
		doctor, err := m.doctorRepo.FindByID(ctx, id)
		return doctor != nil, err
	}
	return false, nil
}

// GetActorIDFromContext extracts the authenticated actor id from context
func GetActorIDFromContext(ctx context.Context) (uint, bool) {
	actorID, ok := ctx.Value(ActorIDKey).(uint)
	return actorID, ok
}

// GetActorRoleFromContext extracts the authenticated actor role from context
func GetActorRoleFromContext(ctx context.Context) (entity.Role, bool) {
	role, ok := ctx.Value(ActorRoleKey).(entity.Role)
	return role, ok
}
