package usecase

import (
	"context"
	"errors"
	"strings"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/domain/repository"
	"medical-appointments-api/internal/service"
	"medical-appointments-api/pkg/jwt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
}

type authUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	doctorRepo   repository.DoctorRepository
	jwtService   *jwt.Service
	auditService service.AuditService
}

func NewAuthUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	jwtService *jwt.Service,
	auditService service.AuditService,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		jwtService:   jwtService,
		auditService: auditService,
	}
}

// Login exchanges an email + password for a bearer token. The email is
// looked up in the patients table first, then doctors, mirroring the
// fact that the two actor kinds share one login endpoint.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	subjectID, role, digest, err := u.findSubject(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if subjectID == 0 {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := u.jwtService.Generate(subjectID, role)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, subjectID, role, entity.AuditActionLogin, entity.JSON{
		"email": req.Username,
	})

	return &dto.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

func (u *authUsecase) findSubject(ctx context.Context, email string) (uint, entity.Role, string, error) {
	patient, err := u.patientRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find patient by email: %+v", err)
		return 0, "", "", err
	}
	if patient != nil {
		return patient.ID, entity.RolePatient, patient.Password, nil
	}

	doctor, err := u.doctorRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find doctor by email: %+v", err)
		return 0, "", "", err
	}
	if doctor != nil {
		return doctor.ID, entity.RoleDoctor, doctor.Password, nil
	}

	return 0, "", "", nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
