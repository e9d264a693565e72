package usecase

import (
	"context"
	"testing"
	"time"

	"medical-appointments-api/config"
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/pkg/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthUsecase(t *testing.T) (AuthUsecase, *MockPatientRepository, *MockDoctorRepository, *jwt.Service) {
	t.Helper()

	jwtService, err := jwt.NewService(config.JWTConfig{
		Secret:       "test-secret",
		Algorithm:    "HS256",
		AccessExpiry: time.Hour,
	})
	assert.NoError(t, err)

	patientRepo := &MockPatientRepository{}
	doctorRepo := &MockDoctorRepository{}
	u := NewAuthUsecase(testLogger(), patientRepo, doctorRepo, jwtService, noopAuditService{})
	return u, patientRepo, doctorRepo, jwtService
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(digest)
}

func TestLogin_PatientSuccess(t *testing.T) {
	u, patientRepo, _, jwtService := setupAuthUsecase(t)

	patientRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(&entity.Patient{
		ID:       1,
		Email:    "ana@example.com",
		Password: hashPassword(t, "secret123"),
	}, nil)

	token, err := u.Login(context.Background(), &dto.LoginRequest{
		Username: "ana@example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)

	claims, err := jwtService.Validate(token.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), claims.SubjectID)
	assert.Equal(t, entity.RolePatient, claims.Role)
}

func TestLogin_FallsBackToDoctors(t *testing.T) {
	u, patientRepo, doctorRepo, jwtService := setupAuthUsecase(t)

	patientRepo.On("FindByEmail", mock.Anything, "omar@example.com").Return(nil, nil)
	doctorRepo.On("FindByEmail", mock.Anything, "omar@example.com").Return(&entity.Doctor{
		ID:       4,
		Email:    "omar@example.com",
		Password: hashPassword(t, "secret123"),
	}, nil)

	token, err := u.Login(context.Background(), &dto.LoginRequest{
		Username: "omar@example.com",
		Password: "secret123",
	})

	assert.NoError(t, err)

	claims, err := jwtService.Validate(token.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, uint(4), claims.SubjectID)
	assert.Equal(t, entity.RoleDoctor, claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	u, patientRepo, _, _ := setupAuthUsecase(t)

	patientRepo.On("FindByEmail", mock.Anything, "ana@example.com").Return(&entity.Patient{
		ID:       1,
		Email:    "ana@example.com",
		Password: hashPassword(t, "secret123"),
	}, nil)

	_, err := u.Login(context.Background(), &dto.LoginRequest{
		Username: "ana@example.com",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	u, patientRepo, doctorRepo, _ := setupAuthUsecase(t)

	patientRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
	doctorRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	_, err := u.Login(context.Background(), &dto.LoginRequest{
		Username: "nobody@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
