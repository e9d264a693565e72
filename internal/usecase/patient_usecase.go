package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"medical-appointments-api/internal/converter"
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/delivery/http/middleware"
	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/domain/repository"
	"medical-appointments-api/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPhoneAlreadyExists = errors.New("phone already exists")
	ErrNotProfileOwner    = errors.New("profile belongs to another actor")
	ErrActorMissing       = errors.New("actor not found in context")
)

type PatientUsecase interface {
	Register(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	Get(ctx context.Context, patientID uint) (*dto.PatientResponse, error)
	Update(ctx context.Context, patientID uint, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, patientID uint) error
}

type patientUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

// Register creates a patient account. Public: no actor in context yet.
func (u *patientUsecase) Register(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		FirstName: capitalize(req.FirstName),
		LastName:  capitalize(req.LastName),
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  string(hashedPassword),
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "phone") {
			return nil, ErrPhoneAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, patient.ID, entity.RolePatient, entity.AuditActionPatientRegister, entity.JSON{
		"email": patient.Email,
	})

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Get(ctx context.Context, patientID uint) (*dto.PatientResponse, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if patient.ID != actorID {
		return nil, ErrNotProfileOwner
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) Update(ctx context.Context, patientID uint, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}
	if patientID != actorID {
		return nil, ErrNotProfileOwner
	}

	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	fields := map[string]interface{}{}
	if req.FirstName != nil {
		fields["first_name"] = capitalize(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = capitalize(*req.LastName)
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if len(fields) == 0 {
		return converter.PatientToResponse(patient), nil
	}

	updated, err := u.patientRepo.Update(ctx, patientID, fields)
	if err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "phone") {
			return nil, ErrPhoneAlreadyExists
		}
		u.log.Warnf("Failed to update patient %d: %+v", patientID, err)
		return nil, err
	}

	u.auditService.Record(ctx, actorID, entity.RolePatient, entity.AuditActionPatientUpdate, entity.JSON{
		"patient_id": patientID,
	})

	return converter.PatientToResponse(updated), nil
}

func (u *patientUsecase) Delete(ctx context.Context, patientID uint) error {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return ErrActorMissing
	}
	if patientID != actorID {
		return ErrNotProfileOwner
	}

	patient, err := u.patientRepo.FindByID(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %d: %+v", patientID, err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	// Owned appointments and their reschedules/feedback go with the row
	// through the FK cascade.
	if err := u.patientRepo.Delete(ctx, patientID); err != nil {
		u.log.Warnf("Failed to delete patient %d: %+v", patientID, err)
		return err
	}

	u.auditService.Record(ctx, actorID, entity.RolePatient, entity.AuditActionPatientDelete, entity.JSON{
		"patient_id": patientID,
	})

	return nil
}

// capitalize uppercases the first rune, as the registration forms expect
// names and cities stored capitalized.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
