package usecase

import (
	"context"
	"errors"

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
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrNoDoctorsFound = errors.New("no doctors matched the search")
)

type DoctorUsecase interface {
	Register(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.DoctorResponse, error)
	Search(ctx context.Context, term string) (*dto.DoctorListResponse, error)
	Get(ctx context.Context, doctorID uint) (*dto.DoctorResponse, error)
	Update(ctx context.Context, doctorID uint, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, doctorID uint) error
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
}

type doctorUsecase struct {
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	doctorCache     service.DoctorSearchCache
	auditService    service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorCache service.DoctorSearchCache,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:             log,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		doctorCache:     doctorCache,
		auditService:    auditService,
	}
}

func (u *doctorUsecase) Register(ctx context.Context, req *dto.RegisterDoctorRequest) (*dto.DoctorResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	doctor := &entity.Doctor{
		FirstName:       capitalize(req.FirstName),
		LastName:        capitalize(req.LastName),
		Email:           req.Email,
		Phone:           req.Phone,
		Specialty:       capitalize(req.Specialty),
		City:            capitalize(req.City),
		Street:          req.Street,
		PostalCode:      req.PostalCode,
		PersonalPicture: req.PersonalPicture,
		Password:        string(hashedPassword),
	}

	if err := u.doctorRepo.Create(ctx, doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "phone") {
			return nil, ErrPhoneAlreadyExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.doctorCache.Invalidate(ctx)

	u.auditService.Record(ctx, doctor.ID, entity.RoleDoctor, entity.AuditActionDoctorRegister, entity.JSON{
		"email": doctor.Email,
	})

	return converter.DoctorToResponse(doctor), nil
}

// Search is public. The term is capitalized before matching so that
// "cardiology" finds doctors stored with "Cardiology", and results are
// served from the cache when a recent identical search exists.
func (u *doctorUsecase) Search(ctx context.Context, term string) (*dto.DoctorListResponse, error) {
	term = capitalize(term)

	if doctors, ok := u.doctorCache.Get(ctx, term); ok {
		if len(doctors) == 0 {
			return nil, ErrNoDoctorsFound
		}
		return &dto.DoctorListResponse{
			Doctors: converter.DoctorsToResponses(doctors),
			Total:   len(doctors),
		}, nil
	}

	doctors, err := u.doctorRepo.Search(ctx, term)
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, err
	}

	u.doctorCache.Set(ctx, term, doctors)

	if len(doctors) == 0 {
		return nil, ErrNoDoctorsFound
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

// Get is public: patients browse doctor profiles before booking.
func (u *doctorUsecase) Get(ctx context.Context, doctorID uint) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Update(ctx context.Context, doctorID uint, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}
	if doctorID != actorID {
		return nil, ErrNotProfileOwner
	}

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
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
	if req.Specialty != nil {
		fields["specialty"] = capitalize(*req.Specialty)
	}
	if req.City != nil {
		fields["city"] = capitalize(*req.City)
	}
	if req.Street != nil {
		fields["street"] = *req.Street
	}
	if req.PostalCode != nil {
		fields["postal_code"] = *req.PostalCode
	}
	if req.PersonalPicture != nil {
		fields["personal_picture"] = *req.PersonalPicture
	}
	if len(fields) == 0 {
		return converter.DoctorToResponse(doctor), nil
	}

	updated, err := u.doctorRepo.Update(ctx, doctorID, fields)
	if err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "phone") {
			return nil, ErrPhoneAlreadyExists
		}
		u.log.Warnf("Failed to update doctor %d: %+v", doctorID, err)
		return nil, err
	}

	u.doctorCache.Invalidate(ctx)

	u.auditService.Record(ctx, actorID, entity.RoleDoctor, entity.AuditActionDoctorUpdate, entity.JSON{
		"doctor_id": doctorID,
	})

	return converter.DoctorToResponse(updated), nil
}

func (u *doctorUsecase) Delete(ctx context.Context, doctorID uint) error {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return ErrActorMissing
	}
	if doctorID != actorID {
		return ErrNotProfileOwner
	}

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	if err := u.doctorRepo.Delete(ctx, doctorID); err != nil {
		u.log.Warnf("Failed to delete doctor %d: %+v", doctorID, err)
		return err
	}

	u.doctorCache.Invalidate(ctx)

	u.auditService.Record(ctx, actorID, entity.RoleDoctor, entity.AuditActionDoctorDelete, entity.JSON{
		"doctor_id": doctorID,
	})

	return nil
}

// ListPatients returns the distinct patients who hold an appointment
// with the authenticated doctor.
func (u *doctorUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, actorID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %d: %+v", actorID, err)
		return nil, err
	}

	seen := map[uint]bool{}
	ids := make([]uint, 0, len(appointments))
	for _, appointment := range appointments {
		if !seen[appointment.PatientID] {
			seen[appointment.PatientID] = true
			ids = append(ids, appointment.PatientID)
		}
	}

	if len(ids) == 0 {
		return &dto.PatientListResponse{Patients: []dto.PatientResponse{}, Total: 0}, nil
	}

	patients, err := u.patientRepo.FindByIDs(ctx, ids)
	if err != nil {
		u.log.Warnf("Failed to load patients for doctor %d: %+v", actorID, err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}
