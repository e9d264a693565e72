package usecase

import (
	"context"
	"errors"
	"time"

	"medical-appointments-api/internal/converter"
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/delivery/http/middleware"
	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/domain/repository"
	"medical-appointments-api/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotAppointmentParty = errors.New("appointment belongs to another actor")
	ErrSlotOccupied        = errors.New("slot already occupied")
	ErrInvalidTransition   = errors.New("appointment cannot be done before it is confirmed")
)

const (
	appointmentDateLayout = "2006-01-02"
	appointmentTimeLayout = "15:04"
)

type AppointmentUsecase interface {
	Create(ctx context.Context, doctorID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListForPatient(ctx context.Context) (*dto.AppointmentListResponse, error)
	ListForDoctor(ctx context.Context) (*dto.AppointmentListResponse, error)
	UpdateCase(ctx context.Context, appointmentID uint, req *dto.UpdateAppointmentCaseRequest) (*dto.AppointmentResponse, error)
	SetStatus(ctx context.Context, appointmentID uint, req *dto.SetAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, appointmentID uint) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
	}
}

// Create books a slot with a doctor for the authenticated patient. The
// slot must be free for both parties; the unique indexes on
// (doctor_id, date, time) and (patient_id, date, time) back up the
// check under concurrent bookings.
func (u *appointmentUsecase) Create(ctx context.Context, doctorID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	date, err := time.Parse(appointmentDateLayout, req.Date)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	occupied, err := u.appointmentRepo.FindBySlot(ctx, date, req.Time, doctorID, actorID, 0)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if len(occupied) > 0 {
		return nil, ErrSlotOccupied
	}

	appointment := &entity.Appointment{
		PatientID: actorID,
		DoctorID:  doctorID,
		Date:      date,
		Time:      req.Time,
		Case:      req.Case,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrSlotOccupied
		}
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, actorID, entity.RolePatient, entity.AuditActionAppointmentCreate, entity.JSON{
		"appointment_id": appointment.ID,
		"doctor_id":      doctorID,
		"date":           req.Date,
		"time":           req.Time,
	})

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListForPatient(ctx context.Context) (*dto.AppointmentListResponse, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, actorID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %d: %+v", actorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) ListForDoctor(ctx context.Context) (*dto.AppointmentListResponse, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, actorID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %d: %+v", actorID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// UpdateCase lets either party rewrite the case description.
func (u *appointmentUsecase) UpdateCase(ctx context.Context, appointmentID uint, req *dto.UpdateAppointmentCaseRequest) (*dto.AppointmentResponse, error) {
	appointment, role, err := u.findOwnedAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := u.appointmentRepo.UpdateCase(ctx, appointmentID, req.Case); err != nil {
		u.log.Warnf("Failed to update case for appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	appointment.Case = req.Case

	actorID, _ := middleware.GetActorIDFromContext(ctx)
	u.auditService.Record(ctx, actorID, role, entity.AuditActionAppointmentUpdate, entity.JSON{
		"appointment_id": appointmentID,
	})

	return converter.AppointmentToResponse(appointment), nil
}

// SetStatus applies the doctor's confirmed/done decision. Marking an
// appointment done while leaving it unconfirmed is rejected; repeating
// an already-applied pair is a no-op.
func (u *appointmentUsecase) SetStatus(ctx context.Context, appointmentID uint, req *dto.SetAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	appointment, role, err := u.findOwnedAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	confirmed := *req.Confirmed
	done := *req.Done
	if done && !confirmed {
		return nil, ErrInvalidTransition
	}

	if err := u.appointmentRepo.UpdateStatus(ctx, appointmentID, confirmed, done); err != nil {
		u.log.Warnf("Failed to update status for appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	appointment.Confirmed = confirmed
	appointment.Done = done

	actorID, _ := middleware.GetActorIDFromContext(ctx)
	u.auditService.Record(ctx, actorID, role, entity.AuditActionAppointmentStatus, entity.JSON{
		"appointment_id": appointmentID,
		"confirmed":      confirmed,
		"done":           done,
	})

	return converter.AppointmentToResponse(appointment), nil
}

// Delete cancels an appointment. Either party may cancel; the reschedule
// request and feedback rows go with it through the FK cascade.
func (u *appointmentUsecase) Delete(ctx context.Context, appointmentID uint) error {
	appointment, role, err := u.findOwnedAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}

	if err := u.appointmentRepo.Delete(ctx, appointmentID); err != nil {
		u.log.Warnf("Failed to delete appointment %d: %+v", appointmentID, err)
		return err
	}

	actorID, _ := middleware.GetActorIDFromContext(ctx)
	u.auditService.Record(ctx, actorID, role, entity.AuditActionAppointmentDelete, entity.JSON{
		"appointment_id": appointment.ID,
	})

	return nil
}

// findOwnedAppointment loads the appointment and verifies the actor in
// context is a party to it.
func (u *appointmentUsecase) findOwnedAppointment(ctx context.Context, appointmentID uint) (*entity.Appointment, entity.Role, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, "", ErrActorMissing
	}
	role, ok := middleware.GetActorRoleFromContext(ctx)
	if !ok {
		return nil, "", ErrActorMissing
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, "", err
	}
	if appointment == nil {
		return nil, "", ErrAppointmentNotFound
	}
	if !appointment.InvolvesActor(actorID, role) {
		return nil, "", ErrNotAppointmentParty
	}

	return appointment, role, nil
}

// slotInPast reports whether a (date, clock) pair falls before now.
// Clock strings are already validated as 15:04 by the DTO layer.
func slotInPast(date time.Time, clock string, now time.Time) bool {
	parsed, err := time.Parse(appointmentTimeLayout, clock)
	if err != nil {
		return false
	}
	slot := time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	return slot.Before(now.UTC())
}
