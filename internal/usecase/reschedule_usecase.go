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
	ErrRescheduleNotFound = errors.New("reschedule request not found")
	ErrPastDateTime       = errors.New("proposed slot is in the past")
)

type RescheduleUsecase interface {
	Propose(ctx context.Context, appointmentID uint, req *dto.ProposeRescheduleRequest) (*dto.RescheduleResponse, error)
	Accept(ctx context.Context, appointmentID uint) (*dto.AppointmentResponse, error)
	Reject(ctx context.Context, appointmentID uint) error
	Cancel(ctx context.Context, appointmentID uint) error
	ListForPatient(ctx context.Context) (*dto.RescheduleListResponse, error)
	ListForDoctor(ctx context.Context) (*dto.RescheduleListResponse, error)
}

type rescheduleUsecase struct {
	log             *logrus.Logger
	rescheduleRepo  repository.RescheduleRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService

	// now is swappable for tests of the past-slot check.
	now func() time.Time
}

func NewRescheduleUsecase(
	log *logrus.Logger,
	rescheduleRepo repository.RescheduleRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) RescheduleUsecase {
	return &rescheduleUsecase{
		log:             log,
		rescheduleRepo:  rescheduleRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		now:             time.Now,
	}
}

// Propose files (or re-files) the patient's request to move an
// appointment. The proposed slot must be in the future and free for
// both parties. Re-proposing overwrites only the proposed slot; the
// snapshot of the appointment's original slot stays as first recorded.
func (u *rescheduleUsecase) Propose(ctx context.Context, appointmentID uint, req *dto.ProposeRescheduleRequest) (*dto.RescheduleResponse, error) {
	appointment, err := u.findPatientAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	newDate, err := time.Parse(appointmentDateLayout, req.NewDate)
	if err != nil {
		return nil, err
	}

	if slotInPast(newDate, req.NewTime, u.now()) {
		return nil, ErrPastDateTime
	}

	occupied, err := u.appointmentRepo.FindBySlot(ctx, newDate, req.NewTime, appointment.DoctorID, appointment.PatientID, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if len(occupied) > 0 {
		return nil, ErrSlotOccupied
	}

	existing, err := u.rescheduleRepo.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find reschedule for appointment %d: %+v", appointmentID, err)
		return nil, err
	}

	var reschedule *entity.Reschedule
	if existing != nil {
		if err := u.rescheduleRepo.UpdateProposal(ctx, appointmentID, newDate, req.NewTime); err != nil {
			u.log.Warnf("Failed to update reschedule for appointment %d: %+v", appointmentID, err)
			return nil, err
		}
		existing.NewDate = newDate
		existing.NewTime = req.NewTime
		reschedule = existing
	} else {
		reschedule = &entity.Reschedule{
			AppointmentID: appointmentID,
			OldDate:       appointment.Date,
			OldTime:       appointment.Time,
			NewDate:       newDate,
			NewTime:       req.NewTime,
		}
		if err := u.rescheduleRepo.Create(ctx, reschedule); err != nil {
			u.log.Warnf("Failed to create reschedule for appointment %d: %+v", appointmentID, err)
			return nil, err
		}
	}

	actorID, _ := middleware.GetActorIDFromContext(ctx)
	u.auditService.Record(ctx, actorID, entity.RolePatient, entity.AuditActionReschedulePropose, entity.JSON{
		"appointment_id": appointmentID,
		"new_date":       req.NewDate,
		"new_time":       req.NewTime,
	})

	return converter.RescheduleToResponse(reschedule), nil
}

// Accept applies the proposed slot to the appointment and removes the
// request. The conflict check runs again at accept time: another
// booking may have taken the slot since the proposal.
func (u *rescheduleUsecase) Accept(ctx context.Context, appointmentID uint) (*dto.AppointmentResponse, error) {
	appointment, err := u.findDoctorAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	reschedule, err := u.rescheduleRepo.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find reschedule for appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if reschedule == nil {
		return nil, ErrRescheduleNotFound
	}

	occupied, err := u.appointmentRepo.FindBySlot(ctx, reschedule.NewDate, reschedule.NewTime, appointment.DoctorID, appointment.PatientID, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to check slot availability: %+v", err)
		return nil, err
	}
	if len(occupied) > 0 {
		return nil, ErrSlotOccupied
	}

	if err := u.rescheduleRepo.Accept(ctx, appointmentID); err != nil {
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrSlotOccupied
		}
		u.log.Warnf("Failed to accept reschedule for appointment %d: %+v", appointmentID, err)
		return nil, err
	}

	actorID, _ := middleware.GetActorIDFromContext(ctx)
	u.auditService.Record(ctx, actorID, entity.RoleDoctor, entity.AuditActionRescheduleAccept, entity.JSON{
		"appointment_id": appointmentID,
	})

	updated, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to reload appointment %d: %+v", appointmentID, err)
		return nil, err
	}

	return converter.AppointmentToResponse(updated), nil
}

// Reject discards the request, leaving the appointment untouched.
func (u *rescheduleUsecase) Reject(ctx context.Context, appointmentID uint) error {
	if _, err := u.findDoctorAppointment(ctx, appointmentID); err != nil {
		return err
	}

	if err := u.deleteRequest(ctx, appointmentID); err != nil {
		return err
	}

	actorID, _ := middleware.GetActorIDFromContext(ctx)
	u.auditService.Record(ctx, actorID, entity.RoleDoctor, entity.AuditActionRescheduleReject, entity.JSON{
		"appointment_id": appointmentID,
	})

	return nil
}

// Cancel lets the patient withdraw their own request before the doctor
// answers it.
func (u *rescheduleUsecase) Cancel(ctx context.Context, appointmentID uint) error {
	if _, err := u.findPatientAppointment(ctx, appointmentID); err != nil {
		return err
	}

	if err := u.deleteRequest(ctx, appointmentID); err != nil {
		return err
	}

	actorID, _ := middleware.GetActorIDFromContext(ctx)
	u.auditService.Record(ctx, actorID, entity.RolePatient, entity.AuditActionRescheduleCancel, entity.JSON{
		"appointment_id": appointmentID,
	})

	return nil
}

func (u *rescheduleUsecase) ListForPatient(ctx context.Context) (*dto.RescheduleListResponse, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, actorID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for patient %d: %+v", actorID, err)
		return nil, err
	}

	return u.listForAppointments(ctx, appointments)
}

func (u *rescheduleUsecase) ListForDoctor(ctx context.Context) (*dto.RescheduleListResponse, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(ctx, actorID)
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %d: %+v", actorID, err)
		return nil, err
	}

	return u.listForAppointments(ctx, appointments)
}

func (u *rescheduleUsecase) listForAppointments(ctx context.Context, appointments []entity.Appointment) (*dto.RescheduleListResponse, error) {
	ids := make([]uint, len(appointments))
	for i := range appointments {
		ids[i] = appointments[i].ID
	}

	if len(ids) == 0 {
		return &dto.RescheduleListResponse{Reschedules: []dto.RescheduleResponse{}, Total: 0}, nil
	}

	reschedules, err := u.rescheduleRepo.FindByAppointmentIDs(ctx, ids)
	if err != nil {
		u.log.Warnf("Failed to list reschedules: %+v", err)
		return nil, err
	}

	return &dto.RescheduleListResponse{
		Reschedules: converter.ReschedulesToResponses(reschedules),
		Total:       len(reschedules),
	}, nil
}

func (u *rescheduleUsecase) deleteRequest(ctx context.Context, appointmentID uint) error {
	reschedule, err := u.rescheduleRepo.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find reschedule for appointment %d: %+v", appointmentID, err)
		return err
	}
	if reschedule == nil {
		return ErrRescheduleNotFound
	}

	if err := u.rescheduleRepo.Delete(ctx, appointmentID); err != nil {
		u.log.Warnf("Failed to delete reschedule for appointment %d: %+v", appointmentID, err)
		return err
	}

	return nil
}

func (u *rescheduleUsecase) findPatientAppointment(ctx context.Context, appointmentID uint) (*entity.Appointment, error) {
	return u.findPartyAppointment(ctx, appointmentID, entity.RolePatient)
}

func (u *rescheduleUsecase) findDoctorAppointment(ctx context.Context, appointmentID uint) (*entity.Appointment, error) {
	return u.findPartyAppointment(ctx, appointmentID, entity.RoleDoctor)
}

func (u *rescheduleUsecase) findPartyAppointment(ctx context.Context, appointmentID uint, role entity.Role) (*entity.Appointment, error) {
	actorID, ok := middleware.GetActorIDFromContext(ctx)
	if !ok {
		return nil, ErrActorMissing
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.InvolvesActor(actorID, role) {
		return nil, ErrNotAppointmentParty
	}

	return appointment, nil
}
