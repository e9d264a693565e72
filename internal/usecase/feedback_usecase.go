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
)

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrFeedbackExists   = errors.New("feedback already submitted for this appointment")
)

type FeedbackUsecase interface {
	Create(ctx context.Context, appointmentID uint, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
	Delete(ctx context.Context, appointmentID uint) error
	ListForPatient(ctx context.Context) (*dto.FeedbackListResponse, error)
	ListForDoctor(ctx context.Context) (*dto.FeedbackListResponse, error)
}

type feedbackUsecase struct {
	log             *logrus.Logger
	feedbackRepo    repository.FeedbackRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
}

func NewFeedbackUsecase(
	log *logrus.Logger,
	feedbackRepo repository.FeedbackRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) FeedbackUsecase {
	return &feedbackUsecase{
		log:             log,
		feedbackRepo:    feedbackRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// Create records the patient's rating of their own appointment. One
// feedback per appointment: the primary key makes a second submission
// fail.
func (u *feedbackUsecase) Create(ctx context.Context, appointmentID uint, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	if _, err := u.findPartyAppointment(ctx, appointmentID, entity.RolePatient); err != nil {
		return nil, err
	}

	feedback := &entity.Feedback{
		AppointmentID: appointmentID,
		Rating:        *req.Rating,
		Comment:       req.Comment,
	}

	if err := u.feedbackRepo.Create(ctx, feedback); err != nil {
		if isDuplicateKeyError(err, "feedbacks") {
			return nil, ErrFeedbackExists
		}
		u.log.Warnf("Failed to create feedback for appointment %d: %+v", appointmentID, err)
		return nil, err
	}

	actorID, _ := middleware.GetActorIDFromContext(ctx)
	u.auditService.Record(ctx, actorID, entity.RolePatient, entity.AuditActionFeedbackCreate, entity.JSON{
		"appointment_id": appointmentID,
		"rating":         feedback.Rating,
	})

	return converter.FeedbackToResponse(feedback), nil
}

// Delete removes the patient's feedback from their own appointment.
func (u *feedbackUsecase) Delete(ctx context.Context, appointmentID uint) error {
	if _, err := u.findPartyAppointment(ctx, appointmentID, entity.RolePatient); err != nil {
		return err
	}

	feedback, err := u.feedbackRepo.FindByAppointmentID(ctx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find feedback for appointment %d: %+v", appointmentID, err)
		return err
	}
	if feedback == nil {
		return ErrFeedbackNotFound
	}

	if err := u.feedbackRepo.Delete(ctx, appointmentID); err != nil {
		u.log.Warnf("Failed to delete feedback for appointment %d: %+v", appointmentID, err)
		return err
	}

	actorID, _ := middleware.GetActorIDFromContext(ctx)
	u.auditService.Record(ctx, actorID, entity.RolePatient, entity.AuditActionFeedbackDelete, entity.JSON{
		"appointment_id": appointmentID,
	})

	return nil
}

func (u *feedbackUsecase) ListForPatient(ctx context.Context) (*dto.FeedbackListResponse, error) {
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

func (u *feedbackUsecase) ListForDoctor(ctx context.Context) (*dto.FeedbackListResponse, error) {
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

func (u *feedbackUsecase) listForAppointments(ctx context.Context, appointments []entity.Appointment) (*dto.FeedbackListResponse, error) {
	ids := make([]uint, len(appointments))
	for i := range appointments {
		ids[i] = appointments[i].ID
	}

	if len(ids) == 0 {
		return &dto.FeedbackListResponse{Feedbacks: []dto.FeedbackResponse{}, Total: 0}, nil
	}

	feedbacks, err := u.feedbackRepo.FindByAppointmentIDs(ctx, ids)
	if err != nil {
		u.log.Warnf("Failed to list feedbacks: %+v", err)
		return nil, err
	}

	return &dto.FeedbackListResponse{
		Feedbacks: converter.FeedbacksToResponses(feedbacks),
		Total:     len(feedbacks),
	}, nil
}

func (u *feedbackUsecase) findPartyAppointment(ctx context.Context, appointmentID uint, role entity.Role) (*entity.Appointment, error) {
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
