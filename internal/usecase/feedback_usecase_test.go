package usecase

import (
	"testing"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupFeedbackUsecase() (FeedbackUsecase, *MockFeedbackRepository, *MockAppointmentRepository) {
	feedbackRepo := &MockFeedbackRepository{}
	appointmentRepo := &MockAppointmentRepository{}
	u := NewFeedbackUsecase(testLogger(), feedbackRepo, appointmentRepo, noopAuditService{})
	return u, feedbackRepo, appointmentRepo
}

func ratedAppointment() *entity.Appointment {
	return &entity.Appointment{ID: 10, PatientID: 1, DoctorID: 2, Confirmed: true, Done: true}
}

func intPtr(v int) *int {
	return &v
}

func TestCreateFeedback_Success(t *testing.T) {
	u, feedbackRepo, appointmentRepo := setupFeedbackUsecase()
	ctx := actorContext(1, entity.RolePatient)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(ratedAppointment(), nil)
	feedbackRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Feedback")).Return(nil)

	feedback, err := u.Create(ctx, 10, &dto.CreateFeedbackRequest{Rating: intPtr(4), Comment: "Great care"})

	assert.NoError(t, err)
	assert.Equal(t, uint(10), feedback.AppointmentID)
	assert.Equal(t, 4, feedback.Rating)
	assert.Equal(t, "Great care", feedback.Comment)
}

func TestCreateFeedback_ZeroRatingAllowed(t *testing.T) {
	u, feedbackRepo, appointmentRepo := setupFeedbackUsecase()
	ctx := actorContext(1, entity.RolePatient)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(ratedAppointment(), nil)
	feedbackRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Feedback")).Return(nil)

	feedback, err := u.Create(ctx, 10, &dto.CreateFeedbackRequest{Rating: intPtr(0)})

	assert.NoError(t, err)
	assert.Equal(t, 0, feedback.Rating)
}

func TestCreateFeedback_Duplicate(t *testing.T) {
	u, feedbackRepo, appointmentRepo := setupFeedbackUsecase()
	ctx := actorContext(1, entity.RolePatient)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(ratedAppointment(), nil)
	feedbackRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Feedback")).
		Return(&pgconn.PgError{Code: "23505", ConstraintName: "feedbacks_pkey"})

	_, err := u.Create(ctx, 10, &dto.CreateFeedbackRequest{Rating: intPtr(3)})

	assert.ErrorIs(t, err, ErrFeedbackExists)
}

func TestCreateFeedback_NotOwnAppointment(t *testing.T) {
	u, feedbackRepo, appointmentRepo := setupFeedbackUsecase()
	ctx := actorContext(5, entity.RolePatient)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(ratedAppointment(), nil)

	_, err := u.Create(ctx, 10, &dto.CreateFeedbackRequest{Rating: intPtr(3)})

	assert.ErrorIs(t, err, ErrNotAppointmentParty)
	feedbackRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateFeedback_DoctorForbidden(t *testing.T) {
	u, _, appointmentRepo := setupFeedbackUsecase()
	ctx := actorContext(2, entity.RoleDoctor)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(ratedAppointment(), nil)

	_, err := u.Create(ctx, 10, &dto.CreateFeedbackRequest{Rating: intPtr(3)})

	assert.ErrorIs(t, err, ErrNotAppointmentParty)
}

func TestDeleteFeedback_NotFound(t *testing.T) {
	u, feedbackRepo, appointmentRepo := setupFeedbackUsecase()
	ctx := actorContext(1, entity.RolePatient)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(ratedAppointment(), nil)
	feedbackRepo.On("FindByAppointmentID", mock.Anything, uint(10)).Return(nil, nil)

	err := u.Delete(ctx, 10)

	assert.ErrorIs(t, err, ErrFeedbackNotFound)
}

func TestListForDoctor_CollectsAcrossAppointments(t *testing.T) {
	u, feedbackRepo, appointmentRepo := setupFeedbackUsecase()
	ctx := actorContext(2, entity.RoleDoctor)

	appointmentRepo.On("FindByDoctorID", mock.Anything, uint(2)).Return([]entity.Appointment{
		{ID: 10, PatientID: 1, DoctorID: 2},
		{ID: 11, PatientID: 3, DoctorID: 2},
	}, nil)
	feedbackRepo.On("FindByAppointmentIDs", mock.Anything, []uint{10, 11}).Return([]entity.Feedback{
		{AppointmentID: 10, Rating: 4},
	}, nil)

	list, err := u.ListForDoctor(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}
