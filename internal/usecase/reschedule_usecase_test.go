package usecase

import (
	"testing"
	"time"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRescheduleUsecase(now time.Time) (RescheduleUsecase, *MockRescheduleRepository, *MockAppointmentRepository) {
	rescheduleRepo := &MockRescheduleRepository{}
	appointmentRepo := &MockAppointmentRepository{}
	u := NewRescheduleUsecase(testLogger(), rescheduleRepo, appointmentRepo, noopAuditService{}).(*rescheduleUsecase)
	u.now = func() time.Time { return now }
	return u, rescheduleRepo, appointmentRepo
}

func fixedNow() time.Time {
	return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
}

func bookedAppointment() *entity.Appointment {
	return &entity.Appointment{
		ID:        10,
		PatientID: 1,
		DoctorID:  2,
		Date:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Time:      "10:30",
	}
}

func TestProposeReschedule_CreatesWithSnapshot(t *testing.T) {
	u, rescheduleRepo, appointmentRepo := setupRescheduleUsecase(fixedNow())
	ctx := actorContext(1, entity.RolePatient)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(bookedAppointment(), nil)
	appointmentRepo.On("FindBySlot", mock.Anything, mock.Anything, "14:00", uint(2), uint(1), uint(10)).
		Return([]entity.Appointment{}, nil)
	rescheduleRepo.On("FindByAppointmentID", mock.Anything, uint(10)).Return(nil, nil)
	rescheduleRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Reschedule")).Return(nil)

	reschedule, err := u.Propose(ctx, 10, &dto.ProposeRescheduleRequest{NewDate: "2026-09-20", NewTime: "14:00"})

	assert.NoError(t, err)
	assert.Equal(t, "2026-09-10", reschedule.OldDate)
	assert.Equal(t, "10:30", reschedule.OldTime)
	assert.Equal(t, "2026-09-20", reschedule.NewDate)
	assert.Equal(t, "14:00", reschedule.NewTime)
	rescheduleRepo.AssertExpectations(t)
}

func TestProposeReschedule_ReProposalKeepsSnapshot(t *testing.T) {
	u, rescheduleRepo, appointmentRepo := setupRescheduleUsecase(fixedNow())
	ctx := actorContext(1, entity.RolePatient)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(bookedAppointment(), nil)
	appointmentRepo.On("FindBySlot", mock.Anything, mock.Anything, "16:00", uint(2), uint(1), uint(10)).
		Return([]entity.Appointment{}, nil)
	rescheduleRepo.On("FindByAppointmentID", mock.Anything, uint(10)).Return(&entity.Reschedule{
		AppointmentID: 10,
		OldDate:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		OldTime:       "10:30",
		NewDate:       time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		NewTime:       "14:00",
	}, nil)
	rescheduleRepo.On("UpdateProposal", mock.Anything, uint(10), mock.Anything, "16:00").Return(nil)

	reschedule, err := u.Propose(ctx, 10, &dto.ProposeRescheduleRequest{NewDate: "2026-09-25", NewTime: "16:00"})

	assert.NoError(t, err)
	// Snapshot of the original slot survives the second proposal
	assert.Equal(t, "2026-09-10", reschedule.OldDate)
	assert.Equal(t, "10:30", reschedule.OldTime)
	assert.Equal(t, "2026-09-25", reschedule.NewDate)
	assert.Equal(t, "16:00", reschedule.NewTime)
	rescheduleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProposeReschedule_PastSlot(t *testing.T) {
	u, rescheduleRepo, appointmentRepo := setupRescheduleUsecase(fixedNow())
	ctx := actorContext(1, entity.RolePatient)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(bookedAppointment(), nil)

	_, err := u.Propose(ctx, 10, &dto.ProposeRescheduleRequest{NewDate: "2026-08-20", NewTime: "14:00"})

	assert.ErrorIs(t, err, ErrPastDateTime)
	rescheduleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProposeReschedule_SameDayEarlierTimeIsPast(t *testing.T) {
	u, _, appointmentRepo := setupRescheduleUsecase(fixedNow())
	ctx := actorContext(1, entity.RolePatient)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(bookedAppointment(), nil)

	// fixedNow is 12:00 UTC on 2026-09-01
	_, err := u.Propose(ctx, 10, &dto.ProposeRescheduleRequest{NewDate: "2026-09-01", NewTime: "11:00"})

	assert.ErrorIs(t, err, ErrPastDateTime)
}

func TestProposeReschedule_TargetSlotOccupied(t *testing.T) {
	u, rescheduleRepo, appointmentRepo := setupRescheduleUsecase(fixedNow())
	ctx := actorContext(1, entity.RolePatient)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(bookedAppointment(), nil)
	appointmentRepo.On("FindBySlot", mock.Anything, mock.Anything, "14:00", uint(2), uint(1), uint(10)).
		Return([]entity.Appointment{{ID: 11, DoctorID: 2, PatientID: 5}}, nil)

	_, err := u.Propose(ctx, 10, &dto.ProposeRescheduleRequest{NewDate: "2026-09-20", NewTime: "14:00"})

	assert.ErrorIs(t, err, ErrSlotOccupied)
	rescheduleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProposeReschedule_DoctorForbidden(t *testing.T) {
	u, _, appointmentRepo := setupRescheduleUsecase(fixedNow())
	ctx := actorContext(2, entity.RoleDoctor)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(bookedAppointment(), nil)

	_, err := u.Propose(ctx, 10, &dto.ProposeRescheduleRequest{NewDate: "2026-09-20", NewTime: "14:00"})

	assert.ErrorIs(t, err, ErrNotAppointmentParty)
}

func TestAcceptReschedule_AppliesProposedSlot(t *testing.T) {
	u, rescheduleRepo, appointmentRepo := setupRescheduleUsecase(fixedNow())
	ctx := actorContext(2, entity.RoleDoctor)

	newDate := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(bookedAppointment(), nil).Once()
	rescheduleRepo.On("FindByAppointmentID", mock.Anything, uint(10)).Return(&entity.Reschedule{
		AppointmentID: 10,
		OldDate:       time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		OldTime:       "10:30",
		NewDate:       newDate,
		NewTime:       "14:00",
	}, nil)
	appointmentRepo.On("FindBySlot", mock.Anything, newDate, "14:00", uint(2), uint(1), uint(10)).
		Return([]entity.Appointment{}, nil)
	rescheduleRepo.On("Accept", mock.Anything, uint(10)).Return(nil)
	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(&entity.Appointment{
		ID:        10,
		PatientID: 1,
		DoctorID:  2,
		Date:      newDate,
		Time:      "14:00",
	}, nil).Once()

	appointment, err := u.Accept(ctx, 10)

	assert.NoError(t, err)
	assert.Equal(t, "2026-09-20", appointment.Date)
	assert.Equal(t, "14:00", appointment.Time)
	rescheduleRepo.AssertExpectations(t)
}

func TestAcceptReschedule_SlotTakenSinceProposal(t *testing.T) {
	u, rescheduleRepo, appointmentRepo := setupRescheduleUsecase(fixedNow())
	ctx := actorContext(2, entity.RoleDoctor)

	newDate := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(bookedAppointment(), nil)
	rescheduleRepo.On("FindByAppointmentID", mock.Anything, uint(10)).Return(&entity.Reschedule{
		AppointmentID: 10,
		NewDate:       newDate,
		NewTime:       "14:00",
	}, nil)
	appointmentRepo.On("FindBySlot", mock.Anything, newDate, "14:00", uint(2), uint(1), uint(10)).
		Return([]entity.Appointment{{ID: 12, DoctorID: 2, PatientID: 7}}, nil)

	_, err := u.Accept(ctx, 10)

	assert.ErrorIs(t, err, ErrSlotOccupied)
	rescheduleRepo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
}

func TestAcceptReschedule_NoRequest(t *testing.T) {
	u, rescheduleRepo, appointmentRepo := setupRescheduleUsecase(fixedNow())
	ctx := actorContext(2, entity.RoleDoctor)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(bookedAppointment(), nil)
	rescheduleRepo.On("FindByAppointmentID", mock.Anything, uint(10)).Return(nil, nil)

	_, err := u.Accept(ctx, 10)

	assert.ErrorIs(t, err, ErrRescheduleNotFound)
}

func TestRejectReschedule_LeavesAppointmentAlone(t *testing.T) {
	u, rescheduleRepo, appointmentRepo := setupRescheduleUsecase(fixedNow())
	ctx := actorContext(2, entity.RoleDoctor)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(bookedAppointment(), nil)
	rescheduleRepo.On("FindByAppointmentID", mock.Anything, uint(10)).Return(&entity.Reschedule{AppointmentID: 10}, nil)
	rescheduleRepo.On("Delete", mock.Anything, uint(10)).Return(nil)

	err := u.Reject(ctx, 10)

	assert.NoError(t, err)
	rescheduleRepo.AssertNotCalled(t, "Accept", mock.Anything, mock.Anything)
}

func TestCancelReschedule_PatientWithdraws(t *testing.T) {
	u, rescheduleRepo, appointmentRepo := setupRescheduleUsecase(fixedNow())
	ctx := actorContext(1, entity.RolePatient)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(bookedAppointment(), nil)
	rescheduleRepo.On("FindByAppointmentID", mock.Anything, uint(10)).Return(&entity.Reschedule{AppointmentID: 10}, nil)
	rescheduleRepo.On("Delete", mock.Anything, uint(10)).Return(nil)

	err := u.Cancel(ctx, 10)

	assert.NoError(t, err)
	rescheduleRepo.AssertExpectations(t)
}

func TestCancelReschedule_NoRequest(t *testing.T) {
	u, rescheduleRepo, appointmentRepo := setupRescheduleUsecase(fixedNow())
	ctx := actorContext(1, entity.RolePatient)

	appointmentRepo.On("FindByID", mock.Anything, uint(10)).Return(bookedAppointment(), nil)
	rescheduleRepo.On("FindByAppointmentID", mock.Anything, uint(10)).Return(nil, nil)

	err := u.Cancel(ctx, 10)

	assert.ErrorIs(t, err, ErrRescheduleNotFound)
}
