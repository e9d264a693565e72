package usecase

import (
	"context"
	"io"
	"time"

	"medical-appointments-api/internal/delivery/http/middleware"
	"medical-appointments-api/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// MockPatientRepository is a mock implementation of repository.PatientRepository
type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, id uint) (*entity.Patient, error) {
	args := m.Called(ctx, id)
	if patient, ok := args.Get(0).(*entity.Patient); ok {
		return patient, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPatientRepository) FindByEmail(ctx context.Context, email string) (*entity.Patient, error) {
	args := m.Called(ctx, email)
	if patient, ok := args.Get(0).(*entity.Patient); ok {
		return patient, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPatientRepository) FindByIDs(ctx context.Context, ids []uint) ([]entity.Patient, error) {
	args := m.Called(ctx, ids)
	if patients, ok := args.Get(0).([]entity.Patient); ok {
		return patients, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPatientRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*entity.Patient, error) {
	args := m.Called(ctx, id, fields)
	if patient, ok := args.Get(0).(*entity.Patient); ok {
		return patient, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPatientRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDoctorRepository is a mock implementation of repository.DoctorRepository
type MockDoctorRepository struct {
	mock.Mock
}

func (m *MockDoctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepository) FindByID(ctx context.Context, id uint) (*entity.Doctor, error) {
	args := m.Called(ctx, id)
	if doctor, ok := args.Get(0).(*entity.Doctor); ok {
		return doctor, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepository) FindByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	args := m.Called(ctx, email)
	if doctor, ok := args.Get(0).(*entity.Doctor); ok {
		return doctor, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepository) Search(ctx context.Context, term string) ([]entity.Doctor, error) {
	args := m.Called(ctx, term)
	if doctors, ok := args.Get(0).([]entity.Doctor); ok {
		return doctors, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*entity.Doctor, error) {
	args := m.Called(ctx, id, fields)
	if doctor, ok := args.Get(0).(*entity.Doctor); ok {
		return doctor, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAppointmentRepository is a mock implementation of repository.AppointmentRepository
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id uint) (*entity.Appointment, error) {
	args := m.Called(ctx, id)
	if appointment, ok := args.Get(0).(*entity.Appointment); ok {
		return appointment, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) FindByPatientID(ctx context.Context, patientID uint) ([]entity.Appointment, error) {
	args := m.Called(ctx, patientID)
	if appointments, ok := args.Get(0).([]entity.Appointment); ok {
		return appointments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) FindByDoctorID(ctx context.Context, doctorID uint) ([]entity.Appointment, error) {
	args := m.Called(ctx, doctorID)
	if appointments, ok := args.Get(0).([]entity.Appointment); ok {
		return appointments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) FindBySlot(ctx context.Context, date time.Time, clock string, doctorID, patientID, excludeID uint) ([]entity.Appointment, error) {
	args := m.Called(ctx, date, clock, doctorID, patientID, excludeID)
	if appointments, ok := args.Get(0).([]entity.Appointment); ok {
		return appointments, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepository) UpdateCase(ctx context.Context, id uint, caseText string) error {
	args := m.Called(ctx, id, caseText)
	return args.Error(0)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id uint, confirmed, done bool) error {
	args := m.Called(ctx, id, confirmed, done)
	return args.Error(0)
}

func (m *MockAppointmentRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockRescheduleRepository is a mock implementation of repository.RescheduleRepository
type MockRescheduleRepository struct {
	mock.Mock
}

func (m *MockRescheduleRepository) Create(ctx context.Context, reschedule *entity.Reschedule) error {
	args := m.Called(ctx, reschedule)
	return args.Error(0)
}

func (m *MockRescheduleRepository) FindByAppointmentID(ctx context.Context, appointmentID uint) (*entity.Reschedule, error) {
	args := m.Called(ctx, appointmentID)
	if reschedule, ok := args.Get(0).(*entity.Reschedule); ok {
		return reschedule, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRescheduleRepository) FindByAppointmentIDs(ctx context.Context, appointmentIDs []uint) ([]entity.Reschedule, error) {
	args := m.Called(ctx, appointmentIDs)
	if reschedules, ok := args.Get(0).([]entity.Reschedule); ok {
		return reschedules, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRescheduleRepository) UpdateProposal(ctx context.Context, appointmentID uint, newDate time.Time, newTime string) error {
	args := m.Called(ctx, appointmentID, newDate, newTime)
	return args.Error(0)
}

func (m *MockRescheduleRepository) Accept(ctx context.Context, appointmentID uint) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

func (m *MockRescheduleRepository) Delete(ctx context.Context, appointmentID uint) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

// MockFeedbackRepository is a mock implementation of repository.FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}

func (m *MockFeedbackRepository) FindByAppointmentID(ctx context.Context, appointmentID uint) (*entity.Feedback, error) {
	args := m.Called(ctx, appointmentID)
	if feedback, ok := args.Get(0).(*entity.Feedback); ok {
		return feedback, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFeedbackRepository) FindByAppointmentIDs(ctx context.Context, appointmentIDs []uint) ([]entity.Feedback, error) {
	args := m.Called(ctx, appointmentIDs)
	if feedbacks, ok := args.Get(0).([]entity.Feedback); ok {
		return feedbacks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockFeedbackRepository) Delete(ctx context.Context, appointmentID uint) error {
	args := m.Called(ctx, appointmentID)
	return args.Error(0)
}

// noopAuditService satisfies service.AuditService without touching storage
type noopAuditService struct{}

func (noopAuditService) Record(ctx context.Context, actorID uint, role entity.Role, action string, metadata entity.JSON) {
}

// testLogger returns a silent logger for usecase construction
func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// actorContext builds a context carrying an authenticated actor, the way
// the auth middleware does for real requests
func actorContext(actorID uint, role entity.Role) context.Context {
	ctx := context.WithValue(context.Background(), middleware.ActorIDKey, actorID)
	return context.WithValue(ctx, middleware.ActorRoleKey, role)
}
