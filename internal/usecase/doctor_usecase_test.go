package usecase

import (
	"context"
	"testing"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockDoctorSearchCache is a mock implementation of service.DoctorSearchCache
type MockDoctorSearchCache struct {
	mock.Mock
}

func (m *MockDoctorSearchCache) Get(ctx context.Context, term string) ([]entity.Doctor, bool) {
	args := m.Called(ctx, term)
	if doctors, ok := args.Get(0).([]entity.Doctor); ok {
		return doctors, args.Bool(1)
	}
	return nil, args.Bool(1)
}

func (m *MockDoctorSearchCache) Set(ctx context.Context, term string, doctors []entity.Doctor) {
	m.Called(ctx, term, doctors)
}

func (m *MockDoctorSearchCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

func setupDoctorUsecase() (DoctorUsecase, *MockDoctorRepository, *MockPatientRepository, *MockAppointmentRepository, *MockDoctorSearchCache) {
	doctorRepo := &MockDoctorRepository{}
	patientRepo := &MockPatientRepository{}
	appointmentRepo := &MockAppointmentRepository{}
	doctorCache := &MockDoctorSearchCache{}
	u := NewDoctorUsecase(testLogger(), doctorRepo, patientRepo, appointmentRepo, doctorCache, noopAuditService{})
	return u, doctorRepo, patientRepo, appointmentRepo, doctorCache
}

func TestRegisterDoctor_CapitalizesAndHashes(t *testing.T) {
	u, doctorRepo, _, _, doctorCache := setupDoctorUsecase()

	var created *entity.Doctor
	doctorRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Doctor")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*entity.Doctor)
			created.ID = 4
		}).Return(nil)
	doctorCache.On("Invalidate", mock.Anything).Return()

	doctor, err := u.Register(context.Background(), &dto.RegisterDoctorRequest{
		FirstName:  "omar",
		LastName:   "haddad",
		Email:      "omar@example.com",
		Phone:      "0123456789",
		Specialty:  "cardiology",
		City:       "berlin",
		Street:     "Main Street 1",
		PostalCode: "10115",
		Password:   "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Omar", doctor.FirstName)
	assert.Equal(t, "Haddad", doctor.LastName)
	assert.Equal(t, "Cardiology", doctor.Specialty)
	assert.Equal(t, "Berlin", doctor.City)

	assert.NotEqual(t, "secret123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
	doctorCache.AssertExpectations(t)
}

func TestSearchDoctors_CacheHit(t *testing.T) {
	u, doctorRepo, _, _, doctorCache := setupDoctorUsecase()

	doctorCache.On("Get", mock.Anything, "Cardiology").Return([]entity.Doctor{{ID: 4, Specialty: "Cardiology"}}, true)

	list, err := u.Search(context.Background(), "cardiology")

	assert.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	doctorRepo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestSearchDoctors_CacheMissFillsCache(t *testing.T) {
	u, doctorRepo, _, _, doctorCache := setupDoctorUsecase()

	results := []entity.Doctor{{ID: 4, Specialty: "Cardiology"}, {ID: 5, Specialty: "Cardiology"}}
	doctorCache.On("Get", mock.Anything, "Cardiology").Return(nil, false)
	doctorRepo.On("Search", mock.Anything, "Cardiology").Return(results, nil)
	doctorCache.On("Set", mock.Anything, "Cardiology", results).Return()

	list, err := u.Search(context.Background(), "cardiology")

	assert.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	doctorCache.AssertExpectations(t)
}

func TestSearchDoctors_NoMatches(t *testing.T) {
	u, doctorRepo, _, _, doctorCache := setupDoctorUsecase()

	doctorCache.On("Get", mock.Anything, "Nowhere").Return(nil, false)
	doctorRepo.On("Search", mock.Anything, "Nowhere").Return([]entity.Doctor{}, nil)
	doctorCache.On("Set", mock.Anything, "Nowhere", []entity.Doctor{}).Return()

	_, err := u.Search(context.Background(), "nowhere")

	assert.ErrorIs(t, err, ErrNoDoctorsFound)
}

func TestUpdateDoctor_OtherProfileForbidden(t *testing.T) {
	u, doctorRepo, _, _, _ := setupDoctorUsecase()
	ctx := actorContext(4, entity.RoleDoctor)

	city := "hamburg"
	_, err := u.Update(ctx, 5, &dto.UpdateDoctorRequest{City: &city})

	assert.ErrorIs(t, err, ErrNotProfileOwner)
	doctorRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteDoctor_InvalidatesCache(t *testing.T) {
	u, doctorRepo, _, _, doctorCache := setupDoctorUsecase()
	ctx := actorContext(4, entity.RoleDoctor)

	doctorRepo.On("FindByID", mock.Anything, uint(4)).Return(&entity.Doctor{ID: 4}, nil)
	doctorRepo.On("Delete", mock.Anything, uint(4)).Return(nil)
	doctorCache.On("Invalidate", mock.Anything).Return()

	err := u.Delete(ctx, 4)

	assert.NoError(t, err)
	doctorCache.AssertExpectations(t)
}

func TestListPatients_Distinct(t *testing.T) {
	u, _, patientRepo, appointmentRepo, _ := setupDoctorUsecase()
	ctx := actorContext(4, entity.RoleDoctor)

	appointmentRepo.On("FindByDoctorID", mock.Anything, uint(4)).Return([]entity.Appointment{
		{ID: 10, PatientID: 1, DoctorID: 4},
		{ID: 11, PatientID: 2, DoctorID: 4},
		{ID: 12, PatientID: 1, DoctorID: 4},
	}, nil)
	patientRepo.On("FindByIDs", mock.Anything, []uint{1, 2}).Return([]entity.Patient{{ID: 1}, {ID: 2}}, nil)

	list, err := u.ListPatients(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	patientRepo.AssertExpectations(t)
}

func TestListPatients_NoAppointments(t *testing.T) {
	u, _, patientRepo, appointmentRepo, _ := setupDoctorUsecase()
	ctx := actorContext(4, entity.RoleDoctor)

	appointmentRepo.On("FindByDoctorID", mock.Anything, uint(4)).Return([]entity.Appointment{}, nil)

	list, err := u.ListPatients(ctx)

	assert.NoError(t, err)
	assert.Equal(t, 0, list.Total)
	patientRepo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}
