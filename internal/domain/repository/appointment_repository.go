package repository

import (
	"context"
	"time"

	"medical-appointments-api/internal/domain/entity"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uint) (*entity.Appointment, error)
	FindByPatientID(ctx context.Context, patientID uint) ([]entity.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID uint) ([]entity.Appointment, error)
	// FindBySlot returns appointments occupying the given slot for either
	// the doctor or the patient, excluding excludeID when non-zero. Used
	// as the scheduling conflict check.
	FindBySlot(ctx context.Context, date time.Time, clock string, doctorID, patientID, excludeID uint) ([]entity.Appointment, error)
	UpdateCase(ctx context.Context, id uint, caseText string) error
	UpdateStatus(ctx context.Context, id uint, confirmed, done bool) error
	Delete(ctx context.Context, id uint) error
}
