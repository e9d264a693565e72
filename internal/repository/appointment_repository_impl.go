package repository

import (
	"context"
	"errors"
	"time"

	"medical-appointments-api/internal/domain/entity"
	domainRepo "medical-appointments-api/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, patientID uint) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("date, time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorID(ctx context.Context, doctorID uint) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("date, time").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindBySlot(ctx context.Context, date time.Time, clock string, doctorID, patientID, excludeID uint) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := r.db.WithContext(ctx).
		Where("date = ? AND time = ?", date, clock).
		Where("doctor_id = ? OR patient_id = ?", doctorID, patientID)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) UpdateCase(ctx context.Context, id uint, caseText string) error {
	return r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("case", caseText).Error
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uint, confirmed, done bool) error {
	return r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"confirmed": confirmed, "done": done}).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{}).Error
}
