package repository

import (
	"context"
	"errors"
	"time"

	"medical-appointments-api/internal/domain/entity"
	domainRepo "medical-appointments-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type rescheduleRepository struct {
	db *gorm.DB
}

func NewRescheduleRepository(db *gorm.DB) domainRepo.RescheduleRepository {
	return &rescheduleRepository{db: db}
}

func (r *rescheduleRepository) Create(ctx context.Context, reschedule *entity.Reschedule) error {
	return r.db.WithContext(ctx).Create(reschedule).Error
}

func (r *rescheduleRepository) FindByAppointmentID(ctx context.Context, appointmentID uint) (*entity.Reschedule, error) {
	var reschedule entity.Reschedule
	err := r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).First(&reschedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reschedule, nil
}

func (r *rescheduleRepository) FindByAppointmentIDs(ctx context.Context, appointmentIDs []uint) ([]entity.Reschedule, error) {
	var reschedules []entity.Reschedule
	err := r.db.WithContext(ctx).
		Where("appointment_id IN ?", appointmentIDs).
		Find(&reschedules).Error
	if err != nil {
		return nil, err
	}
	return reschedules, nil
}

func (r *rescheduleRepository) UpdateProposal(ctx context.Context, appointmentID uint, newDate time.Time, newTime string) error {
	return r.db.WithContext(ctx).Model(&entity.Reschedule{}).
		Where("appointment_id = ?", appointmentID).
		Updates(map[string]interface{}{"new_date": newDate, "new_time": newTime}).Error
}

// Accept moves the proposed slot onto the appointment and removes the
// request. Both writes run in one transaction; the request row is locked
// so two concurrent accepts cannot both apply.
func (r *rescheduleRepository) Accept(ctx context.Context, appointmentID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reschedule entity.Reschedule
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("appointment_id = ?", appointmentID).
			First(&reschedule).Error; err != nil {
			return err
		}

		if err := tx.Model(&entity.Appointment{}).
			Where("id = ?", appointmentID).
			Updates(map[string]interface{}{"date": reschedule.NewDate, "time": reschedule.NewTime}).Error; err != nil {
			return err
		}

		return tx.Where("appointment_id = ?", appointmentID).Delete(&entity.Reschedule{}).Error
	})
}

func (r *rescheduleRepository) Delete(ctx context.Context, appointmentID uint) error {
	return r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).Delete(&entity.Reschedule{}).Error
}
