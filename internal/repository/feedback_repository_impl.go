package repository

import (
	"context"
	"errors"

	"medical-appointments-api/internal/domain/entity"
	domainRepo "medical-appointments-api/internal/domain/repository"

	"gorm.io/gorm"
)

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) domainRepo.FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(ctx context.Context, feedback *entity.Feedback) error {
	return r.db.WithContext(ctx).Create(feedback).Error
}

func (r *feedbackRepository) FindByAppointmentID(ctx context.Context, appointmentID uint) (*entity.Feedback, error) {
	var feedback entity.Feedback
	err := r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

func (r *feedbackRepository) FindByAppointmentIDs(ctx context.Context, appointmentIDs []uint) ([]entity.Feedback, error) {
	var feedbacks []entity.Feedback
	err := r.db.WithContext(ctx).
		Where("appointment_id IN ?", appointmentIDs).
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	return feedbacks, nil
}

func (r *feedbackRepository) Delete(ctx context.Context, appointmentID uint) error {
	return r.db.WithContext(ctx).Where("appointment_id = ?", appointmentID).Delete(&entity.Feedback{}).Error
}
