package repository

import (
	"context"

	"medical-appointments-api/internal/domain/entity"
)

type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entity.Feedback) error
	FindByAppointmentID(ctx context.Context, appointmentID uint) (*entity.Feedback, error)
	FindByAppointmentIDs(ctx context.Context, appointmentIDs []uint) ([]entity.Feedback, error)
	Delete(ctx context.Context, appointmentID uint) error
}
