package repository

import (
	"context"
	"time"

	"medical-appointments-api/internal/domain/entity"
)

type RescheduleRepository interface {
	Create(ctx context.Context, reschedule *entity.Reschedule) error
	FindByAppointmentID(ctx context.Context, appointmentID uint) (*entity.Reschedule, error)
	FindByAppointmentIDs(ctx context.Context, appointmentIDs []uint) ([]entity.Reschedule, error)
	// UpdateProposal overwrites only the proposed slot, keeping the
	// original snapshot intact.
	UpdateProposal(ctx context.Context, appointmentID uint, newDate time.Time, newTime string) error
	// Accept copies the proposed slot onto the appointment and removes the
	// request in a single transaction.
	Accept(ctx context.Context, appointmentID uint) error
	Delete(ctx context.Context, appointmentID uint) error
}
