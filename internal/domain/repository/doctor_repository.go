package repository

import (
	"context"

	"medical-appointments-api/internal/domain/entity"
)

type DoctorRepository interface {
	Create(ctx context.Context, doctor *entity.Doctor) error
	FindByID(ctx context.Context, id uint) (*entity.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*entity.Doctor, error)
	// Search matches first name, last name, city or specialty by contains,
	// or postal code exactly. An empty term matches everyone.
	Search(ctx context.Context, term string) ([]entity.Doctor, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*entity.Doctor, error)
	Delete(ctx context.Context, id uint) error
}
