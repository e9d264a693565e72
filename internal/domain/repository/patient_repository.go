package repository

import (
	"context"

	"medical-appointments-api/internal/domain/entity"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id uint) (*entity.Patient, error)
	FindByEmail(ctx context.Context, email string) (*entity.Patient, error)
	FindByIDs(ctx context.Context, ids []uint) ([]entity.Patient, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*entity.Patient, error)
	Delete(ctx context.Context, id uint) error
}
