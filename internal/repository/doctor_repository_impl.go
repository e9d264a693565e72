package repository

import (
	"context"
	"errors"

	"medical-appointments-api/internal/domain/entity"
	domainRepo "medical-appointments-api/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) domainRepo.DoctorRepository {
	return &doctorRepository{db: db}
}

func (r *doctorRepository) Create(ctx context.Context, doctor *entity.Doctor) error {
	return r.db.WithContext(ctx).Create(doctor).Error
}

func (r *doctorRepository) FindByID(ctx context.Context, id uint) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) Search(ctx context.Context, term string) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	query := r.db.WithContext(ctx)
	if term != "" {
		pattern := "%" + term + "%"
		query = query.Where(
			"first_name LIKE ? OR last_name LIKE ? OR city LIKE ? OR specialty LIKE ? OR postal_code = ?",
			pattern, pattern, pattern, pattern, term,
		)
	}
	if err := query.Order("last_name, first_name").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*entity.Doctor, error) {
	if err := r.db.WithContext(ctx).Model(&entity.Doctor{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *doctorRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Doctor{}).Error
}
