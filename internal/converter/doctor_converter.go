package converter

import (
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:              doctor.ID,
		FirstName:       doctor.FirstName,
		LastName:        doctor.LastName,
		Email:           doctor.Email,
		Phone:           doctor.Phone,
		Specialty:       doctor.Specialty,
		City:            doctor.City,
		Street:          doctor.Street,
		PostalCode:      doctor.PostalCode,
		PersonalPicture: doctor.PersonalPicture,
		CreatedAt:       doctor.CreatedAt,
		UpdatedAt:       doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
