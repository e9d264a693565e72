package dto

import "time"

// Request DTOs

type RegisterDoctorRequest struct {
	FirstName       string `json:"first_name" validate:"required,min=2,max=100"`
	LastName        string `json:"last_name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=6,max=15"`
	Specialty       string `json:"specialty" validate:"required,max=100"`
	City            string `json:"city" validate:"required,max=50"`
	Street          string `json:"street" validate:"required,max=50"`
	PostalCode      string `json:"postal_code" validate:"required,max=10"`
	PersonalPicture string `json:"personal_picture" validate:"omitempty,url,max=200"`
	Password        string `json:"password" validate:"required,min=6"`
}

type UpdateDoctorRequest struct {
	FirstName       *string `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName        *string `json:"last_name" validate:"omitempty,min=2,max=100"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Phone           *string `json:"phone" validate:"omitempty,min=6,max=15"`
	Specialty       *string `json:"specialty" validate:"omitempty,max=100"`
	City            *string `json:"city" validate:"omitempty,max=50"`
	Street          *string `json:"street" validate:"omitempty,max=50"`
	PostalCode      *string `json:"postal_code" validate:"omitempty,max=10"`
	PersonalPicture *string `json:"personal_picture" validate:"omitempty,url,max=200"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uint      `json:"id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Specialty       string    `json:"specialty"`
	City            string    `json:"city"`
	Street          string    `json:"street"`
	PostalCode      string    `json:"postal_code"`
	PersonalPicture string    `json:"personal_picture,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
