package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required,datetime=15:04"`
	Case string `json:"case" validate:"required,max=200"`
}

type UpdateAppointmentCaseRequest struct {
	Case string `json:"case" validate:"required,max=200"`
}

// SetAppointmentStatusRequest carries both lifecycle flags explicitly;
// the resulting pair is validated against the pending->confirmed->done
// order by the usecase.
type SetAppointmentStatusRequest struct {
	Confirmed *bool `json:"confirmed" validate:"required"`
	Done      *bool `json:"done" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID        uint      `json:"id"`
	PatientID uint      `json:"patient_id"`
	DoctorID  uint      `json:"doctor_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Case      string    `json:"case"`
	Confirmed bool      `json:"confirmed"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
