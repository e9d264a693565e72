package dto

// Request DTOs

type ProposeRescheduleRequest struct {
	NewDate string `json:"new_date" validate:"required,datetime=2006-01-02"`
	NewTime string `json:"new_time" validate:"required,datetime=15:04"`
}

// Response DTOs

type RescheduleResponse struct {
	AppointmentID uint   `json:"appointment_id"`
	OldDate       string `json:"old_date"`
	OldTime       string `json:"old_time"`
	NewDate       string `json:"new_date"`
	NewTime       string `json:"new_time"`
}

type RescheduleListResponse struct {
	Reschedules []RescheduleResponse `json:"reschedules"`
	Total       int                  `json:"total"`
}
