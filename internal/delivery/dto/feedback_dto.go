package dto

import "time"

// Request DTOs

type CreateFeedbackRequest struct {
	Rating  *int   `json:"rating" validate:"required,gte=0,lte=4"`
	Comment string `json:"comment" validate:"omitempty,max=200"`
}

// Response DTOs

type FeedbackResponse struct {
	AppointmentID uint      `json:"appointment_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type FeedbackListResponse struct {
	Feedbacks []FeedbackResponse `json:"feedbacks"`
	Total     int                `json:"total"`
}
