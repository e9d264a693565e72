package converter

import (
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"
)

// FeedbackToResponse converts a Feedback entity to FeedbackResponse DTO
func FeedbackToResponse(feedback *entity.Feedback) *dto.FeedbackResponse {
	if feedback == nil {
		return nil
	}

	return &dto.FeedbackResponse{
		AppointmentID: feedback.AppointmentID,
		Rating:        feedback.Rating,
		Comment:       feedback.Comment,
		CreatedAt:     feedback.CreatedAt,
	}
}

// FeedbacksToResponses converts a slice of Feedback entities to DTOs
func FeedbacksToResponses(feedbacks []entity.Feedback) []dto.FeedbackResponse {
	responses := make([]dto.FeedbackResponse, len(feedbacks))
	for i := range feedbacks {
		responses[i] = *FeedbackToResponse(&feedbacks[i])
	}
	return responses
}
