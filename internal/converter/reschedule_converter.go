package converter

import (
	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/domain/entity"
)

// RescheduleToResponse converts a Reschedule entity to RescheduleResponse DTO
func RescheduleToResponse(reschedule *entity.Reschedule) *dto.RescheduleResponse {
	if reschedule == nil {
		return nil
	}

	return &dto.RescheduleResponse{
		AppointmentID: reschedule.AppointmentID,
		OldDate:       reschedule.OldDate.Format(dateLayout),
		OldTime:       reschedule.OldTime,
		NewDate:       reschedule.NewDate.Format(dateLayout),
		NewTime:       reschedule.NewTime,
	}
}

// ReschedulesToResponses converts a slice of Reschedule entities to DTOs
func ReschedulesToResponses(reschedules []entity.Reschedule) []dto.RescheduleResponse {
	responses := make([]dto.RescheduleResponse, len(reschedules))
	for i := range reschedules {
		responses[i] = *RescheduleToResponse(&reschedules[i])
	}
	return responses
}
