package handler

import (
	"encoding/json"
	"net/http"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/response"
	"medical-appointments-api/pkg/validator"
)

type RescheduleHandler struct {
	rescheduleUsecase usecase.RescheduleUsecase
	validator         *validator.CustomValidator
}

func NewRescheduleHandler(rescheduleUsecase usecase.RescheduleUsecase, validator *validator.CustomValidator) *RescheduleHandler {
	return &RescheduleHandler{
		rescheduleUsecase: rescheduleUsecase,
		validator:         validator,
	}
}

func (h *RescheduleHandler) Propose(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathID(r, "appointmentId")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid appointment ID")
		return
	}

	var req dto.ProposeRescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	reschedule, err := h.rescheduleUsecase.Propose(r.Context(), appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, response.CodeNotFound, "Appointment not found")
		case usecase.ErrNotAppointmentParty:
			response.Forbidden(w, "Appointment belongs to another patient")
		case usecase.ErrPastDateTime:
			response.Error(w, http.StatusBadRequest, response.CodePastDateTime, "Proposed slot is in the past")
		case usecase.ErrSlotOccupied:
			response.Error(w, http.StatusConflict, response.CodeSlotOccupied, "Proposed slot is already occupied")
		default:
			response.InternalServerError(w, "Failed to propose reschedule")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Reschedule proposed successfully", reschedule)
}

func (h *RescheduleHandler) Accept(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathID(r, "appointmentId")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid appointment ID")
		return
	}

	appointment, err := h.rescheduleUsecase.Accept(r.Context(), appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, response.CodeNotFound, "Appointment not found")
		case usecase.ErrNotAppointmentParty:
			response.Forbidden(w, "Appointment belongs to another doctor")
		case usecase.ErrRescheduleNotFound:
			response.NotFound(w, response.CodeNotFound, "Reschedule request not found")
		case usecase.ErrSlotOccupied:
			response.Error(w, http.StatusConflict, response.CodeSlotOccupied, "Proposed slot is already occupied")
		default:
			response.InternalServerError(w, "Failed to accept reschedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Reschedule accepted successfully", appointment)
}

func (h *RescheduleHandler) Reject(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathID(r, "appointmentId")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid appointment ID")
		return
	}

	if err := h.rescheduleUsecase.Reject(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, response.CodeNotFound, "Appointment not found")
		case usecase.ErrNotAppointmentParty:
			response.Forbidden(w, "Appointment belongs to another doctor")
		case usecase.ErrRescheduleNotFound:
			response.NotFound(w, response.CodeNotFound, "Reschedule request not found")
		default:
			response.InternalServerError(w, "Failed to reject reschedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Reschedule rejected successfully", nil)
}

func (h *RescheduleHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathID(r, "appointmentId")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid appointment ID")
		return
	}

	if err := h.rescheduleUsecase.Cancel(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, response.CodeNotFound, "Appointment not found")
		case usecase.ErrNotAppointmentParty:
			response.Forbidden(w, "Appointment belongs to another patient")
		case usecase.ErrRescheduleNotFound:
			response.NotFound(w, response.CodeNotFound, "Reschedule request not found")
		default:
			response.InternalServerError(w, "Failed to cancel reschedule")
		}
		return
	}

	response.Success(w, http.StatusOK, "Reschedule cancelled successfully", nil)
}

func (h *RescheduleHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	reschedules, err := h.rescheduleUsecase.ListForPatient(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list reschedules")
		return
	}

	response.Success(w, http.StatusOK, "Reschedules retrieved successfully", reschedules)
}

func (h *RescheduleHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	reschedules, err := h.rescheduleUsecase.ListForDoctor(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list reschedules")
		return
	}

	response.Success(w, http.StatusOK, "Reschedules retrieved successfully", reschedules)
}
