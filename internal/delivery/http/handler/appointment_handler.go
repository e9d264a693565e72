package handler

import (
	"encoding/json"
	"net/http"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/response"
	"medical-appointments-api/pkg/validator"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(r, "doctorId")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid doctor ID")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, response.CodeNotFound, "Doctor not found")
		case usecase.ErrSlotOccupied:
			response.Error(w, http.StatusConflict, response.CodeSlotOccupied, "Slot is already occupied")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.ListForPatient(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.ListForDoctor(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) UpdateCase(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathID(r, "appointmentId")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateCase(r.Context(), appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, response.CodeNotFound, "Appointment not found")
		case usecase.ErrNotAppointmentParty:
			response.Forbidden(w, "Appointment belongs to another actor")
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathID(r, "appointmentId")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid appointment ID")
		return
	}

	var req dto.SetAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.SetStatus(r.Context(), appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, response.CodeNotFound, "Appointment not found")
		case usecase.ErrNotAppointmentParty:
			response.Forbidden(w, "Appointment belongs to another doctor")
		case usecase.ErrInvalidTransition:
			response.Error(w, http.StatusConflict, response.CodeInvalidTransition, "Appointment cannot be done before it is confirmed")
		default:
			response.InternalServerError(w, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathID(r, "appointmentId")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid appointment ID")
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, response.CodeNotFound, "Appointment not found")
		case usecase.ErrNotAppointmentParty:
			response.Forbidden(w, "Appointment belongs to another actor")
		default:
			response.InternalServerError(w, "Failed to delete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}
