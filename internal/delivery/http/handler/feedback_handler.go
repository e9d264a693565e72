package handler

import (
	"encoding/json"
	"net/http"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/response"
	"medical-appointments-api/pkg/validator"
)

type FeedbackHandler struct {
	feedbackUsecase usecase.FeedbackUsecase
	validator       *validator.CustomValidator
}

func NewFeedbackHandler(feedbackUsecase usecase.FeedbackUsecase, validator *validator.CustomValidator) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackUsecase: feedbackUsecase,
		validator:       validator,
	}
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathID(r, "appointmentId")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid appointment ID")
		return
	}

	var req dto.CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	feedback, err := h.feedbackUsecase.Create(r.Context(), appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, response.CodeNotFound, "Appointment not found")
		case usecase.ErrNotAppointmentParty:
			response.Forbidden(w, "Appointment belongs to another patient")
		case usecase.ErrFeedbackExists:
			response.Error(w, http.StatusConflict, response.CodeConflict, "Feedback already submitted for this appointment")
		default:
			response.InternalServerError(w, "Failed to create feedback")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Feedback created successfully", feedback)
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathID(r, "appointmentId")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid appointment ID")
		return
	}

	if err := h.feedbackUsecase.Delete(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, response.CodeNotFound, "Appointment not found")
		case usecase.ErrNotAppointmentParty:
			response.Forbidden(w, "Appointment belongs to another patient")
		case usecase.ErrFeedbackNotFound:
			response.NotFound(w, response.CodeNotFound, "Feedback not found")
		default:
			response.InternalServerError(w, "Failed to delete feedback")
		}
		return
	}

	response.Success(w, http.StatusOK, "Feedback deleted successfully", nil)
}

func (h *FeedbackHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.feedbackUsecase.ListForPatient(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list feedbacks")
		return
	}

	response.Success(w, http.StatusOK, "Feedbacks retrieved successfully", feedbacks)
}

func (h *FeedbackHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.feedbackUsecase.ListForDoctor(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list feedbacks")
		return
	}

	response.Success(w, http.StatusOK, "Feedbacks retrieved successfully", feedbacks)
}
