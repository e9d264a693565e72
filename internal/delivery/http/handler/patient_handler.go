package handler

import (
	"encoding/json"
	"net/http"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/response"
	"medical-appointments-api/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, response.CodeConflict, "Email already registered")
		case usecase.ErrPhoneAlreadyExists:
			response.Error(w, http.StatusConflict, response.CodeConflict, "Phone number already registered")
		default:
			response.InternalServerError(w, "Failed to register patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", patient)
}

func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid patient ID")
		return
	}

	patient, err := h.patientUsecase.Get(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, response.CodeNotFound, "Patient not found")
		case usecase.ErrNotProfileOwner:
			response.Forbidden(w, "Profile belongs to another patient")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid patient ID")
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, response.CodeNotFound, "Patient not found")
		case usecase.ErrNotProfileOwner:
			response.Forbidden(w, "Profile belongs to another patient")
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, response.CodeConflict, "Email already registered")
		case usecase.ErrPhoneAlreadyExists:
			response.Error(w, http.StatusConflict, response.CodeConflict, "Phone number already registered")
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid patient ID")
		return
	}

	if err := h.patientUsecase.Delete(r.Context(), patientID); err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, response.CodeNotFound, "Patient not found")
		case usecase.ErrNotProfileOwner:
			response.Forbidden(w, "Profile belongs to another patient")
		default:
			response.InternalServerError(w, "Failed to delete patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}
