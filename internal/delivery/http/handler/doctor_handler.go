package handler

import (
	"encoding/json"
	"net/http"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/response"
	"medical-appointments-api/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, response.CodeConflict, "Email already registered")
		case usecase.ErrPhoneAlreadyExists:
			response.Error(w, http.StatusConflict, response.CodeConflict, "Phone number already registered")
		default:
			response.InternalServerError(w, "Failed to register doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor registered successfully", doctor)
}

// Search is public: ?search=<term> matches name, city and specialty by
// contains, or postal code exactly. An empty term lists every doctor.
func (h *DoctorHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")

	doctors, err := h.doctorUsecase.Search(r.Context(), term)
	if err != nil {
		switch err {
		case usecase.ErrNoDoctorsFound:
			response.NotFound(w, response.CodeNotFound, "No doctors matched the search")
		default:
			response.InternalServerError(w, "Failed to search doctors")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) Get(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid doctor ID")
		return
	}

	doctor, err := h.doctorUsecase.Get(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, response.CodeNotFound, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid doctor ID")
		return
	}

	var req dto.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Update(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, response.CodeNotFound, "Doctor not found")
		case usecase.ErrNotProfileOwner:
			response.Forbidden(w, "Profile belongs to another doctor")
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusConflict, response.CodeConflict, "Email already registered")
		case usecase.ErrPhoneAlreadyExists:
			response.Error(w, http.StatusConflict, response.CodeConflict, "Phone number already registered")
		default:
			response.InternalServerError(w, "Failed to update doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *DoctorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid doctor ID")
		return
	}

	if err := h.doctorUsecase.Delete(r.Context(), doctorID); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, response.CodeNotFound, "Doctor not found")
		case usecase.ErrNotProfileOwner:
			response.Forbidden(w, "Profile belongs to another doctor")
		default:
			response.InternalServerError(w, "Failed to delete doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

// ListPatients returns the patients holding an appointment with the
// authenticated doctor.
func (h *DoctorHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.doctorUsecase.ListPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}
