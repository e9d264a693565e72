package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/response"
	"medical-appointments-api/pkg/validator"

	"github.com/gorilla/mux"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeValidationError, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	token, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Error(w, http.StatusUnauthorized, response.CodeInvalidCredentials, "Invalid email or password")
		default:
			response.InternalServerError(w, "Failed to log in")
		}
		return
	}

	response.Success(w, http.StatusOK, "Logged in successfully", token)
}

// pathID reads a numeric path variable, shared by the resource handlers.
func pathID(r *http.Request, name string) (uint, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
