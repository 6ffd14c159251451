package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/usecase"
	"portal-citas-backend/pkg/response"
	"portal-citas-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type ReferenceHandler struct {
	referenceUsecase usecase.ReferenceUsecase
	validator        *validator.CustomValidator
}

func NewReferenceHandler(referenceUsecase usecase.ReferenceUsecase, validator *validator.CustomValidator) *ReferenceHandler {
	return &ReferenceHandler{
		referenceUsecase: referenceUsecase,
		validator:        validator,
	}
}

func (h *ReferenceHandler) GetSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.referenceUsecase.ListSites(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get sites")
		return
	}

	response.Success(w, http.StatusOK, "Sites retrieved successfully", sites)
}

func (h *ReferenceHandler) CreateSite(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	site, err := h.referenceUsecase.CreateSite(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create site")
		return
	}

	response.Success(w, http.StatusCreated, "Site created successfully", site)
}

func (h *ReferenceHandler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid site ID", nil)
		return
	}

	var req dto.UpdateSiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	site, err := h.referenceUsecase.UpdateSite(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrSiteNotFound:
			response.NotFound(w, "Site not found")
		default:
			response.InternalServerError(w, "Failed to update site")
		}
		return
	}

	response.Success(w, http.StatusOK, "Site updated successfully", site)
}

func (h *ReferenceHandler) GetAppointmentTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.referenceUsecase.ListAppointmentTypes(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointment types")
		return
	}

	response.Success(w, http.StatusOK, "Appointment types retrieved successfully", types)
}

func (h *ReferenceHandler) CreateAppointmentType(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointmentType, err := h.referenceUsecase.CreateAppointmentType(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrMinutesOutOfRange:
			response.UnprocessableEntity(w, "Estimated minutes must be between 1 and 480")
		default:
			response.InternalServerError(w, "Failed to create appointment type")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment type created successfully", appointmentType)
}

func (h *ReferenceHandler) UpdateAppointmentType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment type ID", nil)
		return
	}

	var req dto.UpdateAppointmentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	appointmentType, err := h.referenceUsecase.UpdateAppointmentType(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrTypeNotFound:
			response.NotFound(w, "Appointment type not found")
		case usecase.ErrMinutesOutOfRange:
			response.UnprocessableEntity(w, "Estimated minutes must be between 1 and 480")
		default:
			response.InternalServerError(w, "Failed to update appointment type")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment type updated successfully", appointmentType)
}

func (h *ReferenceHandler) GetAvailableHours(w http.ResponseWriter, r *http.Request) {
	siteID, err := strconv.Atoi(mux.Vars(r)["siteId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid site ID", nil)
		return
	}

	hours, err := h.referenceUsecase.ListAvailableHours(r.Context(), siteID)
	if err != nil {
		response.InternalServerError(w, "Failed to get available hours")
		return
	}

	response.Success(w, http.StatusOK, "Available hours retrieved successfully", hours)
}

func (h *ReferenceHandler) CreateAvailableHour(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAvailableHourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hour, err := h.referenceUsecase.CreateAvailableHour(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrSiteNotFound:
			response.NotFound(w, "Site not found")
		case usecase.ErrTypeNotFound:
			response.NotFound(w, "Appointment type not found")
		default:
			response.InternalServerError(w, "Failed to create available hour")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Available hour created successfully", hour)
}

func (h *ReferenceHandler) UpdateAvailableHour(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid available hour ID", nil)
		return
	}

	var req dto.UpdateAvailableHourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	hour, err := h.referenceUsecase.UpdateAvailableHour(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrHourNotFound:
			response.NotFound(w, "Available hour not found")
		default:
			response.InternalServerError(w, "Failed to update available hour")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available hour updated successfully", hour)
}
