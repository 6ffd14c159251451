package handler

import (
	"net/http"
	"strconv"

	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/usecase"
	"portal-citas-backend/pkg/response"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityUsecase: availabilityUsecase}
}

// GetAvailableSlots is the public availability query. An unknown site or
// malformed date comes back as an empty list, not an error.
func (h *AvailabilityHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date := query.Get("date")
	if date == "" {
		response.Error(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}

	siteID, err := strconv.Atoi(query.Get("site_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "site_id query parameter must be an integer", nil)
		return
	}

	var typeID *int
	if raw := query.Get("type_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "type_id query parameter must be an integer", nil)
			return
		}
		typeID = &id
	}

	times, err := h.availabilityUsecase.ComputeAvailableSlots(r.Context(), date, siteID, typeID)
	if err != nil {
		response.InternalServerError(w, "Failed to compute availability")
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", &dto.AvailableSlotsResponse{
		Date:   date,
		SiteID: siteID,
		Times:  times,
	})
}
