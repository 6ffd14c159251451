package handler

import (
	"encoding/json"
	"net/http"

	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/delivery/http/middleware"
	"portal-citas-backend/internal/usecase"
	"portal-citas-backend/pkg/response"
	"portal-citas-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type EmployeeHandler struct {
	employeeUsecase      usecase.EmployeeUsecase
	authorizationUsecase usecase.AuthorizationUsecase
	validator            *validator.CustomValidator
}

func NewEmployeeHandler(
	employeeUsecase usecase.EmployeeUsecase,
	authorizationUsecase usecase.AuthorizationUsecase,
	validator *validator.CustomValidator,
) *EmployeeHandler {
	return &EmployeeHandler{
		employeeUsecase:      employeeUsecase,
		authorizationUsecase: authorizationUsecase,
		validator:            validator,
	}
}

// GetMyTabs returns the UI sections the authenticated employee may see.
// The front end calls this once after login to build its navigation.
func (h *EmployeeHandler) GetMyTabs(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.GetEmployeeIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	tabs, err := h.authorizationUsecase.ResolveVisibleTabs(r.Context(), employeeID)
	if err != nil {
		switch err {
		case usecase.ErrEmployeeNotFound:
			response.NotFound(w, "Employee not found")
		default:
			response.InternalServerError(w, "Failed to resolve visible tabs")
		}
		return
	}

	response.Success(w, http.StatusOK, "Visible tabs retrieved successfully", &dto.VisibleTabsResponse{Tabs: tabs})
}

// GetMyFormPermission returns the authenticated employee's effective
// CRUD capability on one form, resolved fresh on every call.
func (h *EmployeeHandler) GetMyFormPermission(w http.ResponseWriter, r *http.Request) {
	employeeID, ok := middleware.GetEmployeeIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	formCode := mux.Vars(r)["formCode"]

	permission, err := h.authorizationUsecase.ResolveFormPermission(r.Context(), employeeID, formCode)
	if err != nil {
		switch err {
		case usecase.ErrEmployeeNotFound:
			response.NotFound(w, "Employee not found")
		case usecase.ErrFormNotFound:
			response.NotFound(w, "Form not found")
		default:
			response.InternalServerError(w, "Failed to resolve permission")
		}
		return
	}

	response.Success(w, http.StatusOK, "Permission resolved successfully", &dto.EffectivePermissionResponse{
		FormCode:  formCode,
		CanRead:   permission.CanRead,
		CanCreate: permission.CanCreate,
		CanUpdate: permission.CanUpdate,
		CanDelete: permission.CanDelete,
	})
}

func (h *EmployeeHandler) UpdateEmployeeTabs(w http.ResponseWriter, r *http.Request) {
	employeeID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid employee ID", nil)
		return
	}

	var req dto.UpdateAllowedTabsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err = h.employeeUsecase.UpdateAllowedTabs(r.Context(), employeeID, &req)
	if err != nil {
		switch err {
		case usecase.ErrEmployeeNotFound:
			response.NotFound(w, "Employee not found")
		case usecase.ErrUnknownTab:
			response.UnprocessableEntity(w, "Request contains an unknown tab identifier")
		default:
			response.InternalServerError(w, "Failed to update allowed tabs")
		}
		return
	}

	response.Success(w, http.StatusOK, "Allowed tabs updated successfully", nil)
}
