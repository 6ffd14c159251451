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

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

func (h *CatalogHandler) GetForms(w http.ResponseWriter, r *http.Request) {
	forms, err := h.catalogUsecase.ListForms(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get forms")
		return
	}

	response.Success(w, http.StatusOK, "Forms retrieved successfully", forms)
}

func (h *CatalogHandler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	permissions, err := h.catalogUsecase.ListPermissions(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get permissions")
		return
	}

	response.Success(w, http.StatusOK, "Permissions retrieved successfully", permissions)
}

func (h *CatalogHandler) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.catalogUsecase.ListRoles(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get roles")
		return
	}

	response.Success(w, http.StatusOK, "Roles retrieved successfully", roles)
}

func (h *CatalogHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	roleID, err := strconv.Atoi(vars["roleId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid role ID", nil)
		return
	}

	formID, err := strconv.Atoi(vars["formId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form ID", nil)
		return
	}

	assignment, err := h.catalogUsecase.GetAssignment(r.Context(), roleID, formID)
	if err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found")
		case usecase.ErrFormNotFound:
			response.NotFound(w, "Form not found")
		default:
			response.InternalServerError(w, "Failed to get assignment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Assignment retrieved successfully", assignment)
}

func (h *CatalogHandler) AssignPermission(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignPermissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	assignment, err := h.catalogUsecase.AssignPermission(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrRoleNotFound:
			response.NotFound(w, "Role not found")
		case usecase.ErrFormNotFound:
			response.NotFound(w, "Form not found")
		case usecase.ErrPermissionNotFound:
			response.NotFound(w, "Permission template not found")
		default:
			response.InternalServerError(w, "Failed to assign permission")
		}
		return
	}

	response.Success(w, http.StatusOK, "Permission assigned successfully", assignment)
}
