package converter

import (
	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/domain/entity"
)

func FormToResponse(form *entity.Form) *dto.FormResponse {
	return &dto.FormResponse{
		ID:          form.ID,
		Code:        form.Code,
		DisplayName: form.DisplayName,
	}
}

func FormsToResponses(forms []entity.Form) []dto.FormResponse {
	responses := make([]dto.FormResponse, len(forms))
	for i := range forms {
		responses[i] = *FormToResponse(&forms[i])
	}
	return responses
}

func PermissionToResponse(permission *entity.Permission) *dto.PermissionResponse {
	return &dto.PermissionResponse{
		ID:          permission.ID,
		Description: permission.Description,
		CanRead:     permission.CanRead,
		CanCreate:   permission.CanCreate,
		CanUpdate:   permission.CanUpdate,
		CanDelete:   permission.CanDelete,
	}
}

func PermissionsToResponses(permissions []entity.Permission) []dto.PermissionResponse {
	responses := make([]dto.PermissionResponse, len(permissions))
	for i := range permissions {
		responses[i] = *PermissionToResponse(&permissions[i])
	}
	return responses
}

func RoleToResponse(role *entity.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		ID:       role.ID,
		Code:     role.Code,
		Name:     role.Name,
		IsActive: role.IsActive != nil && *role.IsActive,
	}
}

func RolesToResponses(roles []entity.Role) []dto.RoleResponse {
	responses := make([]dto.RoleResponse, len(roles))
	for i := range roles {
		responses[i] = *RoleToResponse(&roles[i])
	}
	return responses
}

func AssignmentToResponse(assignment *entity.RoleFormPermission) *dto.AssignmentResponse {
	response := &dto.AssignmentResponse{
		RoleID:       assignment.RoleID,
		FormID:       assignment.FormID,
		PermissionID: assignment.PermissionID,
	}
	if assignment.Permission != nil {
		response.Permission = PermissionToResponse(assignment.Permission)
	}
	return response
}
