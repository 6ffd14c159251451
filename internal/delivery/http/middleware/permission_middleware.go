package middleware

import (
	"context"
	"errors"
	"net/http"

	"portal-citas-backend/internal/domain"
	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/pkg/response"

	"github.com/google/uuid"
)

// Authorizer is the minimal contract the middleware needs to gate a
// route. Implemented by usecase.AuthorizationUsecase; the local
// interface avoids an import cycle with the usecase layer.
type Authorizer interface {
	Authorize(ctx context.Context, employeeID uuid.UUID, formCode string, op entity.Operation) error
}

// PermissionMiddleware gates routes on the effective CRUD capability of
// the actor. Capabilities are re-resolved on every request so that
// permission edits apply immediately; nothing is cached per session.
type PermissionMiddleware struct {
	authorizer Authorizer
}

func NewPermissionMiddleware(authorizer Authorizer) *PermissionMiddleware {
	return &PermissionMiddleware{authorizer: authorizer}
}

// Require rejects the request unless the actor holds the operation on
// the form. It runs after Authenticate and before any handler side
// effect, failing closed on every error path.
func (m *PermissionMiddleware) Require(formCode string, op entity.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			employeeID, ok := GetEmployeeIDFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Actor information not found")
				return
			}

			if err := m.authorizer.Authorize(r.Context(), employeeID, formCode, op); err != nil {
				if errors.Is(err, domain.ErrNotAllowed) {
					response.Forbidden(w, "You don't have permission to access this resource")
					return
				}
				response.InternalServerError(w, "Failed to verify permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
