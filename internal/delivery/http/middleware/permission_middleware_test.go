package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"portal-citas-backend/internal/delivery/http/middleware"
	"portal-citas-backend/internal/domain"
	"portal-citas-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAuthorizer grants the configured operations on one form and
// denies everything else.
type stubAuthorizer struct {
	formCode string
	granted  map[entity.Operation]bool
	err      error
}

func (s *stubAuthorizer) Authorize(ctx context.Context, employeeID uuid.UUID, formCode string, op entity.Operation) error {
	if s.err != nil {
		return s.err
	}
	if formCode == s.formCode && s.granted[op] {
		return nil
	}
	return domain.ErrNotAllowed
}

func gatedHandler(authorizer middleware.Authorizer, formCode string, op entity.Operation) http.Handler {
	pm := middleware.NewPermissionMiddleware(authorizer)
	return pm.Require(formCode, op)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func requestAs(t *testing.T, employeeID *uuid.UUID) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if employeeID != nil {
		ctx := context.WithValue(req.Context(), middleware.EmployeeIDKey, *employeeID)
		req = req.WithContext(ctx)
	}
	return req
}

func TestRequire_GrantedOperationPasses(t *testing.T) {
	authorizer := &stubAuthorizer{
		formCode: entity.FormCitas,
		granted:  map[entity.Operation]bool{entity.OpRead: true},
	}
	handler := gatedHandler(authorizer, entity.FormCitas, entity.OpRead)

	actor := uuid.New()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(t, &actor))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequire_MissingOperationIsForbidden(t *testing.T) {
	authorizer := &stubAuthorizer{
		formCode: entity.FormCitas,
		granted:  map[entity.Operation]bool{entity.OpRead: true},
	}
	handler := gatedHandler(authorizer, entity.FormCitas, entity.OpDelete)

	actor := uuid.New()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(t, &actor))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequire_AnonymousCallerIsUnauthorized(t *testing.T) {
	authorizer := &stubAuthorizer{
		formCode: entity.FormCitas,
		granted:  map[entity.Operation]bool{entity.OpRead: true},
	}
	handler := gatedHandler(authorizer, entity.FormCitas, entity.OpRead)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(t, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequire_ResolverFailureFailsClosed(t *testing.T) {
	authorizer := &stubAuthorizer{err: errors.New("storage unavailable")}
	handler := gatedHandler(authorizer, entity.FormCitas, entity.OpRead)

	actor := uuid.New()
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestAs(t, &actor))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
