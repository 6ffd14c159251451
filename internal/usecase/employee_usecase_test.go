package usecase_test

import (
	"context"
	"testing"

	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAllowedTabs_ReplacesList(t *testing.T) {
	employee := activeEmployee()
	employee.AllowedTabs = entity.StringList{"citas"}
	repo := newFakeEmployeeRepo(employee)
	audit := &fakeAuditService{}
	uc := usecase.NewEmployeeUsecase(testLogger(), repo, audit)

	err := uc.UpdateAllowedTabs(context.Background(), employee.ID, &dto.UpdateAllowedTabsRequest{
		Tabs: []string{"sedes", "tipos-cita"},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StringList{"sedes", "tipos-cita"}, repo.employees[employee.ID].AllowedTabs)
	assert.Equal(t, 1, audit.count(entity.AuditActionTabsUpdate))
}

func TestUpdateAllowedTabs_RejectsUnknownTab(t *testing.T) {
	employee := activeEmployee()
	uc := usecase.NewEmployeeUsecase(testLogger(), newFakeEmployeeRepo(employee), &fakeAuditService{})

	err := uc.UpdateAllowedTabs(context.Background(), employee.ID, &dto.UpdateAllowedTabsRequest{
		Tabs: []string{"citas", "no-such-tab"},
	})
	assert.ErrorIs(t, err, usecase.ErrUnknownTab)
}

func TestUpdateAllowedTabs_UnknownEmployee(t *testing.T) {
	uc := usecase.NewEmployeeUsecase(testLogger(), newFakeEmployeeRepo(), &fakeAuditService{})

	err := uc.UpdateAllowedTabs(context.Background(), uuid.New(), &dto.UpdateAllowedTabsRequest{
		Tabs: []string{"citas"},
	})
	assert.ErrorIs(t, err, usecase.ErrEmployeeNotFound)
}
