package usecase_test

import (
	"context"
	"testing"

	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReferenceFixture() (usecase.ReferenceUsecase, *fakeSiteRepo, *fakeTypeRepo, *fakeHourRepo) {
	sites := &fakeSiteRepo{sites: []entity.Site{
		{ID: 1, Code: "NORTE", Name: "Sede Norte", IsActive: boolPtr(true)},
	}}
	types := &fakeTypeRepo{types: []entity.AppointmentType{
		{ID: 1, Name: "Nueva conexión", EstimatedMinutes: 30, IsActive: boolPtr(true)},
	}}
	hours := &fakeHourRepo{hours: []entity.AvailableHour{
		{ID: 1, SiteID: 1, Time: "08:00", IsActive: boolPtr(true)},
	}}
	return usecase.NewReferenceUsecase(testLogger(), sites, types, hours), sites, types, hours
}

func TestUpdateSite_DeactivationIsSoft(t *testing.T) {
	uc, sites, _, _ := newReferenceFixture()

	updated, err := uc.UpdateSite(context.Background(), 1, &dto.UpdateSiteRequest{IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	// The record stays listable for administration
	all, err := uc.ListSites(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Len(t, sites.sites, 1)
}

func TestUpdateSite_UnknownSite(t *testing.T) {
	uc, _, _, _ := newReferenceFixture()

	_, err := uc.UpdateSite(context.Background(), 99, &dto.UpdateSiteRequest{Name: strPtr("Otra")})
	assert.ErrorIs(t, err, usecase.ErrSiteNotFound)
}

func TestCreateAppointmentType_BoundsEstimatedMinutes(t *testing.T) {
	uc, _, _, _ := newReferenceFixture()

	_, err := uc.CreateAppointmentType(context.Background(), &dto.CreateAppointmentTypeRequest{
		Name: "Revisión", EstimatedMinutes: 0,
	})
	assert.ErrorIs(t, err, usecase.ErrMinutesOutOfRange)

	_, err = uc.CreateAppointmentType(context.Background(), &dto.CreateAppointmentTypeRequest{
		Name: "Revisión", EstimatedMinutes: 481,
	})
	assert.ErrorIs(t, err, usecase.ErrMinutesOutOfRange)

	created, err := uc.CreateAppointmentType(context.Background(), &dto.CreateAppointmentTypeRequest{
		Name: "Revisión", EstimatedMinutes: 480,
	})
	require.NoError(t, err)
	assert.Equal(t, 480, created.EstimatedMinutes)
}

func TestUpdateAppointmentType_BoundsEstimatedMinutes(t *testing.T) {
	uc, _, _, _ := newReferenceFixture()

	_, err := uc.UpdateAppointmentType(context.Background(), 1, &dto.UpdateAppointmentTypeRequest{
		EstimatedMinutes: intPtr(900),
	})
	assert.ErrorIs(t, err, usecase.ErrMinutesOutOfRange)

	updated, err := uc.UpdateAppointmentType(context.Background(), 1, &dto.UpdateAppointmentTypeRequest{
		EstimatedMinutes: intPtr(45),
	})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.EstimatedMinutes)
}

func TestCreateAvailableHour_ValidatesReferences(t *testing.T) {
	uc, _, _, _ := newReferenceFixture()

	_, err := uc.CreateAvailableHour(context.Background(), &dto.CreateAvailableHourRequest{
		Time: "9 en punto", SiteID: 1,
	})
	assert.ErrorIs(t, err, usecase.ErrInvalidTimeFormat)

	_, err = uc.CreateAvailableHour(context.Background(), &dto.CreateAvailableHourRequest{
		Time: "09:00", SiteID: 99,
	})
	assert.ErrorIs(t, err, usecase.ErrSiteNotFound)

	_, err = uc.CreateAvailableHour(context.Background(), &dto.CreateAvailableHourRequest{
		Time: "09:00", SiteID: 1, AppointmentTypeID: intPtr(99),
	})
	assert.ErrorIs(t, err, usecase.ErrTypeNotFound)

	created, err := uc.CreateAvailableHour(context.Background(), &dto.CreateAvailableHourRequest{
		Time: "09:00", SiteID: 1, AppointmentTypeID: intPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, "09:00", created.Time)
}

func TestUpdateAvailableHour_NormalizesClock(t *testing.T) {
	uc, _, _, hours := newReferenceFixture()

	updated, err := uc.UpdateAvailableHour(context.Background(), 1, &dto.UpdateAvailableHourRequest{
		Time: strPtr("10:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "10:30", updated.Time)
	assert.Equal(t, "10:30", hours.hours[0].Time)

	_, err = uc.UpdateAvailableHour(context.Background(), 99, &dto.UpdateAvailableHourRequest{})
	assert.ErrorIs(t, err, usecase.ErrHourNotFound)
}
