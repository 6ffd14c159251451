package usecase_test

import (
	"context"
	"testing"
	"time"

	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availabilityFixture(hours []entity.AvailableHour, appointments *fakeAppointmentRepo) usecase.AvailabilityUsecase {
	sites := &fakeSiteRepo{sites: []entity.Site{
		{ID: 1, Code: "NORTE", Name: "Sede Norte", IsActive: boolPtr(true)},
		{ID: 2, Code: "CERRADA", Name: "Sede Cerrada", IsActive: boolPtr(false)},
	}}
	return usecase.NewAvailabilityUsecase(testLogger(), sites, &fakeHourRepo{hours: hours}, appointments)
}

func pendingAppointment(siteID int, date, clock string) *entity.Appointment {
	day, _ := time.Parse("2006-01-02", date)
	return &entity.Appointment{
		ID:                uuid.New(),
		TicketNumber:      "CT-" + day.Format("20060102") + "-" + clock,
		CustomerID:        uuid.New(),
		SiteID:            siteID,
		AppointmentTypeID: 1,
		Date:              day,
		Time:              clock,
		Status:            entity.AppointmentStatusPending,
	}
}

func TestComputeAvailableSlots_SubtractsOccupiedTimes(t *testing.T) {
	hours := []entity.AvailableHour{
		{ID: 1, SiteID: 1, Time: "08:00", IsActive: boolPtr(true)},
		{ID: 2, SiteID: 1, Time: "09:00", IsActive: boolPtr(true)},
		{ID: 3, SiteID: 1, Time: "10:00", IsActive: boolPtr(true)},
	}
	appointments := newFakeAppointmentRepo()
	require.NoError(t, appointments.Create(context.Background(), pendingAppointment(1, "2026-09-14", "09:00")))

	uc := availabilityFixture(hours, appointments)

	times, err := uc.ComputeAvailableSlots(context.Background(), "2026-09-14", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "10:00"}, times)
}

func TestComputeAvailableSlots_CancelledAppointmentFreesSlot(t *testing.T) {
	hours := []entity.AvailableHour{
		{ID: 1, SiteID: 1, Time: "08:00", IsActive: boolPtr(true)},
		{ID: 2, SiteID: 1, Time: "09:00", IsActive: boolPtr(true)},
		{ID: 3, SiteID: 1, Time: "10:00", IsActive: boolPtr(true)},
	}
	appointments := newFakeAppointmentRepo()
	booked := pendingAppointment(1, "2026-09-14", "09:00")
	require.NoError(t, appointments.Create(context.Background(), booked))

	rows, err := appointments.MarkCancelled(context.Background(), booked.ID, "cita reprogramada por el cliente")
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	uc := availabilityFixture(hours, appointments)

	times, err := uc.ComputeAvailableSlots(context.Background(), "2026-09-14", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "09:00", "10:00"}, times)
}

func TestComputeAvailableSlots_DeduplicatesAndSortsTemplates(t *testing.T) {
	hours := []entity.AvailableHour{
		{ID: 1, SiteID: 1, Time: "10:00", IsActive: boolPtr(true)},
		{ID: 2, SiteID: 1, Time: "08:00", IsActive: boolPtr(true)},
		{ID: 3, SiteID: 1, Time: "08:00:00", AppointmentTypeID: intPtr(1), IsActive: boolPtr(true)},
	}
	uc := availabilityFixture(hours, newFakeAppointmentRepo())

	times, err := uc.ComputeAvailableSlots(context.Background(), "2026-09-14", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "10:00"}, times)
}

func TestComputeAvailableSlots_TypeFilterKeepsGenericTemplates(t *testing.T) {
	hours := []entity.AvailableHour{
		{ID: 1, SiteID: 1, Time: "08:00", AppointmentTypeID: nil, IsActive: boolPtr(true)},
		{ID: 2, SiteID: 1, Time: "09:00", AppointmentTypeID: intPtr(1), IsActive: boolPtr(true)},
		{ID: 3, SiteID: 1, Time: "10:00", AppointmentTypeID: intPtr(2), IsActive: boolPtr(true)},
	}
	uc := availabilityFixture(hours, newFakeAppointmentRepo())

	times, err := uc.ComputeAvailableSlots(context.Background(), "2026-09-14", 1, intPtr(1))
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00", "09:00"}, times)
}

func TestComputeAvailableSlots_InactiveTemplateExcluded(t *testing.T) {
	hours := []entity.AvailableHour{
		{ID: 1, SiteID: 1, Time: "08:00", IsActive: boolPtr(true)},
		{ID: 2, SiteID: 1, Time: "09:00", IsActive: boolPtr(false)},
	}
	uc := availabilityFixture(hours, newFakeAppointmentRepo())

	times, err := uc.ComputeAvailableSlots(context.Background(), "2026-09-14", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"08:00"}, times)
}

func TestComputeAvailableSlots_EmptyForBadInput(t *testing.T) {
	hours := []entity.AvailableHour{
		{ID: 1, SiteID: 1, Time: "08:00", IsActive: boolPtr(true)},
	}
	uc := availabilityFixture(hours, newFakeAppointmentRepo())

	for name, query := range map[string]struct {
		date   string
		siteID int
	}{
		"malformed date": {"14/09/2026", 1},
		"unknown site":   {"2026-09-14", 99},
		"inactive site":  {"2026-09-14", 2},
	} {
		times, err := uc.ComputeAvailableSlots(context.Background(), query.date, query.siteID, nil)
		require.NoError(t, err, name)
		assert.Equal(t, []string{}, times, name)
	}
}
