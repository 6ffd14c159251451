package usecase_test

import (
	"context"
	"testing"
	"time"

	"portal-citas-backend/internal/delivery/dto"
	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	uc           usecase.AppointmentUsecase
	appointments *fakeAppointmentRepo
	audit        *fakeAuditService
}

func newAppointmentFixture() *appointmentFixture {
	appointments := newFakeAppointmentRepo()
	audit := &fakeAuditService{}
	sites := &fakeSiteRepo{sites: []entity.Site{
		{ID: 1, Code: "NORTE", Name: "Sede Norte", IsActive: boolPtr(true)},
		{ID: 2, Code: "SUR", Name: "Sede Sur", IsActive: boolPtr(true)},
	}}
	types := &fakeTypeRepo{types: []entity.AppointmentType{
		{ID: 1, Name: "Nueva conexión", EstimatedMinutes: 30, IsActive: boolPtr(true)},
	}}
	uc := usecase.NewAppointmentUsecase(testLogger(), appointments, sites, types, audit)
	return &appointmentFixture{uc: uc, appointments: appointments, audit: audit}
}

func (fx *appointmentFixture) seedPending(t *testing.T, date, clock string) uuid.UUID {
	t.Helper()
	appointment := pendingAppointment(1, date, clock)
	require.NoError(t, fx.appointments.Create(context.Background(), appointment))
	return appointment.ID
}

func completeRequest() *dto.CompleteAppointmentRequest {
	return &dto.CompleteAppointmentRequest{AssignedTechnician: "M. Torres"}
}

func TestComplete_TransitionsPendingAppointment(t *testing.T) {
	fx := newAppointmentFixture()
	id := fx.seedPending(t, "2026-09-14", "08:00")

	require.NoError(t, fx.uc.Complete(context.Background(), id, completeRequest()))

	stored, err := fx.appointments.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCompleted, stored.Status)
	require.NotNil(t, stored.AssignedTechnician)
	assert.Equal(t, "M. Torres", *stored.AssignedTechnician)
	assert.Equal(t, 1, fx.audit.count(entity.AuditActionAppointmentComplete))
}

func TestComplete_RequiresTechnician(t *testing.T) {
	fx := newAppointmentFixture()
	id := fx.seedPending(t, "2026-09-14", "08:00")

	err := fx.uc.Complete(context.Background(), id, &dto.CompleteAppointmentRequest{AssignedTechnician: "   "})
	assert.ErrorIs(t, err, usecase.ErrTechnicianRequired)
}

func TestComplete_IsIdempotent(t *testing.T) {
	fx := newAppointmentFixture()
	id := fx.seedPending(t, "2026-09-14", "08:00")

	require.NoError(t, fx.uc.Complete(context.Background(), id, completeRequest()))
	require.NoError(t, fx.uc.Complete(context.Background(), id, completeRequest()))

	assert.Equal(t, 1, fx.audit.count(entity.AuditActionAppointmentComplete))
}

func TestComplete_CancelledAppointmentIsRejected(t *testing.T) {
	fx := newAppointmentFixture()
	id := fx.seedPending(t, "2026-09-14", "08:00")

	rows, err := fx.appointments.MarkCancelled(context.Background(), id, "el cliente no puede asistir")
	require.NoError(t, err)
	require.EqualValues(t, 1, rows)

	err = fx.uc.Complete(context.Background(), id, completeRequest())
	assert.ErrorIs(t, err, usecase.ErrAlreadyCancelled)
}

func TestUpdate_EditsPendingBookingFields(t *testing.T) {
	fx := newAppointmentFixture()
	id := fx.seedPending(t, "2026-09-14", "08:00")

	updated, err := fx.uc.Update(context.Background(), id, &dto.UpdateAppointmentRequest{
		SiteID: intPtr(2),
		Time:   strPtr("09:00"),
		Notes:  strPtr("el cliente llega tarde"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.SiteID)
	assert.Equal(t, "09:00", updated.Time)
	assert.Equal(t, "el cliente llega tarde", updated.Notes)
	assert.Equal(t, 1, fx.audit.count(entity.AuditActionAppointmentUpdate))
}

func TestUpdate_RejectsTerminalAppointment(t *testing.T) {
	fx := newAppointmentFixture()
	id := fx.seedPending(t, "2026-09-14", "08:00")
	require.NoError(t, fx.uc.Complete(context.Background(), id, completeRequest()))

	_, err := fx.uc.Update(context.Background(), id, &dto.UpdateAppointmentRequest{Notes: strPtr("tarde")})
	assert.ErrorIs(t, err, usecase.ErrNotPending)
}

func TestUpdate_MoveToOccupiedSlotConflicts(t *testing.T) {
	fx := newAppointmentFixture()
	id := fx.seedPending(t, "2026-09-14", "08:00")
	fx.seedPending(t, "2026-09-14", "09:00")

	_, err := fx.uc.Update(context.Background(), id, &dto.UpdateAppointmentRequest{Time: strPtr("09:00")})
	assert.ErrorIs(t, err, usecase.ErrSlotConflict)
}

func TestUpdate_NoFieldsIsNoOp(t *testing.T) {
	fx := newAppointmentFixture()
	id := fx.seedPending(t, "2026-09-14", "08:00")

	updated, err := fx.uc.Update(context.Background(), id, &dto.UpdateAppointmentRequest{})
	require.NoError(t, err)
	assert.Equal(t, "08:00", updated.Time)
	assert.Equal(t, 0, fx.audit.count(entity.AuditActionAppointmentUpdate))
}

func TestPurge_RemovesRecord(t *testing.T) {
	fx := newAppointmentFixture()
	id := fx.seedPending(t, "2026-09-14", "08:00")

	require.NoError(t, fx.uc.Purge(context.Background(), id))

	_, err := fx.uc.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, usecase.ErrAppointmentNotFound)
	assert.Equal(t, 1, fx.audit.count(entity.AuditActionAppointmentPurge))
}

func TestGetByTicketNumber(t *testing.T) {
	fx := newAppointmentFixture()
	appointment := pendingAppointment(1, "2026-09-14", "08:00")
	appointment.TicketNumber = "CT-20260914-0001"
	require.NoError(t, fx.appointments.Create(context.Background(), appointment))

	found, err := fx.uc.GetByTicketNumber(context.Background(), "CT-20260914-0001")
	require.NoError(t, err)
	assert.Equal(t, appointment.ID.String(), found.ID)

	_, err = fx.uc.GetByTicketNumber(context.Background(), "CT-20260914-9999")
	assert.ErrorIs(t, err, usecase.ErrAppointmentNotFound)
}

func TestListBySiteAndDate(t *testing.T) {
	fx := newAppointmentFixture()
	fx.seedPending(t, "2026-09-14", "08:00")
	fx.seedPending(t, "2026-09-14", "09:00")
	fx.seedPending(t, "2026-09-15", "08:00")

	list, err := fx.uc.ListBySiteAndDate(context.Background(), 1, "2026-09-14")
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)

	_, err = fx.uc.ListBySiteAndDate(context.Background(), 1, "14/09/2026")
	assert.ErrorIs(t, err, usecase.ErrInvalidDate)
}

func TestListByCustomer(t *testing.T) {
	fx := newAppointmentFixture()
	customerID := uuid.New()

	appointment := pendingAppointment(1, "2026-09-14", "08:00")
	appointment.CustomerID = customerID
	require.NoError(t, fx.appointments.Create(context.Background(), appointment))
	fx.seedPending(t, "2026-09-14", "09:00")

	list, err := fx.uc.ListByCustomer(context.Background(), customerID)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, customerID.String(), list.Appointments[0].CustomerID)
}

func TestStateMachine_TerminalStatusesAcceptOnlyReassertion(t *testing.T) {
	day, _ := time.Parse("2006-01-02", "2026-09-14")
	appointment := &entity.Appointment{Date: day, Time: "08:00", Status: entity.AppointmentStatusPending}

	assert.True(t, appointment.CanTransitionTo(entity.AppointmentStatusCompleted))
	assert.True(t, appointment.CanTransitionTo(entity.AppointmentStatusCancelled))

	appointment.Status = entity.AppointmentStatusCompleted
	assert.True(t, appointment.IsTerminal())
	assert.True(t, appointment.CanTransitionTo(entity.AppointmentStatusCompleted))
	assert.False(t, appointment.CanTransitionTo(entity.AppointmentStatusCancelled))
	assert.False(t, appointment.CanTransitionTo(entity.AppointmentStatusPending))

	appointment.Status = entity.AppointmentStatusCancelled
	assert.True(t, appointment.CanTransitionTo(entity.AppointmentStatusCancelled))
	assert.False(t, appointment.CanTransitionTo(entity.AppointmentStatusCompleted))
}
