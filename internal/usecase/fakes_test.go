package usecase_test

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"portal-citas-backend/internal/domain/entity"
	"portal-citas-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// fakeAuditService counts recorded entries per action.
type fakeAuditService struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeAuditService) Record(ctx context.Context, employeeID *uuid.UUID, action, entityName, entityID string, metadata entity.JSON) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
}

func (f *fakeAuditService) count(action string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, a := range f.actions {
		if a == action {
			n++
		}
	}
	return n
}

type fakeEmployeeRepo struct {
	employees map[uuid.UUID]*entity.Employee
}

func newFakeEmployeeRepo(employees ...*entity.Employee) *fakeEmployeeRepo {
	repo := &fakeEmployeeRepo{employees: map[uuid.UUID]*entity.Employee{}}
	for _, e := range employees {
		repo.employees[e.ID] = e
	}
	return repo
}

func (f *fakeEmployeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Employee, error) {
	return f.employees[id], nil
}

func (f *fakeEmployeeRepo) FindByUsername(ctx context.Context, username string) (*entity.Employee, error) {
	for _, e := range f.employees {
		if e.Username == username {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeEmployeeRepo) UpdateAllowedTabs(ctx context.Context, id uuid.UUID, tabs entity.StringList) error {
	e, ok := f.employees[id]
	if !ok {
		return nil
	}
	e.AllowedTabs = tabs
	return nil
}

type fakeFormRepo struct {
	forms []entity.Form
}

func (f *fakeFormRepo) FindAll(ctx context.Context) ([]entity.Form, error) {
	return f.forms, nil
}

func (f *fakeFormRepo) FindByID(ctx context.Context, id int) (*entity.Form, error) {
	for i := range f.forms {
		if f.forms[i].ID == id {
			return &f.forms[i], nil
		}
	}
	return nil, nil
}

func (f *fakeFormRepo) FindByCode(ctx context.Context, code string) (*entity.Form, error) {
	for i := range f.forms {
		if f.forms[i].Code == code {
			return &f.forms[i], nil
		}
	}
	return nil, nil
}

type fakePermissionRepo struct {
	permissions []entity.Permission
}

func (f *fakePermissionRepo) FindAll(ctx context.Context) ([]entity.Permission, error) {
	return f.permissions, nil
}

func (f *fakePermissionRepo) FindByID(ctx context.Context, id int) (*entity.Permission, error) {
	for i := range f.permissions {
		if f.permissions[i].ID == id {
			return &f.permissions[i], nil
		}
	}
	return nil, nil
}

type fakeRoleRepo struct {
	roles []entity.Role
}

func (f *fakeRoleRepo) FindAll(ctx context.Context) ([]entity.Role, error) {
	return f.roles, nil
}

func (f *fakeRoleRepo) FindByID(ctx context.Context, id int) (*entity.Role, error) {
	for i := range f.roles {
		if f.roles[i].ID == id {
			return &f.roles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRoleRepo) FindByCode(ctx context.Context, code string) (*entity.Role, error) {
	for i := range f.roles {
		if f.roles[i].Code == code {
			return &f.roles[i], nil
		}
	}
	return nil, nil
}

type fakeRFPRepo struct {
	assignments []entity.RoleFormPermission
}

func (f *fakeRFPRepo) FindByRolesAndForm(ctx context.Context, roleIDs []int, formID int) ([]entity.RoleFormPermission, error) {
	var out []entity.RoleFormPermission
	for i := range f.assignments {
		if f.assignments[i].FormID != formID {
			continue
		}
		for _, r := range roleIDs {
			if f.assignments[i].RoleID == r {
				out = append(out, f.assignments[i])
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRFPRepo) FindByRoles(ctx context.Context, roleIDs []int) ([]entity.RoleFormPermission, error) {
	var out []entity.RoleFormPermission
	for i := range f.assignments {
		for _, r := range roleIDs {
			if f.assignments[i].RoleID == r {
				out = append(out, f.assignments[i])
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRFPRepo) FindByRoleAndForm(ctx context.Context, roleID, formID int) (*entity.RoleFormPermission, error) {
	for i := range f.assignments {
		if f.assignments[i].RoleID == roleID && f.assignments[i].FormID == formID {
			return &f.assignments[i], nil
		}
	}
	return nil, nil
}

func (f *fakeRFPRepo) Upsert(ctx context.Context, assignment *entity.RoleFormPermission) error {
	for i := range f.assignments {
		if f.assignments[i].RoleID == assignment.RoleID && f.assignments[i].FormID == assignment.FormID {
			f.assignments[i].PermissionID = assignment.PermissionID
			f.assignments[i].Permission = assignment.Permission
			return nil
		}
	}
	f.assignments = append(f.assignments, *assignment)
	return nil
}

type fakeSiteRepo struct {
	sites []entity.Site
}

func (f *fakeSiteRepo) FindAll(ctx context.Context) ([]entity.Site, error) {
	return f.sites, nil
}

func (f *fakeSiteRepo) FindByID(ctx context.Context, id int) (*entity.Site, error) {
	for i := range f.sites {
		if f.sites[i].ID == id {
			return &f.sites[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSiteRepo) Create(ctx context.Context, site *entity.Site) error {
	site.ID = len(f.sites) + 1
	f.sites = append(f.sites, *site)
	return nil
}

func (f *fakeSiteRepo) Update(ctx context.Context, site *entity.Site) error {
	for i := range f.sites {
		if f.sites[i].ID == site.ID {
			f.sites[i] = *site
			return nil
		}
	}
	return nil
}

type fakeTypeRepo struct {
	types []entity.AppointmentType
}

func (f *fakeTypeRepo) FindAll(ctx context.Context) ([]entity.AppointmentType, error) {
	return f.types, nil
}

func (f *fakeTypeRepo) FindByID(ctx context.Context, id int) (*entity.AppointmentType, error) {
	for i := range f.types {
		if f.types[i].ID == id {
			return &f.types[i], nil
		}
	}
	return nil, nil
}

func (f *fakeTypeRepo) Create(ctx context.Context, appointmentType *entity.AppointmentType) error {
	appointmentType.ID = len(f.types) + 1
	f.types = append(f.types, *appointmentType)
	return nil
}

func (f *fakeTypeRepo) Update(ctx context.Context, appointmentType *entity.AppointmentType) error {
	for i := range f.types {
		if f.types[i].ID == appointmentType.ID {
			f.types[i] = *appointmentType
			return nil
		}
	}
	return nil
}

type fakeHourRepo struct {
	hours []entity.AvailableHour
}

func (f *fakeHourRepo) FindActiveForSite(ctx context.Context, siteID int, typeID *int) ([]entity.AvailableHour, error) {
	var out []entity.AvailableHour
	for i := range f.hours {
		h := f.hours[i]
		if h.SiteID != siteID || h.IsActive == nil || !*h.IsActive {
			continue
		}
		if typeID != nil && h.AppointmentTypeID != nil && *h.AppointmentTypeID != *typeID {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeHourRepo) FindBySite(ctx context.Context, siteID int) ([]entity.AvailableHour, error) {
	var out []entity.AvailableHour
	for i := range f.hours {
		if f.hours[i].SiteID == siteID {
			out = append(out, f.hours[i])
		}
	}
	return out, nil
}

func (f *fakeHourRepo) FindByID(ctx context.Context, id int) (*entity.AvailableHour, error) {
	for i := range f.hours {
		if f.hours[i].ID == id {
			return &f.hours[i], nil
		}
	}
	return nil, nil
}

func (f *fakeHourRepo) Create(ctx context.Context, hour *entity.AvailableHour) error {
	hour.ID = len(f.hours) + 1
	f.hours = append(f.hours, *hour)
	return nil
}

func (f *fakeHourRepo) Update(ctx context.Context, hour *entity.AvailableHour) error {
	for i := range f.hours {
		if f.hours[i].ID == hour.ID {
			f.hours[i] = *hour
			return nil
		}
	}
	return nil
}

// fakeAppointmentRepo mirrors the storage contract: a mutex-guarded slot
// map stands in for the partial unique index, so concurrent Create calls
// against the same open slot see exactly one winner.
type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[uuid.UUID]*entity.Appointment{}}
}

func slotKey(siteID int, date time.Time, clock string) string {
	return fmt.Sprintf("%d/%s/%s", siteID, date.Format("2006-01-02"), clock)
}

func (f *fakeAppointmentRepo) slotHeld(key string, exclude uuid.UUID) bool {
	for _, a := range f.appointments {
		if a.ID == exclude || a.Status == entity.AppointmentStatusCancelled {
			continue
		}
		if slotKey(a.SiteID, a.Date, a.Time) == key {
			return true
		}
	}
	return false
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slotHeld(slotKey(appointment.SiteID, appointment.Date, appointment.Time), uuid.Nil) {
		return repository.ErrSlotTaken
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	stored := *appointment
	f.appointments[appointment.ID] = &stored
	return nil
}

func (f *fakeAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointmentRepo) FindByTicketNumber(ctx context.Context, ticketNumber string) (*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appointments {
		if a.TicketNumber == ticketNumber {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) FindByCustomerID(ctx context.Context, customerID uuid.UUID) ([]entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.CustomerID == customerID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindBySiteAndDate(ctx context.Context, siteID int, date time.Time) ([]entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.Appointment
	for _, a := range f.appointments {
		if a.SiteID == siteID && a.Date.Equal(date) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) FindOccupiedTimes(ctx context.Context, siteID int, date time.Time) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, a := range f.appointments {
		if a.SiteID == siteID && a.Date.Equal(date) && a.Status != entity.AppointmentStatusCancelled {
			out = append(out, a.Time)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) MarkCancelled(ctx context.Context, id uuid.UUID, reason string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok || a.Status != entity.AppointmentStatusPending {
		return 0, nil
	}
	a.Status = entity.AppointmentStatusCancelled
	a.CancellationReason = &reason
	return 1, nil
}

func (f *fakeAppointmentRepo) MarkCompleted(ctx context.Context, id uuid.UUID, technician string, technicianNotes *string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok || a.Status != entity.AppointmentStatusPending {
		return 0, nil
	}
	a.Status = entity.AppointmentStatusCompleted
	a.AssignedTechnician = &technician
	a.TechnicianNotes = technicianNotes
	return 1, nil
}

func (f *fakeAppointmentRepo) UpdateFieldsIfPending(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.appointments[id]
	if !ok || a.Status != entity.AppointmentStatusPending {
		return 0, nil
	}

	siteID := a.SiteID
	date := a.Date
	clock := a.Time
	if v, ok := fields["site_id"]; ok {
		siteID = v.(int)
	}
	if v, ok := fields["date"]; ok {
		date = v.(time.Time)
	}
	if v, ok := fields["time"]; ok {
		clock = v.(string)
	}
	if f.slotHeld(slotKey(siteID, date, clock), id) {
		return 0, repository.ErrSlotTaken
	}

	a.SiteID = siteID
	a.Date = date
	a.Time = clock
	if v, ok := fields["appointment_type_id"]; ok {
		a.AppointmentTypeID = v.(int)
	}
	if v, ok := fields["notes"]; ok {
		a.Notes = v.(string)
	}
	return 1, nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.appointments, id)
	return nil
}
