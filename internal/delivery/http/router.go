package http

import (
	"net/http"

	"portal-citas-backend/internal/delivery/http/handler"
	"portal-citas-backend/internal/delivery/http/middleware"
	"portal-citas-backend/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router               *mux.Router
	availabilityHandler  *handler.AvailabilityHandler
	appointmentHandler   *handler.AppointmentHandler
	catalogHandler       *handler.CatalogHandler
	referenceHandler     *handler.ReferenceHandler
	employeeHandler      *handler.EmployeeHandler
	auditHandler         *handler.AuditHandler
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	corsMiddleware       *middleware.CORSMiddleware
}

func NewRouter(
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	catalogHandler *handler.CatalogHandler,
	referenceHandler *handler.ReferenceHandler,
	employeeHandler *handler.EmployeeHandler,
	auditHandler *handler.AuditHandler,
	authMiddleware *middleware.AuthMiddleware,
	permissionMiddleware *middleware.PermissionMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		availabilityHandler:  availabilityHandler,
		appointmentHandler:   appointmentHandler,
		catalogHandler:       catalogHandler,
		referenceHandler:     referenceHandler,
		employeeHandler:      employeeHandler,
		auditHandler:         auditHandler,
		authMiddleware:       authMiddleware,
		permissionMiddleware: permissionMiddleware,
		corsMiddleware:       corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes for citizens: availability, reservation and ticket
	// operations need no portal capability. Cancellation is keyed by the
	// ticket number, never by a bare appointment id.
	api.HandleFunc("/availability", r.availabilityHandler.GetAvailableSlots).Methods(http.MethodGet)
	api.HandleFunc("/appointments", r.appointmentHandler.ReserveSlot).Methods(http.MethodPost)
	api.HandleFunc("/appointments/ticket/{ticket}", r.appointmentHandler.GetAppointmentByTicket).Methods(http.MethodGet)
	api.HandleFunc("/appointments/ticket/{ticket}/cancel", r.appointmentHandler.CancelAppointmentByTicket).Methods(http.MethodPost)

	// Everything below runs as an authenticated portal employee and is
	// gated per route on the backing form and operation.
	portal := api.PathPrefix("/portal").Subrouter()
	portal.Use(r.authMiddleware.Authenticate)

	// Self-service: the caller's own tabs and effective permissions
	portal.HandleFunc("/me/tabs", r.employeeHandler.GetMyTabs).Methods(http.MethodGet)
	portal.HandleFunc("/me/permissions/{formCode}", r.employeeHandler.GetMyFormPermission).Methods(http.MethodGet)

	// Appointment administration (CITAS form)
	r.handle(portal, "/appointments/{id}", r.appointmentHandler.GetAppointment, entity.FormCitas, entity.OpRead, http.MethodGet)
	r.handle(portal, "/appointments/{id}", r.appointmentHandler.UpdateAppointment, entity.FormCitas, entity.OpUpdate, http.MethodPut)
	r.handle(portal, "/appointments/{id}", r.appointmentHandler.PurgeAppointment, entity.FormCitas, entity.OpDelete, http.MethodDelete)
	r.handle(portal, "/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment, entity.FormCitas, entity.OpUpdate, http.MethodPost)
	r.handle(portal, "/appointments/{id}/complete", r.appointmentHandler.CompleteAppointment, entity.FormCitas, entity.OpUpdate, http.MethodPost)
	r.handle(portal, "/customers/{customerId}/appointments", r.appointmentHandler.ListCustomerAppointments, entity.FormCitas, entity.OpRead, http.MethodGet)
	r.handle(portal, "/sites/{siteId}/appointments", r.appointmentHandler.ListSiteAppointments, entity.FormCitas, entity.OpRead, http.MethodGet)

	// Permission catalog (PERMISSIONS and ROLES forms)
	r.handle(portal, "/forms", r.catalogHandler.GetForms, entity.FormPermissions, entity.OpRead, http.MethodGet)
	r.handle(portal, "/permissions", r.catalogHandler.GetPermissions, entity.FormPermissions, entity.OpRead, http.MethodGet)
	r.handle(portal, "/roles", r.catalogHandler.GetRoles, entity.FormRoles, entity.OpRead, http.MethodGet)
	r.handle(portal, "/roles/{roleId}/forms/{formId}/permission", r.catalogHandler.GetAssignment, entity.FormPermissions, entity.OpRead, http.MethodGet)
	r.handle(portal, "/role-permissions", r.catalogHandler.AssignPermission, entity.FormPermissions, entity.OpUpdate, http.MethodPost)
	r.handle(portal, "/audit-logs", r.auditHandler.GetAuditLogs, entity.FormPermissions, entity.OpRead, http.MethodGet)

	// Employee tab allow-list (USERS form)
	r.handle(portal, "/employees/{id}/tabs", r.employeeHandler.UpdateEmployeeTabs, entity.FormUsers, entity.OpUpdate, http.MethodPut)

	// Sites (SEDES form)
	r.handle(portal, "/sites", r.referenceHandler.GetSites, entity.FormSedes, entity.OpRead, http.MethodGet)
	r.handle(portal, "/sites", r.referenceHandler.CreateSite, entity.FormSedes, entity.OpCreate, http.MethodPost)
	r.handle(portal, "/sites/{id}", r.referenceHandler.UpdateSite, entity.FormSedes, entity.OpUpdate, http.MethodPut)

	// Appointment types (TIPOS_CITA form)
	r.handle(portal, "/appointment-types", r.referenceHandler.GetAppointmentTypes, entity.FormTiposCita, entity.OpRead, http.MethodGet)
	r.handle(portal, "/appointment-types", r.referenceHandler.CreateAppointmentType, entity.FormTiposCita, entity.OpCreate, http.MethodPost)
	r.handle(portal, "/appointment-types/{id}", r.referenceHandler.UpdateAppointmentType, entity.FormTiposCita, entity.OpUpdate, http.MethodPut)

	// Hour templates (HORAS_DISPONIBLES form)
	r.handle(portal, "/sites/{siteId}/available-hours", r.referenceHandler.GetAvailableHours, entity.FormHorasDisponible, entity.OpRead, http.MethodGet)
	r.handle(portal, "/available-hours", r.referenceHandler.CreateAvailableHour, entity.FormHorasDisponible, entity.OpCreate, http.MethodPost)
	r.handle(portal, "/available-hours/{id}", r.referenceHandler.UpdateAvailableHour, entity.FormHorasDisponible, entity.OpUpdate, http.MethodPut)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

// handle registers a permission-gated route: the middleware re-resolves
// the actor's capability on the form before the handler runs.
func (r *Router) handle(sub *mux.Router, path string, h http.HandlerFunc, formCode string, op entity.Operation, method string) {
	sub.Handle(path, r.permissionMiddleware.Require(formCode, op)(h)).Methods(method)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
