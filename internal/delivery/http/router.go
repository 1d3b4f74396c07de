package http

import (
	"net/http"

	"mediquick-api/internal/delivery/http/handler"
	"mediquick-api/internal/delivery/http/middleware"
	"mediquick-api/internal/domain/entity"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	doctorHandler       *handler.DoctorHandler
	labTestHandler      *handler.LabTestHandler
	medicineHandler     *handler.MedicineHandler
	consultationHandler *handler.ConsultationHandler
	auditLogHandler     *handler.AuditLogHandler
	healthHandler       *handler.HealthHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loggerMiddleware    *middleware.LoggerMiddleware
	metricsMiddleware   *middleware.MetricsMiddleware
	rateLimiter         *middleware.RateLimiter
}

func NewRouter(
	doctorHandler *handler.DoctorHandler,
	labTestHandler *handler.LabTestHandler,
	medicineHandler *handler.MedicineHandler,
	consultationHandler *handler.ConsultationHandler,
	auditLogHandler *handler.AuditLogHandler,
	healthHandler *handler.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggerMiddleware *middleware.LoggerMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
	rateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		doctorHandler:       doctorHandler,
		labTestHandler:      labTestHandler,
		medicineHandler:     medicineHandler,
		consultationHandler: consultationHandler,
		auditLogHandler:     auditLogHandler,
		healthHandler:       healthHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		loggerMiddleware:    loggerMiddleware,
		metricsMiddleware:   metricsMiddleware,
		rateLimiter:         rateLimiter,
	}
}

// authed wraps h with authentication and, when roles are given, a role check.
func (r *Router) authed(h http.HandlerFunc, roles ...string) http.Handler {
	var next http.Handler = h
	if len(roles) > 0 {
		next = middleware.RequireRole(roles...)(next)
	}
	return r.authMiddleware.Authenticate(next)
}

// Setup registers every route and returns the root handler. CORS wraps the
// whole router so preflights are answered before route matching.
func (r *Router) Setup() http.Handler {
	r.router.Use(middleware.RequestID)
	r.router.Use(r.loggerMiddleware.Recover)
	r.router.Use(r.loggerMiddleware.Handle)
	r.router.Use(r.metricsMiddleware.Handle)

	r.router.Handle("/metrics", r.metricsMiddleware.Handler()).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()
	api.Use(r.rateLimiter.Handle)

	// Health check
	api.HandleFunc("/health", r.healthHandler.Health).Methods(http.MethodGet)

	// Doctors (public)
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.Handle("/doctors/{id}/consultations", r.authed(r.consultationHandler.GetDoctorConsultations, entity.RoleAdmin, entity.RoleDoctor)).Methods(http.MethodGet)

	// Lab tests (public reads, static paths before {id})
	api.HandleFunc("/lab-tests", r.labTestHandler.GetAllLabTests).Methods(http.MethodGet)
	api.HandleFunc("/lab-tests/popular", r.labTestHandler.PopularTests).Methods(http.MethodGet)
	api.HandleFunc("/lab-tests/featured", r.labTestHandler.FeaturedTests).Methods(http.MethodGet)
	api.HandleFunc("/lab-tests/search", r.labTestHandler.SearchTests).Methods(http.MethodGet)
	api.HandleFunc("/lab-tests/code/{code}", r.labTestHandler.GetLabTestByCode).Methods(http.MethodGet)
	api.HandleFunc("/lab-tests/{id}", r.labTestHandler.GetLabTest).Methods(http.MethodGet)
	api.HandleFunc("/lab-tests/{id}/report-eta", r.labTestHandler.ReportETA).Methods(http.MethodGet)
	api.Handle("/lab-tests/{id}/rate", r.authed(r.labTestHandler.RateLabTest)).Methods(http.MethodPost)
	api.Handle("/lab-tests/{id}/orders", r.authed(r.labTestHandler.RecordOrder)).Methods(http.MethodPost)

	// Medicines (public)
	api.HandleFunc("/medicines", r.medicineHandler.GetAllMedicines).Methods(http.MethodGet)
	api.HandleFunc("/medicines/{id}", r.medicineHandler.GetMedicine).Methods(http.MethodGet)

	// Consultations (protected)
	api.Handle("/consultations", r.authed(r.consultationHandler.BookConsultation, entity.RolePatient)).Methods(http.MethodPost)
	api.Handle("/consultations/me", r.authed(r.consultationHandler.GetMyConsultations)).Methods(http.MethodGet)
	api.Handle("/consultations/{id}", r.authed(r.consultationHandler.GetConsultation)).Methods(http.MethodGet)
	api.Handle("/consultations/{id}/cancel", r.authed(r.consultationHandler.CancelConsultation)).Methods(http.MethodPost)
	api.Handle("/consultations/{id}/rate", r.authed(r.consultationHandler.RateConsultation, entity.RolePatient)).Methods(http.MethodPost)
	api.Handle("/consultations/{id}/status", r.authed(r.consultationHandler.UpdateStatus, entity.RoleAdmin, entity.RoleDoctor)).Methods(http.MethodPatch)
	api.Handle("/consultations/{id}/prescription", r.authed(r.consultationHandler.SavePrescription, entity.RoleAdmin, entity.RoleDoctor)).Methods(http.MethodPut)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// Doctor management (admin)
	admin.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{id}", r.doctorHandler.DeactivateDoctor).Methods(http.MethodDelete)

	// Lab test management (admin)
	admin.HandleFunc("/lab-tests", r.labTestHandler.CreateLabTest).Methods(http.MethodPost)
	admin.HandleFunc("/lab-tests", r.labTestHandler.GetAllLabTests).Methods(http.MethodGet)
	admin.HandleFunc("/lab-tests/{id}", r.labTestHandler.UpdateLabTest).Methods(http.MethodPut)
	admin.HandleFunc("/lab-tests/{id}", r.labTestHandler.DeactivateLabTest).Methods(http.MethodDelete)

	// Medicine management (admin)
	admin.HandleFunc("/medicines", r.medicineHandler.CreateMedicine).Methods(http.MethodPost)
	admin.HandleFunc("/medicines", r.medicineHandler.GetAllMedicines).Methods(http.MethodGet)
	admin.HandleFunc("/medicines/{id}", r.medicineHandler.UpdateMedicine).Methods(http.MethodPut)
	admin.HandleFunc("/medicines/{id}", r.medicineHandler.DeactivateMedicine).Methods(http.MethodDelete)

	// Payments and audit trail (admin)
	admin.HandleFunc("/consultations/{id}/payment", r.consultationHandler.UpdatePayment).Methods(http.MethodPatch)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.corsMiddleware.Handle(r.router)
}
