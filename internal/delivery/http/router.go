package http

import (
	"net/http"

	"medical-appointments-api/internal/delivery/http/handler"
	"medical-appointments-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	patientHandler      *handler.PatientHandler
	doctorHandler       *handler.DoctorHandler
	appointmentHandler  *handler.AppointmentHandler
	rescheduleHandler   *handler.RescheduleHandler
	feedbackHandler     *handler.FeedbackHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	rescheduleHandler *handler.RescheduleHandler,
	feedbackHandler *handler.FeedbackHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	requestIDMiddleware *middleware.RequestIDMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		patientHandler:      patientHandler,
		doctorHandler:       doctorHandler,
		appointmentHandler:  appointmentHandler,
		rescheduleHandler:   rescheduleHandler,
		feedbackHandler:     feedbackHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		requestIDMiddleware: requestIDMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Public routes
	api.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/patients", r.patientHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/doctors", r.doctorHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/doctors", r.doctorHandler.Search).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id:[0-9]+}", r.doctorHandler.Get).Methods(http.MethodGet)

	// Patient routes (protected - patient only)
	patients := api.PathPrefix("/patients").Subrouter()
	patients.Use(r.authMiddleware.Authenticate)
	patients.Use(middleware.RequirePatient)

	patients.HandleFunc("/{id:[0-9]+}", r.patientHandler.Get).Methods(http.MethodGet)
	patients.HandleFunc("/{id:[0-9]+}", r.patientHandler.Update).Methods(http.MethodPatch)
	patients.HandleFunc("/{id:[0-9]+}", r.patientHandler.Delete).Methods(http.MethodDelete)

	patients.HandleFunc("/appointments", r.appointmentHandler.ListForPatient).Methods(http.MethodGet)
	patients.HandleFunc("/appointments/{doctorId:[0-9]+}", r.appointmentHandler.Create).Methods(http.MethodPost)
	patients.HandleFunc("/appointments/{appointmentId:[0-9]+}", r.appointmentHandler.UpdateCase).Methods(http.MethodPatch)
	patients.HandleFunc("/appointments/{appointmentId:[0-9]+}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	patients.HandleFunc("/reschedules", r.rescheduleHandler.ListForPatient).Methods(http.MethodGet)
	patients.HandleFunc("/reschedules/{appointmentId:[0-9]+}", r.rescheduleHandler.Propose).Methods(http.MethodPost)
	patients.HandleFunc("/reschedules/{appointmentId:[0-9]+}", r.rescheduleHandler.Cancel).Methods(http.MethodDelete)

	patients.HandleFunc("/feedbacks", r.feedbackHandler.ListForPatient).Methods(http.MethodGet)
	patients.HandleFunc("/feedbacks/{appointmentId:[0-9]+}", r.feedbackHandler.Create).Methods(http.MethodPost)
	patients.HandleFunc("/feedbacks/{appointmentId:[0-9]+}", r.feedbackHandler.Delete).Methods(http.MethodDelete)

	// Doctor routes (protected - doctor only)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.Use(middleware.RequireDoctor)

	doctors.HandleFunc("/{id:[0-9]+}", r.doctorHandler.Update).Methods(http.MethodPatch)
	doctors.HandleFunc("/{id:[0-9]+}", r.doctorHandler.Delete).Methods(http.MethodDelete)

	doctors.HandleFunc("/appointments", r.appointmentHandler.ListForDoctor).Methods(http.MethodGet)
	doctors.HandleFunc("/appointments/{appointmentId:[0-9]+}", r.appointmentHandler.UpdateCase).Methods(http.MethodPatch)
	doctors.HandleFunc("/appointments/{appointmentId:[0-9]+}", r.appointmentHandler.Delete).Methods(http.MethodDelete)
	doctors.HandleFunc("/appointments/{appointmentId:[0-9]+}/status", r.appointmentHandler.SetStatus).Methods(http.MethodPost)

	doctors.HandleFunc("/reschedules", r.rescheduleHandler.ListForDoctor).Methods(http.MethodGet)
	doctors.HandleFunc("/reschedules/{appointmentId:[0-9]+}", r.rescheduleHandler.Accept).Methods(http.MethodPost)
	doctors.HandleFunc("/reschedules/{appointmentId:[0-9]+}", r.rescheduleHandler.Reject).Methods(http.MethodDelete)

	doctors.HandleFunc("/patients", r.doctorHandler.ListPatients).Methods(http.MethodGet)
	doctors.HandleFunc("/feedbacks", r.feedbackHandler.ListForDoctor).Methods(http.MethodGet)

	// Cross-cutting middleware
	r.router.Use(r.requestIDMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
