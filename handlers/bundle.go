package handlers

import (
	"agendamento/middleware"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Verifies bearer tokens on protected routes.
	TokenVerifier middleware.TokenVerifier

	// Service endpoints
	RootHandler        gin.HandlerFunc
	HealthCheckHandler gin.HandlerFunc

	// User endpoints
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	GetProfileHandler       gin.HandlerFunc
	UpdateProfileHandler    gin.HandlerFunc

	// Company endpoints
	RegisterCompanyHandler gin.HandlerFunc
	AddServiceHandler      gin.HandlerFunc
	ListServicesHandler    gin.HandlerFunc

	// Booking endpoints
	CreateAppointmentHandler gin.HandlerFunc
	ListAppointmentsHandler  gin.HandlerFunc
}

// NewHandlerBundle wires the handler methods into a bundle.
func NewHandlerBundle(verifier middleware.TokenVerifier, health *HealthHandler, users *UserHandler, companies *CompanyHandler, bookings *BookingHandler) *HandlerBundle {
	return &HandlerBundle{
		TokenVerifier: verifier,

		RootHandler:        health.RootHandler,
		HealthCheckHandler: health.HealthCheckHandler,

		RegisterUserHandler:     users.RegisterUserHandler,
		AuthenticateUserHandler: users.AuthenticateUserHandler,
		GetProfileHandler:       users.GetProfileHandler,
		UpdateProfileHandler:    users.UpdateProfileHandler,

		RegisterCompanyHandler: companies.RegisterCompanyHandler,
		AddServiceHandler:      companies.AddServiceHandler,
		ListServicesHandler:    companies.ListServicesHandler,

		CreateAppointmentHandler: bookings.CreateAppointmentHandler,
		ListAppointmentsHandler:  bookings.ListAppointmentsHandler,
	}
}
