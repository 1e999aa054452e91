package handlers

import (
	userRepoPkg "homehelper/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Session endpoints
	RegisterHandler      gin.HandlerFunc
	LoginHandler         gin.HandlerFunc
	LogoutHandler        gin.HandlerFunc
	MeHandler            gin.HandlerFunc
	UpdateProfileHandler gin.HandlerFunc
	DashboardHandler     gin.HandlerFunc

	// Catalog endpoints
	ListServicesHandler           gin.HandlerFunc
	GetServiceHandler             gin.HandlerFunc
	CreateServiceHandler          gin.HandlerFunc
	UpdateServiceHandler          gin.HandlerFunc
	SetServiceAvailabilityHandler gin.HandlerFunc

	// Booking wizard endpoints
	WizardStateHandler   gin.HandlerFunc
	SelectServiceHandler gin.HandlerFunc
	SetScheduleHandler   gin.HandlerFunc
	SetAddressHandler    gin.HandlerFunc
	SetPaymentHandler    gin.HandlerFunc
	SetDetailsHandler    gin.HandlerFunc
	StepHandler          gin.HandlerFunc
	ConfirmHandler       gin.HandlerFunc
	ClearHandler         gin.HandlerFunc
	CancelHandler        gin.HandlerFunc
	MyBookingsHandler    gin.HandlerFunc

	// Provider endpoints
	SetAvailabilityHandler gin.HandlerFunc
	GetAvailabilityHandler gin.HandlerFunc
	ProviderJobsHandler    gin.HandlerFunc
	UpdateJobStatusHandler gin.HandlerFunc

	// Admin endpoints
	ListUsersHandler           gin.HandlerFunc
	ListBookingsHandler        gin.HandlerFunc
	UpdateBookingStatusHandler gin.HandlerFunc
}
