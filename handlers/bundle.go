package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Account endpoints
	SignInHandler        gin.HandlerFunc
	SignOutHandler       gin.HandlerFunc
	CreateAccountHandler gin.HandlerFunc
	MeHandler            gin.HandlerFunc

	// Booking endpoints
	ValidateAssignmentHandler gin.HandlerFunc
	CreateBookingHandler      gin.HandlerFunc
	GetBookingHandler         gin.HandlerFunc
	ListDayHandler            gin.HandlerFunc
	EditBookingHandler        gin.HandlerFunc
	AddCarerHandler           gin.HandlerFunc
	CancelBookingHandler      gin.HandlerFunc
	DeleteBookingHandler      gin.HandlerFunc
	MarkLateHandler           gin.HandlerFunc
	ReplicateWeekHandler      gin.HandlerFunc

	// Carer endpoints
	CreateCarerHandler      gin.HandlerFunc
	GetCarerHandler         gin.HandlerFunc
	ListCarersHandler       gin.HandlerFunc
	UpdateCarerHandler      gin.HandlerFunc
	SetCarerStatusHandler   gin.HandlerFunc
	DeleteCarerHandler      gin.HandlerFunc
	CarerDayScheduleHandler gin.HandlerFunc

	// Client endpoints
	CreateClientHandler gin.HandlerFunc
	GetClientHandler    gin.HandlerFunc
	ListClientsHandler  gin.HandlerFunc
	UpdateClientHandler gin.HandlerFunc
	DeleteClientHandler gin.HandlerFunc

	// Report endpoints
	DailyRotaCSVHandler gin.HandlerFunc
	DailyRotaPDFHandler gin.HandlerFunc
	CarerHoursHandler   gin.HandlerFunc
}
