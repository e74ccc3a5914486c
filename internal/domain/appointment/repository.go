package appointment

import (
	"context"
	"time"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
)

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ServiceID    uint
	Date         time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Repository interface {
	// -------- Barbershop --------
	GetBarbershopByID(
		ctx context.Context,
		id uint,
	) (*models.Barbershop, error)

	// -------- Barber --------
	GetBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
	) (*models.Barber, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		barbershopID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		barbershopID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Working hour windows --------
	// Janelas do weekday, específicas do barbeiro OU da barbearia inteira
	// (barber_id nulo). A união das duas vale para o barbeiro.
	ListWindowsForWeekday(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		weekday int,
	) ([]models.WorkingHourWindow, error)

	ReplaceWindowsForBarber(
		ctx context.Context,
		barbershopID uint,
		barberID uint,
		windows []models.WorkingHourWindow,
	) error

	// -------- Appointment (create / conflict) --------
	// CreateAppointment devolve httperr "slot_taken" quando a constraint
	// de exclusão do banco rejeita o intervalo.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (state change) --------
	GetAppointmentForBarber(
		ctx context.Context,
		appointmentID uint,
		barberID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	// Agendamentos não cancelados do dia, ordenados por início.
	ListAppointmentsForDay(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
