package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BrunoVenuto/saas-barber-sub000/internal/domain/appointment"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/httperr"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/middleware"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
	ucAppointment "github.com/BrunoVenuto/saas-barber-sub000/internal/usecase/appointment"
)

// ======================================================
// HANDLER — agenda do barbeiro autenticado
// ======================================================

type AppointmentHandler struct {
	db             *gorm.DB
	reservationUC  *ucAppointment.CreateReservation
	availabilityUC *ucAppointment.GetAvailability
	confirmUC      *ucAppointment.ConfirmAppointment
	completeUC     *ucAppointment.CompleteAppointment
	cancelUC       *ucAppointment.CancelAppointment
	listByDateUC   *ucAppointment.ListAppointmentsByDate
	listByMonthUC  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	reservationUC *ucAppointment.CreateReservation,
	availabilityUC *ucAppointment.GetAvailability,
	confirmUC *ucAppointment.ConfirmAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listByMonthUC *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		reservationUC:  reservationUC,
		availabilityUC: availabilityUC,
		confirmUC:      confirmUC,
		completeUC:     completeUC,
		cancelUC:       cancelUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Notes       string `json:"notes"`
}

// ======================================================
// CREATE (walk-in / telefone, agendado pelo próprio barbeiro)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.reservationUC.Execute(
		c.Request.Context(),
		ucAppointment.CreateReservationInput{
			BarbershopID: barbershopID,
			BarberID:     barberID,
			ClientName:   req.ClientName,
			ClientPhone:  req.ClientPhone,
			ClientEmail:  req.ClientEmail,
			ServiceID:    req.ServiceID,
			Date:         req.Date,
			Time:         req.Time,
			Notes:        req.Notes,
		},
	)

	if err != nil {
		mapReservationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// AVAILABILITY (visão do barbeiro)
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.Internal(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	date, err := parseDateInShop(&shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			BarbershopID: barbershopID,
			BarberID:     barberID,
			ServiceID:    uint(serviceID),
			Date:         date,
		},
	)
	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
			return
		}
		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		httperr.Internal(c, "barbershop_not_found", "Barbearia não encontrada.")
		return
	}

	date, err := parseDateInShop(&shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	out, err := h.listByDateUC.Execute(c.Request.Context(), barberID, barbershopID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         dateStr,
		"appointments": out,
	})
}

// ======================================================
// LIST BY MONTH
// ======================================================

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	out, err := h.listByMonthUC.Execute(c.Request.Context(), barberID, barbershopID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// STATE TRANSITIONS
// ======================================================

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(ctx *gin.Context, barbershopID, barberID, appointmentID uint) (*models.Appointment, error),
) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := run(c, barbershopID, barberID, uint(id))
	if err != nil {
		switch httperr.BusinessCode(err) {
		case "appointment_not_found":
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		case "invalid_state":
			httperr.BadRequest(c, "invalid_state", "Transição de status não permitida.")
		default:
			httperr.Internal(c, "transition_failed", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, shopID, barberID, id uint) (*models.Appointment, error) {
		return h.confirmUC.Execute(ctx.Request.Context(), shopID, barberID, id)
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, shopID, barberID, id uint) (*models.Appointment, error) {
		return h.completeUC.Execute(ctx.Request.Context(), shopID, barberID, id)
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, shopID, barberID, id uint) (*models.Appointment, error) {
		return h.cancelUC.Execute(ctx.Request.Context(), shopID, barberID, id)
	})
}
