package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/cache"
	domain "github.com/BrunoVenuto/saas-barber-sub000/internal/domain/appointment"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/httperr"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/middleware"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
)

type WorkingHoursHandler struct {
	db    *gorm.DB
	repo  domain.Repository
	cache *cache.AvailabilityCache
}

func NewWorkingHoursHandler(db *gorm.DB, repo domain.Repository, c *cache.AvailabilityCache) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, repo: repo, cache: c}
}

// Cada entrada é UMA janela; o mesmo weekday pode aparecer mais de uma
// vez (turno da manhã + turno da tarde).
type WindowConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type WorkingHoursUpdateRequest struct {
	Windows []WindowConfig `json:"windows" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var windows []models.WorkingHourWindow
	if err := h.db.
		Where("barbershop_id = ? AND (barber_id = ? OR barber_id IS NULL)", barbershopID, barberID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar expediente.")
		return
	}

	c.JSON(http.StatusOK, windows)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID := c.MustGet(middleware.ContextBarberID).(uint)
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	toCreate := make([]models.WorkingHourWindow, 0, len(req.Windows))
	for _, w := range req.Windows {
		bID := barberID
		wh := models.WorkingHourWindow{
			BarbershopID: barbershopID,
			BarberID:     &bID,
			Weekday:      w.Weekday,
			StartTime:    w.StartTime,
			EndTime:      w.EndTime,
		}
		toCreate = append(toCreate, wh)
	}

	// janela invertida ou relógio malformado nunca chega ao banco
	if _, err := domain.ParseWindows(toCreate); err != nil {
		httperr.BadRequest(c, "invalid_window", err.Error())
		return
	}

	if err := h.repo.ReplaceWindowsForBarber(
		c.Request.Context(),
		barbershopID,
		barberID,
		toCreate,
	); err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar expediente.")
		return
	}

	// expediente novo → grade cacheada de qualquer data dele já era
	h.cache.InvalidateBarber(c.Request.Context(), barberID)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
