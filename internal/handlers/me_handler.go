package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/middleware"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	barberIDVal, exists := c.Get(middleware.ContextBarberID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "barber_not_in_context"})
		return
	}

	barberID, ok := barberIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_barber_id_type"})
		return
	}

	var barber models.Barber
	if err := h.db.Preload("Barbershop").First(&barber, barberID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "barber_not_found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"barber": gin.H{
			"id":            barber.ID,
			"name":          barber.Name,
			"phone":         barber.Phone,
			"role":          barber.Role,
			"barbershop_id": barber.BarbershopID,
		},
		"barbershop": gin.H{
			"id":       barber.Barbershop.ID,
			"name":     barber.Barbershop.Name,
			"slug":     barber.Barbershop.Slug,
			"phone":    barber.Barbershop.Phone,
			"address":  barber.Barbershop.Address,
			"timezone": barber.Barbershop.Timezone,
		},
	})
}
