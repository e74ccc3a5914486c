package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/audit"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/httperr"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/timezone"
)

// ======================================================
// HANDLER — provisionamento de tenants (admin da plataforma)
// ======================================================

type PlatformHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPlatformHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *PlatformHandler {
	return &PlatformHandler{db: db, audit: auditDisp}
}

type ProvisionBarbershopRequest struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Timezone string `json:"timezone"`

	OwnerName    string `json:"owner_name" binding:"required"`
	OwnerPhone   string `json:"owner_phone"`
	OwnerSubject string `json:"owner_subject" binding:"required"` // sub no provedor de identidade
}

func (h *PlatformHandler) ProvisionBarbershop(c *gin.Context) {
	var req ProvisionBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.Slug))

	var count int64
	h.db.Model(&models.Barbershop{}).Where("slug = ?", slug).Count(&count)
	if count > 0 {
		httperr.BadRequest(c, "slug_already_exists", "Slug já em uso.")
		return
	}

	tz := req.Timezone
	if tz == "" {
		tz = timezone.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Timezone IANA inválido.")
		return
	}

	var shop models.Barbershop
	var owner models.Barber

	err := h.db.Transaction(func(tx *gorm.DB) error {
		shop = models.Barbershop{
			Name:     req.Name,
			Slug:     slug,
			Phone:    req.Phone,
			Address:  req.Address,
			Timezone: tz,
		}
		if err := tx.Create(&shop).Error; err != nil {
			return err
		}

		owner = models.Barber{
			BarbershopID: shop.ID,
			Subject:      req.OwnerSubject,
			Name:         req.OwnerName,
			Phone:        req.OwnerPhone,
			Role:         "owner",
			Active:       true,
		}
		return tx.Create(&owner).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_provision", "Erro ao provisionar barbearia.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		Action:       "barbershop_provisioned",
		Entity:       "barbershop",
		EntityID:     &shop.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"barbershop": shop,
		"owner": gin.H{
			"id":   owner.ID,
			"name": owner.Name,
			"role": owner.Role,
		},
	})
}
