package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/httperr"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/media"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/middleware"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/models"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/timezone"
)

type BarbershopHandler struct {
	db       *gorm.DB
	uploader *media.Uploader
}

func NewBarbershopHandler(db *gorm.DB, uploader *media.Uploader) *BarbershopHandler {
	return &BarbershopHandler{db: db, uploader: uploader}
}

type UpdateBarbershopConfigRequest struct {
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	Timezone          *string `json:"timezone"`
}

func (h *BarbershopHandler) getShop(c *gin.Context) (*models.Barbershop, bool) {
	barbershopID := c.MustGet(middleware.ContextBarbershopID).(uint)

	var shop models.Barbershop
	if err := h.db.First(&shop, barbershopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "barbershop_not_found", "Barbearia não encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_barbershop", "Erro ao buscar dados da barbearia.")
		return nil, false
	}
	return &shop, true
}

func (h *BarbershopHandler) GetMeBarbershop(c *gin.Context) {
	shop, ok := h.getShop(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, shop)
}

func (h *BarbershopHandler) UpdateMeBarbershop(c *gin.Context) {
	shop, ok := h.getShop(c)
	if !ok {
		return
	}

	var req UpdateBarbershopConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone IANA inválido.")
			return
		}
		shop.Timezone = *req.Timezone
	}

	if err := h.db.Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar as configurações da barbearia.")
		return
	}

	c.JSON(http.StatusOK, shop)
}

// ======================================================
// LOGO (PNG/JPEG → webp → S3)
// ======================================================

func (h *BarbershopHandler) UploadLogo(c *gin.Context) {
	if !h.uploader.Enabled() {
		httperr.Internal(c, "media_storage_disabled", "Armazenamento de mídia não configurado.")
		return
	}

	shop, ok := h.getShop(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "missing_logo_file", "Arquivo de logo obrigatório (campo 'logo').")
		return
	}
	defer file.Close()

	url, err := h.uploader.UploadLogo(c.Request.Context(), shop.ID, file)
	if err != nil {
		httperr.BadRequest(c, "invalid_logo_file", "Não foi possível processar a imagem enviada.")
		return
	}

	shop.LogoURL = url
	if err := h.db.Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barbershop", "Erro ao salvar o logo.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": url})
}
