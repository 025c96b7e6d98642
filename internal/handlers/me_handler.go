package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberdesk/barbershop-api/internal/httperr"
	"github.com/barberdesk/barbershop-api/internal/httpresp"
	"github.com/barberdesk/barbershop-api/internal/middleware"
	"github.com/barberdesk/barbershop-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) Get(c *gin.Context) {
	id := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	if role == middleware.RoleBarber {
		var barber models.Barber
		if err := h.db.Preload("Profile").First(&barber, id).Error; err != nil {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
		httpresp.OK(c, gin.H{"role": role, "user": barber})
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}
	httpresp.OK(c, gin.H{"role": role, "user": client})
}
