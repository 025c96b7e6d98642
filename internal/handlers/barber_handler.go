package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberdesk/barbershop-api/internal/httperr"
	"github.com/barberdesk/barbershop-api/internal/httpresp"
	"github.com/barberdesk/barbershop-api/internal/middleware"
	"github.com/barberdesk/barbershop-api/internal/models"
	"github.com/barberdesk/barbershop-api/internal/validators"
)

type BarberHandler struct {
	db *gorm.DB
}

func NewBarberHandler(db *gorm.DB) *BarberHandler {
	return &BarberHandler{db: db}
}

type UpdateBarberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// List is the public barber directory.
func (h *BarberHandler) List(c *gin.Context) {
	var barbers []models.Barber
	if err := h.db.Preload("Profile").Order("name ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar barbeiros.")
		return
	}
	httpresp.List(c, barbers)
}

func (h *BarberHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var barber models.Barber
	if err := h.db.Preload("Profile").First(&barber, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}
	httpresp.OK(c, barber)
}

func (h *BarberHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if c.MustGet(middleware.ContextUserID).(uint) != id {
		httperr.Forbidden(c, "not_own_account", "Você só pode alterar a própria conta.")
		return
	}

	var req UpdateBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	if req.Name != "" {
		barber.Name = req.Name
	}
	if req.Phone != "" {
		barber.Phone = req.Phone
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !validators.IsEmailValid(email) {
			httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
			return
		}
		barber.Email = email
	}

	if err := h.db.Save(&barber).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_registered", "E-mail já cadastrado.")
			return
		}
		httperr.Internal(c, "failed_to_update_barber", "Erro ao atualizar barbeiro.")
		return
	}

	httpresp.OK(c, barber)
}

// Delete removes the barber account. Schedules and profile go with it
// (cascade constraints).
func (h *BarberHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if c.MustGet(middleware.ContextUserID).(uint) != id {
		httperr.Forbidden(c, "not_own_account", "Você só pode excluir a própria conta.")
		return
	}

	res := h.db.Delete(&models.Barber{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_barber", "Erro ao excluir barbeiro.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "barber_not_found", "Barbeiro não encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"status": "deleted"})
}

// pathID parses a positive numeric path param, writing the error response on
// failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
