package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberdesk/barbershop-api/internal/httperr"
	"github.com/barberdesk/barbershop-api/internal/httpresp"
	"github.com/barberdesk/barbershop-api/internal/middleware"
	"github.com/barberdesk/barbershop-api/internal/models"
	"github.com/barberdesk/barbershop-api/internal/validators"
)

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type UpdateClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// List is barber-only (policy middleware); barbers see their clientele.
func (h *ClientHandler) List(c *gin.Context) {
	var clients []models.Client
	if err := h.db.Order("name ASC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}
	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// A client may only fetch themselves; barbers may fetch anyone.
	role := c.MustGet(middleware.ContextUserRole).(string)
	if role == middleware.RoleClient && c.MustGet(middleware.ContextUserID).(uint) != id {
		httperr.Forbidden(c, "not_own_account", "Você só pode consultar a própria conta.")
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if c.MustGet(middleware.ContextUserID).(uint) != id {
		httperr.Forbidden(c, "not_own_account", "Você só pode alterar a própria conta.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var client models.Client
	if err := h.db.First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	if req.Name != "" {
		client.Name = req.Name
	}
	if req.Phone != "" {
		client.Phone = req.Phone
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !validators.IsEmailValid(email) {
			httperr.BadRequest(c, "invalid_email", "E-mail inválido.")
			return
		}
		client.Email = email
	}

	if err := h.db.Save(&client).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_registered", "E-mail já cadastrado.")
			return
		}
		httperr.Internal(c, "failed_to_update_client", "Erro ao atualizar cliente.")
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if c.MustGet(middleware.ContextUserID).(uint) != id {
		httperr.Forbidden(c, "not_own_account", "Você só pode excluir a própria conta.")
		return
	}

	res := h.db.Delete(&models.Client{}, id)
	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_client", "Erro ao excluir cliente.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	httpresp.OK(c, gin.H{"status": "deleted"})
}
