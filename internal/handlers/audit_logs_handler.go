package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberdesk/barbershop-api/internal/httperr"
	"github.com/barberdesk/barbershop-api/internal/httpresp"
	"github.com/barberdesk/barbershop-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List returns recent audit entries, newest first. Barber-only (policy).
func (h *AuditLogsHandler) List(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 200 {
			httperr.BadRequest(c, "invalid_limit", "limit deve estar entre 1 e 200.")
			return
		}
		limit = v
	}

	q := h.db.Order("created_at DESC").Limit(limit)
	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_audit_logs", "Erro ao listar auditoria.")
		return
	}

	httpresp.List(c, logs)
}
