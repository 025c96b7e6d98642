package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/barberdesk/barbershop-api/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	action string,
	entity string,
	entityID *uint,
	actorID *uint,
	actorRole string,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		ActorID:   actorID,
		ActorRole: actorRole,
		Metadata:  metaJSON,
	}

	return l.db.Create(&entry).Error
}
