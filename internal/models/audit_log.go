package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Action    string `gorm:"size:50;not null" json:"action"`
	Entity    string `gorm:"size:50" json:"entity"`
	EntityID  *uint  `json:"entity_id"`
	ActorID   *uint  `json:"actor_id"`
	ActorRole string `gorm:"size:20" json:"actor_role"`
	Metadata  string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
