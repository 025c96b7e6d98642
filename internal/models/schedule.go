package models

import "time"

type Schedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Stored in UTC. The composite unique index is the storage-level guarantee
	// that a barber can never hold two appointments at the same instant.
	AppointmentTime time.Time `gorm:"index:idx_schedules_barber_slot,unique;not null" json:"appointment_time"`

	BarberID uint   `gorm:"index:idx_schedules_barber_slot,unique;not null" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClientID uint   `gorm:"not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
