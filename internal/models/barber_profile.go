package models

import "time"

type BarberProfile struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex" json:"barber_id"`

	Bio             string  `gorm:"type:text" json:"bio"`
	Specialties     string  `gorm:"size:255" json:"specialties"`
	ExperienceYears int     `json:"experience_years"`
	Rating          float64 `gorm:"default:0" json:"rating"`
	ProfilePicture  string  `gorm:"size:255" json:"profile_picture"`

	// IANA timezone used for working-hours checks and display. Empty means
	// the server default.
	Timezone string `gorm:"size:64" json:"timezone"`

	// JSON document mapping weekday keys (domingo..sabado) to either an
	// "HH:MM-HH:MM" window or a closed marker.
	WorkingHours string `gorm:"type:text" json:"working_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
