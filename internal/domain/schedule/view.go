package schedule

import (
	"time"

	"github.com/barberdesk/barbershop-api/internal/models"
)

// DisplayFormat is the localized appointment representation.
const DisplayFormat = "02/01/2006 15:04"

// View is the formatted schedule returned to clients.
type View struct {
	ID                 uint      `json:"id"`
	AppointmentTime    string    `json:"appointment_time"`
	AppointmentTimeUTC time.Time `json:"appointment_time_utc"`
	BarberID           uint      `json:"barber_id"`
	BarberName         string    `json:"barber_name"`
	ClientID           uint      `json:"client_id"`
	ClientName         string    `json:"client_name"`
}

// NewView formats s in the given location. Barber and Client associations
// must be populated.
func NewView(s *models.Schedule, loc *time.Location) View {
	return View{
		ID:                 s.ID,
		AppointmentTime:    s.AppointmentTime.In(loc).Format(DisplayFormat),
		AppointmentTimeUTC: s.AppointmentTime.UTC(),
		BarberID:           s.BarberID,
		BarberName:         s.Barber.Name,
		ClientID:           s.ClientID,
		ClientName:         s.Client.Name,
	}
}
