package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/barberdesk/barbershop-api/internal/httperr"
	"github.com/barberdesk/barbershop-api/internal/httpresp"
	ucSchedule "github.com/barberdesk/barbershop-api/internal/usecase/schedule"
)

type AvailabilityHandler struct {
	uc  *ucSchedule.GetAvailability
	log *zap.Logger
}

func NewAvailabilityHandler(uc *ucSchedule.GetAvailability, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc, log: log}
}

func (h *AvailabilityHandler) Get(c *gin.Context) {
	barberIDStr := c.Query("barberId")
	date := c.Query("date")

	if barberIDStr == "" || date == "" {
		httperr.BadRequest(c, "missing_params", "barberId e date são obrigatórios.")
		return
	}

	barberID, err := strconv.ParseUint(barberIDStr, 10, 32)
	if err != nil || barberID == 0 {
		httperr.BadRequest(c, "invalid_barber_id", "barberId deve ser um número positivo.")
		return
	}

	result, err := h.uc.Execute(c.Request.Context(), ucSchedule.AvailabilityInput{
		BarberID: uint(barberID),
		Date:     date,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, result)
}
