package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/barberdesk/barbershop-api/internal/httperr"
	"github.com/barberdesk/barbershop-api/internal/httpresp"
	"github.com/barberdesk/barbershop-api/internal/middleware"
	ucSchedule "github.com/barberdesk/barbershop-api/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	createUC   *ucSchedule.CreateSchedule
	getUC      *ucSchedule.GetSchedule
	listUC     *ucSchedule.ListSchedules
	updateUC   *ucSchedule.UpdateSchedule
	deleteUC   *ucSchedule.DeleteSchedule
	transferUC *ucSchedule.TransferSchedules
	log        *zap.Logger
}

func NewScheduleHandler(
	createUC *ucSchedule.CreateSchedule,
	getUC *ucSchedule.GetSchedule,
	listUC *ucSchedule.ListSchedules,
	updateUC *ucSchedule.UpdateSchedule,
	deleteUC *ucSchedule.DeleteSchedule,
	transferUC *ucSchedule.TransferSchedules,
	log *zap.Logger,
) *ScheduleHandler {
	return &ScheduleHandler{
		createUC:   createUC,
		getUC:      getUC,
		listUC:     listUC,
		updateUC:   updateUC,
		deleteUC:   deleteUC,
		transferUC: transferUC,
		log:        log,
	}
}

func actorFrom(c *gin.Context) ucSchedule.Actor {
	return ucSchedule.Actor{
		ID:   c.MustGet(middleware.ContextUserID).(uint),
		Role: c.MustGet(middleware.ContextUserRole).(string),
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateScheduleRequest struct {
	BarberID        uint   `json:"barber_id" binding:"required"`
	ClientID        uint   `json:"client_id" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
}

type UpdateScheduleRequest struct {
	BarberID        *uint   `json:"barber_id"`
	ClientID        *uint   `json:"client_id"`
	AppointmentTime *string `json:"appointment_time"`
}

type TransferRequest struct {
	FromBarberID uint `json:"from_barber_id" binding:"required"`
	ToBarberID   uint `json:"to_barber_id" binding:"required"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *ScheduleHandler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	view, err := h.createUC.Execute(c.Request.Context(), actorFrom(c), ucSchedule.CreateScheduleInput{
		BarberID:        req.BarberID,
		ClientID:        req.ClientID,
		AppointmentTime: req.AppointmentTime,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, view)
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.getUC.Execute(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, view)
}

func (h *ScheduleHandler) List(c *gin.Context) {
	views, err := h.listUC.Execute(c.Request.Context(), actorFrom(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, views)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	view, err := h.updateUC.Execute(c.Request.Context(), actorFrom(c), ucSchedule.UpdateScheduleInput{
		ID:              id,
		BarberID:        req.BarberID,
		ClientID:        req.ClientID,
		AppointmentTime: req.AppointmentTime,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, view)
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), actorFrom(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{"status": "deleted"})
}

func (h *ScheduleHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	result, err := h.transferUC.Execute(c.Request.Context(), actorFrom(c), ucSchedule.TransferSchedulesInput{
		FromBarberID: req.FromBarberID,
		ToBarberID:   req.ToBarberID,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, result)
}
