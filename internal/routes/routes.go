package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/barberdesk/barbershop-api/internal/audit"
	"github.com/barberdesk/barbershop-api/internal/config"
	"github.com/barberdesk/barbershop-api/internal/handlers"
	infraRepo "github.com/barberdesk/barbershop-api/internal/infra/repository"
	"github.com/barberdesk/barbershop-api/internal/middleware"
	"github.com/barberdesk/barbershop-api/internal/storage"
	ucSchedule "github.com/barberdesk/barbershop-api/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, log *zap.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	uploader := storage.NewUploader(cfg)

	// ======================================================
	// USE CASES
	// ======================================================
	createScheduleUC := ucSchedule.NewCreateSchedule(scheduleRepo, auditDispatcher, log)
	getScheduleUC := ucSchedule.NewGetSchedule(scheduleRepo)
	listSchedulesUC := ucSchedule.NewListSchedules(scheduleRepo)
	updateScheduleUC := ucSchedule.NewUpdateSchedule(scheduleRepo, auditDispatcher, log)
	deleteScheduleUC := ucSchedule.NewDeleteSchedule(scheduleRepo, auditDispatcher)
	transferSchedulesUC := ucSchedule.NewTransferSchedules(scheduleRepo, auditDispatcher)
	getAvailabilityUC := ucSchedule.NewGetAvailability(scheduleRepo, log)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, auditDispatcher)
	meHandler := handlers.NewMeHandler(db)
	barberHandler := handlers.NewBarberHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	profileHandler := handlers.NewBarberProfileHandler(db, uploader, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	scheduleHandler := handlers.NewScheduleHandler(
		createScheduleUC,
		getScheduleUC,
		listSchedulesUC,
		updateScheduleUC,
		deleteScheduleUC,
		transferSchedulesUC,
		log,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(getAvailabilityUC, log)

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/barber/register", authHandler.RegisterBarber)
		api.POST("/auth/client/register", authHandler.RegisterClient)
		api.POST("/auth/barber/login", authHandler.LoginBarber)
		api.POST("/auth/client/login", authHandler.LoginClient)

		api.GET("/availability", availabilityHandler.Get)

		api.GET("/barbers", barberHandler.List)
		api.GET("/barbers/:id", barberHandler.Get)

		api.GET("/barber-profiles", profileHandler.List)
		api.GET("/barber-profiles/search", profileHandler.Search)
		api.GET("/barber-profiles/barber/:barberId", profileHandler.GetByBarber)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Get)

			secured.PUT("/barbers/:id",
				middleware.RequireAction(middleware.ActionBarberWrite), barberHandler.Update)
			secured.DELETE("/barbers/:id",
				middleware.RequireAction(middleware.ActionBarberWrite), barberHandler.Delete)

			secured.GET("/clients",
				middleware.RequireAction(middleware.ActionClientList), clientHandler.List)
			secured.GET("/clients/:id",
				middleware.RequireAction(middleware.ActionClientRead), clientHandler.Get)
			secured.PUT("/clients/:id",
				middleware.RequireAction(middleware.ActionClientWrite), clientHandler.Update)
			secured.DELETE("/clients/:id",
				middleware.RequireAction(middleware.ActionClientWrite), clientHandler.Delete)

			secured.POST("/barber-profiles/barber/:barberId",
				middleware.RequireAction(middleware.ActionProfileWrite), profileHandler.Upsert)
			secured.POST("/barber-profiles/barber/:barberId/picture",
				middleware.RequireAction(middleware.ActionProfileWrite), profileHandler.UploadPicture)
			secured.PUT("/barber-profiles/barber/:barberId/rating",
				middleware.RequireAction(middleware.ActionRatingWrite), profileHandler.UpdateRating)
			secured.DELETE("/barber-profiles/barber/:barberId",
				middleware.RequireAction(middleware.ActionProfileWrite), profileHandler.Delete)

			// ------------------------------
			// SCHEDULES
			// ------------------------------
			secured.POST("/schedules",
				middleware.RequireAction(middleware.ActionScheduleCreate), scheduleHandler.Create)
			secured.GET("/schedules",
				middleware.RequireAction(middleware.ActionScheduleRead), scheduleHandler.List)
			secured.GET("/schedules/:id",
				middleware.RequireAction(middleware.ActionScheduleRead), scheduleHandler.Get)
			secured.PUT("/schedules/:id",
				middleware.RequireAction(middleware.ActionScheduleUpdate), scheduleHandler.Update)
			secured.DELETE("/schedules/:id",
				middleware.RequireAction(middleware.ActionScheduleDelete), scheduleHandler.Delete)
			secured.POST("/schedules/transfer",
				middleware.RequireAction(middleware.ActionScheduleTransfer), scheduleHandler.Transfer)

			secured.GET("/audit-logs",
				middleware.RequireAction(middleware.ActionAuditRead), auditLogsHandler.List)
		}
	}
}
