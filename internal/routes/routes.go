package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BrunoVenuto/saas-barber-sub000/internal/audit"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/cache"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/config"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/handlers"
	infraRepo "github.com/BrunoVenuto/saas-barber-sub000/internal/infra/repository"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/media"
	"github.com/BrunoVenuto/saas-barber-sub000/internal/middleware"
	ucAppointment "github.com/BrunoVenuto/saas-barber-sub000/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	availabilityCache := cache.NewAvailabilityCache(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	uploader := media.NewUploader(cfg)

	rateLimiter := middleware.NewRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute)

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		availabilityCache,
	)

	reservationUC := ucAppointment.NewCreateReservation(
		appointmentRepo,
		availabilityCache,
		auditDispatcher,
	)

	confirmUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		availabilityCache,
		auditDispatcher,
	)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(
		appointmentRepo,
	)

	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(
		appointmentRepo,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db, uploader)

	serviceHandler := handlers.NewServiceHandler(db)
	clientHandler := handlers.NewClientHandler(db)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db, appointmentRepo, availabilityCache)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		reservationUC,
		availabilityUC,
		confirmUC,
		completeUC,
		cancelUC,
		listByDateUC,
		listByMonthUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, reservationUC)
	platformHandler := handlers.NewPlatformHandler(db, auditDispatcher)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (rate limited)
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(rateLimiter.Middleware())
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/barbershop", barbershopHandler.GetMeBarbershop)
			secured.PATCH("/me/barbershop", barbershopHandler.UpdateMeBarbershop)
			secured.POST("/me/barbershop/logo", barbershopHandler.UploadLogo)

			secured.GET("/me/clients", clientHandler.List)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)

			secured.GET("/me/audit-logs", auditLogsHandler.List)

			// ------------------------------
			// 🏢 PLATAFORMA
			// ------------------------------
			platform := secured.Group("/platform")
			platform.Use(middleware.RequireRole("platform_admin"))
			{
				platform.POST("/barbershops", platformHandler.ProvisionBarbershop)
			}
		}
	}
}
